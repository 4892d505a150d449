package models

// Identity is the authenticated actor of a single request.
// It is threaded explicitly through calls; there is no global current user.
type Identity struct {
	UserID int64 `json:"user_id"`
	Admin  bool  `json:"admin"`
}

// CanManage reports whether the identity may perform owner-or-admin
// actions on the account with the given id.
func (i Identity) CanManage(userID int64) bool {
	return i.Admin || (i.UserID != 0 && i.UserID == userID)
}

// Session is the result of a successful login.
type Session struct {
	User User `json:"user"`

	// AccessToken is a signed short-lived token carrying the Identity.
	AccessToken string `json:"access_token"`

	// RememberToken is set only when a persistent session was requested.
	RememberToken string `json:"remember_token,omitempty"`
}
