package models

// SignupRequest carries the fields of a new account.
type SignupRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// ProfileUpdate carries a partial profile edit.
// Nil fields are left untouched. An empty password pair keeps the
// existing password. Admin is accepted on the wire only so that it can be
// ignored explicitly.
type ProfileUpdate struct {
	Name                 *string `json:"name,omitempty"`
	Email                *string `json:"email,omitempty"`
	Password             string  `json:"password,omitempty"`
	PasswordConfirmation string  `json:"password_confirmation,omitempty"`
	Admin                *bool   `json:"admin,omitempty"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

// RememberRequest exchanges a remember token for a new session.
type RememberRequest struct {
	UserID        int64  `json:"id"`
	RememberToken string `json:"remember_token"`
}

// ActivationRequest consumes an activation token.
type ActivationRequest struct {
	UserID int64  `json:"id"`
	Token  string `json:"token"`
}

// ResetRequest starts a password reset.
type ResetRequest struct {
	Email string `json:"email"`
}

// ResetConsumeRequest completes a password reset.
type ResetConsumeRequest struct {
	UserID               int64  `json:"id"`
	Token                string `json:"token"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// FollowRequest creates a follow edge from the caller.
type FollowRequest struct {
	FollowedID int64 `json:"followed_id"`
}

// PostRequest creates a post authored by the caller.
type PostRequest struct {
	Content string `json:"content"`
}
