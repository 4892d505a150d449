package models

// SignupResponse is returned after account creation. The activation token
// itself travels only through the mail adapter.
type SignupResponse struct {
	User           User `json:"user"`
	ActivationSent bool `json:"activation_sent"`
}

// IDsResponse lists account identifiers (followers / following).
type IDsResponse struct {
	UserID int64   `json:"user_id"`
	IDs    []int64 `json:"ids"`
	Count  int     `json:"count"`
}

// UsersResponse is one page of the account directory.
type UsersResponse struct {
	Users []User `json:"users"`
	Page  Page   `json:"page"`
}

// PostsResponse lists posts of a single author.
type PostsResponse struct {
	UserID int64  `json:"user_id"`
	Posts  []Post `json:"posts"`
	Page   Page   `json:"page"`
}

// FieldErrorResponse is a single field attribution inside ErrorResponse.
type FieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the JSON error body written by the HTTP layer.
type ErrorResponse struct {
	Error  string               `json:"error"`
	Count  int                  `json:"count,omitempty"`
	Fields []FieldErrorResponse `json:"fields,omitempty"`
}

// VersionResponse describes the running server build.
type VersionResponse struct {
	Version     string `json:"version"`
	BuildDate   string `json:"build_date,omitempty"`
	BuildCommit string `json:"build_commit,omitempty"`
}
