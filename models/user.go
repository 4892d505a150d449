package models

import "time"

// User represents a microblog account.
// Digest fields hold one-way hashes only; raw secrets never reach this type.
// Sensitive fields are excluded from JSON so a User can be returned to
// callers as-is.
type User struct {
	// ID is the stable identity assigned by storage on creation.
	ID int64 `json:"id"`

	// Name is the display name (1..50 characters).
	Name string `json:"name"`

	// Email is stored lower-cased and is unique case-insensitively.
	// It is shown only to the owner and to admins (see VisibleTo).
	Email string `json:"email,omitempty"`

	// PasswordDigest is the bcrypt hash of the account password.
	PasswordDigest string `json:"-"`

	// Admin can only be changed through the administrative channel.
	Admin bool `json:"admin"`

	// Activated becomes true once the activation token is consumed.
	Activated   bool       `json:"activated"`
	ActivatedAt *time.Time `json:"activated_at,omitempty"`

	// ActivationDigest is nil once the account has been activated.
	ActivationDigest *string    `json:"-"`
	ActivationSentAt *time.Time `json:"-"`

	// RememberDigest is nil when no persistent session exists.
	RememberDigest *string `json:"-"`

	// ResetDigest is nil unless a password reset is pending.
	ResetDigest *string    `json:"-"`
	ResetSentAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// VisibleTo returns the copy of u that viewer may see. Other accounts'
// email addresses are blanked unless the viewer is an admin.
func (u User) VisibleTo(viewer Identity) User {
	if !viewer.CanManage(u.ID) {
		u.Email = ""
	}
	return u
}

// Profile is a User together with its follow graph counters.
type Profile struct {
	User           User  `json:"user"`
	FollowingCount int64 `json:"following_count"`
	FollowersCount int64 `json:"followers_count"`
	PostsCount     int64 `json:"posts_count"`
}

// UserChanges is a storage-level profile edit. Nil fields are left as is.
type UserChanges struct {
	Name           *string
	Email          *string
	PasswordDigest *string
}

// IsEmpty reports whether the edit touches nothing.
func (c UserChanges) IsEmpty() bool {
	return c.Name == nil && c.Email == nil && c.PasswordDigest == nil
}

// DeletionReport describes what a cascading account deletion removed.
type DeletionReport struct {
	UserID               int64 `json:"user_id"`
	PostsDeleted         int64 `json:"posts_deleted"`
	RelationshipsDeleted int64 `json:"relationships_deleted"`
}
