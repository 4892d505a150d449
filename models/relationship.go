package models

import "time"

// Relationship is a directed follow edge from FollowerID to FollowedID.
type Relationship struct {
	FollowerID int64     `json:"follower_id"`
	FollowedID int64     `json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Relationship model.
func (r Relationship) TableName() string {
	return "relationships"
}

// EdgeState is the state of a follow edge after follow/unfollow.
type EdgeState struct {
	FollowerID int64 `json:"follower_id"`
	FollowedID int64 `json:"followed_id"`
	Following  bool  `json:"following"`

	// Changed is false when the call found the edge already in the
	// requested state.
	Changed bool `json:"changed"`
}
