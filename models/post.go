package models

import "time"

// Post is a short content item authored by a single user.
// Posts are immutable after creation and only disappear together with
// their author.
type Post struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Post model.
func (p Post) TableName() string {
	return "posts"
}

// FeedCursor marks a position in a feed ordered by (CreatedAt desc, ID desc).
// The zero value means "start from the newest post".
type FeedCursor struct {
	CreatedAt time.Time `json:"created_at"`
	ID        int64     `json:"id"`
}

// IsZero reports whether the cursor points at the beginning of the feed.
func (c FeedCursor) IsZero() bool {
	return c.ID == 0 && c.CreatedAt.IsZero()
}

// CursorAfter returns the cursor positioned right after p.
func CursorAfter(p Post) FeedCursor {
	return FeedCursor{CreatedAt: p.CreatedAt, ID: p.ID}
}

// FeedPage is one keyset page of a feed.
type FeedPage struct {
	Posts []Post `json:"posts"`

	// Next is nil when there are no more posts.
	Next *FeedCursor `json:"next,omitempty"`
}
