package domain

import "time"

// Post is a resource owned by a single account. OwnerID is set on creation and
// never reassigned.
type Post struct {
	ID        int64
	OwnerID   int64
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostWithOwner pairs a post with a summary of its owner for admin listings.
type PostWithOwner struct {
	Post  Post
	Owner OwnerSummary
}
