package models

import "time"

// Post represents a post in the database. Every post has exactly one owner
// for its lifetime.
type Post struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	Published bool      `db:"published" json:"published"`
	OwnerID   int64     `db:"owner_id" json:"owner_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PostWithAuthor is a Post joined with its owner and the current vote total,
// as returned by read queries.
type PostWithAuthor struct {
	Post
	Votes     int64 `db:"votes" json:"votes"`
	CreatedBy User  `db:"created_by" json:"created_by"`
}

// PostRequest defines the structure for creating or fully replacing a post.
// Published is a pointer so an omitted field can default to true.
type PostRequest struct {
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content" binding:"required"`
	Published *bool  `json:"published"`
}

// IsPublished resolves the published flag, defaulting to true when omitted.
func (r *PostRequest) IsPublished() bool {
	if r.Published == nil {
		return true
	}
	return *r.Published
}

// PostFilter bounds the result window of a post listing.
type PostFilter struct {
	Search string
	Limit  int
	Offset int
}
