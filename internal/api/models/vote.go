package models

// Vote directions. There is no stored down-vote: direction 0 retracts an
// existing up-vote instead of recording a negative one.
const (
	VoteRetract = 0
	VoteCast    = 1
)

// Vote represents one user's up-vote on one post. The (post_id, user_id)
// pair is the primary key.
type Vote struct {
	PostID int64 `db:"post_id" json:"post_id"`
	UserID int64 `db:"user_id" json:"user_id"`
}

// VoteRequest defines the structure for a vote request. Dir is a pointer so
// that an explicit 0 survives the required check.
type VoteRequest struct {
	PostID int64 `json:"post_id" binding:"required"`
	Dir    *int  `json:"dir" binding:"required,oneof=0 1"`
}
