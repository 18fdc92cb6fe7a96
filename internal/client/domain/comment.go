package domain

import (
	"slices"
	"time"
)

// Comment is a top-level comment on a feedback item. It owns its replies.
type Comment struct {
	ID         int64     `json:"id"`
	FeedbackID int64     `json:"feedbackId"`
	UserID     int64     `json:"userId"`
	Content    string    `json:"content"`
	Likes      int       `json:"likes"`
	Dislikes   int       `json:"dislikes"`
	CreatedAt  time.Time `json:"createdAt"`
	IsLiked    bool      `json:"isLiked"`
	IsDisliked bool      `json:"isDisliked"`
	Replies    []Reply   `json:"replies"`
}

// Clone returns a copy of c whose reply slice is not shared with c.
func (c Comment) Clone() Comment {
	c.Replies = slices.Clone(c.Replies)
	return c
}

type Reply struct {
	ID         int64     `json:"id"`
	CommentID  int64     `json:"commentId"`
	UserID     int64     `json:"userId"`
	Content    string    `json:"content"`
	Likes      int       `json:"likes"`
	Dislikes   int       `json:"dislikes"`
	CreatedAt  time.Time `json:"createdAt"`
	IsLiked    bool      `json:"isLiked"`
	IsDisliked bool      `json:"isDisliked"`
}
