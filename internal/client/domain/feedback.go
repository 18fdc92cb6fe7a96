package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrUnknownStatus   = errors.New("unknown feedback status")
	ErrUnknownVoteType = errors.New("unknown vote type")
)

// FeedbackStatus is the triage state of a feedback item. Any state may move
// to any other.
type FeedbackStatus string

const (
	StatusPending   FeedbackStatus = "pending"
	StatusReviewing FeedbackStatus = "reviewing"
	StatusApproved  FeedbackStatus = "approved"
	StatusDeclined  FeedbackStatus = "declined"
)

// Statuses lists every feedback status in display order.
var Statuses = []FeedbackStatus{StatusPending, StatusReviewing, StatusApproved, StatusDeclined}

// ParseFeedbackStatus converts s into a FeedbackStatus. Items that never had
// a status assigned are reported by the API without one and read as pending.
func ParseFeedbackStatus(s string) (FeedbackStatus, error) {
	switch FeedbackStatus(s) {
	case "":
		return StatusPending, nil
	case StatusPending, StatusReviewing, StatusApproved, StatusDeclined:
		return FeedbackStatus(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

func (s FeedbackStatus) String() string { return string(s) }

func (s *FeedbackStatus) UnmarshalJSON(b []byte) error {
	var raw *string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	var v string
	if raw != nil {
		v = *raw
	}
	parsed, err := ParseFeedbackStatus(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// VoteType is the viewer's own vote on a feedback item.
type VoteType string

const (
	VoteNone     VoteType = ""
	VoteUpvote   VoteType = "upvote"
	VoteDownvote VoteType = "downvote"
)

// ParseVoteType accepts "upvote", "downvote" and the short forms "up" and
// "down". The empty string and "none" yield VoteNone.
func ParseVoteType(s string) (VoteType, error) {
	switch s {
	case "", "none":
		return VoteNone, nil
	case "up", string(VoteUpvote):
		return VoteUpvote, nil
	case "down", string(VoteDownvote):
		return VoteDownvote, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVoteType, s)
}

func (v VoteType) String() string {
	if v == VoteNone {
		return "none"
	}
	return string(v)
}

func (v VoteType) MarshalJSON() ([]byte, error) {
	if v == VoteNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(v))
}

func (v *VoteType) UnmarshalJSON(b []byte) error {
	var raw *string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil {
		*v = VoteNone
		return nil
	}
	parsed, err := ParseVoteType(*raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

type Feedback struct {
	ID          int64          `json:"id"`
	BoardID     int64          `json:"boardId"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	CategoryID  int64          `json:"categoryId"`
	Upvotes     int            `json:"upvotes"`
	Downvotes   int            `json:"downvotes"`
	Status      FeedbackStatus `json:"status,omitempty"`
	UserVote    VoteType       `json:"userVote"`
}

type FeedbackSubmission struct {
	BoardID     int64  `json:"boardId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CategoryID  int64  `json:"categoryId"`
}
