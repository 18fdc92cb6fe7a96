package client

import (
	"context"

	"github.com/dmitrijs2005/feedbackboard/internal/client/domain"
)

type Client interface {
	GoogleLoginURL(ctx context.Context) (string, error)
	// GoogleCallback exchanges an OAuth authorization code for a signed-in
	// principal, token included.
	GoogleCallback(ctx context.Context, code string) (domain.Principal, error)
	// Profile returns the current principal's identity and roles. The
	// returned principal has no token.
	Profile(ctx context.Context) (domain.Principal, error)

	ListBoards(ctx context.Context) ([]domain.Board, error)
	CreateBoard(ctx context.Context, name string) error
	GetBoard(ctx context.Context, boardID int64) (domain.Board, error)
	ListMembers(ctx context.Context, boardID int64) ([]domain.BoardMember, error)
	InviteMember(ctx context.Context, boardID int64, email string, role domain.BoardRole) error
	RemoveMember(ctx context.Context, boardID, userID int64) error

	ListCategories(ctx context.Context) ([]domain.Category, error)

	ListFeedback(ctx context.Context, boardID int64) ([]domain.Feedback, error)
	SubmitFeedback(ctx context.Context, s domain.FeedbackSubmission) error
	GetFeedback(ctx context.Context, feedbackID int64) (domain.Feedback, error)
	UpdateFeedbackStatus(ctx context.Context, feedbackID int64, status domain.FeedbackStatus) error
	// Vote sends the vote the viewer clicked. The server toggles or switches
	// the viewer's existing vote the same way the client does locally.
	Vote(ctx context.Context, feedbackID int64, vote domain.VoteType) error

	ListComments(ctx context.Context, feedbackID int64) ([]domain.Comment, error)
	AddComment(ctx context.Context, feedbackID int64, content string) (int64, error)
	AddReply(ctx context.Context, commentID int64, content string) (int64, error)
	LikeComment(ctx context.Context, commentID int64, like bool) error
	LikeReply(ctx context.Context, replyID int64, like bool) error
}
