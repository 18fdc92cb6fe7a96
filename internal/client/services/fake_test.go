package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/feedbackboard/internal/client/client"
	"github.com/dmitrijs2005/feedbackboard/internal/client/domain"
	"github.com/dmitrijs2005/feedbackboard/internal/client/session"
	"github.com/dmitrijs2005/feedbackboard/internal/client/storage"
)

// fakeClient implements client.Client for service tests. Each method records
// its name in calls and returns the configured result.
type fakeClient struct {
	mu    sync.Mutex
	calls []string

	loginURL    string
	callback    domain.Principal
	profile     domain.Principal
	boards      []domain.Board
	board       domain.Board
	members     []domain.BoardMember
	categories  []domain.Category
	feedback    []domain.Feedback
	feedbackOne domain.Feedback
	comments    []domain.Comment
	newID       int64

	// errs maps a method name to the error it returns.
	errs map[string]error

	// block, when set for a method, is received from before it returns.
	block map[string]chan struct{}

	lastVote   domain.VoteType
	lastStatus domain.FeedbackStatus
	lastInvite string
	lastSubmit domain.FeedbackSubmission
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) call(ctx context.Context, name string) error {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	err := f.errs[name]
	ch := f.block[name]
	f.mu.Unlock()
	if ch != nil {
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (f *fakeClient) called() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) GoogleLoginURL(ctx context.Context) (string, error) {
	return f.loginURL, f.call(ctx, "GoogleLoginURL")
}

func (f *fakeClient) GoogleCallback(ctx context.Context, code string) (domain.Principal, error) {
	if err := f.call(ctx, "GoogleCallback"); err != nil {
		return domain.Principal{}, err
	}
	return f.callback.Clone(), nil
}

func (f *fakeClient) Profile(ctx context.Context) (domain.Principal, error) {
	if err := f.call(ctx, "Profile"); err != nil {
		return domain.Principal{}, err
	}
	return f.profile.Clone(), nil
}

func (f *fakeClient) ListBoards(ctx context.Context) ([]domain.Board, error) {
	return f.boards, f.call(ctx, "ListBoards")
}

func (f *fakeClient) CreateBoard(ctx context.Context, name string) error {
	return f.call(ctx, "CreateBoard")
}

func (f *fakeClient) GetBoard(ctx context.Context, boardID int64) (domain.Board, error) {
	return f.board, f.call(ctx, "GetBoard")
}

func (f *fakeClient) ListMembers(ctx context.Context, boardID int64) ([]domain.BoardMember, error) {
	return f.members, f.call(ctx, "ListMembers")
}

func (f *fakeClient) InviteMember(ctx context.Context, boardID int64, email string, role domain.BoardRole) error {
	f.lastInvite = email
	return f.call(ctx, "InviteMember")
}

func (f *fakeClient) RemoveMember(ctx context.Context, boardID, userID int64) error {
	return f.call(ctx, "RemoveMember")
}

func (f *fakeClient) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return f.categories, f.call(ctx, "ListCategories")
}

func (f *fakeClient) ListFeedback(ctx context.Context, boardID int64) ([]domain.Feedback, error) {
	f.mu.Lock()
	items := append([]domain.Feedback(nil), f.feedback...)
	f.mu.Unlock()
	return items, f.call(ctx, "ListFeedback")
}

func (f *fakeClient) SubmitFeedback(ctx context.Context, s domain.FeedbackSubmission) error {
	f.lastSubmit = s
	return f.call(ctx, "SubmitFeedback")
}

func (f *fakeClient) GetFeedback(ctx context.Context, feedbackID int64) (domain.Feedback, error) {
	return f.feedbackOne, f.call(ctx, "GetFeedback")
}

func (f *fakeClient) UpdateFeedbackStatus(ctx context.Context, feedbackID int64, status domain.FeedbackStatus) error {
	f.lastStatus = status
	return f.call(ctx, "UpdateFeedbackStatus")
}

func (f *fakeClient) Vote(ctx context.Context, feedbackID int64, vote domain.VoteType) error {
	f.mu.Lock()
	f.lastVote = vote
	f.mu.Unlock()
	return f.call(ctx, "Vote")
}

func (f *fakeClient) ListComments(ctx context.Context, feedbackID int64) ([]domain.Comment, error) {
	f.mu.Lock()
	out := make([]domain.Comment, len(f.comments))
	for i, c := range f.comments {
		out[i] = c.Clone()
	}
	f.mu.Unlock()
	return out, f.call(ctx, "ListComments")
}

func (f *fakeClient) AddComment(ctx context.Context, feedbackID int64, content string) (int64, error) {
	return f.newID, f.call(ctx, "AddComment")
}

func (f *fakeClient) AddReply(ctx context.Context, commentID int64, content string) (int64, error) {
	return f.newID, f.call(ctx, "AddReply")
}

func (f *fakeClient) LikeComment(ctx context.Context, commentID int64, like bool) error {
	return f.call(ctx, "LikeComment")
}

func (f *fakeClient) LikeReply(ctx context.Context, replyID int64, like bool) error {
	return f.call(ctx, "LikeReply")
}

// signedIn returns a session holding a principal with the given roles.
func signedIn(t *testing.T, role domain.Role, boardRoles map[int64]domain.BoardRole) *session.Session {
	t.Helper()
	s := session.Open(context.Background(), storage.NewMemoryStore())
	require.NoError(t, s.Login(context.Background(), domain.Principal{
		ID:         1,
		Name:       "Alice",
		Token:      "tok",
		Role:       role,
		BoardRoles: boardRoles,
	}))
	return s
}

func signedOut() *session.Session {
	return session.Open(context.Background(), storage.NewMemoryStore())
}
