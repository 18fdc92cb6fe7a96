package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/feedbackboard/internal/client/client"
	"github.com/dmitrijs2005/feedbackboard/internal/client/domain"
	"github.com/dmitrijs2005/feedbackboard/internal/logging"
)

func boardItems() []domain.Feedback {
	return []domain.Feedback{
		{ID: 10, BoardID: 3, Title: "Dark mode", Upvotes: 4, Downvotes: 1, Status: domain.StatusPending},
		{ID: 11, BoardID: 3, Title: "Export", Upvotes: 0, Downvotes: 0, Status: domain.StatusReviewing},
	}
}

func loaded(t *testing.T, fc *fakeClient, role domain.Role, boardRoles map[int64]domain.BoardRole) FeedbackService {
	t.Helper()
	fc.feedback = boardItems()
	svc := NewFeedbackService(fc, signedIn(t, role, boardRoles), logging.Nop())
	_, err := svc.List(context.Background(), 3)
	require.NoError(t, err)
	return svc
}

func item(t *testing.T, svc FeedbackService, id int64) domain.Feedback {
	t.Helper()
	items, ok := svc.Cached(3)
	require.True(t, ok)
	for _, it := range items {
		if it.ID == id {
			return it
		}
	}
	t.Fatalf("feedback %d not cached", id)
	return domain.Feedback{}
}

func TestFeedbackService_UpdateStatusRejectedLocally(t *testing.T) {
	tests := []struct {
		name       string
		role       domain.Role
		boardRoles map[int64]domain.BoardRole
	}{
		{"user without board role", domain.RoleUser, nil},
		{"board user", domain.RoleUser, map[int64]domain.BoardRole{3: domain.BoardRoleUser}},
		{"global stakeholder", domain.RoleStakeholder, nil},
		{"stakeholder of another board", domain.RoleUser, map[int64]domain.BoardRole{4: domain.BoardRoleStakeholder}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeClient{}
			svc := loaded(t, fc, tt.role, tt.boardRoles)

			err := svc.UpdateStatus(context.Background(), 10, domain.StatusApproved)

			require.ErrorIs(t, err, ErrPermissionDenied)
			assert.Equal(t, "You don't have permission to update feedback status", err.Error())
			assert.Equal(t, []string{"ListFeedback"}, fc.called(), "no status request expected")
			assert.Equal(t, domain.StatusPending, item(t, svc, 10).Status)
		})
	}
}

func TestFeedbackService_UpdateStatus(t *testing.T) {
	for _, role := range []struct {
		name       string
		role       domain.Role
		boardRoles map[int64]domain.BoardRole
	}{
		{"board stakeholder", domain.RoleUser, map[int64]domain.BoardRole{3: domain.BoardRoleStakeholder}},
		{"app admin", domain.RoleAppAdmin, nil},
	} {
		t.Run(role.name, func(t *testing.T) {
			fc := &fakeClient{}
			svc := loaded(t, fc, role.role, role.boardRoles)

			require.NoError(t, svc.UpdateStatus(context.Background(), 10, domain.StatusDeclined))
			assert.Equal(t, domain.StatusDeclined, fc.lastStatus)
			assert.Equal(t, domain.StatusDeclined, item(t, svc, 10).Status)
		})
	}
}

func TestFeedbackService_UpdateStatusUsesItemBoard(t *testing.T) {
	t.Run("uncached item on a board without stakeholder rights", func(t *testing.T) {
		fc := &fakeClient{feedbackOne: domain.Feedback{ID: 20, BoardID: 4, Status: domain.StatusPending}}
		svc := loaded(t, fc, domain.RoleUser, map[int64]domain.BoardRole{3: domain.BoardRoleStakeholder, 4: domain.BoardRoleUser})

		err := svc.UpdateStatus(context.Background(), 20, domain.StatusApproved)

		require.ErrorIs(t, err, ErrPermissionDenied)
		assert.Equal(t, []string{"ListFeedback", "GetFeedback"}, fc.called())
		assert.Empty(t, fc.lastStatus)
	})

	t.Run("uncached item on a stakeholder board", func(t *testing.T) {
		fc := &fakeClient{feedbackOne: domain.Feedback{ID: 20, BoardID: 4, Status: domain.StatusPending}}
		svc := loaded(t, fc, domain.RoleUser, map[int64]domain.BoardRole{4: domain.BoardRoleStakeholder})

		require.NoError(t, svc.UpdateStatus(context.Background(), 20, domain.StatusApproved))
		assert.Equal(t, []string{"ListFeedback", "GetFeedback", "UpdateFeedbackStatus"}, fc.called())
	})

	t.Run("lookup failure sends nothing", func(t *testing.T) {
		fc := &fakeClient{errs: map[string]error{"GetFeedback": client.ErrNotFound}}
		svc := loaded(t, fc, domain.RoleAppAdmin, nil)

		err := svc.UpdateStatus(context.Background(), 20, domain.StatusApproved)

		require.ErrorIs(t, err, client.ErrNotFound)
		assert.Equal(t, []string{"ListFeedback", "GetFeedback"}, fc.called())
	})
}

func TestFeedbackService_UpdateStatusInvalid(t *testing.T) {
	fc := &fakeClient{}
	svc := loaded(t, fc, domain.RoleAppAdmin, nil)

	err := svc.UpdateStatus(context.Background(), 10, domain.FeedbackStatus("shipped"))
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, []string{"ListFeedback"}, fc.called())
}

func TestFeedbackService_UpdateStatusFailureKeepsCache(t *testing.T) {
	fc := &fakeClient{errs: map[string]error{"UpdateFeedbackStatus": errors.New("boom")}}
	svc := loaded(t, fc, domain.RoleAppAdmin, nil)

	require.Error(t, svc.UpdateStatus(context.Background(), 10, domain.StatusApproved))
	assert.Equal(t, domain.StatusPending, item(t, svc, 10).Status)
}

func TestFeedbackService_VoteOptimistic(t *testing.T) {
	fc := &fakeClient{}
	svc := loaded(t, fc, domain.RoleUser, nil)
	ctx := context.Background()

	require.NoError(t, svc.Vote(ctx, 3, 10, domain.VoteUpvote))
	got := item(t, svc, 10)
	assert.Equal(t, 5, got.Upvotes)
	assert.Equal(t, domain.VoteUpvote, got.UserVote)
	assert.Equal(t, domain.VoteUpvote, fc.lastVote)

	// Same vote again toggles off.
	require.NoError(t, svc.Vote(ctx, 3, 10, domain.VoteUpvote))
	got = item(t, svc, 10)
	assert.Equal(t, 4, got.Upvotes)
	assert.Equal(t, domain.VoteNone, got.UserVote)

	// Switching moves the vote across.
	require.NoError(t, svc.Vote(ctx, 3, 10, domain.VoteUpvote))
	require.NoError(t, svc.Vote(ctx, 3, 10, domain.VoteDownvote))
	got = item(t, svc, 10)
	assert.Equal(t, 4, got.Upvotes)
	assert.Equal(t, 2, got.Downvotes)
	assert.Equal(t, domain.VoteDownvote, got.UserVote)
}

func TestFeedbackService_VoteRevertedOnFailure(t *testing.T) {
	fc := &fakeClient{}
	svc := loaded(t, fc, domain.RoleUser, nil)
	fc.errs = map[string]error{"Vote": errors.New("boom")}

	err := svc.Vote(context.Background(), 3, 11, domain.VoteDownvote)

	require.Error(t, err)
	got := item(t, svc, 11)
	assert.Equal(t, 0, got.Downvotes)
	assert.Equal(t, domain.VoteNone, got.UserVote)
	assert.Equal(t, domain.StatusReviewing, got.Status)
}

func TestFeedbackService_VoteRequiresSignIn(t *testing.T) {
	fc := &fakeClient{}
	svc := NewFeedbackService(fc, signedOut(), logging.Nop())

	assert.ErrorIs(t, svc.Vote(context.Background(), 3, 10, domain.VoteUpvote), ErrNotSignedIn)
	assert.ErrorIs(t, svc.Vote(context.Background(), 3, 10, domain.VoteNone), ErrNotSignedIn)
	assert.Empty(t, fc.called())
}

func countCalls(fc *fakeClient, name string) int {
	n := 0
	for _, c := range fc.called() {
		if c == name {
			n++
		}
	}
	return n
}

func TestFeedbackService_SupersededFailureNotReverted(t *testing.T) {
	fc := &fakeClient{}
	svc := loaded(t, fc, domain.RoleUser, nil)
	release := make(chan struct{})
	fc.mu.Lock()
	fc.errs = map[string]error{"Vote": errors.New("boom")}
	fc.block = map[string]chan struct{}{"Vote": release}
	fc.mu.Unlock()

	var wg sync.WaitGroup
	vote := func(v domain.VoteType) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = svc.Vote(context.Background(), 3, 11, v)
		}()
	}

	vote(domain.VoteUpvote)
	require.Eventually(t, func() bool { return countCalls(fc, "Vote") == 1 }, time.Second, time.Millisecond)
	vote(domain.VoteDownvote)
	require.Eventually(t, func() bool { return countCalls(fc, "Vote") == 2 }, time.Second, time.Millisecond)

	close(release)
	wg.Wait()

	// Only the latest vote is rolled back, to the state the first vote left.
	got := item(t, svc, 11)
	assert.Equal(t, 1, got.Upvotes)
	assert.Equal(t, 0, got.Downvotes)
	assert.Equal(t, domain.VoteUpvote, got.UserVote)
}

func TestFeedbackService_FailureAfterRefreshNotReverted(t *testing.T) {
	fc := &fakeClient{}
	svc := loaded(t, fc, domain.RoleUser, nil)
	release := make(chan struct{})
	fc.mu.Lock()
	fc.errs = map[string]error{"Vote": errors.New("boom")}
	fc.block = map[string]chan struct{}{"Vote": release}
	fc.mu.Unlock()

	done := make(chan error)
	go func() { done <- svc.Vote(context.Background(), 3, 11, domain.VoteUpvote) }()
	require.Eventually(t, func() bool { return countCalls(fc, "Vote") == 1 }, time.Second, time.Millisecond)

	fc.mu.Lock()
	fc.feedback = []domain.Feedback{{ID: 11, BoardID: 3, Upvotes: 7, UserVote: domain.VoteUpvote}}
	fc.mu.Unlock()
	_, err := svc.List(context.Background(), 3)
	require.NoError(t, err)

	close(release)
	require.Error(t, <-done)

	got := item(t, svc, 11)
	assert.Equal(t, 7, got.Upvotes, "fresh list must not be overwritten by a stale rollback")
}

func TestFeedbackService_Submit(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{feedback: boardItems()}
	svc := NewFeedbackService(fc, signedIn(t, domain.RoleUser, nil), logging.Nop())

	err := svc.Submit(ctx, domain.FeedbackSubmission{BoardID: 3, Title: " ", Description: "d", CategoryID: 1})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, fc.called())

	sub := domain.FeedbackSubmission{BoardID: 3, Title: "Dark mode", Description: "Please", CategoryID: 1}
	require.NoError(t, svc.Submit(ctx, sub))
	assert.Equal(t, sub, fc.lastSubmit)
	assert.Equal(t, []string{"SubmitFeedback", "ListFeedback"}, fc.called())
	items, ok := svc.Cached(3)
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestFeedbackService_CachedIsACopy(t *testing.T) {
	fc := &fakeClient{}
	svc := loaded(t, fc, domain.RoleUser, nil)

	items, _ := svc.Cached(3)
	items[0].Upvotes = 100

	assert.Equal(t, 4, item(t, svc, 10).Upvotes)
	_, ok := svc.Cached(99)
	assert.False(t, ok)
}
