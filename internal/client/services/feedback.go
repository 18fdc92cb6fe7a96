package services

import (
	"context"
	"slices"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/feedbackboard/internal/client/client"
	"github.com/dmitrijs2005/feedbackboard/internal/client/domain"
	"github.com/dmitrijs2005/feedbackboard/internal/client/reaction"
	"github.com/dmitrijs2005/feedbackboard/internal/client/session"
	"github.com/dmitrijs2005/feedbackboard/internal/logging"
)

// FeedbackService lists, submits, votes on and moderates feedback.
//
// The last list fetched for each board is kept. Votes change that list before
// the request is sent; if the request fails and no newer vote on the item or
// newer list has arrived since, the item's counts are put back.
type FeedbackService interface {
	List(ctx context.Context, boardID int64) ([]domain.Feedback, error)
	Cached(boardID int64) ([]domain.Feedback, bool)
	Submit(ctx context.Context, s domain.FeedbackSubmission) error
	Get(ctx context.Context, feedbackID int64) (domain.Feedback, error)
	Vote(ctx context.Context, boardID, feedbackID int64, vote domain.VoteType) error
	// UpdateStatus needs board stakeholder rights on the item's own board,
	// found in the cached lists or fetched, and is refused without a status
	// request otherwise.
	UpdateStatus(ctx context.Context, feedbackID int64, status domain.FeedbackStatus) error
}

type feedbackService struct {
	client  client.Client
	session *session.Session
	log     logging.Logger
	seq     reaction.Sequencer

	mu     sync.Mutex
	boards map[int64][]domain.Feedback
}

func NewFeedbackService(c client.Client, s *session.Session, log logging.Logger) FeedbackService {
	return &feedbackService{
		client:  c,
		session: s,
		log:     log,
		boards:  make(map[int64][]domain.Feedback),
	}
}

func feedbackListKey(boardID int64) string { return "feedback-list:" + strconv.FormatInt(boardID, 10) }
func feedbackKey(id int64) string          { return "feedback:" + strconv.FormatInt(id, 10) }

func (f *feedbackService) List(ctx context.Context, boardID int64) ([]domain.Feedback, error) {
	items, err := f.client.ListFeedback(ctx, boardID)
	if err != nil {
		logFailure(ctx, f.log, "feedback.list", err)
		return nil, err
	}

	f.mu.Lock()
	f.boards[boardID] = slices.Clone(items)
	f.seq.Begin(feedbackListKey(boardID))
	f.mu.Unlock()
	return items, nil
}

func (f *feedbackService) Cached(boardID int64) ([]domain.Feedback, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items, ok := f.boards[boardID]
	return slices.Clone(items), ok
}

func (f *feedbackService) Submit(ctx context.Context, s domain.FeedbackSubmission) error {
	if !f.session.IsAuthenticated() {
		return ErrNotSignedIn
	}
	if err := domain.ValidateFeedback(s); err != nil {
		return err
	}
	if err := f.client.SubmitFeedback(ctx, s); err != nil {
		logFailure(ctx, f.log, "feedback.submit", err)
		return err
	}

	// The submission stands even if the refresh fails; List logs the failure.
	_, _ = f.List(ctx, s.BoardID)
	return nil
}

func (f *feedbackService) Get(ctx context.Context, feedbackID int64) (domain.Feedback, error) {
	item, err := f.client.GetFeedback(ctx, feedbackID)
	if err != nil {
		logFailure(ctx, f.log, "feedback.get", err)
		return domain.Feedback{}, err
	}
	return item, nil
}

func (f *feedbackService) Vote(ctx context.Context, boardID, feedbackID int64, vote domain.VoteType) error {
	if !f.session.IsAuthenticated() {
		return ErrNotSignedIn
	}
	if vote == domain.VoteNone {
		return &domain.ValidationError{Field: "voteType", Message: "Vote must be an upvote or a downvote"}
	}

	f.mu.Lock()
	var before domain.Feedback
	items := f.boards[boardID]
	if i := slices.IndexFunc(items, func(it domain.Feedback) bool { return it.ID == feedbackID }); i >= 0 {
		before = items[i]
	}
	updated, applied := reaction.VoteFeedback(items, feedbackID, vote)
	if applied {
		f.boards[boardID] = updated
	}
	version := f.seq.Begin(feedbackKey(feedbackID))
	generation := f.seq.Latest(feedbackListKey(boardID))
	f.mu.Unlock()

	err := f.client.Vote(ctx, feedbackID, vote)
	if err == nil {
		return nil
	}
	logFailure(ctx, f.log, "feedback.vote", err)

	if applied {
		f.mu.Lock()
		if f.seq.Current(feedbackKey(feedbackID), version) && f.seq.Current(feedbackListKey(boardID), generation) {
			f.restoreVote(boardID, before)
		}
		f.mu.Unlock()
	}
	return err
}

// restoreVote puts back the vote counts of snapshot. Callers hold f.mu.
func (f *feedbackService) restoreVote(boardID int64, snapshot domain.Feedback) {
	items := slices.Clone(f.boards[boardID])
	for i := range items {
		if items[i].ID == snapshot.ID {
			items[i].Upvotes = snapshot.Upvotes
			items[i].Downvotes = snapshot.Downvotes
			items[i].UserVote = snapshot.UserVote
			f.boards[boardID] = items
			return
		}
	}
}

func (f *feedbackService) UpdateStatus(ctx context.Context, feedbackID int64, status domain.FeedbackStatus) error {
	if !f.session.IsAuthenticated() {
		return ErrNotSignedIn
	}
	boardID, err := f.boardOf(ctx, feedbackID)
	if err != nil {
		return err
	}
	if !f.session.IsBoardStakeholder(boardID) {
		return denied("You don't have permission to update feedback status")
	}
	if !slices.Contains(domain.Statuses, status) {
		return &domain.ValidationError{Field: "status", Message: "Invalid status value"}
	}

	if err := f.client.UpdateFeedbackStatus(ctx, feedbackID, status); err != nil {
		logFailure(ctx, f.log, "feedback.status", err)
		return err
	}

	f.mu.Lock()
	items := slices.Clone(f.boards[boardID])
	for i := range items {
		if items[i].ID == feedbackID {
			items[i].Status = status
			f.boards[boardID] = items
			break
		}
	}
	f.mu.Unlock()
	return nil
}

// boardOf returns the board a feedback item belongs to, from the cached
// lists when possible and from the API otherwise.
func (f *feedbackService) boardOf(ctx context.Context, feedbackID int64) (int64, error) {
	f.mu.Lock()
	for boardID, items := range f.boards {
		if slices.ContainsFunc(items, func(it domain.Feedback) bool { return it.ID == feedbackID }) {
			f.mu.Unlock()
			return boardID, nil
		}
	}
	f.mu.Unlock()

	item, err := f.Get(ctx, feedbackID)
	if err != nil {
		return 0, err
	}
	return item.BoardID, nil
}
