package services

import (
	"context"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/feedbackboard/internal/client/client"
	"github.com/dmitrijs2005/feedbackboard/internal/client/domain"
	"github.com/dmitrijs2005/feedbackboard/internal/client/reaction"
	"github.com/dmitrijs2005/feedbackboard/internal/client/session"
	"github.com/dmitrijs2005/feedbackboard/internal/logging"
)

// CommentService handles the comment thread of a feedback item. Likes are
// applied optimistically, like feedback votes.
type CommentService interface {
	List(ctx context.Context, feedbackID int64) ([]domain.Comment, error)
	Cached(feedbackID int64) ([]domain.Comment, bool)
	AddComment(ctx context.Context, feedbackID int64, content string) (int64, error)
	AddReply(ctx context.Context, commentID int64, content string) (int64, error)
	LikeComment(ctx context.Context, commentID int64, like bool) error
	LikeReply(ctx context.Context, replyID int64, like bool) error
}

type commentService struct {
	client  client.Client
	session *session.Session
	log     logging.Logger
	seq     reaction.Sequencer

	mu      sync.Mutex
	threads map[int64][]domain.Comment
}

func NewCommentService(c client.Client, s *session.Session, log logging.Logger) CommentService {
	return &commentService{
		client:  c,
		session: s,
		log:     log,
		threads: make(map[int64][]domain.Comment),
	}
}

func threadKey(feedbackID int64) string { return "thread:" + strconv.FormatInt(feedbackID, 10) }
func commentKey(id int64) string        { return "comment:" + strconv.FormatInt(id, 10) }
func replyKey(id int64) string          { return "reply:" + strconv.FormatInt(id, 10) }

func cloneThread(comments []domain.Comment) []domain.Comment {
	if comments == nil {
		return nil
	}
	out := make([]domain.Comment, len(comments))
	for i, c := range comments {
		out[i] = c.Clone()
	}
	return out
}

func (s *commentService) List(ctx context.Context, feedbackID int64) ([]domain.Comment, error) {
	comments, err := s.client.ListComments(ctx, feedbackID)
	if err != nil {
		logFailure(ctx, s.log, "comments.list", err)
		return nil, err
	}

	s.mu.Lock()
	s.threads[feedbackID] = cloneThread(comments)
	s.seq.Begin(threadKey(feedbackID))
	s.mu.Unlock()
	return comments, nil
}

func (s *commentService) Cached(feedbackID int64) ([]domain.Comment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	comments, ok := s.threads[feedbackID]
	return cloneThread(comments), ok
}

func (s *commentService) AddComment(ctx context.Context, feedbackID int64, content string) (int64, error) {
	if !s.session.IsAuthenticated() {
		return 0, ErrNotSignedIn
	}
	if err := domain.ValidateComment(content); err != nil {
		return 0, err
	}

	id, err := s.client.AddComment(ctx, feedbackID, content)
	if err != nil {
		logFailure(ctx, s.log, "comments.add", err)
		return 0, err
	}
	_, _ = s.List(ctx, feedbackID)
	return id, nil
}

func (s *commentService) AddReply(ctx context.Context, commentID int64, content string) (int64, error) {
	if !s.session.IsAuthenticated() {
		return 0, ErrNotSignedIn
	}
	if err := domain.ValidateComment(content); err != nil {
		return 0, err
	}

	id, err := s.client.AddReply(ctx, commentID, content)
	if err != nil {
		logFailure(ctx, s.log, "comments.reply", err)
		return 0, err
	}

	s.mu.Lock()
	feedbackID, known := s.threadOf(func(c domain.Comment) bool { return c.ID == commentID })
	s.mu.Unlock()
	if known {
		_, _ = s.List(ctx, feedbackID)
	}
	return id, nil
}

// threadOf returns the feedback whose cached thread has a comment matching
// match. Callers hold s.mu.
func (s *commentService) threadOf(match func(domain.Comment) bool) (int64, bool) {
	for feedbackID, comments := range s.threads {
		for _, c := range comments {
			if match(c) {
				return feedbackID, true
			}
		}
	}
	return 0, false
}

func hasReply(id int64) func(domain.Comment) bool {
	return func(c domain.Comment) bool {
		for _, r := range c.Replies {
			if r.ID == id {
				return true
			}
		}
		return false
	}
}

func (s *commentService) LikeComment(ctx context.Context, commentID int64, like bool) error {
	if !s.session.IsAuthenticated() {
		return ErrNotSignedIn
	}

	s.mu.Lock()
	feedbackID, known := s.threadOf(func(c domain.Comment) bool { return c.ID == commentID })
	var before domain.Comment
	if known {
		for _, c := range s.threads[feedbackID] {
			if c.ID == commentID {
				before = c
			}
		}
		s.threads[feedbackID], _ = reaction.LikeComment(s.threads[feedbackID], commentID, like)
	}
	version := s.seq.Begin(commentKey(commentID))
	generation := s.seq.Latest(threadKey(feedbackID))
	s.mu.Unlock()

	err := s.client.LikeComment(ctx, commentID, like)
	if err == nil {
		return nil
	}
	logFailure(ctx, s.log, "comments.like", err)

	if known {
		s.mu.Lock()
		if s.seq.Current(commentKey(commentID), version) && s.seq.Current(threadKey(feedbackID), generation) {
			thread := cloneThread(s.threads[feedbackID])
			for i := range thread {
				if thread[i].ID == commentID {
					thread[i].Likes, thread[i].Dislikes = before.Likes, before.Dislikes
					thread[i].IsLiked, thread[i].IsDisliked = before.IsLiked, before.IsDisliked
				}
			}
			s.threads[feedbackID] = thread
		}
		s.mu.Unlock()
	}
	return err
}

func (s *commentService) LikeReply(ctx context.Context, replyID int64, like bool) error {
	if !s.session.IsAuthenticated() {
		return ErrNotSignedIn
	}

	s.mu.Lock()
	feedbackID, known := s.threadOf(hasReply(replyID))
	var before domain.Reply
	if known {
		for _, c := range s.threads[feedbackID] {
			for _, r := range c.Replies {
				if r.ID == replyID {
					before = r
				}
			}
		}
		s.threads[feedbackID], _ = reaction.LikeReply(s.threads[feedbackID], replyID, like)
	}
	version := s.seq.Begin(replyKey(replyID))
	generation := s.seq.Latest(threadKey(feedbackID))
	s.mu.Unlock()

	err := s.client.LikeReply(ctx, replyID, like)
	if err == nil {
		return nil
	}
	logFailure(ctx, s.log, "comments.like_reply", err)

	if known {
		s.mu.Lock()
		if s.seq.Current(replyKey(replyID), version) && s.seq.Current(threadKey(feedbackID), generation) {
			thread := cloneThread(s.threads[feedbackID])
			for i := range thread {
				for j := range thread[i].Replies {
					r := &thread[i].Replies[j]
					if r.ID == replyID {
						r.Likes, r.Dislikes = before.Likes, before.Dislikes
						r.IsLiked, r.IsDisliked = before.IsLiked, before.IsDisliked
					}
				}
			}
			s.threads[feedbackID] = thread
		}
		s.mu.Unlock()
	}
	return err
}
