package reaction

import (
	"slices"

	"github.com/dmitrijs2005/feedbackboard/internal/client/domain"
)

// FeedbackReactable maps a feedback item's vote counters onto a Reactable.
func FeedbackReactable(f domain.Feedback) Reactable {
	return Reactable{
		Positive:       f.Upvotes,
		Negative:       f.Downvotes,
		ViewerPositive: f.UserVote == domain.VoteUpvote,
		ViewerNegative: f.UserVote == domain.VoteDownvote,
	}
}

// ApplyToFeedback returns f with its votes moved by one viewer vote. UserVote
// mirrors the viewer's resulting vote and is VoteNone after a withdrawal.
func ApplyToFeedback(f domain.Feedback, vote domain.VoteType) domain.Feedback {
	if vote != domain.VoteUpvote && vote != domain.VoteDownvote {
		return f
	}
	r := Compute(FeedbackReactable(f), vote == domain.VoteUpvote)
	f.Upvotes, f.Downvotes = r.Positive, r.Negative
	switch {
	case r.ViewerPositive:
		f.UserVote = domain.VoteUpvote
	case r.ViewerNegative:
		f.UserVote = domain.VoteDownvote
	default:
		f.UserVote = domain.VoteNone
	}
	return f
}

// CommentReactable maps a comment's like counters onto a Reactable.
func CommentReactable(c domain.Comment) Reactable {
	return Reactable{Positive: c.Likes, Negative: c.Dislikes, ViewerPositive: c.IsLiked, ViewerNegative: c.IsDisliked}
}

// ApplyToComment returns c with one like or dislike applied.
func ApplyToComment(c domain.Comment, like bool) domain.Comment {
	r := Compute(CommentReactable(c), like)
	c.Likes, c.Dislikes, c.IsLiked, c.IsDisliked = r.Positive, r.Negative, r.ViewerPositive, r.ViewerNegative
	return c
}

// ReplyReactable is CommentReactable for replies.
func ReplyReactable(r domain.Reply) Reactable {
	return Reactable{Positive: r.Likes, Negative: r.Dislikes, ViewerPositive: r.IsLiked, ViewerNegative: r.IsDisliked}
}

// ApplyToReply is ApplyToComment for replies.
func ApplyToReply(rp domain.Reply, like bool) domain.Reply {
	r := Compute(ReplyReactable(rp), like)
	rp.Likes, rp.Dislikes, rp.IsLiked, rp.IsDisliked = r.Positive, r.Negative, r.ViewerPositive, r.ViewerNegative
	return rp
}

// VoteFeedback returns a copy of items with the vote applied to the item with
// the given ID. The boolean is false when no such item exists, in which case
// the copy is unchanged.
func VoteFeedback(items []domain.Feedback, id int64, vote domain.VoteType) ([]domain.Feedback, bool) {
	out := slices.Clone(items)
	for i := range out {
		if out[i].ID == id {
			out[i] = ApplyToFeedback(out[i], vote)
			return out, true
		}
	}
	return out, false
}

// LikeComment returns a deep copy of comments with the like or dislike
// applied to the comment with the given ID.
func LikeComment(comments []domain.Comment, id int64, like bool) ([]domain.Comment, bool) {
	out := cloneComments(comments)
	for i := range out {
		if out[i].ID == id {
			out[i] = ApplyToComment(out[i], like)
			return out, true
		}
	}
	return out, false
}

// LikeReply is LikeComment for replies; replies are searched under every
// comment.
func LikeReply(comments []domain.Comment, id int64, like bool) ([]domain.Comment, bool) {
	out := cloneComments(comments)
	for i := range out {
		for j := range out[i].Replies {
			if out[i].Replies[j].ID == id {
				out[i].Replies[j] = ApplyToReply(out[i].Replies[j], like)
				return out, true
			}
		}
	}
	return out, false
}

func cloneComments(comments []domain.Comment) []domain.Comment {
	if comments == nil {
		return nil
	}
	out := make([]domain.Comment, len(comments))
	for i, c := range comments {
		out[i] = c.Clone()
	}
	return out
}
