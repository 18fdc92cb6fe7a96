package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/feedbackboard/internal/client/domain"
)

func (a *App) feedback(ctx context.Context, _ []string) error {
	items, err := a.svc.Feedback.List(ctx, a.board.ID)
	if err != nil {
		return err
	}
	a.renderFeedbackList(items)
	return nil
}

func (a *App) submit(ctx context.Context, _ []string) error {
	title, err := a.readLine("Title")
	if err != nil {
		return err
	}
	description, err := a.readMultiline("Description")
	if err != nil {
		return err
	}

	cats, err := a.svc.Categories.List(ctx)
	if err != nil {
		return err
	}
	a.println("Categories:")
	for _, c := range cats {
		a.printf("  %-4d %s\n", c.ID, c.Name)
	}
	raw, err := a.readLine("Category")
	if err != nil {
		return err
	}
	// An unparsable category is left at zero and rejected by validation.
	categoryID, _ := strconv.ParseInt(raw, 10, 64)

	err = a.svc.Feedback.Submit(ctx, domain.FeedbackSubmission{
		BoardID:     a.board.ID,
		Title:       title,
		Description: description,
		CategoryID:  categoryID,
	})
	if err != nil {
		return err
	}
	a.success("Feedback submitted.")
	if items, ok := a.svc.Feedback.Cached(a.board.ID); ok {
		a.renderFeedbackList(items)
	}
	return nil
}

func (a *App) show(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	item, err := a.svc.Feedback.Get(ctx, id)
	if err != nil {
		return err
	}
	if !a.session.HasBoardAccess(item.BoardID) {
		return errAccessDenied
	}

	a.renderFeedback(item)
	a.println()
	return a.showComments(ctx, id)
}

func (a *App) up(ctx context.Context, args []string) error {
	return a.vote(ctx, args[0], domain.VoteUpvote)
}

func (a *App) down(ctx context.Context, args []string) error {
	return a.vote(ctx, args[0], domain.VoteDownvote)
}

// vote casts v. Casting the vote already held takes it back, and the
// updated item is shown from the local list.
func (a *App) vote(ctx context.Context, arg string, v domain.VoteType) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	item, err := a.accessibleFeedback(ctx, id)
	if err != nil {
		return err
	}
	if err := a.svc.Feedback.Vote(ctx, item.BoardID, id, v); err != nil {
		return err
	}
	if f, ok := a.cachedFeedback(id); ok {
		a.renderFeedbackLine(f)
		return nil
	}
	a.success("Vote recorded.")
	return nil
}

// accessibleFeedback returns feedback item id when the user may see its
// board. Items of the open board come from the local list; any other item is
// fetched to learn its board.
func (a *App) accessibleFeedback(ctx context.Context, id int64) (domain.Feedback, error) {
	if f, ok := a.cachedFeedback(id); ok {
		f.BoardID = a.board.ID
		return f, nil
	}
	item, err := a.svc.Feedback.Get(ctx, id)
	if err != nil {
		return domain.Feedback{}, err
	}
	if !a.session.HasBoardAccess(item.BoardID) {
		return domain.Feedback{}, errAccessDenied
	}
	return item, nil
}

func (a *App) cachedFeedback(id int64) (domain.Feedback, bool) {
	items, _ := a.svc.Feedback.Cached(a.board.ID)
	for _, f := range items {
		if f.ID == id {
			return f, true
		}
	}
	return domain.Feedback{}, false
}

func (a *App) status(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	st := domain.FeedbackStatus(strings.ToLower(args[1]))
	if err := a.svc.Feedback.UpdateStatus(ctx, id, st); err != nil {
		return err
	}
	a.success("Status of #%d set to %s.", id, st)
	return nil
}
