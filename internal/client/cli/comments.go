package cli

import (
	"context"
	"strings"
)

func (a *App) comments(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if _, err := a.accessibleFeedback(ctx, id); err != nil {
		return err
	}
	return a.showComments(ctx, id)
}

// showComments fetches and prints the thread of a feedback item the caller
// has already checked access to.
func (a *App) showComments(ctx context.Context, id int64) error {
	thread, err := a.svc.Comments.List(ctx, id)
	if err != nil {
		return err
	}
	a.thread = id
	a.println(a.style.title.Render("Comments"))
	a.renderThread(thread)
	return nil
}

func (a *App) comment(ctx context.Context, args []string) error {
	feedbackID, err := parseID(args[0])
	if err != nil {
		return err
	}
	if _, err := a.accessibleFeedback(ctx, feedbackID); err != nil {
		return err
	}
	content, err := a.text(args[1:], "Comment")
	if err != nil {
		return err
	}
	id, err := a.svc.Comments.AddComment(ctx, feedbackID, content)
	if err != nil {
		return err
	}
	a.success("Comment c%d added.", id)
	a.thread = feedbackID
	a.showThread()
	return nil
}

func (a *App) reply(ctx context.Context, args []string) error {
	commentID, err := parseID(strings.TrimPrefix(args[0], "c"))
	if err != nil {
		return err
	}
	if !a.inThread(commentID, false) {
		return errNotInThread
	}
	content, err := a.text(args[1:], "Reply")
	if err != nil {
		return err
	}
	id, err := a.svc.Comments.AddReply(ctx, commentID, content)
	if err != nil {
		return err
	}
	a.success("Reply r%d added.", id)
	a.showThread()
	return nil
}

func (a *App) like(ctx context.Context, args []string) error {
	return a.react(ctx, args, true)
}

func (a *App) dislike(ctx context.Context, args []string) error {
	return a.react(ctx, args, false)
}

// react likes or dislikes the comment or reply named by args. Repeating the
// same reaction takes it back.
func (a *App) react(ctx context.Context, args []string, like bool) error {
	kind := strings.ToLower(args[0])
	id, err := parseID(strings.TrimLeft(args[1], "cr"))
	if err != nil {
		return err
	}

	var reply bool
	switch kind {
	case "comment", "c":
	case "reply", "r":
		reply = true
	default:
		return notice("Say which one: comment or reply")
	}
	if !a.inThread(id, reply) {
		return errNotInThread
	}

	if reply {
		err = a.svc.Comments.LikeReply(ctx, id, like)
	} else {
		err = a.svc.Comments.LikeComment(ctx, id, like)
	}
	if err != nil {
		return err
	}
	a.showThread()
	return nil
}

// errNotInThread is returned when a comment or reply ID is not part of the
// thread shown last. Only that thread's feedback has been checked for access.
const errNotInThread = notice("Show the thread first: comments <feedbackId>")

// inThread reports whether the thread shown last holds the comment, or with
// reply set the reply, with the given ID.
func (a *App) inThread(id int64, reply bool) bool {
	if a.thread == 0 {
		return false
	}
	thread, _ := a.svc.Comments.Cached(a.thread)
	for _, c := range thread {
		if !reply && c.ID == id {
			return true
		}
		for _, r := range c.Replies {
			if reply && r.ID == id {
				return true
			}
		}
	}
	return false
}

// showThread prints the last shown thread from the local cache.
func (a *App) showThread() {
	if a.thread == 0 {
		return
	}
	if thread, ok := a.svc.Comments.Cached(a.thread); ok {
		a.renderThread(thread)
	}
}
