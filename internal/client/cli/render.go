package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/feedbackboard/internal/client/domain"
)

type styles struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	muted lipgloss.Style

	statuses map[domain.FeedbackStatus]lipgloss.Style
}

// newStyles builds styles for out. Writers that are not a color terminal get
// plain text.
func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	color := func(c string) lipgloss.Style { return r.NewStyle().Foreground(lipgloss.Color(c)) }

	return styles{
		title: r.NewStyle().Bold(true),
		ok:    color("2"),
		err:   color("1").Bold(true),
		warn:  color("3"),
		muted: r.NewStyle().Faint(true),
		statuses: map[domain.FeedbackStatus]lipgloss.Style{
			domain.StatusPending:   color("8"),
			domain.StatusReviewing: color("4"),
			domain.StatusApproved:  color("2"),
			domain.StatusDeclined:  color("1"),
		},
	}
}

func (s styles) status(st domain.FeedbackStatus) string {
	return s.statuses[st].Render("[" + st.String() + "]")
}

func (a *App) renderFeedbackList(items []domain.Feedback) {
	if len(items) == 0 {
		a.println(a.style.muted.Render("No feedback yet. Use 'submit' to add some."))
		return
	}
	for _, f := range items {
		a.renderFeedbackLine(f)
	}
}

func (a *App) renderFeedbackLine(f domain.Feedback) {
	line := fmt.Sprintf("#%-4d %s %s  +%d -%d", f.ID, a.style.status(f.Status), f.Title, f.Upvotes, f.Downvotes)
	if f.UserVote != domain.VoteNone {
		line += a.style.muted.Render("  (you: " + f.UserVote.String() + ")")
	}
	a.println(line)
}

func (a *App) renderFeedback(f domain.Feedback) {
	a.printf("%s %s\n", a.style.title.Render(fmt.Sprintf("#%d %s", f.ID, f.Title)), a.style.status(f.Status))
	a.println(a.style.muted.Render("Category: " + a.svc.Categories.Name(f.CategoryID)))
	a.println(f.Description)
	vote := ""
	if f.UserVote != domain.VoteNone {
		vote = " (you: " + f.UserVote.String() + ")"
	}
	a.printf("Votes: +%d -%d%s\n", f.Upvotes, f.Downvotes, vote)
}

func (a *App) renderThread(comments []domain.Comment) {
	if len(comments) == 0 {
		a.println(a.style.muted.Render("No comments yet."))
		return
	}
	for _, c := range comments {
		a.printf("  c%-4d %s %s\n", c.ID, c.Content, a.reactions(c.Likes, c.Dislikes, c.IsLiked, c.IsDisliked, c.CreatedAt))
		for _, r := range c.Replies {
			a.printf("      r%-4d %s %s\n", r.ID, r.Content, a.reactions(r.Likes, r.Dislikes, r.IsLiked, r.IsDisliked, r.CreatedAt))
		}
	}
}

func (a *App) reactions(likes, dislikes int, liked, disliked bool, at time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "(+%d -%d", likes, dislikes)
	switch {
	case liked:
		b.WriteString(", you liked")
	case disliked:
		b.WriteString(", you disliked")
	}
	if !at.IsZero() {
		b.WriteString(", " + humanize.RelTime(at, a.now(), "ago", "from now"))
	}
	b.WriteString(")")
	return a.style.muted.Render(b.String())
}
