package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/feedbackboard/internal/client/domain"
	"github.com/dmitrijs2005/feedbackboard/internal/client/services"
	"github.com/dmitrijs2005/feedbackboard/internal/client/session"
	"github.com/dmitrijs2005/feedbackboard/internal/logging"
)

// Services bundles the application services the CLI drives.
type Services struct {
	Auth       services.AuthService
	Boards     services.BoardService
	Categories services.CategoryService
	Feedback   services.FeedbackService
	Comments   services.CommentService
}

type App struct {
	session *session.Session
	svc     Services
	log     logging.Logger

	in    *bufio.Reader
	out   io.Writer
	style styles
	now   func() time.Time

	// board is the board opened with "open"; nil until then.
	board *domain.Board
	// thread is the feedback whose comments were shown last.
	thread int64
}

func NewApp(sess *session.Session, svc Services, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		session: sess,
		svc:     svc,
		log:     log,
		in:      bufio.NewReader(in),
		out:     out,
		style:   newStyles(out),
		now:     time.Now,
	}
}

// Run greets the user, reopens the last board of a restored session and
// runs the REPL until exit or end of input.
func (a *App) Run(ctx context.Context) {
	a.printf("%s (type 'help' for commands)\n", a.style.title.Render("Feedback board CLI"))

	if p, ok := a.session.Principal(); ok {
		a.printf("Signed in as %s <%s>\n", p.Name, p.Email)
		a.reopenBoard(ctx)
	}

	a.runREPL(ctx)
}

// reopenBoard restores the board recorded by a previous run when the user
// still has access to it.
func (a *App) reopenBoard(ctx context.Context) {
	id, ok := a.session.LastBoard(ctx)
	if !ok || !a.session.HasBoardAccess(id) {
		return
	}
	b, err := a.svc.Boards.Get(ctx, id)
	if err != nil {
		a.log.Debug(ctx, "last board not reopened", "board", id, "error", err)
		return
	}
	a.board = &b
	a.printf("Board %s\n", a.style.title.Render(b.Name))
}

func (a *App) prompt() string {
	var who string
	if p, ok := a.session.Principal(); ok {
		who = p.Name
		if who == "" {
			who = p.Email
		}
	}
	if a.board != nil {
		who += "@" + a.board.Name
	}
	if who == "" {
		return "fb> "
	}
	return fmt.Sprintf("fb (%s)> ", who)
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	_, _ = fmt.Fprintln(a.out, args...)
}

func (a *App) success(format string, args ...any) {
	a.println(a.style.ok.Render(fmt.Sprintf(format, args...)))
}

func (a *App) warn(format string, args ...any) {
	a.println(a.style.warn.Render(fmt.Sprintf(format, args...)))
}
