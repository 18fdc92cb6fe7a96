package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/dmitrijs2005/feedbackboard/internal/client/client"
	"github.com/dmitrijs2005/feedbackboard/internal/client/domain"
	"github.com/dmitrijs2005/feedbackboard/internal/client/services"
	"github.com/dmitrijs2005/feedbackboard/internal/client/session"
)

// notice is an error whose text is shown to the user as is.
type notice string

func (n notice) Error() string { return string(n) }

// errAccessDenied is returned by commands whose target lies on a board the
// user cannot access.
var errAccessDenied = errors.New("access denied")

// errNoBoard is returned by board-scoped commands before "open".
const errNoBoard = notice("Open a board first: open <boardId>")

// notifyInterrupt derives the per-command context. Tests replace it to avoid
// installing signal handlers.
var notifyInterrupt = func(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt)
}

type command struct {
	names   []string
	usage   string
	help    string
	minArgs int
	// public commands run without a signed-in principal.
	public bool
	// require returns what the command needs. Nil means any signed-in
	// principal.
	require func(a *App, args []string) (session.Requirement, error)
	run     func(a *App, ctx context.Context, args []string) error
}

func signedIn(*App, []string) (session.Requirement, error) {
	return session.Requirement{}, nil
}

func appAdmin(*App, []string) (session.Requirement, error) {
	return session.Requirement{GlobalRole: domain.RoleAppAdmin}, nil
}

func boardMember(a *App, _ []string) (session.Requirement, error) {
	if a.board == nil {
		return session.Requirement{}, errNoBoard
	}
	return session.Requirement{Board: &session.BoardRequirement{BoardID: a.board.ID}}, nil
}

func boardStakeholder(a *App, _ []string) (session.Requirement, error) {
	if a.board == nil {
		return session.Requirement{}, errNoBoard
	}
	return session.Requirement{Board: &session.BoardRequirement{BoardID: a.board.ID, Stakeholder: true}}, nil
}

// commands is filled in init because the help command ranges over it.
var commands []command

func init() {
	commands = []command{
		{names: []string{"help", "?"}, usage: "help", help: "show available commands", public: true, run: (*App).help},
		{names: []string{"login"}, usage: "login", help: "sign in with Google", public: true, run: (*App).login},
		{names: []string{"logout"}, usage: "logout", help: "sign out and forget the session", run: (*App).logout},
		{names: []string{"whoami"}, usage: "whoami", help: "show the signed-in user and roles", run: (*App).whoami},
		{names: []string{"refresh"}, usage: "refresh", help: "reload profile and roles from the server", run: (*App).refresh},

		{names: []string{"boards"}, usage: "boards", help: "list boards", run: (*App).boards},
		{names: []string{"newboard"}, usage: "newboard [name]", help: "create a board (admins)", require: appAdmin, run: (*App).newBoard},
		{names: []string{"open"}, usage: "open <boardId>", help: "open a board", minArgs: 1, require: openBoard, run: (*App).open},
		{names: []string{"categories"}, usage: "categories", help: "list feedback categories", run: (*App).categories},

		{names: []string{"feedback", "ls"}, usage: "feedback", help: "list feedback on the open board", require: boardMember, run: (*App).feedback},
		{names: []string{"submit"}, usage: "submit", help: "submit new feedback", require: boardMember, run: (*App).submit},
		{names: []string{"show"}, usage: "show <feedbackId>", help: "show a feedback item and its comments", minArgs: 1, require: boardMember, run: (*App).show},
		{names: []string{"up"}, usage: "up <feedbackId>", help: "upvote, again to take it back", minArgs: 1, require: boardMember, run: (*App).up},
		{names: []string{"down"}, usage: "down <feedbackId>", help: "downvote, again to take it back", minArgs: 1, require: boardMember, run: (*App).down},
		{names: []string{"status"}, usage: "status <feedbackId> <status>", help: "set status (stakeholders)", minArgs: 2, require: boardMember, run: (*App).status},

		{names: []string{"comments"}, usage: "comments <feedbackId>", help: "show the comment thread", minArgs: 1, require: boardMember, run: (*App).comments},
		{names: []string{"comment"}, usage: "comment <feedbackId> [text]", help: "add a comment", minArgs: 1, require: boardMember, run: (*App).comment},
		{names: []string{"reply"}, usage: "reply <commentId> [text]", help: "reply to a comment", minArgs: 1, require: boardMember, run: (*App).reply},
		{names: []string{"like"}, usage: "like comment|reply <id>", help: "like, again to take it back", minArgs: 2, require: boardMember, run: (*App).like},
		{names: []string{"dislike"}, usage: "dislike comment|reply <id>", help: "dislike, again to take it back", minArgs: 2, require: boardMember, run: (*App).dislike},

		{names: []string{"members"}, usage: "members", help: "list board members (stakeholders)", require: boardStakeholder, run: (*App).members},
		{names: []string{"invite"}, usage: "invite [email] [user|stakeholder]", help: "invite a user (stakeholders)", require: boardStakeholder, run: (*App).invite},
		{names: []string{"remove"}, usage: "remove <userId>", help: "remove a member (stakeholders)", minArgs: 1, require: boardStakeholder, run: (*App).remove},
	}
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		for _, n := range c.names {
			if n == name {
				return c, true
			}
		}
	}
	return command{}, false
}

// runREPL reads one command per line until "exit", "quit" or end of input.
func (a *App) runREPL(ctx context.Context) {
	for {
		a.printf("%s", a.prompt())
		line, err := a.in.ReadString('\n')
		if fields := strings.Fields(line); len(fields) > 0 {
			if quit := a.dispatch(ctx, fields); quit {
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				a.log.Error(ctx, "read input", "error", err)
			}
			a.println()
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
}

// dispatch runs one command line and reports whether the loop should end.
func (a *App) dispatch(ctx context.Context, fields []string) bool {
	name := strings.ToLower(fields[0])
	args := fields[1:]

	if name == "exit" || name == "quit" {
		a.println("Bye!")
		return true
	}

	cmd, ok := lookup(name)
	if !ok {
		a.fail(notice("Unknown command: " + name + " (type 'help')"))
		return false
	}
	if len(args) < cmd.minArgs {
		a.println("Usage:", cmd.usage)
		return false
	}

	a.execute(ctx, cmd, args)
	return false
}

func (a *App) execute(ctx context.Context, cmd command, args []string) {
	if !cmd.public && !a.authorize(ctx, cmd, args) {
		return
	}

	cmdCtx, stop := notifyInterrupt(ctx)
	defer stop()

	if err := cmd.run(a, cmdCtx, args); err != nil {
		a.log.Debug(ctx, "command failed", "command", cmd.names[0], "error", err)
		a.fail(err)
	}
}

// authorize checks the command's requirement. A signed-out user is taken
// through sign-in first and the command then proceeds.
func (a *App) authorize(ctx context.Context, cmd command, args []string) bool {
	if a.session.Authorize(session.Requirement{}) == session.SignIn {
		a.warn("Please sign in first.")
		if err := a.login(ctx, nil); err != nil {
			a.fail(err)
			return false
		}
	}

	require := cmd.require
	if require == nil {
		require = signedIn
	}
	req, err := require(a, args)
	if err != nil {
		a.fail(err)
		return false
	}

	switch a.session.Authorize(req) {
	case session.Allow:
		return true
	case session.SignIn:
		a.fail(services.ErrNotSignedIn)
	default:
		a.forbidden()
	}
	return false
}

func (a *App) forbidden() {
	a.println(a.style.err.Render("Access Denied"))
	a.println("You don't have permission to do this. Please contact an administrator if you believe this is an error.")
}

func (a *App) fail(err error) {
	if errors.Is(err, errAccessDenied) {
		a.forbidden()
		return
	}
	a.println(a.style.err.Render(errorText(err)))
}

// errorText is the message shown for err.
func errorText(err error) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	var perr *services.PermissionError
	if errors.As(err, &perr) {
		return perr.Message
	}
	switch {
	case errors.Is(err, services.ErrNotSignedIn):
		return "Please sign in first."
	case errors.Is(err, context.Canceled):
		return "Cancelled."
	case errors.Is(err, context.DeadlineExceeded):
		return "The server took too long to respond."
	}
	return client.Message(err)
}
