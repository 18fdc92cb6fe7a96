package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
)

func (a *App) help(_ context.Context, _ []string) error {
	a.println(a.style.title.Render("Commands"))
	for _, c := range commands {
		a.printf("  %-36s %s\n", c.usage, a.style.muted.Render(c.help))
	}
	a.printf("  %-36s %s\n", "exit", a.style.muted.Render("leave"))
	return nil
}

// login runs the authorization code flow. The code may be passed as an
// argument; otherwise the sign-in URL is shown and the code is read back.
func (a *App) login(ctx context.Context, args []string) error {
	if p, ok := a.session.Principal(); ok {
		a.printf("Already signed in as %s. Use 'logout' first to switch accounts.\n", p.Email)
		return nil
	}

	var input string
	if len(args) > 0 {
		input = args[0]
	} else {
		u, err := a.svc.Auth.SignInURL(ctx)
		if err != nil {
			return err
		}
		a.println("Open this address in your browser and sign in with Google:")
		a.println("  " + u)
		input, err = a.readSecret("Paste the code or the full address you were redirected to")
		if err != nil {
			return err
		}
	}

	p, err := a.svc.Auth.CompleteSignIn(ctx, extractCode(input))
	if err != nil {
		return err
	}
	a.success("Signed in as %s <%s>", p.Name, p.Email)
	return nil
}

func (a *App) logout(ctx context.Context, _ []string) error {
	a.board = nil
	a.thread = 0
	if err := a.svc.Auth.SignOut(ctx); err != nil {
		a.log.Warn(ctx, "session not cleared from disk", "error", err)
	}
	a.success("Signed out.")
	return nil
}

func (a *App) whoami(_ context.Context, _ []string) error {
	p, ok := a.session.Principal()
	if !ok {
		return notice("Not signed in.")
	}
	a.printf("%s <%s>\n", a.style.title.Render(p.Name), p.Email)
	a.printf("Role: %s\n", p.Role)

	if len(p.BoardRoles) == 0 {
		a.println(a.style.muted.Render("No board memberships."))
		return nil
	}
	a.println("Boards:")
	for _, id := range slices.Sorted(maps.Keys(p.BoardRoles)) {
		a.printf("  #%d %s\n", id, p.BoardRoles[id])
	}
	return nil
}

func (a *App) refresh(ctx context.Context, _ []string) error {
	p, err := a.svc.Auth.RefreshProfile(ctx)
	if err != nil {
		if !a.session.IsAuthenticated() {
			a.board = nil
			return notice("Your session has expired. Please sign in again.")
		}
		return err
	}
	if a.board != nil && !a.session.HasBoardAccess(a.board.ID) {
		a.warn("You no longer have access to %s.", a.board.Name)
		a.board = nil
		a.thread = 0
	}
	a.success("Profile refreshed: %s (%s)", p.Name, roleSummary(len(p.BoardRoles)))
	return nil
}

func roleSummary(boards int) string {
	switch boards {
	case 0:
		return "no boards"
	case 1:
		return "1 board"
	}
	return fmt.Sprintf("%d boards", boards)
}

// text joins args, or asks for a value when there are none.
func (a *App) text(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	return a.readLine(prompt)
}
