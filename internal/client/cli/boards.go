package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/feedbackboard/internal/client/domain"
	"github.com/dmitrijs2005/feedbackboard/internal/client/session"
)

// openBoard requires membership of the board named by the first argument.
func openBoard(_ *App, args []string) (session.Requirement, error) {
	id, err := parseID(args[0])
	if err != nil {
		return session.Requirement{}, err
	}
	return session.Requirement{Board: &session.BoardRequirement{BoardID: id}}, nil
}

func (a *App) boards(ctx context.Context, _ []string) error {
	list, err := a.svc.Boards.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println(a.style.muted.Render("No boards yet."))
		return nil
	}
	for _, b := range list {
		marker := " "
		if a.board != nil && a.board.ID == b.ID {
			marker = "*"
		}
		role := ""
		if r, ok := a.session.BoardRole(b.ID); ok {
			role = a.style.muted.Render(" (" + r.String() + ")")
		} else if a.session.IsAppAdmin() {
			role = a.style.muted.Render(" (admin)")
		}
		a.printf("%s #%-4d %s%s\n", marker, b.ID, b.Name, role)
	}
	return nil
}

func (a *App) newBoard(ctx context.Context, args []string) error {
	name, err := a.text(args, "Board name")
	if err != nil {
		return err
	}
	if err := a.svc.Boards.Create(ctx, name); err != nil {
		return err
	}
	a.success("Board %q created.", strings.TrimSpace(name))
	return nil
}

func (a *App) open(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	b, err := a.svc.Boards.Get(ctx, id)
	if err != nil {
		return err
	}
	a.board = &b
	a.thread = 0
	if err := a.session.RememberBoard(ctx, b.ID); err != nil {
		a.log.Warn(ctx, "last board not saved", "board", b.ID, "error", err)
	}

	// Names are only needed for display; a failure leaves them uncategorized.
	_, _ = a.svc.Categories.List(ctx)

	a.printf("%s\n", a.style.title.Render(b.Name))
	return a.feedback(ctx, nil)
}

func (a *App) categories(ctx context.Context, _ []string) error {
	cats, err := a.svc.Categories.List(ctx)
	if err != nil {
		return err
	}
	for _, c := range cats {
		a.printf("  %-4d %s\n", c.ID, c.Name)
	}
	return nil
}

func (a *App) members(ctx context.Context, _ []string) error {
	list, err := a.svc.Boards.Members(ctx, a.board.ID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println(a.style.muted.Render("No members."))
		return nil
	}
	for _, m := range list {
		a.printf("  #%-4d %-24s %-32s %s\n", m.ID, m.Name, m.Email, m.Role)
	}
	return nil
}

// invite takes the email and role as arguments or asks for them. The role
// defaults to user.
func (a *App) invite(ctx context.Context, args []string) error {
	var email, role string
	switch len(args) {
	case 0:
		var err error
		if email, err = a.readLine("Email"); err != nil {
			return err
		}
		if role, err = a.readLine("Role (user or stakeholder, default user)"); err != nil {
			return err
		}
	case 1:
		email = args[0]
	default:
		email, role = args[0], args[1]
	}
	if role == "" {
		role = domain.BoardRoleUser.String()
	}

	br, err := domain.ParseBoardRole(strings.ToLower(role))
	if err != nil {
		return &domain.ValidationError{Field: "role", Message: "Role must be user or stakeholder"}
	}
	if err := a.svc.Boards.Invite(ctx, a.board.ID, email, br); err != nil {
		return err
	}
	a.success("Invited %s as %s.", email, br)
	return nil
}

func (a *App) remove(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if !a.confirm(fmt.Sprintf("Remove user #%d from %s?", id, a.board.Name)) {
		a.println("Cancelled.")
		return nil
	}
	if err := a.svc.Boards.Remove(ctx, a.board.ID, id); err != nil {
		return err
	}
	a.success("User removed.")
	return nil
}
