package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/feedbackboard/internal/client/client"
	"github.com/dmitrijs2005/feedbackboard/internal/client/domain"
	"github.com/dmitrijs2005/feedbackboard/internal/client/session"
	"github.com/dmitrijs2005/feedbackboard/internal/logging"
)

// BoardService manages boards and their membership. Membership operations
// need board stakeholder rights (app admins have them everywhere) and are
// refused locally otherwise.
type BoardService interface {
	List(ctx context.Context) ([]domain.Board, error)
	Create(ctx context.Context, name string) error
	Get(ctx context.Context, boardID int64) (domain.Board, error)
	Members(ctx context.Context, boardID int64) ([]domain.BoardMember, error)
	Invite(ctx context.Context, boardID int64, email string, role domain.BoardRole) error
	Remove(ctx context.Context, boardID, userID int64) error
}

type boardService struct {
	client  client.Client
	session *session.Session
	log     logging.Logger
}

func NewBoardService(c client.Client, s *session.Session, log logging.Logger) BoardService {
	return &boardService{client: c, session: s, log: log}
}

func (b *boardService) List(ctx context.Context) ([]domain.Board, error) {
	boards, err := b.client.ListBoards(ctx)
	if err != nil {
		logFailure(ctx, b.log, "boards.list", err)
		return nil, err
	}
	return boards, nil
}

func (b *boardService) Create(ctx context.Context, name string) error {
	if err := domain.ValidateBoardName(name); err != nil {
		return err
	}
	if err := b.client.CreateBoard(ctx, name); err != nil {
		logFailure(ctx, b.log, "boards.create", err)
		return err
	}
	return nil
}

func (b *boardService) Get(ctx context.Context, boardID int64) (domain.Board, error) {
	board, err := b.client.GetBoard(ctx, boardID)
	if err != nil {
		logFailure(ctx, b.log, "boards.get", err)
		return domain.Board{}, err
	}
	return board, nil
}

func (b *boardService) Members(ctx context.Context, boardID int64) ([]domain.BoardMember, error) {
	if err := b.requireStakeholder(boardID, "view board members"); err != nil {
		return nil, err
	}
	members, err := b.client.ListMembers(ctx, boardID)
	if err != nil {
		logFailure(ctx, b.log, "boards.members", err)
		return nil, err
	}
	return members, nil
}

func (b *boardService) Invite(ctx context.Context, boardID int64, email string, role domain.BoardRole) error {
	if err := b.requireStakeholder(boardID, "invite users"); err != nil {
		return err
	}

	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return &domain.ValidationError{Field: "email", Message: "A valid email address is required"}
	}
	if _, err := domain.ParseBoardRole(string(role)); err != nil {
		return &domain.ValidationError{Field: "role", Message: fmt.Sprintf("Role must be %q or %q", domain.BoardRoleUser, domain.BoardRoleStakeholder)}
	}

	if err := b.client.InviteMember(ctx, boardID, addr.Address, role); err != nil {
		logFailure(ctx, b.log, "boards.invite", err)
		return err
	}
	return nil
}

func (b *boardService) Remove(ctx context.Context, boardID, userID int64) error {
	if err := b.requireStakeholder(boardID, "remove users"); err != nil {
		return err
	}
	if err := b.client.RemoveMember(ctx, boardID, userID); err != nil {
		logFailure(ctx, b.log, "boards.remove", err)
		return err
	}
	return nil
}

func (b *boardService) requireStakeholder(boardID int64, action string) error {
	if !b.session.IsAuthenticated() {
		return ErrNotSignedIn
	}
	if !b.session.IsBoardStakeholder(boardID) {
		return denied("Only stakeholders and admins can " + action)
	}
	return nil
}
