package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/feedbackboard/internal/client/client"
	"github.com/dmitrijs2005/feedbackboard/internal/client/domain"
	"github.com/dmitrijs2005/feedbackboard/internal/client/session"
	"github.com/dmitrijs2005/feedbackboard/internal/logging"
)

// AuthService signs the user in and out.
//
// Sign-in is the OAuth authorization code flow: SignInURL returns the
// provider page to visit and CompleteSignIn exchanges the code it yields.
type AuthService interface {
	SignInURL(ctx context.Context) (string, error)
	CompleteSignIn(ctx context.Context, code string) (domain.Principal, error)
	// RefreshProfile reloads identity and roles. A rejected token signs the
	// user out.
	RefreshProfile(ctx context.Context) (domain.Principal, error)
	SignOut(ctx context.Context) error
}

type authService struct {
	client  client.Client
	session *session.Session
	log     logging.Logger
}

func NewAuthService(c client.Client, s *session.Session, log logging.Logger) AuthService {
	return &authService{client: c, session: s, log: log}
}

func (a *authService) SignInURL(ctx context.Context) (string, error) {
	u, err := a.client.GoogleLoginURL(ctx)
	if err != nil {
		logFailure(ctx, a.log, "auth.login_url", err)
		return "", err
	}
	return u, nil
}

func (a *authService) CompleteSignIn(ctx context.Context, code string) (domain.Principal, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.Principal{}, &domain.ValidationError{Field: "code", Message: "Authorization code is required"}
	}

	p, err := a.client.GoogleCallback(ctx, code)
	if err != nil {
		logFailure(ctx, a.log, "auth.callback", err)
		return domain.Principal{}, err
	}

	if err := a.session.Login(ctx, p); err != nil {
		// The principal is held for this run regardless.
		a.log.Warn(ctx, "session will not survive a restart", "error", err)
	}
	return p, nil
}

func (a *authService) RefreshProfile(ctx context.Context) (domain.Principal, error) {
	if !a.session.IsAuthenticated() {
		return domain.Principal{}, ErrNotSignedIn
	}

	profile, err := a.client.Profile(ctx)
	if err != nil {
		logFailure(ctx, a.log, "auth.profile", err)
		if errors.Is(err, client.ErrUnauthorized) {
			if lerr := a.session.Logout(ctx); lerr != nil {
				a.log.Warn(ctx, "failed to clear rejected session", "error", lerr)
			}
		}
		return domain.Principal{}, err
	}

	if err := a.session.UpdateProfile(ctx, profile); err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			return domain.Principal{}, err
		}
		a.log.Warn(ctx, "refreshed profile not persisted", "error", err)
	}
	p, _ := a.session.Principal()
	return p, nil
}

func (a *authService) SignOut(ctx context.Context) error {
	return a.session.Logout(ctx)
}
