// Package session holds the signed-in principal and answers capability
// questions about it.
//
// A Session is created explicitly with Open and handed to whatever needs it;
// there is no package-level instance. Open restores the principal persisted
// by a previous run. Login and Logout replace or clear it and keep the durable
// record in step. All query methods are cheap and safe for concurrent use.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/feedbackboard/internal/client/domain"
	"github.com/dmitrijs2005/feedbackboard/internal/client/storage"
	"github.com/dmitrijs2005/feedbackboard/internal/logging"
)

// ErrNotAuthenticated is returned by operations that need a signed-in
// principal when there is none.
var ErrNotAuthenticated = errors.New("not signed in")

type Session struct {
	store storage.Store
	log   logging.Logger
	now   func() time.Time

	mu        sync.RWMutex
	principal *domain.Principal
}

type Option func(*Session)

func WithLogger(l logging.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithClock replaces time.Now, which is used to reject expired tokens.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Open creates a Session over store and restores the persisted principal, if
// any. A record that cannot be decoded, or whose token has expired, is erased
// and the session starts signed out. Open never fails: problems with the
// stored record are logged, not returned.
func Open(ctx context.Context, store storage.Store, opts ...Option) *Session {
	s := &Session{store: store, log: logging.Nop(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.restore(ctx)
	return s
}

func (s *Session) restore(ctx context.Context) {
	data, err := s.store.Get(ctx, storage.KeyPrincipal)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		s.log.Warn(ctx, "session record unreadable, starting signed out", "error", err)
		return
	}

	var p domain.Principal
	if err := json.Unmarshal(data, &p); err != nil {
		s.log.Warn(ctx, "discarding corrupt session record", "error", err)
		s.discard(ctx)
		return
	}
	if p.ID == 0 || p.Token == "" {
		s.log.Warn(ctx, "discarding incomplete session record", "user", p.ID)
		s.discard(ctx)
		return
	}
	if tokenExpired(p.Token, s.now()) {
		s.log.Info(ctx, "discarding expired session", "user", p.ID)
		s.discard(ctx)
		return
	}

	normalize(&p)
	s.principal = &p
	s.log.Debug(ctx, "session restored", "user", p.ID, "role", p.Role)
}

func (s *Session) discard(ctx context.Context) {
	if err := s.store.Delete(ctx, storage.KeyPrincipal, storage.KeyLastBoard); err != nil {
		s.log.Warn(ctx, "failed to erase session record", "error", err)
	}
}

// tokenExpired reports whether token is a JWT whose exp claim has passed.
// Opaque tokens are never considered expired here; the API decides.
func tokenExpired(token string, now time.Time) bool {
	if token == "" {
		return false
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}

func normalize(p *domain.Principal) {
	if p.Role == "" {
		p.Role = domain.RoleUser
	}
	if p.BoardRoles == nil {
		p.BoardRoles = make(map[int64]domain.BoardRole)
	}
}

// Login makes p the signed-in principal and persists it. The principal is
// held even when persisting fails; the error reports that it will not
// survive a restart.
func (s *Session) Login(ctx context.Context, p domain.Principal) error {
	p = p.Clone()
	normalize(&p)

	s.mu.Lock()
	s.principal = &p
	s.mu.Unlock()

	if err := s.persist(ctx, p); err != nil {
		return err
	}
	s.log.Info(ctx, "signed in", "user", p.ID, "role", p.Role)
	return nil
}

// UpdateProfile replaces identity and roles with those of profile while
// keeping the current token.
func (s *Session) UpdateProfile(ctx context.Context, profile domain.Principal) error {
	profile = profile.Clone()
	normalize(&profile)

	s.mu.Lock()
	if s.principal == nil {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	profile.Token = s.principal.Token
	s.principal = &profile
	s.mu.Unlock()

	return s.persist(ctx, profile)
}

func (s *Session) persist(ctx context.Context, p domain.Principal) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.store.Put(ctx, storage.KeyPrincipal, data); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Logout forgets the principal and erases its durable record.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.principal = nil
	s.mu.Unlock()

	if err := s.store.Delete(ctx, storage.KeyPrincipal, storage.KeyLastBoard); err != nil {
		return fmt.Errorf("erase session: %w", err)
	}
	return nil
}

// Close releases the underlying store.
func (s *Session) Close() error {
	return s.store.Close()
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.principal != nil
}

// Principal returns a copy of the signed-in principal.
func (s *Session) Principal() (domain.Principal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.principal == nil {
		return domain.Principal{}, false
	}
	return s.principal.Clone(), true
}

// Token returns the bearer token, or "" when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.principal == nil {
		return ""
	}
	return s.principal.Token
}

func (s *Session) UserID() (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.principal == nil {
		return 0, false
	}
	return s.principal.ID, true
}

func (s *Session) GlobalRole() (domain.Role, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.principal == nil {
		return "", false
	}
	return s.principal.Role, true
}

func (s *Session) IsAppAdmin() bool {
	r, ok := s.GlobalRole()
	return ok && r == domain.RoleAppAdmin
}

// IsGlobalStakeholder reports a global stakeholder role. App admins are not
// global stakeholders under this check.
func (s *Session) IsGlobalStakeholder() bool {
	r, ok := s.GlobalRole()
	return ok && r == domain.RoleStakeholder
}

// BoardRole returns the explicit role held on boardID.
func (s *Session) BoardRole(boardID int64) (domain.BoardRole, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.principal == nil {
		return "", false
	}
	r, ok := s.principal.BoardRoles[boardID]
	return r, ok
}

// IsBoardStakeholder reports moderation rights on boardID. App admins have
// them on every board whether or not they hold an entry for it. A global
// stakeholder role does not confer them.
func (s *Session) IsBoardStakeholder(boardID int64) bool {
	if s.IsAppAdmin() {
		return true
	}
	r, ok := s.BoardRole(boardID)
	return ok && r == domain.BoardRoleStakeholder
}

// HasBoardAccess reports membership of boardID with any role, or app admin.
func (s *Session) HasBoardAccess(boardID int64) bool {
	if s.IsAppAdmin() {
		return true
	}
	_, ok := s.BoardRole(boardID)
	return ok
}

// RememberBoard records the board the user opened last so it can be reopened
// on the next start.
func (s *Session) RememberBoard(ctx context.Context, boardID int64) error {
	return s.store.Put(ctx, storage.KeyLastBoard, []byte(strconv.FormatInt(boardID, 10)))
}

// LastBoard returns the board recorded by RememberBoard.
func (s *Session) LastBoard(ctx context.Context) (int64, bool) {
	data, err := s.store.Get(ctx, storage.KeyLastBoard)
	if err != nil {
		return 0, false
	}
	id, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
