package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/feedbackboard/internal/client/client"
	"github.com/dmitrijs2005/feedbackboard/internal/client/domain"
	"github.com/dmitrijs2005/feedbackboard/internal/logging"
)

func TestAuthService_SignInURL(t *testing.T) {
	fc := &fakeClient{loginURL: "https://accounts.example.com/o"}
	svc := NewAuthService(fc, signedOut(), logging.Nop())

	u, err := svc.SignInURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://accounts.example.com/o", u)
}

func TestAuthService_CompleteSignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("empty code is rejected locally", func(t *testing.T) {
		fc := &fakeClient{}
		svc := NewAuthService(fc, signedOut(), logging.Nop())

		_, err := svc.CompleteSignIn(ctx, "   ")
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Empty(t, fc.called())
	})

	t.Run("success signs in", func(t *testing.T) {
		fc := &fakeClient{callback: domain.Principal{
			ID: 7, Name: "Alice", Token: "jwt", Role: domain.RoleStakeholder,
			BoardRoles: map[int64]domain.BoardRole{3: domain.BoardRoleStakeholder},
		}}
		sess := signedOut()
		svc := NewAuthService(fc, sess, logging.Nop())

		p, err := svc.CompleteSignIn(ctx, " code ")
		require.NoError(t, err)
		assert.Equal(t, int64(7), p.ID)
		assert.True(t, sess.IsAuthenticated())
		assert.True(t, sess.IsBoardStakeholder(3))
		assert.Equal(t, "jwt", sess.Token())
	})

	t.Run("failed exchange leaves the user signed out", func(t *testing.T) {
		fc := &fakeClient{errs: map[string]error{"GoogleCallback": &client.APIError{Status: 400, Message: "Authentication failed"}}}
		sess := signedOut()
		svc := NewAuthService(fc, sess, logging.Nop())

		_, err := svc.CompleteSignIn(ctx, "code")
		require.Error(t, err)
		assert.False(t, sess.IsAuthenticated())
	})
}

func TestAuthService_RefreshProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("signed out", func(t *testing.T) {
		fc := &fakeClient{}
		_, err := NewAuthService(fc, signedOut(), logging.Nop()).RefreshProfile(ctx)
		assert.ErrorIs(t, err, ErrNotSignedIn)
		assert.Empty(t, fc.called())
	})

	t.Run("keeps the token and replaces roles", func(t *testing.T) {
		fc := &fakeClient{profile: domain.Principal{
			ID: 1, Name: "Alice", Role: domain.RoleAppAdmin,
			BoardRoles: map[int64]domain.BoardRole{},
		}}
		sess := signedIn(t, domain.RoleUser, map[int64]domain.BoardRole{2: domain.BoardRoleUser})
		svc := NewAuthService(fc, sess, logging.Nop())

		p, err := svc.RefreshProfile(ctx)
		require.NoError(t, err)
		assert.Equal(t, "tok", p.Token)
		assert.Equal(t, domain.RoleAppAdmin, p.Role)
		assert.True(t, sess.IsAppAdmin())
	})

	t.Run("rejected token signs out", func(t *testing.T) {
		fc := &fakeClient{errs: map[string]error{"Profile": &client.APIError{Status: 401, Message: "Unauthorized"}}}
		sess := signedIn(t, domain.RoleUser, nil)
		svc := NewAuthService(fc, sess, logging.Nop())

		_, err := svc.RefreshProfile(ctx)
		assert.ErrorIs(t, err, client.ErrUnauthorized)
		assert.False(t, sess.IsAuthenticated())
	})

	t.Run("network failure keeps the session", func(t *testing.T) {
		fc := &fakeClient{errs: map[string]error{"Profile": client.ErrUnavailable}}
		sess := signedIn(t, domain.RoleUser, nil)
		svc := NewAuthService(fc, sess, logging.Nop())

		_, err := svc.RefreshProfile(ctx)
		assert.True(t, errors.Is(err, client.ErrUnavailable))
		assert.True(t, sess.IsAuthenticated())
	})
}

func TestAuthService_SignOut(t *testing.T) {
	sess := signedIn(t, domain.RoleUser, nil)
	svc := NewAuthService(&fakeClient{}, sess, logging.Nop())

	require.NoError(t, svc.SignOut(context.Background()))
	assert.False(t, sess.IsAuthenticated())
}
