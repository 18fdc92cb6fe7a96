package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/feedbackboard/internal/client/domain"
	"github.com/dmitrijs2005/feedbackboard/internal/client/storage"
)

func TestAuthorize_SignedOut(t *testing.T) {
	s := Open(context.Background(), storage.NewMemoryStore())

	assert.Equal(t, SignIn, s.Authorize(Requirement{}))
	assert.Equal(t, SignIn, s.Authorize(Requirement{GlobalRole: domain.RoleAppAdmin}))
	assert.Equal(t, SignIn, s.Authorize(Requirement{Board: &BoardRequirement{BoardID: 1}}))
}

func TestAuthorize(t *testing.T) {
	board := func(id int64, sh bool) *BoardRequirement {
		return &BoardRequirement{BoardID: id, Stakeholder: sh}
	}

	tests := []struct {
		name string
		role domain.Role
		req  Requirement
		want Decision
	}{
		{"any signed in", domain.RoleUser, Requirement{}, Allow},
		{"admin route as user", domain.RoleUser, Requirement{GlobalRole: domain.RoleAppAdmin}, Forbidden},
		{"admin route as stakeholder", domain.RoleStakeholder, Requirement{GlobalRole: domain.RoleAppAdmin}, Forbidden},
		{"admin route as admin", domain.RoleAppAdmin, Requirement{GlobalRole: domain.RoleAppAdmin}, Allow},
		{"stakeholder route as admin", domain.RoleAppAdmin, Requirement{GlobalRole: domain.RoleStakeholder}, Allow},
		{"stakeholder route as user", domain.RoleUser, Requirement{GlobalRole: domain.RoleStakeholder}, Forbidden},
		{"user route as stakeholder", domain.RoleStakeholder, Requirement{GlobalRole: domain.RoleUser}, Forbidden},
		{"member board", domain.RoleUser, Requirement{Board: board(2, false)}, Allow},
		{"foreign board", domain.RoleUser, Requirement{Board: board(3, false)}, Forbidden},
		{"moderate as board user", domain.RoleUser, Requirement{Board: board(2, true)}, Forbidden},
		{"moderate as board stakeholder", domain.RoleUser, Requirement{Board: board(1, true)}, Allow},
		{"moderate as global stakeholder", domain.RoleStakeholder, Requirement{Board: board(3, true)}, Forbidden},
		{"moderate as admin", domain.RoleAppAdmin, Requirement{Board: board(99, true)}, Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := Open(ctx, storage.NewMemoryStore())
			p := alice()
			p.Role = tt.role
			require.NoError(t, s.Login(ctx, p))

			assert.Equal(t, tt.want, s.Authorize(tt.req), tt.want.String())
		})
	}
}
