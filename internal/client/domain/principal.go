package domain

import "maps"

// Principal is the authenticated user together with its resolved roles.
//
// BoardRoles maps a board ID to the role held on that board. A missing entry
// means no membership. Capabilities implied by RoleAppAdmin are derived by the
// session and never written into BoardRoles.
type Principal struct {
	ID         int64               `json:"id"`
	Name       string              `json:"name"`
	Email      string              `json:"email"`
	Picture    string              `json:"picture,omitempty"`
	Token      string              `json:"token"`
	Role       Role                `json:"role"`
	BoardRoles map[int64]BoardRole `json:"boardRoles"`
}

// Clone returns a copy of p that shares no mutable state with it.
func (p Principal) Clone() Principal {
	c := p
	c.BoardRoles = make(map[int64]BoardRole, len(p.BoardRoles))
	maps.Copy(c.BoardRoles, p.BoardRoles)
	return c
}
