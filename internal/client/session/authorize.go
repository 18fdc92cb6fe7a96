package session

import "github.com/dmitrijs2005/feedbackboard/internal/client/domain"

// Decision is the outcome of an authorization check.
type Decision int

const (
	// Allow lets the action proceed.
	Allow Decision = iota
	// SignIn means nobody is signed in.
	SignIn
	// Forbidden means the principal lacks the required role.
	Forbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case SignIn:
		return "sign-in"
	case Forbidden:
		return "forbidden"
	}
	return "unknown"
}

// BoardRequirement asks for a role on a specific board. With Stakeholder set
// the principal must be a board stakeholder; otherwise any access will do.
type BoardRequirement struct {
	BoardID     int64
	Stakeholder bool
}

// Requirement describes what an action needs. The zero value only requires
// a signed-in principal.
type Requirement struct {
	GlobalRole domain.Role
	Board      *BoardRequirement
}

// Authorize checks req against the signed-in principal.
//
// A required global role must match exactly, except that requiring
// stakeholder is also satisfied by app_admin.
func (s *Session) Authorize(req Requirement) Decision {
	role, ok := s.GlobalRole()
	if !ok {
		return SignIn
	}

	if req.GlobalRole != "" && role != req.GlobalRole {
		if !(req.GlobalRole == domain.RoleStakeholder && role == domain.RoleAppAdmin) {
			return Forbidden
		}
	}

	if b := req.Board; b != nil {
		if b.Stakeholder && !s.IsBoardStakeholder(b.BoardID) {
			return Forbidden
		}
		if !b.Stakeholder && !s.HasBoardAccess(b.BoardID) {
			return Forbidden
		}
	}
	return Allow
}
