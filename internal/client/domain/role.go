package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownRole is returned when a role string does not name a known role.
var ErrUnknownRole = errors.New("unknown role")

// Role is the global role of a principal.
type Role string

const (
	RoleUser        Role = "user"
	RoleStakeholder Role = "stakeholder"
	RoleAppAdmin    Role = "app_admin"
)

// ParseRole converts s into a Role. An empty string yields RoleUser, the
// default the API applies to accounts without an explicit role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case "":
		return RoleUser, nil
	case RoleUser, RoleStakeholder, RoleAppAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

func (r Role) String() string { return string(r) }

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(r))
}

func (r *Role) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	var raw string
	if s != nil {
		raw = *s
	}
	parsed, err := ParseRole(raw)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// BoardRole is the role a principal holds on a single board.
type BoardRole string

const (
	BoardRoleUser        BoardRole = "user"
	BoardRoleStakeholder BoardRole = "stakeholder"
)

// ParseBoardRole converts s into a BoardRole. Unlike ParseRole there is no
// default: a board entry always names its role.
func ParseBoardRole(s string) (BoardRole, error) {
	switch BoardRole(s) {
	case BoardRoleUser, BoardRoleStakeholder:
		return BoardRole(s), nil
	}
	return "", fmt.Errorf("%w: board role %q", ErrUnknownRole, s)
}

func (r BoardRole) String() string { return string(r) }

func (r BoardRole) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(r))
}

func (r *BoardRole) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseBoardRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
