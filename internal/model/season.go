package model

import (
	"fmt"
	"strings"
	"time"
)

// SeasonStatus represents the lifecycle state of a season.
type SeasonStatus string

const (
	SeasonOpen     SeasonStatus = "open"
	SeasonOnHold   SeasonStatus = "on_hold"
	SeasonClosed   SeasonStatus = "closed"
	SeasonCanceled SeasonStatus = "canceled"
)

// String returns the string representation of the season status.
func (s SeasonStatus) String() string {
	return string(s)
}

// IsValid checks whether the season status is a known value.
func (s SeasonStatus) IsValid() bool {
	switch s {
	case SeasonOpen, SeasonOnHold, SeasonClosed, SeasonCanceled:
		return true
	}
	return false
}

// Season is a work plan: it owns an ordered collection of tasks for the
// lifetime of a loaded snapshot.
type Season struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	BuyerID     string       `json:"buyer_id,omitempty"`
	Status      SeasonStatus `json:"status"`
	Description string       `json:"description,omitempty"`

	// RequireAttention lists department names flagged for follow-up.
	RequireAttention []string `json:"require_attention,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Role is the closed set of actor roles. Roles are constructed through
// ParseRole so that case variations never leak past the boundary.
type Role string

const (
	RoleAdmin   Role = "admin"
	RolePlanner Role = "planner"
	RoleMember  Role = "member"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks whether the role is a known value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RolePlanner, RoleMember:
		return true
	}
	return false
}

// Privileged reports whether the role may override task-level restrictions
// (edit completed tasks, change season status).
func (r Role) Privileged() bool {
	return r == RoleAdmin || r == RolePlanner
}

// ParseRole normalizes a role string ("Admin", "ADMIN", "admin") into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Actor identifies who is attempting an operation.
type Actor struct {
	Name       string `json:"name"`
	Role       Role   `json:"role"`
	Department string `json:"department,omitempty"`
}
