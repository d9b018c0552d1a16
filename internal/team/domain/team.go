package domain

import (
	"time"

	userdomain "github.com/syncroapp/syncro-backend/internal/user/domain"
)

type ID string

// Team carries the roster as raw member ids; creator is always present in
// MemberIDs. Members are never removed.
type Team struct {
	ID          ID
	Name        string
	Description string
	CreatedBy   userdomain.ID
	MemberIDs   []string
	CreatedAt   time.Time
}

// Details is the populated projection returned by the team details endpoint.
type Details struct {
	ID          ID
	Name        string
	Description string
	CreatedBy   userdomain.Summary
	Members     []userdomain.Summary
	CreatedAt   time.Time
}

// Overview is the list-view projection with a member count instead of a
// full roster.
type Overview struct {
	ID          ID
	Name        string
	Description string
	CreatedBy   userdomain.Summary
	MemberCount int
	CreatedAt   time.Time
}
