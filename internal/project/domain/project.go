package domain

import (
	"time"

	userdomain "github.com/syncroapp/syncro-backend/internal/user/domain"
)

type ID string

type Status string

const (
	StatusActive    Status = "active"
	StatusPlanning  Status = "planning"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPlanning, StatusCompleted:
		return true
	}
	return false
}

// Project tracks a piece of coursework shared by a group of students.
// Progress is a percentage the client reports, not something derived here.
type Project struct {
	ID          ID
	Name        string
	Description string
	Course      string
	Deadline    *time.Time
	Goals       []string
	Status      Status
	Progress    int
	CreatedBy   userdomain.ID
	MemberIDs   []string
	CreatedAt   time.Time
}
