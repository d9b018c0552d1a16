package domain

import (
	"time"

	userdomain "github.com/syncroapp/syncro-backend/internal/user/domain"
)

type ID string

// Checkin is a daily standup entry. Mood and energy are 1..5 self-ratings.
type Checkin struct {
	ID          ID
	UserID      userdomain.ID
	Mood        int
	Energy      int
	Blockers    []string
	NextSteps   string
	WorkDone    string
	HoursWorked float64
	CreatedAt   time.Time
}
