package domain

import "time"

type ID string

const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
)

var DefaultAvatar = []string{"#FF6B6B", "#FFFFFF"}

type User struct {
	ID           ID
	Name         string
	Email        string
	StudentID    string
	Major        string
	Year         int
	Role         string
	PasswordHash string
	Avatar       []string
	CreatedAt    time.Time
}

// Summary is the member-facing projection used when teams and projects
// populate their rosters.
type Summary struct {
	ID        ID
	Name      string
	Email     string
	StudentID string
}
