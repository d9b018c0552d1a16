package domain

import (
	"time"

	teamdomain "github.com/syncroapp/syncro-backend/internal/team/domain"
	userdomain "github.com/syncroapp/syncro-backend/internal/user/domain"
)

type ID string

type Type string

const (
	TypeLink Type = "link"
	TypeFile Type = "file"
	TypeNote Type = "note"
)

func (t Type) Valid() bool {
	switch t {
	case TypeLink, TypeFile, TypeNote:
		return true
	}
	return false
}

// Emoji is the marker the frontend shows next to a resource notification.
func (t Type) Emoji() string {
	switch t {
	case TypeFile:
		return "📎"
	case TypeLink:
		return "🔗"
	case TypeNote:
		return "📝"
	default:
		return "📄"
	}
}

// Resource is a shared team artifact. Exactly one of URL, Note or the file
// fields carries content, depending on Type.
type Resource struct {
	ID        ID
	TeamID    teamdomain.ID
	Title     string
	Type      Type
	URL       string
	Note      string
	FileName  string
	FilePath  string
	Tags      []string
	CreatedBy userdomain.ID
	CreatedAt time.Time
}

// WithCreator is the list projection with the creator's name and email
// joined in.
type WithCreator struct {
	Resource
	CreatorName  string
	CreatorEmail string
}
