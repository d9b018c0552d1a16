package notify

import "time"

type EventKind string

const (
	KindCheckin  EventKind = "checkin"
	KindResource EventKind = "resource"
)

// Event is a domain occurrence worth pushing to the actor's team co-members.
// The actor never receives their own event.
type Event struct {
	Kind      EventKind
	ActorID   string
	ActorName string
	Message   string
	Timestamp time.Time

	// Resource events only.
	ResourceType  string
	ResourceTitle string
	Action        string
	TeamID        string
}

// NotificationPayload is the wire shape pushed to clients. Field names match
// what the frontend already consumes.
type NotificationPayload struct {
	Message      string `json:"message"`
	FromUser     string `json:"fromUser"`
	FromUserName string `json:"fromUserName"`
	Type         string `json:"type"`
	Timestamp    string `json:"timestamp"`
	TeamName     string `json:"teamName"`

	ResourceType  string `json:"resourceType,omitempty"`
	ResourceTitle string `json:"resourceTitle,omitempty"`
	Action        string `json:"action,omitempty"`
	TeamID        string `json:"teamId,omitempty"`
}

func (e Event) payloadForTeam(teamName string) NotificationPayload {
	return NotificationPayload{
		Message:       e.Message,
		FromUser:      e.ActorID,
		FromUserName:  e.ActorName,
		Type:          string(e.Kind),
		Timestamp:     e.Timestamp.UTC().Format(time.RFC3339),
		TeamName:      teamName,
		ResourceType:  e.ResourceType,
		ResourceTitle: e.ResourceTitle,
		Action:        e.Action,
		TeamID:        e.TeamID,
	}
}
