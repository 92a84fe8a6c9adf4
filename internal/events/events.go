package events

import (
	"encoding/json"
	"time"
)

// Event types published to the notification topic.
const (
	TypeFriendRequest  = "friend.request"
	TypeFriendAccepted = "friend.accepted"
	TypeNewMessage     = "message.new"
)

// Event is one notification destined for a single user. UserID is the
// partition key so one user's notifications stay ordered.
type Event struct {
	Type      string    `json:"type"`
	UserID    uint      `json:"userId"`
	ActorID   uint      `json:"actorId"`
	EntityID  uint      `json:"entityId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers notification events. Implementations are best-effort:
// callers log and continue on failure, they never roll back a committed
// operation because of a publish error.
type Publisher interface {
	Publish(event Event) error
	Close() error
}
