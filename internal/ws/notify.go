package ws

import (
	"encoding/json"
	"time"

	"mentorlink/internal/domain/follow"
	"mentorlink/internal/domain/user"

	"github.com/google/uuid"
)

const (
	EventFollowRequestReceived = "follow_request.received"
	EventFollowRequestAnswered = "follow_request.answered"
)

type FollowRequestEvent struct {
	Type      string        `json:"type"`
	MentorID  uuid.UUID     `json:"mentor_id"`
	MenteeID  uuid.UUID     `json:"mentee_id"`
	Status    follow.Status `json:"status"`
	From      user.User     `json:"from"`
	Timestamp string        `json:"timestamp"`
}

type sender interface {
	SendTo(userID uuid.UUID, message []byte)
}

// Notifier turns follow-request changes into hub messages: the mentor hears
// about new requests and the mentee about answers.
type Notifier struct {
	hub sender
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func (n *Notifier) FollowRequestReceived(req follow.Request, mentee user.User) {
	n.push(req.MentorID, EventFollowRequestReceived, req, mentee)
}

func (n *Notifier) FollowRequestAnswered(req follow.Request, mentor user.User) {
	n.push(req.MenteeID, EventFollowRequestAnswered, req, mentor)
}

func (n *Notifier) push(to uuid.UUID, kind string, req follow.Request, from user.User) {
	if n == nil || n.hub == nil {
		return
	}
	evt := FollowRequestEvent{
		Type:      kind,
		MentorID:  req.MentorID,
		MenteeID:  req.MenteeID,
		Status:    req.Status,
		From:      user.Sanitize(from),
		Timestamp: n.now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.SendTo(to, b)
}
