package follow

import (
	"time"

	"mentorlink/internal/domain/user"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

type Action string

const (
	ActionAccept Action = "ACCEPT"
	ActionReject Action = "REJECT"
)

func (a Action) Valid() bool {
	return a == ActionAccept || a == ActionReject
}

// Request is the single relationship row between one mentor and one mentee.
// Mentor and Mentee are only populated when the query asked for them.
type Request struct {
	MentorID  uuid.UUID  `json:"mentor_id"`
	MenteeID  uuid.UUID  `json:"mentee_id"`
	Status    Status     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Mentor    *user.User `json:"mentor,omitempty"`
	Mentee    *user.User `json:"mentee,omitempty"`
}

type Order int

const (
	OrderCreatedDesc Order = iota
	OrderUpdatedDesc
)

// Filter selects requests. Nil fields impose no constraint.
type Filter struct {
	MentorID   *uuid.UUID
	MenteeID   *uuid.UUID
	Status     *Status
	WithMentor bool
	WithMentee bool
	Order      Order
	Limit      int
}
