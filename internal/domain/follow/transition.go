package follow

import (
	"fmt"

	"mentorlink/internal/domain"
)

// Event drives a request from one status to the next.
type Event string

const (
	EventSend   Event = "SEND"
	EventAccept Event = "ACCEPT"
	EventReject Event = "REJECT"
)

// StatusAbsent stands for "no row yet".
const StatusAbsent Status = ""

func EventFor(a Action) (Event, error) {
	switch a {
	case ActionAccept:
		return EventAccept, nil
	case ActionReject:
		return EventReject, nil
	}
	return "", fmt.Errorf("%w: unknown action %q", domain.ErrInvalidOperation, a)
}

// Transition returns the status reached by applying ev to from.
//
//	absent|PENDING|ACCEPTED|REJECTED --SEND--> PENDING
//	PENDING --ACCEPT--> ACCEPTED
//	PENDING --REJECT--> REJECTED
//
// Answering anything but a pending request is rejected.
func Transition(from Status, ev Event) (Status, error) {
	switch ev {
	case EventSend:
		if from != StatusAbsent && !from.Valid() {
			return "", fmt.Errorf("%w: unknown status %q", domain.ErrInvalidOperation, from)
		}
		return StatusPending, nil
	case EventAccept, EventReject:
		if from == StatusAbsent {
			return "", fmt.Errorf("follow request: %w", domain.ErrNotFound)
		}
		if from != StatusPending {
			return "", fmt.Errorf("%w: request already %s", domain.ErrInvalidOperation, from)
		}
		if ev == EventAccept {
			return StatusAccepted, nil
		}
		return StatusRejected, nil
	}
	return "", fmt.Errorf("%w: unknown event %q", domain.ErrInvalidOperation, ev)
}

// Sources lists the statuses from which ev is allowed, for conditional
// store updates.
func Sources(ev Event) []Status {
	switch ev {
	case EventSend:
		return []Status{StatusPending, StatusAccepted, StatusRejected}
	case EventAccept, EventReject:
		return []Status{StatusPending}
	}
	return nil
}
