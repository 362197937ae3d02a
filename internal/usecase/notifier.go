package usecase

import (
	"mentorlink/internal/domain/follow"
	"mentorlink/internal/domain/user"
)

// FollowNotifier pushes follow-request events to connected users. Delivery
// is best effort and never affects the outcome of the operation.
type FollowNotifier interface {
	FollowRequestReceived(req follow.Request, mentee user.User)
	FollowRequestAnswered(req follow.Request, mentor user.User)
}

type nopNotifier struct{}

func (nopNotifier) FollowRequestReceived(follow.Request, user.User) {}
func (nopNotifier) FollowRequestAnswered(follow.Request, user.User) {}
