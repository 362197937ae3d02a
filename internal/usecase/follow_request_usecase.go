package usecase

import (
	"context"
	"fmt"

	"mentorlink/internal/domain"
	"mentorlink/internal/domain/follow"
	"mentorlink/internal/domain/user"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type FollowRequestUsecase interface {
	SendFollowRequest(ctx context.Context, auth domain.AuthContext, mentorID uuid.UUID) (follow.Request, error)
	RespondFollowRequest(ctx context.Context, auth domain.AuthContext, menteeID uuid.UUID, action follow.Action) (follow.Request, error)
}

type FollowRequest struct {
	users    user.Repository
	requests follow.Repository
	notifier FollowNotifier
	logger   zerolog.Logger
}

func NewFollowRequestUsecase(users user.Repository, requests follow.Repository, notifier FollowNotifier, logger zerolog.Logger) *FollowRequest {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &FollowRequest{users: users, requests: requests, notifier: notifier, logger: logger}
}

// SendFollowRequest moves the (mentor, caller) pair to PENDING from any
// state. Repeating it while already pending changes nothing.
func (u *FollowRequest) SendFollowRequest(ctx context.Context, auth domain.AuthContext, mentorID uuid.UUID) (follow.Request, error) {
	actor, err := resolveActor(ctx, u.users, auth)
	if err != nil {
		return follow.Request{}, err
	}
	if !actor.IsMentee() {
		return follow.Request{}, fmt.Errorf("only mentees can send follow requests: %w", domain.ErrForbidden)
	}
	if mentorID == actor.ID {
		return follow.Request{}, fmt.Errorf("%w: cannot follow yourself", domain.ErrInvalidOperation)
	}

	mentor, err := u.users.FindByID(ctx, mentorID)
	if err != nil {
		return follow.Request{}, err
	}
	if !mentor.IsMentor() {
		return follow.Request{}, fmt.Errorf("%w: target is not a mentor", domain.ErrInvalidOperation)
	}

	status, err := follow.Transition(follow.StatusAbsent, follow.EventSend)
	if err != nil {
		return follow.Request{}, err
	}
	req, err := u.requests.Upsert(ctx, mentor.ID, actor.ID, status)
	if err != nil {
		return follow.Request{}, err
	}

	u.logger.Info().
		Str("mentor_id", mentor.ID.String()).
		Str("mentee_id", actor.ID.String()).
		Msg("[Follow] request sent")
	u.notifier.FollowRequestReceived(req, user.Sanitize(actor))
	return req, nil
}

// RespondFollowRequest accepts or rejects a pending request addressed to
// the calling mentor.
func (u *FollowRequest) RespondFollowRequest(ctx context.Context, auth domain.AuthContext, menteeID uuid.UUID, action follow.Action) (follow.Request, error) {
	actor, err := resolveActor(ctx, u.users, auth)
	if err != nil {
		return follow.Request{}, err
	}
	if !actor.IsMentor() {
		return follow.Request{}, fmt.Errorf("only mentors can respond to follow requests: %w", domain.ErrForbidden)
	}
	ev, err := follow.EventFor(action)
	if err != nil {
		return follow.Request{}, err
	}

	next, err := follow.Transition(follow.StatusPending, ev)
	if err != nil {
		return follow.Request{}, err
	}
	req, err := u.requests.UpdateStatus(ctx, actor.ID, menteeID, next, follow.Sources(ev)...)
	if err != nil {
		return follow.Request{}, err
	}

	u.logger.Info().
		Str("mentor_id", actor.ID.String()).
		Str("mentee_id", menteeID.String()).
		Str("status", string(req.Status)).
		Msg("[Follow] request answered")
	u.notifier.FollowRequestAnswered(req, user.Sanitize(actor))
	return req, nil
}
