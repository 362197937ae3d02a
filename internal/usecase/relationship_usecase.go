package usecase

import (
	"context"

	"mentorlink/internal/domain"
	"mentorlink/internal/domain/follow"
	"mentorlink/internal/domain/user"
)

type RelationshipUsecase interface {
	MyMentees(ctx context.Context, auth domain.AuthContext) ([]user.User, error)
	MyPendingRequests(ctx context.Context, auth domain.AuthContext) ([]follow.Request, error)
}

type Relationship struct {
	users    user.Repository
	requests follow.Repository
}

func NewRelationshipUsecase(users user.Repository, requests follow.Repository) *Relationship {
	return &Relationship{users: users, requests: requests}
}

// MyMentees lists mentees whose request the caller accepted, most recently
// accepted first. Non-mentors get an empty list.
func (u *Relationship) MyMentees(ctx context.Context, auth domain.AuthContext) ([]user.User, error) {
	actor, err := resolveActor(ctx, u.users, auth)
	if err != nil {
		return nil, err
	}
	if !actor.IsMentor() {
		return []user.User{}, nil
	}

	status := follow.StatusAccepted
	reqs, err := u.requests.List(ctx, follow.Filter{
		MentorID:   &actor.ID,
		Status:     &status,
		WithMentee: true,
		Order:      follow.OrderUpdatedDesc,
	})
	if err != nil {
		return nil, err
	}

	out := make([]user.User, 0, len(reqs))
	for _, r := range reqs {
		if r.Mentee == nil {
			continue
		}
		out = append(out, user.Sanitize(*r.Mentee))
	}
	return out, nil
}

// MyPendingRequests lists requests still waiting on the caller, newest
// first, with both parties populated. Non-mentors get an empty list.
func (u *Relationship) MyPendingRequests(ctx context.Context, auth domain.AuthContext) ([]follow.Request, error) {
	actor, err := resolveActor(ctx, u.users, auth)
	if err != nil {
		return nil, err
	}
	if !actor.IsMentor() {
		return []follow.Request{}, nil
	}

	status := follow.StatusPending
	reqs, err := u.requests.List(ctx, follow.Filter{
		MentorID:   &actor.ID,
		Status:     &status,
		WithMentor: true,
		WithMentee: true,
		Order:      follow.OrderCreatedDesc,
	})
	if err != nil {
		return nil, err
	}

	for i := range reqs {
		if reqs[i].Mentor != nil {
			m := user.Sanitize(*reqs[i].Mentor)
			reqs[i].Mentor = &m
		}
		if reqs[i].Mentee != nil {
			e := user.Sanitize(*reqs[i].Mentee)
			reqs[i].Mentee = &e
		}
	}
	return reqs, nil
}
