package seeder

import (
	"context"
	"errors"
	"fmt"

	"mentorlink/internal/database"
	"mentorlink/internal/domain"
	"mentorlink/internal/domain/follow"
	"mentorlink/internal/repository"
)

// FollowRequestsSeeder links some of the demo users. It runs after
// UsersSeeder and skips pairs whose users are missing.
type FollowRequestsSeeder struct{}

func (FollowRequestsSeeder) Name() string { return "follow_requests" }

func (FollowRequestsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "follow_requests", "mentor_id", "mentee_id", "status", "created_at", "updated_at"); err != nil {
		return err
	}

	users := repository.NewPostgresUserRepository(db)
	requests := repository.NewPostgresFollowRequestRepository(db)

	pairs := []struct {
		Mentor string
		Mentee string
		Action follow.Action
	}{
		{Mentor: "asha.rao@mentorlink.dev", Mentee: "riya.sen@mentorlink.dev", Action: follow.ActionAccept},
		{Mentor: "vikram.nair@mentorlink.dev", Mentee: "arjun.das@mentorlink.dev"},
		{Mentor: "meera.iyer@mentorlink.dev", Mentee: "neha.pillai@mentorlink.dev", Action: follow.ActionReject},
	}

	for _, p := range pairs {
		mentor, err := users.FindByEmail(ctx, p.Mentor)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		mentee, err := users.FindByEmail(ctx, p.Mentee)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}

		if _, err := requests.Find(ctx, mentor.ID, mentee.ID); err == nil {
			continue
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		if _, err := requests.Upsert(ctx, mentor.ID, mentee.ID, follow.StatusPending); err != nil {
			return fmt.Errorf("send %s -> %s: %w", p.Mentee, p.Mentor, err)
		}
		if p.Action == "" {
			continue
		}

		ev, err := follow.EventFor(p.Action)
		if err != nil {
			return err
		}
		next, err := follow.Transition(follow.StatusPending, ev)
		if err != nil {
			return err
		}
		if _, err := requests.UpdateStatus(ctx, mentor.ID, mentee.ID, next, follow.Sources(ev)...); err != nil {
			return fmt.Errorf("answer %s -> %s: %w", p.Mentee, p.Mentor, err)
		}
	}
	return nil
}
