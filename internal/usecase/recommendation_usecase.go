package usecase

import (
	"context"
	"slices"

	"mentorlink/internal/domain"
	"mentorlink/internal/domain/matching"
	"mentorlink/internal/domain/user"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const RecommendationLimit = 20

type RecommendedMentor struct {
	Mentor         user.User         `json:"mentor"`
	MatchedSignals []matching.Signal `json:"matched_signals"`
}

type RecommendationUsecase interface {
	RecommendMentors(ctx context.Context, auth domain.AuthContext) ([]RecommendedMentor, error)
}

type Recommendation struct {
	users  user.Repository
	logger zerolog.Logger

	group singleflight.Group
}

func NewRecommendationUsecase(users user.Repository, logger zerolog.Logger) *Recommendation {
	return &Recommendation{users: users, logger: logger}
}

// RecommendMentors returns newest-first mentors that share at least one
// profile signal with the calling mentee and have not already accepted them.
// A mentor caller gets an empty list.
func (u *Recommendation) RecommendMentors(ctx context.Context, auth domain.AuthContext) ([]RecommendedMentor, error) {
	actor, err := resolveActor(ctx, u.users, auth)
	if err != nil {
		return nil, err
	}
	if !actor.IsMentee() {
		return []RecommendedMentor{}, nil
	}

	// The flight may be shared, so it must not inherit one caller's
	// cancellation. Each caller still stops waiting when its own ctx ends.
	flight := context.WithoutCancel(ctx)
	ch := u.group.DoChan(actor.ID.String(), func() (any, error) {
		return u.recommend(flight, actor)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			u.logger.Debug().Str("mentee_id", actor.ID.String()).Msg("[Recommend] shared in-flight result")
		}
		return slices.Clone(res.Val.([]RecommendedMentor)), nil
	}
}

func (u *Recommendation) recommend(ctx context.Context, mentee user.User) ([]RecommendedMentor, error) {
	mentors, err := u.users.Query(ctx, matching.CandidatePredicate(mentee), RecommendationLimit, user.OrderNewestFirst)
	if err != nil {
		return nil, err
	}

	out := make([]RecommendedMentor, 0, len(mentors))
	for _, m := range mentors {
		res := matching.Evaluate(mentee, m)
		out = append(out, RecommendedMentor{Mentor: user.Sanitize(m), MatchedSignals: res.Matched})
	}
	return out, nil
}
