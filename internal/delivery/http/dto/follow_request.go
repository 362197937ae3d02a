package dto

import (
	"time"

	"mentorlink/internal/domain/follow"
	"mentorlink/internal/usecase"

	"github.com/google/uuid"
)

type SendFollowRequestRequest struct {
	MentorID uuid.UUID `json:"mentor_id" validate:"required"`
}

type RespondFollowRequestRequest struct {
	MenteeID uuid.UUID `json:"mentee_id" validate:"required"`
	Action   string    `json:"action" validate:"required,oneof=ACCEPT REJECT"`
}

type FollowRequestResponse struct {
	MentorID  uuid.UUID     `json:"mentor_id"`
	MenteeID  uuid.UUID     `json:"mentee_id"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Mentor    *UserResponse `json:"mentor,omitempty"`
	Mentee    *UserResponse `json:"mentee,omitempty"`
}

func NewFollowRequestResponse(r follow.Request) FollowRequestResponse {
	out := FollowRequestResponse{
		MentorID:  r.MentorID,
		MenteeID:  r.MenteeID,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.Mentor != nil {
		m := NewUserResponse(*r.Mentor)
		out.Mentor = &m
	}
	if r.Mentee != nil {
		e := NewUserResponse(*r.Mentee)
		out.Mentee = &e
	}
	return out
}

func NewFollowRequestResponses(in []follow.Request) []FollowRequestResponse {
	out := make([]FollowRequestResponse, 0, len(in))
	for _, r := range in {
		out = append(out, NewFollowRequestResponse(r))
	}
	return out
}

type RecommendedMentorResponse struct {
	Mentor         UserResponse `json:"mentor"`
	MatchedSignals []string     `json:"matched_signals"`
}

func NewRecommendedMentorResponses(in []usecase.RecommendedMentor) []RecommendedMentorResponse {
	out := make([]RecommendedMentorResponse, 0, len(in))
	for _, r := range in {
		signals := make([]string, 0, len(r.MatchedSignals))
		for _, s := range r.MatchedSignals {
			signals = append(signals, string(s))
		}
		out = append(out, RecommendedMentorResponse{Mentor: NewUserResponse(r.Mentor), MatchedSignals: signals})
	}
	return out
}
