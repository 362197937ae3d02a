package dto

import (
	"time"

	"mentorlink/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	ImageURL            string    `json:"image_url"`
	Role                string    `json:"role"`
	YearOfStudy         *int      `json:"year_of_study"`
	Domain              *string   `json:"domain"`
	Branch              *string   `json:"branch"`
	Companies           []string  `json:"companies"`
	CompaniesInterested []string  `json:"companies_interested"`
	CreatedAt           time.Time `json:"created_at"`
}

func NewUserResponse(u user.User) UserResponse {
	out := UserResponse{
		ID:                  u.ID,
		Name:                u.Name,
		Email:               u.Email,
		ImageURL:            u.ImageURL,
		Role:                string(u.Role),
		YearOfStudy:         u.YearOfStudy,
		Companies:           nonNil(u.Companies),
		CompaniesInterested: nonNil(u.CompaniesInterested),
		CreatedAt:           u.CreatedAt,
	}
	if u.Domain != nil {
		d := string(*u.Domain)
		out.Domain = &d
	}
	if u.Branch != nil {
		b := string(*u.Branch)
		out.Branch = &b
	}
	return out
}

func NewUserResponses(in []user.User) []UserResponse {
	out := make([]UserResponse, 0, len(in))
	for _, u := range in {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// SearchUsersQuery binds the public search query string. Enum values must be
// given in upper case.
type SearchUsersQuery struct {
	Role        *string `query:"role" validate:"omitempty,oneof=MENTOR MENTEE"`
	Name        *string `query:"name" validate:"omitempty,max=100"`
	Domain      *string `query:"domain" validate:"omitempty,oneof=SOFTWARE MANAGEMENT MARKETING ANALYST OTHER"`
	Branch      *string `query:"branch" validate:"omitempty,oneof=CSE ECE ICE MME EEE OTHER"`
	YearOfStudy *int    `query:"year_of_study" validate:"omitempty,min=1,max=10"`
	Company     *string `query:"company" validate:"omitempty,max=100"`
}

type UpdateImageRequest struct {
	ImageURL string `json:"image_url" validate:"required,max=2048"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
