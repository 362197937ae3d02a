package user

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"mentorlink/internal/domain"
	"mentorlink/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

const maxImageURLLength = 2048

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return user.User{}, err
		}
		return user.User{}, ErrInternal
	}
	return user.Sanitize(usr), nil
}

// UpdateImage replaces the profile image reference. Both absolute http(s)
// URLs and site-relative paths are accepted.
func (s *Service) UpdateImage(ctx context.Context, userID uuid.UUID, imageURL string) (user.User, error) {
	imageURL = strings.TrimSpace(imageURL)
	if !isValidImageURL(imageURL) {
		return user.User{}, ErrInvalidInput
	}

	updated, err := s.users.UpdateImageURL(ctx, userID, imageURL)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return user.User{}, err
		}
		return user.User{}, ErrInternal
	}
	return user.Sanitize(updated), nil
}

func isValidImageURL(raw string) bool {
	if raw == "" || len(raw) > maxImageURLLength {
		return false
	}
	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
