package usecase

import (
	"context"

	"mentorlink/internal/domain"
	"mentorlink/internal/domain/user"
	ucuser "mentorlink/internal/usecase/user"

	"github.com/rs/zerolog"
)

type UserUsecase interface {
	GetMe(ctx context.Context, auth domain.AuthContext) (user.User, error)
	UpdateProfileImage(ctx context.Context, auth domain.AuthContext, imageURL string) (user.User, error)
}

type User struct {
	svc    *ucuser.Service
	cache  SearchCache
	logger zerolog.Logger
}

func NewUserUsecase(users user.Repository, cache SearchCache, logger zerolog.Logger) *User {
	return &User{svc: ucuser.NewService(users), cache: cache, logger: logger}
}

func (u *User) GetMe(ctx context.Context, auth domain.AuthContext) (user.User, error) {
	if !auth.Authenticated() {
		return user.User{}, domain.ErrUnauthorized
	}
	return u.svc.GetMe(ctx, auth.UserID)
}

func (u *User) UpdateProfileImage(ctx context.Context, auth domain.AuthContext, imageURL string) (user.User, error) {
	if !auth.Authenticated() {
		return user.User{}, domain.ErrUnauthorized
	}
	updated, err := u.svc.UpdateImage(ctx, auth.UserID, imageURL)
	if err != nil {
		return user.User{}, err
	}
	if err := InvalidateUserSearch(ctx, u.cache); err != nil {
		u.logger.Warn().Err(err).Msg("[User] search cache invalidation failed")
	}
	return updated, nil
}
