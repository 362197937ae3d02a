package usecase

import (
	"context"
	"testing"

	"mentorlink/internal/domain"
	"mentorlink/internal/domain/user"
	ucuser "mentorlink/internal/usecase/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_GetMe(t *testing.T) {
	f := newFixture(t)
	me := f.mentee(user.User{Name: "Me"})
	uc := NewUserUsecase(f.users, nil, f.logger)

	got, err := uc.GetMe(context.Background(), as(me))
	require.NoError(t, err)
	assert.Equal(t, "Me", got.Name)

	_, err = uc.GetMe(context.Background(), domain.AuthContext{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.GetMe(context.Background(), domain.AuthContext{UserID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUser_UpdateProfileImage(t *testing.T) {
	f := newFixture(t)
	me := f.mentor(user.User{})
	cache := newMapCache()
	uc := NewUserUsecase(f.users, cache, f.logger)
	ctx := context.Background()

	got, err := uc.UpdateProfileImage(ctx, as(me), "https://cdn.example.com/a.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.png", got.ImageURL)
	assert.Equal(t, []string{UsersSearchCachePattern}, cache.deletes)

	got, err = uc.UpdateProfileImage(ctx, as(me), "/images/me.png")
	require.NoError(t, err)
	assert.Equal(t, "/images/me.png", got.ImageURL)

	for _, bad := range []string{"", "ftp://x/y.png", "//evil.example.com/x.png", "not a url"} {
		_, err = uc.UpdateProfileImage(ctx, as(me), bad)
		assert.ErrorIs(t, err, ucuser.ErrInvalidInput, bad)
	}
}
