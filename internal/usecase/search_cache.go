package usecase

import (
	"context"
	"time"
)

type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
	Incr(ctx context.Context, key string) error
}

const (
	UsersSearchCachePattern = "users:search:*"
	// usersSearchGenerationKey must stay outside UsersSearchCachePattern.
	usersSearchGenerationKey = "users:search-gen"
)

// InvalidateUserSearch bumps the search generation and drops cached pages.
// A search that read the store before the bump writes under the old
// generation, so its page is never served again.
func InvalidateUserSearch(ctx context.Context, cache SearchCache) error {
	if cache == nil {
		return nil
	}
	if err := cache.Incr(ctx, usersSearchGenerationKey); err != nil {
		return err
	}
	return cache.DeleteByPattern(ctx, UsersSearchCachePattern)
}

func userSearchGeneration(ctx context.Context, cache SearchCache) (int64, error) {
	var gen int64
	if _, err := cache.GetJSON(ctx, usersSearchGenerationKey, &gen); err != nil {
		return 0, err
	}
	return gen, nil
}
