package usecase

import (
	"context"
	"fmt"
	"strings"

	"mentorlink/internal/domain"
	"mentorlink/internal/domain/user"

	"github.com/rs/zerolog"
)

const SearchLimit = 50

// UserFilter holds the optional search criteria. Nil or blank fields impose
// no constraint.
type UserFilter struct {
	Role        *string
	Name        *string
	Domain      *string
	Branch      *string
	YearOfStudy *int
	Company     *string
}

func (f UserFilter) normalized() UserFilter {
	upper := func(p *string) *string {
		if p == nil {
			return nil
		}
		s := strings.ToUpper(strings.TrimSpace(*p))
		if s == "" {
			return nil
		}
		return &s
	}
	trim := func(p *string) *string {
		if p == nil {
			return nil
		}
		s := strings.TrimSpace(*p)
		if s == "" {
			return nil
		}
		return &s
	}
	return UserFilter{
		Role:        upper(f.Role),
		Name:        trim(f.Name),
		Domain:      upper(f.Domain),
		Branch:      upper(f.Branch),
		YearOfStudy: f.YearOfStudy,
		Company:     trim(f.Company),
	}
}

// BuildUserPredicate ANDs together one condition per provided field.
// Unknown enum values are rejected with domain.ErrInvalidOperation.
func BuildUserPredicate(f UserFilter) (user.Predicate, error) {
	f = f.normalized()
	p := make(user.And, 0, 6)

	if f.Role != nil {
		r := user.Role(*f.Role)
		if !r.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidOperation, *f.Role)
		}
		p = append(p, user.RoleIs{Role: r})
	}
	if f.Name != nil {
		p = append(p, user.NameContains{Substring: *f.Name})
	}
	if f.Domain != nil {
		d := user.Domain(*f.Domain)
		if !d.Valid() {
			return nil, fmt.Errorf("%w: unknown domain %q", domain.ErrInvalidOperation, *f.Domain)
		}
		p = append(p, user.DomainIs{Domain: d})
	}
	if f.Branch != nil {
		b := user.Branch(*f.Branch)
		if !b.Valid() {
			return nil, fmt.Errorf("%w: unknown branch %q", domain.ErrInvalidOperation, *f.Branch)
		}
		p = append(p, user.BranchIs{Branch: b})
	}
	if f.YearOfStudy != nil {
		p = append(p, user.YearOfStudyIs{Year: *f.YearOfStudy})
	}
	if f.Company != nil {
		p = append(p, user.HasCompany{Company: *f.Company})
	}
	return p, nil
}

type SearchUsecase interface {
	SearchUsers(ctx context.Context, f UserFilter) ([]user.User, error)
}

type Search struct {
	users  user.Repository
	cache  SearchCache
	logger zerolog.Logger
}

func NewSearchUsecase(users user.Repository, cache SearchCache, logger zerolog.Logger) *Search {
	return &Search{users: users, cache: cache, logger: logger}
}

func (u *Search) SearchUsers(ctx context.Context, f UserFilter) ([]user.User, error) {
	p, err := BuildUserPredicate(f)
	if err != nil {
		return nil, err
	}

	// The generation is read before the store so that a write landing in
	// between moves readers to a new key instead of this page.
	key := ""
	if u.cache != nil {
		gen, err := userSearchGeneration(ctx, u.cache)
		if err != nil {
			u.logger.Warn().Err(err).Msg("[Search] cache generation unavailable")
		} else {
			key = UsersSearchCacheKey(f, SearchLimit, gen)
			var cached []user.User
			hit, err := u.cache.GetJSON(ctx, key, &cached)
			if err == nil && hit {
				u.logger.Debug().Str("key", key).Msg("[Search] cache hit")
				return cached, nil
			}
		}
	}

	found, err := u.users.Query(ctx, p, SearchLimit, user.OrderNewestFirst)
	if err != nil {
		return nil, err
	}
	out := sanitizeAll(found)

	if key != "" {
		if err := u.cache.SetJSON(ctx, key, out, 0); err != nil {
			u.logger.Warn().Err(err).Str("key", key).Msg("[Search] cache write failed")
		}
	}
	return out, nil
}
