package usecase

import (
	"context"
	"errors"
	"fmt"

	"mentorlink/internal/domain"
	"mentorlink/internal/domain/user"
)

// resolveActor loads the authenticated caller. An anonymous context is
// Unauthorized; an identity that no longer resolves to a user is NotFound.
func resolveActor(ctx context.Context, users user.Repository, auth domain.AuthContext) (user.User, error) {
	if !auth.Authenticated() {
		return user.User{}, domain.ErrUnauthorized
	}
	actor, err := users.FindByID(ctx, auth.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return user.User{}, fmt.Errorf("actor %s: %w", auth.UserID, domain.ErrNotFound)
		}
		return user.User{}, err
	}
	return actor, nil
}

func sanitizeAll(in []user.User) []user.User {
	out := make([]user.User, 0, len(in))
	for _, u := range in {
		out = append(out, user.Sanitize(u))
	}
	return out
}
