package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the user half of the entity store. Lookups that find nothing
// return an error wrapping domain.ErrNotFound.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (User, error)
	// FindByEmail matches the address case-insensitively.
	FindByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Query(ctx context.Context, p Predicate, limit int, order Order) ([]User, error)
	Create(ctx context.Context, u User) (User, error)
	UpdateImageURL(ctx context.Context, id uuid.UUID, imageURL string) (User, error)
}
