package follow

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the follow-request half of the entity store. Rows are keyed
// by (mentorID, menteeID) and the store guarantees at most one per pair.
type Repository interface {
	// Upsert creates the row or overwrites the status of the existing one in a
	// single atomic statement. CreatedAt is never changed by an update.
	Upsert(ctx context.Context, mentorID, menteeID uuid.UUID, status Status) (Request, error)
	// UpdateStatus changes the status of an existing row. When onlyFrom is
	// non-empty the row must currently hold one of those statuses, otherwise
	// domain.ErrInvalidOperation is returned. A missing row yields
	// domain.ErrNotFound.
	UpdateStatus(ctx context.Context, mentorID, menteeID uuid.UUID, status Status, onlyFrom ...Status) (Request, error)
	Find(ctx context.Context, mentorID, menteeID uuid.UUID) (Request, error)
	List(ctx context.Context, f Filter) ([]Request, error)
}
