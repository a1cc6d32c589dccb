package importbatch

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists import batches within the tenant scope carried by the
// context.
type Repository interface {
	Create(ctx context.Context, b *ImportBatch) (*ImportBatch, error)
	Update(ctx context.Context, b *ImportBatch) error
	GetByID(ctx context.Context, id uuid.UUID) (*ImportBatch, error)
	ListHistory(ctx context.Context) ([]*ImportBatch, error)
	// MarkRolledBack flips the batch to rolled_back only if it is currently
	// completed or failed. Returns false when the guard did not match, so
	// concurrent rollback/import cannot race past each other.
	MarkRolledBack(ctx context.Context, id uuid.UUID) (bool, error)
}
