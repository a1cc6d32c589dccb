package services

import (
	"context"

	"github.com/google/uuid"
)

// TenantStore is the generic tenant-scoped storage capability the import
// pipeline runs against. Collections map 1:1 to the entity tables; rows are
// keyed by target-field names plus the import_batch_id tag.
type TenantStore interface {
	// BulkInsert writes all rows in one store call. The call is atomic from
	// the pipeline's point of view: either every row lands or the error
	// applies to the whole payload.
	BulkInsert(ctx context.Context, collection string, rows []map[string]any) error
	// FindIDByName resolves a display name to an id, case-insensitively.
	// A missing match returns (nil, nil), not an error.
	FindIDByName(ctx context.Context, collection string, name string) (*uuid.UUID, error)
	// DeleteByImportBatch removes every row tagged with the batch id and
	// returns the number of rows deleted.
	DeleteByImportBatch(ctx context.Context, collection string, batchID uuid.UUID) (int64, error)
}
