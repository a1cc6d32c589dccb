package persistence

import (
	"context"
	"time"

	stderrors "errors"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bookline-app/bookline/modules/dataimport/services"
	"github.com/bookline-app/bookline/pkg/composables"
	"github.com/bookline-app/bookline/pkg/repo"
)

// collectionSpec pins down, per import collection, which columns a bulk
// insert may carry and which column name lookups match against. The set of
// collections is closed; anything else is a programming error.
type collectionSpec struct {
	table      string
	columns    []string
	nameColumn string
}

var collectionSpecs = map[string]collectionSpec{
	"customers": {
		table:      "customers",
		columns:    []string{"full_name", "email", "phone", "notes", "import_batch_id"},
		nameColumn: "full_name",
	},
	"services": {
		table:      "services",
		columns:    []string{"name", "description", "category", "duration_minutes", "price_cents", "import_batch_id"},
		nameColumn: "name",
	},
	"employees": {
		table:      "employees",
		columns:    []string{"full_name", "email", "phone", "role", "import_batch_id"},
		nameColumn: "full_name",
	},
	"bookings": {
		table:   "bookings",
		columns: []string{"customer_id", "service_id", "employee_id", "start_time", "end_time", "status", "is_walk_in", "notes", "import_batch_id"},
	},
}

// PgTenantStore writes imported rows into the tenant's entity tables.
type PgTenantStore struct{}

func NewPgTenantStore() services.TenantStore {
	return &PgTenantStore{}
}

func (s *PgTenantStore) BulkInsert(ctx context.Context, collection string, rows []map[string]any) error {
	if len(rows) == 0 {
		return nil
	}
	spec, ok := collectionSpecs[collection]
	if !ok {
		return errors.Errorf("unknown import collection: %s", collection)
	}

	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	values := make([][]any, 0, len(rows))
	for _, row := range rows {
		args := make([]any, 0, len(spec.columns)+4)
		args = append(args, uuid.New().String(), tenantID.String())
		for _, col := range spec.columns {
			args = append(args, normalizeArg(row[col]))
		}
		args = append(args, now, now)
		values = append(values, args)
	}

	base := "INSERT INTO " + spec.table + " (id, tenant_id"
	for _, col := range spec.columns {
		base += ", " + col
	}
	base += ", created_at, updated_at) VALUES"

	query, args := repo.BatchInsertQueryN(base, values)

	// Each chunk commits in its own transaction from the pool. On Postgres a
	// failed statement aborts the enclosing transaction, so sharing one with
	// the caller would poison every chunk after the first failure and take
	// the batch row down with it.
	return composables.InTx(ctx, func(txCtx context.Context) error {
		tx, err := composables.UseTx(txCtx)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(txCtx, query, args...); err != nil {
			return errors.Wrap(err, "failed to bulk insert "+spec.table)
		}
		return nil
	})
}

func (s *PgTenantStore) FindIDByName(ctx context.Context, collection string, name string) (*uuid.UUID, error) {
	spec, ok := collectionSpecs[collection]
	if !ok || spec.nameColumn == "" {
		return nil, errors.Errorf("collection does not support name lookup: %s", collection)
	}

	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := "SELECT id FROM " + spec.table +
		" WHERE tenant_id = $1 AND LOWER(" + spec.nameColumn + ") = LOWER($2)" +
		" ORDER BY created_at LIMIT 1"

	var idStr string
	if err := tx.QueryRow(ctx, query, tenantID.String(), name).Scan(&idStr); err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to look up "+spec.table+" by name")
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, errors.Wrap(err, "invalid id in "+spec.table)
	}
	return &id, nil
}

func (s *PgTenantStore) DeleteByImportBatch(ctx context.Context, collection string, batchID uuid.UUID) (int64, error) {
	spec, ok := collectionSpecs[collection]
	if !ok {
		return 0, errors.Errorf("unknown import collection: %s", collection)
	}

	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return 0, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	query := "DELETE FROM " + spec.table + " WHERE tenant_id = $1 AND import_batch_id = $2"
	tag, err := tx.Exec(ctx, query, tenantID.String(), batchID.String())
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete imported "+spec.table)
	}
	return tag.RowsAffected(), nil
}

// normalizeArg maps absent and uuid-typed values onto what pgx expects for a
// nullable column.
func normalizeArg(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case uuid.UUID:
		return val.String()
	default:
		return v
	}
}
