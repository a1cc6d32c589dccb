package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	stderrors "errors"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bookline-app/bookline/modules/dataimport/domain/entities/importbatch"
	"github.com/bookline-app/bookline/modules/dataimport/infrastructure/persistence/models"
	"github.com/bookline-app/bookline/pkg/composables"
)

const (
	importBatchFindQuery = `
		SELECT id, tenant_id, import_type, file_name, column_mapping, total_rows,
		       success_count, failed_count, error_log, status, created_at, completed_at
		FROM import_batches`

	importBatchInsertQuery = `
		INSERT INTO import_batches (
			id, tenant_id, import_type, file_name, column_mapping, total_rows,
			success_count, failed_count, error_log, status, created_at, completed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	importBatchUpdateQuery = `
		UPDATE import_batches
		SET success_count = $1, failed_count = $2, error_log = $3, status = $4, completed_at = $5
		WHERE id = $6 AND tenant_id = $7`

	// The status guard makes concurrent rollbacks a compare-and-swap: only
	// one caller observes an affected row.
	importBatchRollbackQuery = `
		UPDATE import_batches
		SET status = 'rolled_back'
		WHERE id = $1 AND tenant_id = $2 AND status IN ('completed', 'failed')`
)

type ImportBatchRepository struct{}

func NewImportBatchRepository() importbatch.Repository {
	return &ImportBatchRepository{}
}

func (r *ImportBatchRepository) Create(ctx context.Context, b *importbatch.ImportBatch) (*importbatch.ImportBatch, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	row, err := toDBImportBatch(b)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(
		ctx,
		importBatchInsertQuery,
		row.ID,
		tenantID.String(),
		row.ImportType,
		row.FileName,
		row.ColumnMapping,
		row.TotalRows,
		row.SuccessCount,
		row.FailedCount,
		row.ErrorLog,
		row.Status,
		row.CreatedAt,
		row.CompletedAt,
	); err != nil {
		return nil, errors.Wrap(err, "failed to insert import batch")
	}

	return r.GetByID(ctx, b.ID())
}

func (r *ImportBatchRepository) Update(ctx context.Context, b *importbatch.ImportBatch) error {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	row, err := toDBImportBatch(b)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(
		ctx,
		importBatchUpdateQuery,
		row.SuccessCount,
		row.FailedCount,
		row.ErrorLog,
		row.Status,
		row.CompletedAt,
		row.ID,
		tenantID.String(),
	); err != nil {
		return errors.Wrap(err, "failed to update import batch")
	}
	return nil
}

func (r *ImportBatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*importbatch.ImportBatch, error) {
	batches, err := r.queryBatches(ctx, importBatchFindQuery+" WHERE tenant_id = $1 AND id = $2", id.String())
	if err != nil {
		return nil, err
	}
	if len(batches) == 0 {
		return nil, importbatch.ErrNotFound
	}
	return batches[0], nil
}

func (r *ImportBatchRepository) ListHistory(ctx context.Context) ([]*importbatch.ImportBatch, error) {
	return r.queryBatches(ctx, importBatchFindQuery+" WHERE tenant_id = $1 ORDER BY created_at DESC")
}

func (r *ImportBatchRepository) MarkRolledBack(ctx context.Context, id uuid.UUID) (bool, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return false, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}

	tag, err := tx.Exec(ctx, importBatchRollbackQuery, id.String(), tenantID.String())
	if err != nil {
		return false, errors.Wrap(err, "failed to mark import batch rolled back")
	}
	return tag.RowsAffected() == 1, nil
}

// queryBatches runs a find query with the context tenant id prepended as $1.
func (r *ImportBatchRepository) queryBatches(ctx context.Context, query string, extraArgs ...any) ([]*importbatch.ImportBatch, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	args := append([]any{tenantID.String()}, extraArgs...)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, importbatch.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to query import batches")
	}
	defer rows.Close()

	var batches []*importbatch.ImportBatch
	for rows.Next() {
		var b models.ImportBatch
		if err := rows.Scan(
			&b.ID,
			&b.TenantID,
			&b.ImportType,
			&b.FileName,
			&b.ColumnMapping,
			&b.TotalRows,
			&b.SuccessCount,
			&b.FailedCount,
			&b.ErrorLog,
			&b.Status,
			&b.CreatedAt,
			&b.CompletedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan import batch row")
		}
		batch, err := toDomainImportBatch(&b)
		if err != nil {
			return nil, err
		}
		batches = append(batches, batch)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return batches, nil
}

func toDBImportBatch(b *importbatch.ImportBatch) (*models.ImportBatch, error) {
	mappingJSON, err := json.Marshal(b.ColumnMapping())
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal column mapping")
	}
	errorLog := b.ErrorLog()
	if errorLog == nil {
		errorLog = []importbatch.ImportError{}
	}
	errorLogJSON, err := json.Marshal(errorLog)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal error log")
	}
	var completedAt sql.NullTime
	if b.CompletedAt() != nil {
		completedAt = sql.NullTime{Time: *b.CompletedAt(), Valid: true}
	}
	return &models.ImportBatch{
		ID:            b.ID().String(),
		TenantID:      b.TenantID().String(),
		ImportType:    string(b.Type()),
		FileName:      b.FileName(),
		ColumnMapping: mappingJSON,
		TotalRows:     b.TotalRows(),
		SuccessCount:  b.SuccessCount(),
		FailedCount:   b.FailedCount(),
		ErrorLog:      errorLogJSON,
		Status:        string(b.Status()),
		CreatedAt:     b.CreatedAt(),
		CompletedAt:   completedAt,
	}, nil
}

func toDomainImportBatch(b *models.ImportBatch) (*importbatch.ImportBatch, error) {
	id, err := uuid.Parse(b.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid import batch id")
	}
	tenantID, err := uuid.Parse(b.TenantID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid tenant id")
	}
	var columnMapping map[string]string
	if len(b.ColumnMapping) > 0 {
		if err := json.Unmarshal(b.ColumnMapping, &columnMapping); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal column mapping")
		}
	}
	var errorLog []importbatch.ImportError
	if len(b.ErrorLog) > 0 {
		if err := json.Unmarshal(b.ErrorLog, &errorLog); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal error log")
		}
	}
	var completedAt *time.Time
	if b.CompletedAt.Valid {
		t := b.CompletedAt.Time
		completedAt = &t
	}
	return importbatch.Hydrate(
		id,
		tenantID,
		importbatch.ImportType(b.ImportType),
		b.FileName,
		columnMapping,
		b.TotalRows,
		b.SuccessCount,
		b.FailedCount,
		errorLog,
		importbatch.Status(b.Status),
		b.CreatedAt,
		completedAt,
	), nil
}
