package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bookline-app/bookline/modules/dataimport/domain/entities/importbatch"
	"github.com/bookline-app/bookline/modules/dataimport/domain/validation"
	"github.com/bookline-app/bookline/pkg/composables"
	"github.com/bookline-app/bookline/pkg/eventbus"
	"github.com/bookline-app/bookline/pkg/metrics"
)

// ChunkSize bounds the payload of a single store call. Part of the pipeline
// contract, not tunable per tenant.
const ChunkSize = 200

// Error messages surfaced to callers; part of the user-facing contract.
var (
	ErrNoValidRows           = errors.New("No valid rows to import")
	ErrAlreadyRolledBack     = errors.New("Already rolled back")
	ErrRollbackWindowExpired = errors.New("Rollback window expired (7 days)")
	ErrImportInProgress      = errors.New("Import is still in progress")
)

// ProgressFunc receives (rows processed so far, total rows) after every chunk.
// It is called synchronously and must not block, or it delays the next chunk.
type ProgressFunc func(done, total int)

type ExecuteParams struct {
	Type     importbatch.ImportType
	Rows     []validation.ValidatedRow
	Mapping  map[string]string
	FileName string
	Progress ProgressFunc
}

type ImportService struct {
	batches   importbatch.Repository
	store     TenantStore
	publisher eventbus.EventBus
}

func NewImportService(batches importbatch.Repository, store TenantStore, publisher eventbus.EventBus) *ImportService {
	return &ImportService{
		batches:   batches,
		store:     store,
		publisher: publisher,
	}
}

// ValidateRows splits raw rows into valid and invalid sets for an import
// type. Pure pass-through to the validation layer; exposed so the
// controllers and the CLI validate through one service surface.
func (s *ImportService) ValidateRows(
	importType importbatch.ImportType,
	rows []map[string]string,
	mapping map[string]string,
) (valid []validation.ValidatedRow, invalid []validation.ValidatedRow, err error) {
	return validation.ValidateRows(importType, rows, mapping)
}

// Execute runs a prepared set of validated rows through the chunked import
// pipeline and finalizes the batch. Insert-time failures are aggregated into
// the batch error log and never abort the remaining chunks; the import always
// runs to completion once the batch exists.
func (s *ImportService) Execute(ctx context.Context, params ExecuteParams) (*importbatch.ImportBatch, error) {
	if len(params.Rows) == 0 {
		return nil, ErrNoValidRows
	}
	if _, ok := validation.Spec(params.Type); !ok {
		return nil, importbatch.ErrUnknownImportType
	}

	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	logger := composables.UseLogger(ctx).WithField("import_type", string(params.Type))

	batch := importbatch.New(tenantID, params.Type, params.FileName, params.Mapping, len(params.Rows))
	if _, err := s.batches.Create(ctx, batch); err != nil {
		return nil, err
	}
	if err := batch.BeginProcessing(); err != nil {
		return nil, err
	}
	if err := s.batches.Update(ctx, batch); err != nil {
		return nil, err
	}
	logger = logger.WithField("batch_id", batch.ID())
	logger.WithField("total_rows", batch.TotalRows()).Info("import started")

	total := len(params.Rows)
	processed := 0
	successCount := 0
	failedCount := 0
	var errorLog []importbatch.ImportError

	for start := 0; start < total; start += ChunkSize {
		end := min(start+ChunkSize, total)
		chunk := params.Rows[start:end]

		successes, failures, err := s.insertChunk(ctx, batch, chunk)
		if err != nil {
			// Inserter-level failure: every row in this chunk failed for the
			// same reason. The remaining chunks still run.
			logger.WithError(err).Warn("chunk insert failed")
			successes = 0
			failures = failures[:0]
			for _, row := range chunk {
				failures = append(failures, importbatch.ImportError{
					Row:   row.RowIndex + 1,
					Field: "*",
					Error: err.Error(),
				})
			}
		}

		successCount += successes
		failedCount += len(failures)
		errorLog = append(errorLog, failures...)

		processed += len(chunk)
		if params.Progress != nil {
			params.Progress(processed, total)
		}
	}

	if err := batch.Finalize(successCount, failedCount, errorLog, time.Now()); err != nil {
		return nil, err
	}
	if err := s.batches.Update(ctx, batch); err != nil {
		return nil, err
	}

	metrics.ImportRows.WithLabelValues(string(params.Type), "success").Add(float64(successCount))
	metrics.ImportRows.WithLabelValues(string(params.Type), "failed").Add(float64(failedCount))
	metrics.ImportBatches.WithLabelValues(string(params.Type), string(batch.Status())).Inc()

	logger.WithField("success_count", successCount).
		WithField("failed_count", failedCount).
		WithField("status", string(batch.Status())).
		Info("import finished")

	s.publisher.Publish(&ImportCompletedEvent{Batch: batch})

	return s.batches.GetByID(ctx, batch.ID())
}

// GetBatch returns one batch in the tenant scope.
func (s *ImportService) GetBatch(ctx context.Context, id uuid.UUID) (*importbatch.ImportBatch, error) {
	return s.batches.GetByID(ctx, id)
}

// History lists the tenant's batches, newest first.
func (s *ImportService) History(ctx context.Context) ([]*importbatch.ImportBatch, error) {
	return s.batches.ListHistory(ctx)
}

// Rollback deletes every row tagged with the batch id and flips the batch to
// rolled_back. Every failure path leaves the batch completely unchanged; the
// status only moves after the deletion is confirmed.
func (s *ImportService) Rollback(ctx context.Context, batchID uuid.UUID) (*importbatch.ImportBatch, error) {
	batch, err := s.batches.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}

	switch batch.Status() {
	case importbatch.StatusRolledBack:
		return nil, ErrAlreadyRolledBack
	case importbatch.StatusPending, importbatch.StatusProcessing:
		// Explicit guard: rolling back an in-flight import would race its
		// chunk inserts.
		return nil, ErrImportInProgress
	}

	if batch.AgeDays(time.Now()) > importbatch.RollbackWindowDays {
		return nil, ErrRollbackWindowExpired
	}

	spec, ok := validation.Spec(batch.Type())
	if !ok {
		return nil, importbatch.ErrUnknownImportType
	}

	deleted, err := s.store.DeleteByImportBatch(ctx, spec.Collection, batch.ID())
	if err != nil {
		return nil, err
	}

	swapped, err := s.batches.MarkRolledBack(ctx, batch.ID())
	if err != nil {
		return nil, err
	}
	if !swapped {
		// Lost the compare-and-swap: someone else rolled the batch back (or
		// restarted it) between our status check and the flip.
		return nil, ErrAlreadyRolledBack
	}

	metrics.ImportRollbacks.WithLabelValues(string(batch.Type())).Inc()
	composables.UseLogger(ctx).
		WithField("batch_id", batch.ID()).
		WithField("deleted_rows", deleted).
		Info("import batch rolled back")

	rolled, err := s.batches.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(&ImportRolledBackEvent{Batch: rolled})
	return rolled, nil
}
