package services

import (
	"context"
	"time"

	"github.com/bookline-app/bookline/modules/dataimport/domain/entities/importbatch"
	"github.com/bookline-app/bookline/modules/dataimport/domain/validation"
)

// Booking rows imported without an explicit value fall back to these.
const (
	defaultBookingDuration = 60 * time.Minute
	defaultBookingStatus   = "completed"
)

// insertChunk writes one chunk of validated rows into the tenant store and
// returns the per-row outcome. A non-nil error means the whole chunk failed
// before any per-row accounting could happen.
func (s *ImportService) insertChunk(
	ctx context.Context,
	batch *importbatch.ImportBatch,
	chunk []validation.ValidatedRow,
) (successes int, failures []importbatch.ImportError, err error) {
	spec, ok := validation.Spec(batch.Type())
	if !ok {
		return 0, nil, importbatch.ErrUnknownImportType
	}

	if batch.Type() == importbatch.TypeBookings {
		return s.insertBookings(ctx, batch, spec, chunk)
	}
	return s.insertBulk(ctx, batch, spec, chunk)
}

// insertBulk handles the simple entity types: every row maps straight onto
// collection columns, tagged with the batch id for rollback.
func (s *ImportService) insertBulk(
	ctx context.Context,
	batch *importbatch.ImportBatch,
	spec validation.TypeSpec,
	chunk []validation.ValidatedRow,
) (int, []importbatch.ImportError, error) {
	rows := make([]map[string]any, 0, len(chunk))
	for _, row := range chunk {
		record := make(map[string]any, len(row.Data)+1)
		for field, value := range row.Data {
			record[field] = value
		}
		record["import_batch_id"] = batch.ID()
		rows = append(rows, record)
	}
	if err := s.store.BulkInsert(ctx, spec.Collection, rows); err != nil {
		return 0, nil, err
	}
	return len(chunk), nil, nil
}

// insertBookings resolves the *_name references to entity ids and inserts one
// row at a time, so a bad reference or constraint violation fails only the
// row that carried it.
func (s *ImportService) insertBookings(
	ctx context.Context,
	batch *importbatch.ImportBatch,
	spec validation.TypeSpec,
	chunk []validation.ValidatedRow,
) (int, []importbatch.ImportError, error) {
	successes := 0
	var failures []importbatch.ImportError

	for _, row := range chunk {
		record, err := s.buildBookingRecord(ctx, batch, row)
		if err == nil {
			err = s.store.BulkInsert(ctx, spec.Collection, []map[string]any{record})
		}
		if err != nil {
			failures = append(failures, importbatch.ImportError{
				Row:   row.RowIndex + 1,
				Field: "*",
				Error: err.Error(),
			})
			continue
		}
		successes++
	}
	return successes, failures, nil
}

func (s *ImportService) buildBookingRecord(
	ctx context.Context,
	batch *importbatch.ImportBatch,
	row validation.ValidatedRow,
) (map[string]any, error) {
	record := map[string]any{
		"import_batch_id": batch.ID(),
		"status":          defaultBookingStatus,
		"is_walk_in":      false,
	}

	// A name that resolves to nothing leaves the foreign key null; the
	// booking still imports.
	lookups := []struct {
		nameField  string
		idField    string
		collection string
	}{
		{"customer_name", "customer_id", "customers"},
		{"service_name", "service_id", "services"},
		{"employee_name", "employee_id", "employees"},
	}
	for _, lookup := range lookups {
		record[lookup.idField] = nil
		name, ok := row.Data[lookup.nameField].(string)
		if !ok || name == "" {
			continue
		}
		id, err := s.store.FindIDByName(ctx, lookup.collection, name)
		if err != nil {
			return nil, err
		}
		if id != nil {
			record[lookup.idField] = *id
		}
	}

	start, _ := row.Data["start_time"].(time.Time)
	record["start_time"] = start
	if end, ok := row.Data["end_time"].(time.Time); ok {
		record["end_time"] = end
	} else {
		record["end_time"] = start.Add(defaultBookingDuration)
	}
	if status, ok := row.Data["status"].(string); ok && status != "" {
		record["status"] = status
	}
	if notes, ok := row.Data["notes"].(string); ok && notes != "" {
		record["notes"] = notes
	}
	return record, nil
}
