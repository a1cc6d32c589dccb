package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookline-app/bookline/modules/dataimport/domain/entities/importbatch"
	"github.com/bookline-app/bookline/modules/dataimport/domain/validation"
	"github.com/bookline-app/bookline/modules/dataimport/infrastructure/persistence"
	"github.com/bookline-app/bookline/modules/dataimport/services"
	"github.com/bookline-app/bookline/pkg/composables"
	"github.com/bookline-app/bookline/pkg/eventbus"
)

type fixture struct {
	ctx     context.Context
	repo    *persistence.InmemImportBatchRepository
	store   *persistence.InmemTenantStore
	service *services.ImportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := persistence.NewInmemImportBatchRepository()
	store := persistence.NewInmemTenantStore()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	svc := services.NewImportService(repo, store, eventbus.NewEventPublisher(logger))
	ctx := composables.WithTenantID(context.Background(), uuid.New())
	return &fixture{ctx: ctx, repo: repo, store: store, service: svc}
}

func validatedRows(t *testing.T, importType importbatch.ImportType, rows []map[string]string) []validation.ValidatedRow {
	t.Helper()
	mapping := map[string]string{}
	for col := range rows[0] {
		mapping[col] = col
	}
	valid, invalid, err := validation.ValidateRows(importType, rows, mapping)
	require.NoError(t, err)
	require.Empty(t, invalid)
	return valid
}

func TestImportService_Execute_NoValidRows(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Execute(f.ctx, services.ExecuteParams{
		Type: importbatch.TypeCustomers,
		Rows: nil,
	})
	require.Error(t, err)
	assert.EqualError(t, err, "No valid rows to import")

	history, err := f.service.History(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, history, "no batch is created for an empty import")
}

func TestImportService_Execute_BulkInsertCustomers(t *testing.T) {
	f := newFixture(t)

	rows := validatedRows(t, importbatch.TypeCustomers, []map[string]string{
		{"full_name": "Jane Doe", "email": "jane@example.com"},
		{"full_name": "Bob Smith", "email": "bob@example.com"},
	})

	batch, err := f.service.Execute(f.ctx, services.ExecuteParams{
		Type: importbatch.TypeCustomers,
		Rows: rows,
	})
	require.NoError(t, err)

	assert.Equal(t, importbatch.StatusCompleted, batch.Status())
	assert.Equal(t, 2, batch.TotalRows())
	assert.Equal(t, 2, batch.SuccessCount())
	assert.Equal(t, 0, batch.FailedCount())
	assert.Empty(t, batch.ErrorLog())
	require.NotNil(t, batch.CompletedAt())

	stored := f.store.Rows("customers")
	require.Len(t, stored, 2)
	assert.Equal(t, "Jane Doe", stored[0]["full_name"])
	assert.Equal(t, batch.ID(), stored[0]["import_batch_id"])
}

func TestImportService_Execute_InserterFailureFailsWholeBatch(t *testing.T) {
	f := newFixture(t)
	f.store.InsertErr = fmt.Errorf("relation does not exist")

	rows := validatedRows(t, importbatch.TypeEmployees, []map[string]string{
		{"full_name": "Alice"},
		{"full_name": "Bekzod"},
		{"full_name": "Carol"},
	})

	batch, err := f.service.Execute(f.ctx, services.ExecuteParams{
		Type: importbatch.TypeEmployees,
		Rows: rows,
	})
	require.NoError(t, err, "insert failures are aggregated, not raised")

	assert.Equal(t, importbatch.StatusFailed, batch.Status())
	assert.Equal(t, 0, batch.SuccessCount())
	assert.Equal(t, 3, batch.FailedCount())
	require.Len(t, batch.ErrorLog(), 3)
	for i, e := range batch.ErrorLog() {
		assert.Equal(t, i+1, e.Row)
		assert.Equal(t, "*", e.Field)
		assert.Equal(t, "relation does not exist", e.Error)
	}
}

func TestImportService_Execute_ChunkingAndProgress(t *testing.T) {
	f := newFixture(t)

	raw := make([]map[string]string, 250)
	for i := range raw {
		raw[i] = map[string]string{"full_name": fmt.Sprintf("Customer %d", i)}
	}
	rows := validatedRows(t, importbatch.TypeCustomers, raw)

	var progress [][2]int
	batch, err := f.service.Execute(f.ctx, services.ExecuteParams{
		Type: importbatch.TypeCustomers,
		Rows: rows,
		Progress: func(done, total int) {
			progress = append(progress, [2]int{done, total})
		},
	})
	require.NoError(t, err)

	assert.Equal(t, [][2]int{{200, 250}, {250, 250}}, progress)
	assert.Equal(t, 250, batch.SuccessCount())
	assert.Len(t, f.store.Rows("customers"), 250)
}

func TestImportService_Execute_BookingsResolveNames(t *testing.T) {
	f := newFixture(t)

	customers := validatedRows(t, importbatch.TypeCustomers, []map[string]string{
		{"full_name": "Jane Doe"},
	})
	_, err := f.service.Execute(f.ctx, services.ExecuteParams{
		Type: importbatch.TypeCustomers,
		Rows: customers,
	})
	require.NoError(t, err)

	bookings := validatedRows(t, importbatch.TypeBookings, []map[string]string{
		{
			"customer_name": "JANE DOE",
			"service_name":  "Nonexistent Cut",
			"start_time":    "2024-01-15 10:00",
		},
	})
	batch, err := f.service.Execute(f.ctx, services.ExecuteParams{
		Type: importbatch.TypeBookings,
		Rows: bookings,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, batch.SuccessCount())

	stored := f.store.Rows("bookings")
	require.Len(t, stored, 1)
	booking := stored[0]

	assert.NotNil(t, booking["customer_id"], "name lookup is case-insensitive")
	assert.Nil(t, booking["service_id"], "unresolved name leaves the reference null")
	assert.Nil(t, booking["employee_id"])
	assert.Equal(t, "completed", booking["status"])
	assert.Equal(t, false, booking["is_walk_in"])

	start := booking["start_time"].(time.Time)
	end := booking["end_time"].(time.Time)
	assert.Equal(t, 60*time.Minute, end.Sub(start), "end time defaults to one hour after start")
}

func TestImportService_Execute_BookingRowFailureContinues(t *testing.T) {
	f := newFixture(t)

	bookings := validatedRows(t, importbatch.TypeBookings, []map[string]string{
		{"start_time": "2024-01-15 10:00"},
		{"start_time": "2024-01-16 11:00"},
	})

	calls := 0
	f.store.InsertHook = func() error {
		calls++
		if calls == 1 {
			return fmt.Errorf("constraint violation")
		}
		return nil
	}

	batch, err := f.service.Execute(f.ctx, services.ExecuteParams{
		Type: importbatch.TypeBookings,
		Rows: bookings,
	})
	require.NoError(t, err)

	assert.Equal(t, importbatch.StatusCompleted, batch.Status())
	assert.Equal(t, 1, batch.SuccessCount())
	assert.Equal(t, 1, batch.FailedCount())
	require.Len(t, batch.ErrorLog(), 1)
	assert.Equal(t, 1, batch.ErrorLog()[0].Row)
	assert.Equal(t, "*", batch.ErrorLog()[0].Field)
	assert.Equal(t, "constraint violation", batch.ErrorLog()[0].Error)
}

func TestImportService_History_TenantScoped(t *testing.T) {
	f := newFixture(t)

	rows := validatedRows(t, importbatch.TypeCustomers, []map[string]string{
		{"full_name": "Jane Doe"},
	})
	_, err := f.service.Execute(f.ctx, services.ExecuteParams{
		Type: importbatch.TypeCustomers,
		Rows: rows,
	})
	require.NoError(t, err)

	otherTenant := composables.WithTenantID(context.Background(), uuid.New())
	history, err := f.service.History(otherTenant)
	require.NoError(t, err)
	assert.Empty(t, history)

	history, err = f.service.History(f.ctx)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
