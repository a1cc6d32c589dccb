package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookline-app/bookline/modules/dataimport/domain/entities/importbatch"
	"github.com/bookline-app/bookline/modules/dataimport/services"
	"github.com/bookline-app/bookline/pkg/composables"
)

func importCustomers(t *testing.T, f *fixture, names ...string) *importbatch.ImportBatch {
	t.Helper()
	raw := make([]map[string]string, 0, len(names))
	for _, name := range names {
		raw = append(raw, map[string]string{"full_name": name})
	}
	rows := validatedRows(t, importbatch.TypeCustomers, raw)
	batch, err := f.service.Execute(f.ctx, services.ExecuteParams{
		Type: importbatch.TypeCustomers,
		Rows: rows,
	})
	require.NoError(t, err)
	return batch
}

func seedBatch(t *testing.T, f *fixture, b *importbatch.ImportBatch) {
	t.Helper()
	_, err := f.repo.Create(f.ctx, b)
	require.NoError(t, err)
}

func TestImportService_Rollback_DeletesImportedRows(t *testing.T) {
	f := newFixture(t)
	batch := importCustomers(t, f, "Jane Doe", "Bob Smith")
	require.Len(t, f.store.Rows("customers"), 2)

	rolled, err := f.service.Rollback(f.ctx, batch.ID())
	require.NoError(t, err)

	assert.Equal(t, importbatch.StatusRolledBack, rolled.Status())
	assert.Empty(t, f.store.Rows("customers"))
}

func TestImportService_Rollback_OnlyDeletesOwnBatch(t *testing.T) {
	f := newFixture(t)
	first := importCustomers(t, f, "Jane Doe")
	_ = importCustomers(t, f, "Bob Smith")
	require.Len(t, f.store.Rows("customers"), 2)

	_, err := f.service.Rollback(f.ctx, first.ID())
	require.NoError(t, err)

	remaining := f.store.Rows("customers")
	require.Len(t, remaining, 1)
	assert.Equal(t, "Bob Smith", remaining[0]["full_name"])
}

func TestImportService_Rollback_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Rollback(f.ctx, uuid.New())
	require.Error(t, err)
	assert.EqualError(t, err, "Import batch not found")
}

func TestImportService_Rollback_AlreadyRolledBack(t *testing.T) {
	f := newFixture(t)
	batch := importCustomers(t, f, "Jane Doe")

	_, err := f.service.Rollback(f.ctx, batch.ID())
	require.NoError(t, err)

	_, err = f.service.Rollback(f.ctx, batch.ID())
	require.Error(t, err)
	assert.EqualError(t, err, "Already rolled back")
}

func TestImportService_Rollback_InProgressGuard(t *testing.T) {
	f := newFixture(t)

	tenantID := mustTenantID(t, f.ctx)
	batch := importbatch.New(tenantID, importbatch.TypeCustomers, "", nil, 10)
	require.NoError(t, batch.BeginProcessing())
	seedBatch(t, f, batch)

	_, err := f.service.Rollback(f.ctx, batch.ID())
	require.Error(t, err)
	assert.EqualError(t, err, "Import is still in progress")
}

func TestImportService_Rollback_WindowExpired(t *testing.T) {
	f := newFixture(t)

	tenantID := mustTenantID(t, f.ctx)
	createdAt := time.Now().AddDate(0, 0, -8)
	completedAt := createdAt.Add(time.Minute)
	batch := importbatch.Hydrate(
		uuid.New(),
		tenantID,
		importbatch.TypeCustomers,
		"old.csv",
		nil,
		5,
		5,
		0,
		nil,
		importbatch.StatusCompleted,
		createdAt,
		&completedAt,
	)
	seedBatch(t, f, batch)

	_, err := f.service.Rollback(f.ctx, batch.ID())
	require.Error(t, err)
	assert.EqualError(t, err, "Rollback window expired (7 days)")
}

func TestImportService_Rollback_SevenDaysOldStillAllowed(t *testing.T) {
	f := newFixture(t)

	tenantID := mustTenantID(t, f.ctx)
	createdAt := time.Now().AddDate(0, 0, -7).Add(time.Hour)
	completedAt := createdAt.Add(time.Minute)
	batch := importbatch.Hydrate(
		uuid.New(),
		tenantID,
		importbatch.TypeCustomers,
		"week-old.csv",
		nil,
		1,
		1,
		0,
		nil,
		importbatch.StatusCompleted,
		createdAt,
		&completedAt,
	)
	seedBatch(t, f, batch)

	rolled, err := f.service.Rollback(f.ctx, batch.ID())
	require.NoError(t, err)
	assert.Equal(t, importbatch.StatusRolledBack, rolled.Status())
}

func TestImportService_Rollback_DeleteErrorLeavesBatchUntouched(t *testing.T) {
	f := newFixture(t)
	batch := importCustomers(t, f, "Jane Doe")

	f.store.DeleteErr = fmt.Errorf("connection reset")
	_, err := f.service.Rollback(f.ctx, batch.ID())
	require.Error(t, err)
	assert.EqualError(t, err, "connection reset")

	unchanged, err := f.service.GetBatch(f.ctx, batch.ID())
	require.NoError(t, err)
	assert.Equal(t, importbatch.StatusCompleted, unchanged.Status())
	assert.Len(t, f.store.Rows("customers"), 1)
}

func TestImportService_Rollback_FailedBatchIsEligible(t *testing.T) {
	f := newFixture(t)
	f.store.InsertErr = fmt.Errorf("relation does not exist")
	batch := importCustomers(t, f, "Jane Doe")
	require.Equal(t, importbatch.StatusFailed, batch.Status())

	f.store.InsertErr = nil
	rolled, err := f.service.Rollback(f.ctx, batch.ID())
	require.NoError(t, err)
	assert.Equal(t, importbatch.StatusRolledBack, rolled.Status())
}

func mustTenantID(t *testing.T, ctx context.Context) uuid.UUID {
	t.Helper()
	tenantID, err := composables.UseTenantID(ctx)
	require.NoError(t, err)
	return tenantID
}
