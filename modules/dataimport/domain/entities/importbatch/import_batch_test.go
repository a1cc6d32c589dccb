package importbatch

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	for _, raw := range []string{"customers", "services", "employees", "bookings"} {
		parsed, err := ParseType(raw)
		require.NoError(t, err)
		assert.Equal(t, ImportType(raw), parsed)
	}

	_, err := ParseType("invoices")
	assert.ErrorIs(t, err, ErrUnknownImportType)
}

func TestImportBatch_Lifecycle(t *testing.T) {
	b := New(uuid.New(), TypeCustomers, "customers.csv", map[string]string{"Name": "full_name"}, 3)
	assert.Equal(t, StatusPending, b.Status())
	assert.NotEqual(t, uuid.Nil, b.ID())

	require.NoError(t, b.BeginProcessing())
	assert.Equal(t, StatusProcessing, b.Status())

	done := time.Now()
	require.NoError(t, b.Finalize(2, 1, []ImportError{{Row: 2, Field: "phone", Error: "Invalid phone format"}}, done))
	assert.Equal(t, StatusCompleted, b.Status())
	assert.Equal(t, 2, b.SuccessCount())
	assert.Equal(t, 1, b.FailedCount())
	require.NotNil(t, b.CompletedAt())
	assert.Equal(t, done, *b.CompletedAt())

	require.NoError(t, b.MarkRolledBack())
	assert.Equal(t, StatusRolledBack, b.Status())
}

func TestImportBatch_FinalizeAllFailed(t *testing.T) {
	b := New(uuid.New(), TypeEmployees, "", nil, 3)
	require.NoError(t, b.BeginProcessing())
	require.NoError(t, b.Finalize(0, 3, nil, time.Now()))
	assert.Equal(t, StatusFailed, b.Status())

	// failed batches can still be rolled back
	require.NoError(t, b.MarkRolledBack())
}

func TestImportBatch_InvalidTransitions(t *testing.T) {
	b := New(uuid.New(), TypeServices, "", nil, 1)

	// cannot finalize or roll back a pending batch
	assert.ErrorIs(t, b.Finalize(1, 0, nil, time.Now()), ErrInvalidTransition)
	assert.ErrorIs(t, b.MarkRolledBack(), ErrInvalidTransition)

	require.NoError(t, b.BeginProcessing())
	// no re-entry into processing
	assert.ErrorIs(t, b.BeginProcessing(), ErrInvalidTransition)
	// rollback of an in-flight batch is rejected at the entity level too
	assert.ErrorIs(t, b.MarkRolledBack(), ErrInvalidTransition)

	require.NoError(t, b.Finalize(1, 0, nil, time.Now()))
	require.NoError(t, b.MarkRolledBack())
	// no double rollback
	assert.ErrorIs(t, b.MarkRolledBack(), ErrInvalidTransition)
}

func TestImportBatch_AgeDays(t *testing.T) {
	b := New(uuid.New(), TypeBookings, "", nil, 1)
	assert.Equal(t, 0, b.AgeDays(b.CreatedAt()))
	assert.Equal(t, 7, b.AgeDays(b.CreatedAt().Add(7*24*time.Hour)))
	assert.Equal(t, 8, b.AgeDays(b.CreatedAt().Add(8*24*time.Hour+time.Minute)))
}
