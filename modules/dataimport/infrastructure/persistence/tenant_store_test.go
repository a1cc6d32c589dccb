package persistence_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookline-app/bookline/modules/dataimport/infrastructure/persistence"
	"github.com/bookline-app/bookline/pkg/composables"
)

// recordingTx captures statements issued against a context transaction.
type recordingTx struct {
	execs []string
}

func (t *recordingTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *recordingTx) Commit(ctx context.Context) error          { return nil }
func (t *recordingTx) Rollback(ctx context.Context) error        { return nil }
func (t *recordingTx) Conn() *pgx.Conn                           { return nil }
func (t *recordingTx) LargeObjects() pgx.LargeObjects            { return pgx.LargeObjects{} }

func (t *recordingTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (t *recordingTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	return nil
}

func (t *recordingTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (t *recordingTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.execs = append(t.execs, sql)
	return pgconn.CommandTag{}, nil
}

func (t *recordingTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, pgx.ErrNoRows
}

func (t *recordingTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

// A chunk insert owns its transaction. Running it on a transaction inherited
// from the request would let one failed chunk abort every later chunk and the
// batch row itself, so the store must reach for the pool even when the
// context carries a transaction.
func TestPgTenantStore_BulkInsertIgnoresAmbientTx(t *testing.T) {
	tx := &recordingTx{}
	ctx := composables.WithTenantID(context.Background(), uuid.New())
	ctx = composables.WithTx(ctx, tx)

	store := persistence.NewPgTenantStore()
	err := store.BulkInsert(ctx, "customers", []map[string]any{{"full_name": "Jane Doe"}})

	require.ErrorIs(t, err, composables.ErrNoPool)
	assert.Empty(t, tx.execs, "chunk insert ran on the caller's transaction")
}
