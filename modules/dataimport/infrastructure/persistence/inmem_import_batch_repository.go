package persistence

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/bookline-app/bookline/modules/dataimport/domain/entities/importbatch"
	"github.com/bookline-app/bookline/pkg/composables"
)

type SafeMap[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V
}

func NewSafeMap[K comparable, V any]() *SafeMap[K, V] {
	return &SafeMap[K, V]{
		m: make(map[K]V),
	}
}

func (s *SafeMap[K, V]) Set(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
}

func (s *SafeMap[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, found := s.m[key]
	return val, found
}

func (s *SafeMap[K, V]) Delete(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
}

func (s *SafeMap[K, V]) Values() []V {
	s.mu.RLock()
	defer s.mu.RUnlock()
	values := make([]V, 0, len(s.m))
	for _, v := range s.m {
		values = append(values, v)
	}
	return values
}

type batchKey struct {
	tenantID uuid.UUID
	batchID  uuid.UUID
}

// InmemImportBatchRepository backs unit tests without a database. It stores
// hydrated copies so callers cannot mutate stored state through the aggregate
// they hold.
type InmemImportBatchRepository struct {
	storage *SafeMap[batchKey, *importbatch.ImportBatch]

	// UpdateErr, when set, is returned by the next Update call. Lets tests
	// exercise orchestrator failure paths.
	UpdateErr error
}

func NewInmemImportBatchRepository() *InmemImportBatchRepository {
	return &InmemImportBatchRepository{
		storage: NewSafeMap[batchKey, *importbatch.ImportBatch](),
	}
}

func (r *InmemImportBatchRepository) Create(ctx context.Context, b *importbatch.ImportBatch) (*importbatch.ImportBatch, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	r.storage.Set(batchKey{tenantID: tenantID, batchID: b.ID()}, snapshot(b))
	return r.GetByID(ctx, b.ID())
}

func (r *InmemImportBatchRepository) Update(ctx context.Context, b *importbatch.ImportBatch) error {
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return err
	}
	key := batchKey{tenantID: tenantID, batchID: b.ID()}
	if _, found := r.storage.Get(key); !found {
		return importbatch.ErrNotFound
	}
	r.storage.Set(key, snapshot(b))
	return nil
}

func (r *InmemImportBatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*importbatch.ImportBatch, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	b, found := r.storage.Get(batchKey{tenantID: tenantID, batchID: id})
	if !found {
		return nil, importbatch.ErrNotFound
	}
	return snapshot(b), nil
}

func (r *InmemImportBatchRepository) ListHistory(ctx context.Context) ([]*importbatch.ImportBatch, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	var batches []*importbatch.ImportBatch
	for _, b := range r.storage.Values() {
		if b.TenantID() == tenantID {
			batches = append(batches, snapshot(b))
		}
	}
	sort.Slice(batches, func(i, j int) bool {
		return batches[i].CreatedAt().After(batches[j].CreatedAt())
	})
	return batches, nil
}

func (r *InmemImportBatchRepository) MarkRolledBack(ctx context.Context, id uuid.UUID) (bool, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return false, err
	}
	key := batchKey{tenantID: tenantID, batchID: id}

	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()
	b, found := r.storage.m[key]
	if !found {
		return false, nil
	}
	if b.Status() != importbatch.StatusCompleted && b.Status() != importbatch.StatusFailed {
		return false, nil
	}
	rolled := snapshot(b)
	if err := rolled.MarkRolledBack(); err != nil {
		return false, err
	}
	r.storage.m[key] = rolled
	return true, nil
}

func snapshot(b *importbatch.ImportBatch) *importbatch.ImportBatch {
	errorLog := slices.Clone(b.ErrorLog())
	columnMapping := maps.Clone(b.ColumnMapping())
	return importbatch.Hydrate(
		b.ID(),
		b.TenantID(),
		b.Type(),
		b.FileName(),
		columnMapping,
		b.TotalRows(),
		b.SuccessCount(),
		b.FailedCount(),
		errorLog,
		b.Status(),
		b.CreatedAt(),
		b.CompletedAt(),
	)
}
