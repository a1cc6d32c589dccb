package persistence

import (
	"context"
	"strings"
	"sync"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/bookline-app/bookline/modules/dataimport/services"
)

type storedRow struct {
	ID   uuid.UUID
	Data map[string]any
}

// InmemTenantStore keeps imported rows per collection, in insertion order.
// Single tenant by construction; tests run in one tenant scope.
type InmemTenantStore struct {
	mu          sync.Mutex
	collections map[string][]storedRow

	// InsertErr, when set, fails every BulkInsert. InsertHook, when set, runs
	// before each BulkInsert and can fail individual calls. DeleteErr fails
	// DeleteByImportBatch.
	InsertErr  error
	InsertHook func() error
	DeleteErr  error
}

var _ services.TenantStore = (*InmemTenantStore)(nil)

func NewInmemTenantStore() *InmemTenantStore {
	return &InmemTenantStore{
		collections: make(map[string][]storedRow),
	}
}

func (s *InmemTenantStore) BulkInsert(ctx context.Context, collection string, rows []map[string]any) error {
	if s.InsertErr != nil {
		return s.InsertErr
	}
	if s.InsertHook != nil {
		if err := s.InsertHook(); err != nil {
			return err
		}
	}
	if _, ok := collectionSpecs[collection]; !ok {
		return errors.Errorf("unknown import collection: %s", collection)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range rows {
		data := make(map[string]any, len(row))
		for k, v := range row {
			data[k] = v
		}
		s.collections[collection] = append(s.collections[collection], storedRow{
			ID:   uuid.New(),
			Data: data,
		})
	}
	return nil
}

func (s *InmemTenantStore) FindIDByName(ctx context.Context, collection string, name string) (*uuid.UUID, error) {
	spec, ok := collectionSpecs[collection]
	if !ok || spec.nameColumn == "" {
		return nil, errors.Errorf("collection does not support name lookup: %s", collection)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.collections[collection] {
		stored, _ := row.Data[spec.nameColumn].(string)
		if strings.EqualFold(stored, name) {
			id := row.ID
			return &id, nil
		}
	}
	return nil, nil
}

func (s *InmemTenantStore) DeleteByImportBatch(ctx context.Context, collection string, batchID uuid.UUID) (int64, error) {
	if s.DeleteErr != nil {
		return 0, s.DeleteErr
	}
	if _, ok := collectionSpecs[collection]; !ok {
		return 0, errors.Errorf("unknown import collection: %s", collection)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.collections[collection][:0]
	var deleted int64
	for _, row := range s.collections[collection] {
		if row.Data["import_batch_id"] == batchID {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	s.collections[collection] = kept
	return deleted, nil
}

// Rows returns a copy of the stored rows for a collection.
func (s *InmemTenantStore) Rows(collection string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([]map[string]any, 0, len(s.collections[collection]))
	for _, row := range s.collections[collection] {
		data := make(map[string]any, len(row.Data))
		for k, v := range row.Data {
			data[k] = v
		}
		rows = append(rows, data)
	}
	return rows
}
