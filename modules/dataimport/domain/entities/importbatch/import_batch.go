package importbatch

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusRolledBack Status = "rolled_back"
)

// ImportType is the closed set of entities the pipeline can ingest. Required
// fields, field kinds and insertion strategy all key off this enum.
type ImportType string

const (
	TypeCustomers ImportType = "customers"
	TypeServices  ImportType = "services"
	TypeEmployees ImportType = "employees"
	TypeBookings  ImportType = "bookings"
)

// RollbackWindowDays bounds how long after creation a batch may be reverted.
const RollbackWindowDays = 7

var (
	ErrNotFound          = errors.New("Import batch not found")
	ErrUnknownImportType = errors.New("Unknown import type")
	ErrInvalidTransition = errors.New("invalid import batch status transition")
)

func ParseType(raw string) (ImportType, error) {
	switch ImportType(raw) {
	case TypeCustomers, TypeServices, TypeEmployees, TypeBookings:
		return ImportType(raw), nil
	default:
		return "", ErrUnknownImportType
	}
}

func AllTypes() []ImportType {
	return []ImportType{TypeCustomers, TypeServices, TypeEmployees, TypeBookings}
}

// ImportError is one row- or chunk-scoped failure. Row is 1-based for user
// display; Field is "*" for whole-row and whole-chunk failures.
type ImportError struct {
	Row   int    `json:"row"`
	Field string `json:"field"`
	Error string `json:"error"`
}

// ImportBatch is one import attempt and its outcome. It is created by the
// import orchestrator and mutated only by the orchestrator (while processing)
// and the rollback path (terminal transition).
type ImportBatch struct {
	id            uuid.UUID
	tenantID      uuid.UUID
	importType    ImportType
	fileName      string
	columnMapping map[string]string
	totalRows     int
	successCount  int
	failedCount   int
	errorLog      []ImportError
	status        Status
	createdAt     time.Time
	completedAt   *time.Time
}

func New(tenantID uuid.UUID, importType ImportType, fileName string, columnMapping map[string]string, totalRows int) *ImportBatch {
	return &ImportBatch{
		id:            uuid.New(),
		tenantID:      tenantID,
		importType:    importType,
		fileName:      fileName,
		columnMapping: columnMapping,
		totalRows:     totalRows,
		status:        StatusPending,
		createdAt:     time.Now(),
	}
}

func Hydrate(
	id uuid.UUID,
	tenantID uuid.UUID,
	importType ImportType,
	fileName string,
	columnMapping map[string]string,
	totalRows int,
	successCount int,
	failedCount int,
	errorLog []ImportError,
	status Status,
	createdAt time.Time,
	completedAt *time.Time,
) *ImportBatch {
	return &ImportBatch{
		id:            id,
		tenantID:      tenantID,
		importType:    importType,
		fileName:      fileName,
		columnMapping: columnMapping,
		totalRows:     totalRows,
		successCount:  successCount,
		failedCount:   failedCount,
		errorLog:      errorLog,
		status:        status,
		createdAt:     createdAt,
		completedAt:   completedAt,
	}
}

func (b *ImportBatch) ID() uuid.UUID                   { return b.id }
func (b *ImportBatch) TenantID() uuid.UUID             { return b.tenantID }
func (b *ImportBatch) Type() ImportType                { return b.importType }
func (b *ImportBatch) FileName() string                { return b.fileName }
func (b *ImportBatch) ColumnMapping() map[string]string { return b.columnMapping }
func (b *ImportBatch) TotalRows() int                  { return b.totalRows }
func (b *ImportBatch) SuccessCount() int               { return b.successCount }
func (b *ImportBatch) FailedCount() int                { return b.failedCount }
func (b *ImportBatch) ErrorLog() []ImportError         { return b.errorLog }
func (b *ImportBatch) Status() Status                  { return b.status }
func (b *ImportBatch) CreatedAt() time.Time            { return b.createdAt }
func (b *ImportBatch) CompletedAt() *time.Time         { return b.completedAt }

// AgeDays is the whole number of days since the batch was created.
func (b *ImportBatch) AgeDays(now time.Time) int {
	return int(now.Sub(b.createdAt).Hours() / 24)
}

// BeginProcessing moves the batch from pending to processing.
func (b *ImportBatch) BeginProcessing() error {
	if b.status != StatusPending {
		return ErrInvalidTransition
	}
	b.status = StatusProcessing
	return nil
}

// Finalize records the aggregate outcome and moves the batch to its terminal
// import status: failed iff every row failed, completed otherwise.
func (b *ImportBatch) Finalize(successCount, failedCount int, errorLog []ImportError, completedAt time.Time) error {
	if b.status != StatusProcessing {
		return ErrInvalidTransition
	}
	b.successCount = successCount
	b.failedCount = failedCount
	b.errorLog = errorLog
	if failedCount == b.totalRows {
		b.status = StatusFailed
	} else {
		b.status = StatusCompleted
	}
	b.completedAt = &completedAt
	return nil
}

// MarkRolledBack is the only transition out of a terminal import status.
func (b *ImportBatch) MarkRolledBack() error {
	if b.status != StatusCompleted && b.status != StatusFailed {
		return ErrInvalidTransition
	}
	b.status = StatusRolledBack
	return nil
}
