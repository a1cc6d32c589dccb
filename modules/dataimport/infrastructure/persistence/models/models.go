package models

import (
	"database/sql"
	"time"
)

type ImportBatch struct {
	ID            string
	TenantID      string
	ImportType    string
	FileName      string
	ColumnMapping []byte
	TotalRows     int
	SuccessCount  int
	FailedCount   int
	ErrorLog      []byte
	Status        string
	CreatedAt     time.Time
	CompletedAt   sql.NullTime
}
