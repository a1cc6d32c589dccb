package models

import (
	"database/sql"
	"time"
)

type Customer struct {
	ID            string
	TenantID      string
	FullName      string
	Email         sql.NullString
	Phone         sql.NullString
	Notes         sql.NullString
	ImportBatchID sql.NullString
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
