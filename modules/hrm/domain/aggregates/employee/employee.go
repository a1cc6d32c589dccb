package employee

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	id            uuid.UUID
	tenantID      uuid.UUID
	fullName      string
	email         string
	phone         string
	role          string
	importBatchID *uuid.UUID
	createdAt     time.Time
	updatedAt     time.Time
}

func New(tenantID uuid.UUID, fullName string, role string) *Employee {
	return &Employee{
		id:       uuid.New(),
		tenantID: tenantID,
		fullName: strings.TrimSpace(fullName),
		role:     strings.TrimSpace(role),
	}
}

func Hydrate(
	id uuid.UUID,
	tenantID uuid.UUID,
	fullName string,
	email string,
	phone string,
	role string,
	importBatchID *uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) *Employee {
	return &Employee{
		id:            id,
		tenantID:      tenantID,
		fullName:      strings.TrimSpace(fullName),
		email:         email,
		phone:         phone,
		role:          role,
		importBatchID: importBatchID,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (e *Employee) ID() uuid.UUID             { return e.id }
func (e *Employee) TenantID() uuid.UUID       { return e.tenantID }
func (e *Employee) FullName() string          { return e.fullName }
func (e *Employee) Email() string             { return e.email }
func (e *Employee) Phone() string             { return e.phone }
func (e *Employee) Role() string              { return e.role }
func (e *Employee) ImportBatchID() *uuid.UUID { return e.importBatchID }
func (e *Employee) CreatedAt() time.Time      { return e.createdAt }
func (e *Employee) UpdatedAt() time.Time      { return e.updatedAt }

func (e *Employee) SetEmail(email string) { e.email = email }
func (e *Employee) SetPhone(phone string) { e.phone = phone }
