package customer

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Customer is a salon client. Rows created by the bulk importer carry the
// batch id so a whole import can be reverted.
type Customer struct {
	id            uuid.UUID
	tenantID      uuid.UUID
	fullName      string
	email         string
	phone         string
	notes         string
	importBatchID *uuid.UUID
	createdAt     time.Time
	updatedAt     time.Time
}

func New(tenantID uuid.UUID, fullName string) *Customer {
	return &Customer{
		id:       uuid.New(),
		tenantID: tenantID,
		fullName: strings.TrimSpace(fullName),
	}
}

func Hydrate(
	id uuid.UUID,
	tenantID uuid.UUID,
	fullName string,
	email string,
	phone string,
	notes string,
	importBatchID *uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) *Customer {
	return &Customer{
		id:            id,
		tenantID:      tenantID,
		fullName:      strings.TrimSpace(fullName),
		email:         email,
		phone:         phone,
		notes:         notes,
		importBatchID: importBatchID,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (c *Customer) ID() uuid.UUID             { return c.id }
func (c *Customer) TenantID() uuid.UUID       { return c.tenantID }
func (c *Customer) FullName() string          { return c.fullName }
func (c *Customer) Email() string             { return c.email }
func (c *Customer) Phone() string             { return c.phone }
func (c *Customer) Notes() string             { return c.notes }
func (c *Customer) ImportBatchID() *uuid.UUID { return c.importBatchID }
func (c *Customer) CreatedAt() time.Time      { return c.createdAt }
func (c *Customer) UpdatedAt() time.Time      { return c.updatedAt }

func (c *Customer) SetEmail(email string) { c.email = email }
func (c *Customer) SetPhone(phone string) { c.phone = phone }
func (c *Customer) SetNotes(notes string) { c.notes = notes }
