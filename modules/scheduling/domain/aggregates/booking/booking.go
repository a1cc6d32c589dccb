package booking

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// Booking links a customer, a catalog service and an employee for a time
// slot. Any of the three references may be absent; imported historical
// bookings often name people that no longer exist.
type Booking struct {
	id            uuid.UUID
	tenantID      uuid.UUID
	customerID    *uuid.UUID
	serviceID     *uuid.UUID
	employeeID    *uuid.UUID
	startTime     time.Time
	endTime       time.Time
	status        Status
	isWalkIn      bool
	notes         string
	importBatchID *uuid.UUID
	createdAt     time.Time
	updatedAt     time.Time
}

func New(tenantID uuid.UUID, startTime, endTime time.Time) *Booking {
	return &Booking{
		id:        uuid.New(),
		tenantID:  tenantID,
		startTime: startTime,
		endTime:   endTime,
		status:    StatusScheduled,
	}
}

func Hydrate(
	id uuid.UUID,
	tenantID uuid.UUID,
	customerID *uuid.UUID,
	serviceID *uuid.UUID,
	employeeID *uuid.UUID,
	startTime time.Time,
	endTime time.Time,
	status Status,
	isWalkIn bool,
	notes string,
	importBatchID *uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		tenantID:      tenantID,
		customerID:    customerID,
		serviceID:     serviceID,
		employeeID:    employeeID,
		startTime:     startTime,
		endTime:       endTime,
		status:        status,
		isWalkIn:      isWalkIn,
		notes:         notes,
		importBatchID: importBatchID,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID             { return b.id }
func (b *Booking) TenantID() uuid.UUID       { return b.tenantID }
func (b *Booking) CustomerID() *uuid.UUID    { return b.customerID }
func (b *Booking) ServiceID() *uuid.UUID     { return b.serviceID }
func (b *Booking) EmployeeID() *uuid.UUID    { return b.employeeID }
func (b *Booking) StartTime() time.Time      { return b.startTime }
func (b *Booking) EndTime() time.Time        { return b.endTime }
func (b *Booking) Status() Status            { return b.status }
func (b *Booking) IsWalkIn() bool            { return b.isWalkIn }
func (b *Booking) Notes() string             { return b.notes }
func (b *Booking) ImportBatchID() *uuid.UUID { return b.importBatchID }
func (b *Booking) CreatedAt() time.Time      { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time      { return b.updatedAt }

func (b *Booking) SetCustomerID(id *uuid.UUID) { b.customerID = id }
func (b *Booking) SetServiceID(id *uuid.UUID)  { b.serviceID = id }
func (b *Booking) SetEmployeeID(id *uuid.UUID) { b.employeeID = id }
func (b *Booking) SetStatus(status Status)     { b.status = status }
func (b *Booking) SetWalkIn(walkIn bool)       { b.isWalkIn = walkIn }
func (b *Booking) SetNotes(notes string)       { b.notes = notes }

func (b *Booking) Duration() time.Duration {
	return b.endTime.Sub(b.startTime)
}
