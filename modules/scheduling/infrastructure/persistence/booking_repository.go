package persistence

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/bookline-app/bookline/modules/scheduling/domain/aggregates/booking"
	"github.com/bookline-app/bookline/pkg/composables"
	"github.com/bookline-app/bookline/pkg/mapping"
)

const (
	bookingFindQuery = `
		SELECT id, tenant_id, customer_id, service_id, employee_id, start_time, end_time, status, is_walk_in, notes, import_batch_id, created_at, updated_at
		FROM bookings`

	bookingInsertQuery = `
		INSERT INTO bookings (id, tenant_id, customer_id, service_id, employee_id, start_time, end_time, status, is_walk_in, notes, import_batch_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())`

	bookingDeleteQuery = `DELETE FROM bookings WHERE tenant_id = $1 AND id = $2`
)

type bookingRow struct {
	ID            string
	TenantID      string
	CustomerID    sql.NullString
	ServiceID     sql.NullString
	EmployeeID    sql.NullString
	StartTime     time.Time
	EndTime       time.Time
	Status        string
	IsWalkIn      bool
	Notes         sql.NullString
	ImportBatchID sql.NullString
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type BookingRepository struct{}

func NewBookingRepository() booking.Repository {
	return &BookingRepository{}
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	bookings, err := r.queryBookings(ctx, bookingFindQuery+" WHERE tenant_id = $1 AND id = $2", id.String())
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, booking.ErrNotFound
	}
	return bookings[0], nil
}

func (r *BookingRepository) GetPaginated(ctx context.Context, params *booking.FindParams) ([]*booking.Booking, error) {
	if params == nil {
		params = &booking.FindParams{}
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	query := bookingFindQuery + " WHERE tenant_id = $1"
	args := []any{}
	n := 2
	if !params.From.IsZero() {
		query += " AND start_time >= $" + strconv.Itoa(n)
		args = append(args, params.From)
		n++
	}
	if !params.To.IsZero() {
		query += " AND start_time < $" + strconv.Itoa(n)
		args = append(args, params.To)
		n++
	}
	query += " ORDER BY start_time DESC LIMIT $" + strconv.Itoa(n) + " OFFSET $" + strconv.Itoa(n+1)
	args = append(args, limit, offset)

	return r.queryBookings(ctx, query, args...)
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (*booking.Booking, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(
		ctx,
		bookingInsertQuery,
		b.ID().String(),
		tenantID.String(),
		nullableUUIDArg(b.CustomerID()),
		nullableUUIDArg(b.ServiceID()),
		nullableUUIDArg(b.EmployeeID()),
		b.StartTime(),
		b.EndTime(),
		string(b.Status()),
		b.IsWalkIn(),
		mapping.ValueToSQLNullString(b.Notes()),
		nullableUUIDArg(b.ImportBatchID()),
	); err != nil {
		return nil, errors.Wrap(err, "failed to insert booking")
	}
	return r.GetByID(ctx, b.ID())
}

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, bookingDeleteQuery, tenantID.String(), id.String())
	return err
}

func (r *BookingRepository) queryBookings(ctx context.Context, query string, extraArgs ...any) ([]*booking.Booking, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	args := append([]any{tenantID.String()}, extraArgs...)
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query bookings")
	}
	defer rows.Close()

	var bookings []*booking.Booking
	for rows.Next() {
		var row bookingRow
		if err := rows.Scan(
			&row.ID,
			&row.TenantID,
			&row.CustomerID,
			&row.ServiceID,
			&row.EmployeeID,
			&row.StartTime,
			&row.EndTime,
			&row.Status,
			&row.IsWalkIn,
			&row.Notes,
			&row.ImportBatchID,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan booking row")
		}
		domainBooking, err := toDomainBooking(&row)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, domainBooking)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return bookings, nil
}

func toDomainBooking(row *bookingRow) (*booking.Booking, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid booking id")
	}
	tenantID, err := uuid.Parse(row.TenantID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid tenant id")
	}
	customerID, err := parseNullableUUID(row.CustomerID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid customer id")
	}
	serviceID, err := parseNullableUUID(row.ServiceID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid service id")
	}
	employeeID, err := parseNullableUUID(row.EmployeeID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid employee id")
	}
	importBatchID, err := parseNullableUUID(row.ImportBatchID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid import batch id")
	}
	return booking.Hydrate(
		id,
		tenantID,
		customerID,
		serviceID,
		employeeID,
		row.StartTime,
		row.EndTime,
		booking.Status(row.Status),
		row.IsWalkIn,
		row.Notes.String,
		importBatchID,
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}

func nullableUUIDArg(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}

func parseNullableUUID(v sql.NullString) (*uuid.UUID, error) {
	if !v.Valid {
		return nil, nil
	}
	id, err := uuid.Parse(v.String)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
