package persistence

import (
	"context"
	"strings"

	stderrors "errors"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bookline-app/bookline/modules/crm/domain/aggregates/customer"
	"github.com/bookline-app/bookline/modules/crm/infrastructure/persistence/models"
	"github.com/bookline-app/bookline/pkg/composables"
	"github.com/bookline-app/bookline/pkg/mapping"
)

const (
	customerFindQuery = `
		SELECT id, tenant_id, full_name, email, phone, notes, import_batch_id, created_at, updated_at
		FROM customers`

	customerInsertQuery = `
		INSERT INTO customers (id, tenant_id, full_name, email, phone, notes, import_batch_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`

	customerUpdateQuery = `
		UPDATE customers
		SET full_name = $1, email = $2, phone = $3, notes = $4, updated_at = now()
		WHERE tenant_id = $5 AND id = $6`

	customerDeleteQuery = `DELETE FROM customers WHERE tenant_id = $1 AND id = $2`
)

type CustomerRepository struct{}

func NewCustomerRepository() customer.Repository {
	return &CustomerRepository{}
}

func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	customers, err := r.queryCustomers(ctx, customerFindQuery+" WHERE tenant_id = $1 AND id = $2", id.String())
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, customer.ErrNotFound
	}
	return customers[0], nil
}

func (r *CustomerRepository) GetPaginated(ctx context.Context, params *customer.FindParams) ([]*customer.Customer, error) {
	if params == nil {
		params = &customer.FindParams{}
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	query := customerFindQuery + " WHERE tenant_id = $1"
	args := []any{}
	if q := strings.TrimSpace(params.Q); q != "" {
		query += " AND full_name ILIKE $2 ORDER BY created_at DESC LIMIT $3 OFFSET $4"
		args = append(args, "%"+q+"%", limit, offset)
	} else {
		query += " ORDER BY created_at DESC LIMIT $2 OFFSET $3"
		args = append(args, limit, offset)
	}
	return r.queryCustomers(ctx, query, args...)
}

func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) (*customer.Customer, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var importBatchID any
	if c.ImportBatchID() != nil {
		importBatchID = c.ImportBatchID().String()
	}

	if _, err := tx.Exec(
		ctx,
		customerInsertQuery,
		c.ID().String(),
		tenantID.String(),
		c.FullName(),
		mapping.ValueToSQLNullString(c.Email()),
		mapping.ValueToSQLNullString(c.Phone()),
		mapping.ValueToSQLNullString(c.Notes()),
		importBatchID,
	); err != nil {
		return nil, errors.Wrap(err, "failed to insert customer")
	}
	return r.GetByID(ctx, c.ID())
}

func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) (*customer.Customer, error) {
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
		customerUpdateQuery,
		c.FullName(),
		mapping.ValueToSQLNullString(c.Email()),
		mapping.ValueToSQLNullString(c.Phone()),
		mapping.ValueToSQLNullString(c.Notes()),
		tenantID.String(),
		c.ID().String(),
	); err != nil {
		return nil, errors.Wrap(err, "failed to update customer")
	}
	return r.GetByID(ctx, c.ID())
}

func (r *CustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, customerDeleteQuery, tenantID.String(), id.String())
	return err
}

func (r *CustomerRepository) queryCustomers(ctx context.Context, query string, extraArgs ...any) ([]*customer.Customer, error) {
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
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to query customers")
	}
	defer rows.Close()

	var customers []*customer.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(
			&c.ID,
			&c.TenantID,
			&c.FullName,
			&c.Email,
			&c.Phone,
			&c.Notes,
			&c.ImportBatchID,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan customer row")
		}
		domainCustomer, err := toDomainCustomer(&c)
		if err != nil {
			return nil, err
		}
		customers = append(customers, domainCustomer)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return customers, nil
}

func toDomainCustomer(c *models.Customer) (*customer.Customer, error) {
	id, err := uuid.Parse(c.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid customer id")
	}
	tenantID, err := uuid.Parse(c.TenantID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid tenant id")
	}
	var importBatchID *uuid.UUID
	if c.ImportBatchID.Valid {
		parsed, err := uuid.Parse(c.ImportBatchID.String)
		if err != nil {
			return nil, errors.Wrap(err, "invalid import batch id")
		}
		importBatchID = &parsed
	}
	return customer.Hydrate(
		id,
		tenantID,
		c.FullName,
		c.Email.String,
		c.Phone.String,
		c.Notes.String,
		importBatchID,
		c.CreatedAt,
		c.UpdatedAt,
	), nil
}
