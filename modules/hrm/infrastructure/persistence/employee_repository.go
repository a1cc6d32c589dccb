package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/bookline-app/bookline/modules/hrm/domain/aggregates/employee"
	"github.com/bookline-app/bookline/pkg/composables"
	"github.com/bookline-app/bookline/pkg/mapping"
)

const (
	employeeFindQuery = `
		SELECT id, tenant_id, full_name, email, phone, role, import_batch_id, created_at, updated_at
		FROM employees`

	employeeInsertQuery = `
		INSERT INTO employees (id, tenant_id, full_name, email, phone, role, import_batch_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`

	employeeDeleteQuery = `DELETE FROM employees WHERE tenant_id = $1 AND id = $2`
)

type employeeRow struct {
	ID            string
	TenantID      string
	FullName      string
	Email         sql.NullString
	Phone         sql.NullString
	Role          sql.NullString
	ImportBatchID sql.NullString
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type EmployeeRepository struct{}

func NewEmployeeRepository() employee.Repository {
	return &EmployeeRepository{}
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
	employees, err := r.queryEmployees(ctx, employeeFindQuery+" WHERE tenant_id = $1 AND id = $2", id.String())
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, employee.ErrNotFound
	}
	return employees[0], nil
}

func (r *EmployeeRepository) List(ctx context.Context) ([]*employee.Employee, error) {
	return r.queryEmployees(ctx, employeeFindQuery+" WHERE tenant_id = $1 ORDER BY full_name")
}

func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var importBatchID any
	if e.ImportBatchID() != nil {
		importBatchID = e.ImportBatchID().String()
	}

	if _, err := tx.Exec(
		ctx,
		employeeInsertQuery,
		e.ID().String(),
		tenantID.String(),
		e.FullName(),
		mapping.ValueToSQLNullString(e.Email()),
		mapping.ValueToSQLNullString(e.Phone()),
		mapping.ValueToSQLNullString(e.Role()),
		importBatchID,
	); err != nil {
		return nil, errors.Wrap(err, "failed to insert employee")
	}
	return r.GetByID(ctx, e.ID())
}

func (r *EmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, employeeDeleteQuery, tenantID.String(), id.String())
	return err
}

func (r *EmployeeRepository) queryEmployees(ctx context.Context, query string, extraArgs ...any) ([]*employee.Employee, error) {
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
		return nil, errors.Wrap(err, "failed to query employees")
	}
	defer rows.Close()

	var employees []*employee.Employee
	for rows.Next() {
		var row employeeRow
		if err := rows.Scan(
			&row.ID,
			&row.TenantID,
			&row.FullName,
			&row.Email,
			&row.Phone,
			&row.Role,
			&row.ImportBatchID,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan employee row")
		}
		domainEmployee, err := toDomainEmployee(&row)
		if err != nil {
			return nil, err
		}
		employees = append(employees, domainEmployee)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return employees, nil
}

func toDomainEmployee(row *employeeRow) (*employee.Employee, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid employee id")
	}
	tenantID, err := uuid.Parse(row.TenantID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid tenant id")
	}
	var importBatchID *uuid.UUID
	if row.ImportBatchID.Valid {
		parsed, err := uuid.Parse(row.ImportBatchID.String)
		if err != nil {
			return nil, errors.Wrap(err, "invalid import batch id")
		}
		importBatchID = &parsed
	}
	return employee.Hydrate(
		id,
		tenantID,
		row.FullName,
		row.Email.String,
		row.Phone.String,
		row.Role.String,
		importBatchID,
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}
