package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/bookline-app/bookline/modules/catalog/domain/aggregates/service"
	"github.com/bookline-app/bookline/pkg/composables"
	"github.com/bookline-app/bookline/pkg/mapping"
)

const (
	serviceFindQuery = `
		SELECT id, tenant_id, name, description, category, duration_minutes, price_cents, currency, import_batch_id, created_at, updated_at
		FROM services`

	serviceInsertQuery = `
		INSERT INTO services (id, tenant_id, name, description, category, duration_minutes, price_cents, currency, import_batch_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())`

	serviceDeleteQuery = `DELETE FROM services WHERE tenant_id = $1 AND id = $2`
)

type serviceRow struct {
	ID              string
	TenantID        string
	Name            string
	Description     sql.NullString
	Category        sql.NullString
	DurationMinutes int
	PriceCents      int64
	Currency        sql.NullString
	ImportBatchID   sql.NullString
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type ServiceRepository struct{}

func NewServiceRepository() service.Repository {
	return &ServiceRepository{}
}

func (r *ServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*service.Service, error) {
	items, err := r.queryServices(ctx, serviceFindQuery+" WHERE tenant_id = $1 AND id = $2", id.String())
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, service.ErrNotFound
	}
	return items[0], nil
}

func (r *ServiceRepository) List(ctx context.Context) ([]*service.Service, error) {
	return r.queryServices(ctx, serviceFindQuery+" WHERE tenant_id = $1 ORDER BY name")
}

func (r *ServiceRepository) Create(ctx context.Context, s *service.Service) (*service.Service, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var importBatchID any
	if s.ImportBatchID() != nil {
		importBatchID = s.ImportBatchID().String()
	}

	if _, err := tx.Exec(
		ctx,
		serviceInsertQuery,
		s.ID().String(),
		tenantID.String(),
		s.Name(),
		mapping.ValueToSQLNullString(s.Description()),
		mapping.ValueToSQLNullString(s.Category()),
		s.DurationMinutes(),
		s.PriceCents(),
		s.Currency(),
		importBatchID,
	); err != nil {
		return nil, errors.Wrap(err, "failed to insert service")
	}
	return r.GetByID(ctx, s.ID())
}

func (r *ServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, serviceDeleteQuery, tenantID.String(), id.String())
	return err
}

func (r *ServiceRepository) queryServices(ctx context.Context, query string, extraArgs ...any) ([]*service.Service, error) {
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
		return nil, errors.Wrap(err, "failed to query services")
	}
	defer rows.Close()

	var services []*service.Service
	for rows.Next() {
		var row serviceRow
		if err := rows.Scan(
			&row.ID,
			&row.TenantID,
			&row.Name,
			&row.Description,
			&row.Category,
			&row.DurationMinutes,
			&row.PriceCents,
			&row.Currency,
			&row.ImportBatchID,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan service row")
		}
		domainService, err := toDomainService(&row)
		if err != nil {
			return nil, err
		}
		services = append(services, domainService)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return services, nil
}

func toDomainService(row *serviceRow) (*service.Service, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid service id")
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
	return service.Hydrate(
		id,
		tenantID,
		row.Name,
		row.Description.String,
		row.Category.String,
		row.DurationMinutes,
		row.PriceCents,
		row.Currency.String,
		importBatchID,
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}
