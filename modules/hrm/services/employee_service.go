package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/bookline-app/bookline/modules/hrm/domain/aggregates/employee"
	"github.com/bookline-app/bookline/pkg/composables"
	"github.com/bookline-app/bookline/pkg/eventbus"
)

type EmployeeCreatedEvent struct {
	Employee *employee.Employee
}

type EmployeeDeletedEvent struct {
	ID uuid.UUID
}

type EmployeeService struct {
	repo      employee.Repository
	publisher eventbus.EventBus
}

func NewEmployeeService(repo employee.Repository, publisher eventbus.EventBus) *EmployeeService {
	return &EmployeeService{repo: repo, publisher: publisher}
}

func (s *EmployeeService) GetByID(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) (*employee.Employee, error) {
		return s.repo.GetByID(txCtx, id)
	})
}

func (s *EmployeeService) List(ctx context.Context) ([]*employee.Employee, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) ([]*employee.Employee, error) {
		return s.repo.List(txCtx)
	})
}

func (s *EmployeeService) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	created, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) (*employee.Employee, error) {
		return s.repo.Create(txCtx, e)
	})
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(&EmployeeCreatedEvent{Employee: created})
	return created, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	err := composables.InTenantTx(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}
	s.publisher.Publish(&EmployeeDeletedEvent{ID: id})
	return nil
}
