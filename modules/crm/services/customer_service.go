package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/bookline-app/bookline/modules/crm/domain/aggregates/customer"
	"github.com/bookline-app/bookline/pkg/composables"
	"github.com/bookline-app/bookline/pkg/eventbus"
)

type CustomerCreatedEvent struct {
	Customer *customer.Customer
}

type CustomerDeletedEvent struct {
	ID uuid.UUID
}

type CustomerService struct {
	repo      customer.Repository
	publisher eventbus.EventBus
}

func NewCustomerService(repo customer.Repository, publisher eventbus.EventBus) *CustomerService {
	return &CustomerService{repo: repo, publisher: publisher}
}

func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) (*customer.Customer, error) {
		return s.repo.GetByID(txCtx, id)
	})
}

func (s *CustomerService) GetPaginated(ctx context.Context, params *customer.FindParams) ([]*customer.Customer, error) {
	if params != nil {
		params.Q = strings.TrimSpace(params.Q)
	}
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) ([]*customer.Customer, error) {
		return s.repo.GetPaginated(txCtx, params)
	})
}

func (s *CustomerService) Create(ctx context.Context, c *customer.Customer) (*customer.Customer, error) {
	created, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) (*customer.Customer, error) {
		return s.repo.Create(txCtx, c)
	})
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(&CustomerCreatedEvent{Customer: created})
	return created, nil
}

func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	err := composables.InTenantTx(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}
	s.publisher.Publish(&CustomerDeletedEvent{ID: id})
	return nil
}
