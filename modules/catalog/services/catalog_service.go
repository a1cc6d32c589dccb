package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/bookline-app/bookline/modules/catalog/domain/aggregates/service"
	"github.com/bookline-app/bookline/pkg/composables"
	"github.com/bookline-app/bookline/pkg/eventbus"
)

type ServiceCreatedEvent struct {
	Service *service.Service
}

type ServiceDeletedEvent struct {
	ID uuid.UUID
}

type CatalogService struct {
	repo      service.Repository
	publisher eventbus.EventBus
}

func NewCatalogService(repo service.Repository, publisher eventbus.EventBus) *CatalogService {
	return &CatalogService{repo: repo, publisher: publisher}
}

func (s *CatalogService) GetByID(ctx context.Context, id uuid.UUID) (*service.Service, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) (*service.Service, error) {
		return s.repo.GetByID(txCtx, id)
	})
}

func (s *CatalogService) List(ctx context.Context) ([]*service.Service, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) ([]*service.Service, error) {
		return s.repo.List(txCtx)
	})
}

func (s *CatalogService) Create(ctx context.Context, entity *service.Service) (*service.Service, error) {
	created, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) (*service.Service, error) {
		return s.repo.Create(txCtx, entity)
	})
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(&ServiceCreatedEvent{Service: created})
	return created, nil
}

func (s *CatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	err := composables.InTenantTx(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}
	s.publisher.Publish(&ServiceDeletedEvent{ID: id})
	return nil
}
