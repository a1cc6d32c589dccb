package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/bookline-app/bookline/modules/scheduling/domain/aggregates/booking"
	"github.com/bookline-app/bookline/pkg/composables"
	"github.com/bookline-app/bookline/pkg/eventbus"
)

type BookingCreatedEvent struct {
	Booking *booking.Booking
}

type BookingDeletedEvent struct {
	ID uuid.UUID
}

type BookingService struct {
	repo      booking.Repository
	publisher eventbus.EventBus
}

func NewBookingService(repo booking.Repository, publisher eventbus.EventBus) *BookingService {
	return &BookingService{repo: repo, publisher: publisher}
}

func (s *BookingService) GetByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) (*booking.Booking, error) {
		return s.repo.GetByID(txCtx, id)
	})
}

func (s *BookingService) GetPaginated(ctx context.Context, params *booking.FindParams) ([]*booking.Booking, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) ([]*booking.Booking, error) {
		return s.repo.GetPaginated(txCtx, params)
	})
}

func (s *BookingService) Create(ctx context.Context, b *booking.Booking) (*booking.Booking, error) {
	created, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) (*booking.Booking, error) {
		return s.repo.Create(txCtx, b)
	})
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(&BookingCreatedEvent{Booking: created})
	return created, nil
}

func (s *BookingService) Delete(ctx context.Context, id uuid.UUID) error {
	err := composables.InTenantTx(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}
	s.publisher.Publish(&BookingDeletedEvent{ID: id})
	return nil
}
