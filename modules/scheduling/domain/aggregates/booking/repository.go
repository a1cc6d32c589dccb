package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("booking not found")

type FindParams struct {
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]*Booking, error)
	Create(ctx context.Context, b *Booking) (*Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
