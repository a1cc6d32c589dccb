package employee

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("employee not found")

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	List(ctx context.Context) ([]*Employee, error)
	Create(ctx context.Context, e *Employee) (*Employee, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
