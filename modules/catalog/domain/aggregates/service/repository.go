package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("service not found")

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Service, error)
	List(ctx context.Context) ([]*Service, error)
	Create(ctx context.Context, s *Service) (*Service, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
