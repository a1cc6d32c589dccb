package service

import (
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
)

// Service is one offering in the salon's catalog. Prices are stored in minor
// units.
type Service struct {
	id              uuid.UUID
	tenantID        uuid.UUID
	name            string
	description     string
	category        string
	durationMinutes int
	priceCents      int64
	currency        string
	importBatchID   *uuid.UUID
	createdAt       time.Time
	updatedAt       time.Time
}

func New(tenantID uuid.UUID, name string, durationMinutes int, priceCents int64) *Service {
	return &Service{
		id:              uuid.New(),
		tenantID:        tenantID,
		name:            strings.TrimSpace(name),
		durationMinutes: durationMinutes,
		priceCents:      priceCents,
		currency:        money.USD,
	}
}

func Hydrate(
	id uuid.UUID,
	tenantID uuid.UUID,
	name string,
	description string,
	category string,
	durationMinutes int,
	priceCents int64,
	currency string,
	importBatchID *uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) *Service {
	if currency == "" {
		currency = money.USD
	}
	return &Service{
		id:              id,
		tenantID:        tenantID,
		name:            strings.TrimSpace(name),
		description:     description,
		category:        category,
		durationMinutes: durationMinutes,
		priceCents:      priceCents,
		currency:        currency,
		importBatchID:   importBatchID,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (s *Service) ID() uuid.UUID             { return s.id }
func (s *Service) TenantID() uuid.UUID       { return s.tenantID }
func (s *Service) Name() string              { return s.name }
func (s *Service) Description() string       { return s.description }
func (s *Service) Category() string          { return s.category }
func (s *Service) DurationMinutes() int      { return s.durationMinutes }
func (s *Service) PriceCents() int64         { return s.priceCents }
func (s *Service) Currency() string          { return s.currency }
func (s *Service) ImportBatchID() *uuid.UUID { return s.importBatchID }
func (s *Service) CreatedAt() time.Time      { return s.createdAt }
func (s *Service) UpdatedAt() time.Time      { return s.updatedAt }

// Price renders the stored minor units as a money value for display.
func (s *Service) Price() *money.Money {
	return money.New(s.priceCents, s.currency)
}

func (s *Service) Duration() time.Duration {
	return time.Duration(s.durationMinutes) * time.Minute
}

func (s *Service) SetDescription(description string) { s.description = description }
func (s *Service) SetCategory(category string)       { s.category = category }
