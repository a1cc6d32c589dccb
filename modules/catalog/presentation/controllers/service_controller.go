package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/bookline-app/bookline/modules/catalog/domain/aggregates/service"
	"github.com/bookline-app/bookline/modules/catalog/services"
	"github.com/bookline-app/bookline/pkg/application"
	"github.com/bookline-app/bookline/pkg/composables"
	"github.com/bookline-app/bookline/pkg/constants"
	"github.com/bookline-app/bookline/pkg/httpapi"
	"github.com/bookline-app/bookline/pkg/middleware"
)

type CreateServiceRequest struct {
	Name            string `json:"name" validate:"required"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0"`
	PriceCents      int64  `json:"price_cents" validate:"gte=0"`
}

type ServiceViewModel struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	Category        string `json:"category,omitempty"`
	DurationMinutes int    `json:"duration_minutes"`
	PriceCents      int64  `json:"price_cents"`
	PriceDisplay    string `json:"price_display"`
	CreatedAt       string `json:"created_at"`
}

func toServiceViewModel(s *service.Service) ServiceViewModel {
	return ServiceViewModel{
		ID:              s.ID().String(),
		Name:            s.Name(),
		Description:     s.Description(),
		Category:        s.Category(),
		DurationMinutes: s.DurationMinutes(),
		PriceCents:      s.PriceCents(),
		PriceDisplay:    s.Price().Display(),
		CreatedAt:       s.CreatedAt().Format(time.RFC3339),
	}
}

type ServiceController struct {
	catalog  *services.CatalogService
	basePath string
}

func NewServiceController(app application.Application) application.Controller {
	return &ServiceController{
		catalog:  app.Service(services.CatalogService{}).(*services.CatalogService),
		basePath: "/services",
	}
}

func (c *ServiceController) Key() string {
	return c.basePath
}

func (c *ServiceController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RequireTenantFromHeader())
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.GetByID).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

func (c *ServiceController) List(w http.ResponseWriter, r *http.Request) {
	found, err := c.catalog.List(r.Context())
	if err != nil {
		httpapi.WriteError(w, r, http.StatusInternalServerError, "CATALOG_INTERNAL", "internal error")
		return
	}
	items := make([]ServiceViewModel, 0, len(found))
	for _, entity := range found {
		items = append(items, toServiceViewModel(entity))
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (c *ServiceController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		httpapi.WriteError(w, r, http.StatusBadRequest, "CATALOG_INVALID_ID", "invalid service id")
		return
	}
	entity, err := c.catalog.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			httpapi.WriteError(w, r, http.StatusNotFound, "CATALOG_SERVICE_NOT_FOUND", err.Error())
			return
		}
		httpapi.WriteError(w, r, http.StatusInternalServerError, "CATALOG_INTERNAL", "internal error")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, toServiceViewModel(entity))
}

func (c *ServiceController) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		httpapi.WriteError(w, r, http.StatusBadRequest, "CATALOG_INVALID_JSON", "invalid json")
		return
	}
	if err := constants.Validate.StructCtx(r.Context(), &dto); err != nil {
		httpapi.WriteError(w, r, http.StatusUnprocessableEntity, "CATALOG_VALIDATION_FAILED", "name and a positive duration are required")
		return
	}

	tenantID, err := composables.UseTenantID(r.Context())
	if err != nil {
		httpapi.WriteError(w, r, http.StatusInternalServerError, "CATALOG_INTERNAL", "internal error")
		return
	}

	entity := service.New(tenantID, dto.Name, dto.DurationMinutes, dto.PriceCents)
	entity.SetDescription(dto.Description)
	entity.SetCategory(dto.Category)

	created, err := c.catalog.Create(r.Context(), entity)
	if err != nil {
		httpapi.WriteError(w, r, http.StatusInternalServerError, "CATALOG_INTERNAL", "internal error")
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, toServiceViewModel(created))
}

func (c *ServiceController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		httpapi.WriteError(w, r, http.StatusBadRequest, "CATALOG_INVALID_ID", "invalid service id")
		return
	}
	if err := c.catalog.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			httpapi.WriteError(w, r, http.StatusNotFound, "CATALOG_SERVICE_NOT_FOUND", err.Error())
			return
		}
		httpapi.WriteError(w, r, http.StatusInternalServerError, "CATALOG_INTERNAL", "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
