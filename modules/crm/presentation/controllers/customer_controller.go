package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/bookline-app/bookline/modules/crm/domain/aggregates/customer"
	"github.com/bookline-app/bookline/modules/crm/services"
	"github.com/bookline-app/bookline/pkg/application"
	"github.com/bookline-app/bookline/pkg/composables"
	"github.com/bookline-app/bookline/pkg/constants"
	"github.com/bookline-app/bookline/pkg/httpapi"
	"github.com/bookline-app/bookline/pkg/middleware"
)

type CreateCustomerRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Notes    string `json:"notes"`
}

type CustomerViewModel struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"created_at"`
}

func toCustomerViewModel(c *customer.Customer) CustomerViewModel {
	return CustomerViewModel{
		ID:        c.ID().String(),
		FullName:  c.FullName(),
		Email:     c.Email(),
		Phone:     c.Phone(),
		Notes:     c.Notes(),
		CreatedAt: c.CreatedAt().Format(time.RFC3339),
	}
}

type CustomerController struct {
	customers *services.CustomerService
	basePath  string
}

func NewCustomerController(app application.Application) application.Controller {
	return &CustomerController{
		customers: app.Service(services.CustomerService{}).(*services.CustomerService),
		basePath:  "/customers",
	}
}

func (c *CustomerController) Key() string {
	return c.basePath
}

func (c *CustomerController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RequireTenantFromHeader())
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.GetByID).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

func (c *CustomerController) List(w http.ResponseWriter, r *http.Request) {
	params := &customer.FindParams{
		Q:      r.URL.Query().Get("q"),
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}
	found, err := c.customers.GetPaginated(r.Context(), params)
	if err != nil {
		httpapi.WriteError(w, r, http.StatusInternalServerError, "CRM_INTERNAL", "internal error")
		return
	}
	items := make([]CustomerViewModel, 0, len(found))
	for _, entity := range found {
		items = append(items, toCustomerViewModel(entity))
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (c *CustomerController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		httpapi.WriteError(w, r, http.StatusBadRequest, "CRM_INVALID_ID", "invalid customer id")
		return
	}
	entity, err := c.customers.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			httpapi.WriteError(w, r, http.StatusNotFound, "CRM_CUSTOMER_NOT_FOUND", err.Error())
			return
		}
		httpapi.WriteError(w, r, http.StatusInternalServerError, "CRM_INTERNAL", "internal error")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, toCustomerViewModel(entity))
}

func (c *CustomerController) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		httpapi.WriteError(w, r, http.StatusBadRequest, "CRM_INVALID_JSON", "invalid json")
		return
	}
	if err := constants.Validate.StructCtx(r.Context(), &dto); err != nil {
		httpapi.WriteError(w, r, http.StatusUnprocessableEntity, "CRM_VALIDATION_FAILED", "full_name is required and email must be valid")
		return
	}

	tenantID, err := composables.UseTenantID(r.Context())
	if err != nil {
		httpapi.WriteError(w, r, http.StatusInternalServerError, "CRM_INTERNAL", "internal error")
		return
	}

	entity := customer.New(tenantID, dto.FullName)
	entity.SetEmail(dto.Email)
	entity.SetPhone(dto.Phone)
	entity.SetNotes(dto.Notes)

	created, err := c.customers.Create(r.Context(), entity)
	if err != nil {
		httpapi.WriteError(w, r, http.StatusInternalServerError, "CRM_INTERNAL", "internal error")
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, toCustomerViewModel(created))
}

func (c *CustomerController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		httpapi.WriteError(w, r, http.StatusBadRequest, "CRM_INVALID_ID", "invalid customer id")
		return
	}
	if err := c.customers.Delete(r.Context(), id); err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			httpapi.WriteError(w, r, http.StatusNotFound, "CRM_CUSTOMER_NOT_FOUND", err.Error())
			return
		}
		httpapi.WriteError(w, r, http.StatusInternalServerError, "CRM_INTERNAL", "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
