package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/bookline-app/bookline/modules/hrm/domain/aggregates/employee"
	"github.com/bookline-app/bookline/modules/hrm/services"
	"github.com/bookline-app/bookline/pkg/application"
	"github.com/bookline-app/bookline/pkg/composables"
	"github.com/bookline-app/bookline/pkg/constants"
	"github.com/bookline-app/bookline/pkg/httpapi"
	"github.com/bookline-app/bookline/pkg/middleware"
)

type CreateEmployeeRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Role     string `json:"role" validate:"required"`
}

type EmployeeViewModel struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

func toEmployeeViewModel(e *employee.Employee) EmployeeViewModel {
	return EmployeeViewModel{
		ID:        e.ID().String(),
		FullName:  e.FullName(),
		Email:     e.Email(),
		Phone:     e.Phone(),
		Role:      e.Role(),
		CreatedAt: e.CreatedAt().Format(time.RFC3339),
	}
}

type EmployeeController struct {
	employees *services.EmployeeService
	basePath  string
}

func NewEmployeeController(app application.Application) application.Controller {
	return &EmployeeController{
		employees: app.Service(services.EmployeeService{}).(*services.EmployeeService),
		basePath:  "/employees",
	}
}

func (c *EmployeeController) Key() string {
	return c.basePath
}

func (c *EmployeeController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RequireTenantFromHeader())
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.GetByID).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

func (c *EmployeeController) List(w http.ResponseWriter, r *http.Request) {
	found, err := c.employees.List(r.Context())
	if err != nil {
		httpapi.WriteError(w, r, http.StatusInternalServerError, "HRM_INTERNAL", "internal error")
		return
	}
	items := make([]EmployeeViewModel, 0, len(found))
	for _, entity := range found {
		items = append(items, toEmployeeViewModel(entity))
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (c *EmployeeController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		httpapi.WriteError(w, r, http.StatusBadRequest, "HRM_INVALID_ID", "invalid employee id")
		return
	}
	entity, err := c.employees.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			httpapi.WriteError(w, r, http.StatusNotFound, "HRM_EMPLOYEE_NOT_FOUND", err.Error())
			return
		}
		httpapi.WriteError(w, r, http.StatusInternalServerError, "HRM_INTERNAL", "internal error")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, toEmployeeViewModel(entity))
}

func (c *EmployeeController) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		httpapi.WriteError(w, r, http.StatusBadRequest, "HRM_INVALID_JSON", "invalid json")
		return
	}
	if err := constants.Validate.StructCtx(r.Context(), &dto); err != nil {
		httpapi.WriteError(w, r, http.StatusUnprocessableEntity, "HRM_VALIDATION_FAILED", "full_name and role are required")
		return
	}

	tenantID, err := composables.UseTenantID(r.Context())
	if err != nil {
		httpapi.WriteError(w, r, http.StatusInternalServerError, "HRM_INTERNAL", "internal error")
		return
	}

	entity := employee.New(tenantID, dto.FullName, dto.Role)
	entity.SetEmail(dto.Email)
	entity.SetPhone(dto.Phone)

	created, err := c.employees.Create(r.Context(), entity)
	if err != nil {
		httpapi.WriteError(w, r, http.StatusInternalServerError, "HRM_INTERNAL", "internal error")
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, toEmployeeViewModel(created))
}

func (c *EmployeeController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		httpapi.WriteError(w, r, http.StatusBadRequest, "HRM_INVALID_ID", "invalid employee id")
		return
	}
	if err := c.employees.Delete(r.Context(), id); err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			httpapi.WriteError(w, r, http.StatusNotFound, "HRM_EMPLOYEE_NOT_FOUND", err.Error())
			return
		}
		httpapi.WriteError(w, r, http.StatusInternalServerError, "HRM_INTERNAL", "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
