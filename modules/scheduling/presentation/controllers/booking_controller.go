package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/bookline-app/bookline/modules/scheduling/domain/aggregates/booking"
	"github.com/bookline-app/bookline/modules/scheduling/services"
	"github.com/bookline-app/bookline/pkg/application"
	"github.com/bookline-app/bookline/pkg/composables"
	"github.com/bookline-app/bookline/pkg/constants"
	"github.com/bookline-app/bookline/pkg/httpapi"
	"github.com/bookline-app/bookline/pkg/middleware"
)

type CreateBookingRequest struct {
	CustomerID string `json:"customer_id" validate:"omitempty,uuid"`
	ServiceID  string `json:"service_id" validate:"omitempty,uuid"`
	EmployeeID string `json:"employee_id" validate:"omitempty,uuid"`
	StartTime  string `json:"start_time" validate:"required"`
	EndTime    string `json:"end_time" validate:"required"`
	Status     string `json:"status"`
	IsWalkIn   bool   `json:"is_walk_in"`
	Notes      string `json:"notes"`
}

type BookingViewModel struct {
	ID         string  `json:"id"`
	CustomerID *string `json:"customer_id"`
	ServiceID  *string `json:"service_id"`
	EmployeeID *string `json:"employee_id"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	Status     string  `json:"status"`
	IsWalkIn   bool    `json:"is_walk_in"`
	Notes      string  `json:"notes,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

func toBookingViewModel(b *booking.Booking) BookingViewModel {
	return BookingViewModel{
		ID:         b.ID().String(),
		CustomerID: uuidString(b.CustomerID()),
		ServiceID:  uuidString(b.ServiceID()),
		EmployeeID: uuidString(b.EmployeeID()),
		StartTime:  b.StartTime().Format(time.RFC3339),
		EndTime:    b.EndTime().Format(time.RFC3339),
		Status:     string(b.Status()),
		IsWalkIn:   b.IsWalkIn(),
		Notes:      b.Notes(),
		CreatedAt:  b.CreatedAt().Format(time.RFC3339),
	}
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

type BookingController struct {
	bookings *services.BookingService
	basePath string
}

func NewBookingController(app application.Application) application.Controller {
	return &BookingController{
		bookings: app.Service(services.BookingService{}).(*services.BookingService),
		basePath: "/bookings",
	}
}

func (c *BookingController) Key() string {
	return c.basePath
}

func (c *BookingController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RequireTenantFromHeader())
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.GetByID).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

func (c *BookingController) List(w http.ResponseWriter, r *http.Request) {
	params := &booking.FindParams{
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}
	if from, err := time.Parse(time.RFC3339, r.URL.Query().Get("from")); err == nil {
		params.From = from
	}
	if to, err := time.Parse(time.RFC3339, r.URL.Query().Get("to")); err == nil {
		params.To = to
	}

	found, err := c.bookings.GetPaginated(r.Context(), params)
	if err != nil {
		httpapi.WriteError(w, r, http.StatusInternalServerError, "SCHEDULING_INTERNAL", "internal error")
		return
	}
	items := make([]BookingViewModel, 0, len(found))
	for _, entity := range found {
		items = append(items, toBookingViewModel(entity))
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (c *BookingController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		httpapi.WriteError(w, r, http.StatusBadRequest, "SCHEDULING_INVALID_ID", "invalid booking id")
		return
	}
	entity, err := c.bookings.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			httpapi.WriteError(w, r, http.StatusNotFound, "SCHEDULING_BOOKING_NOT_FOUND", err.Error())
			return
		}
		httpapi.WriteError(w, r, http.StatusInternalServerError, "SCHEDULING_INTERNAL", "internal error")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, toBookingViewModel(entity))
}

func (c *BookingController) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		httpapi.WriteError(w, r, http.StatusBadRequest, "SCHEDULING_INVALID_JSON", "invalid json")
		return
	}
	if err := constants.Validate.StructCtx(r.Context(), &dto); err != nil {
		httpapi.WriteError(w, r, http.StatusUnprocessableEntity, "SCHEDULING_VALIDATION_FAILED", "start_time and end_time are required")
		return
	}

	startTime, err := time.Parse(time.RFC3339, dto.StartTime)
	if err != nil {
		httpapi.WriteError(w, r, http.StatusUnprocessableEntity, "SCHEDULING_VALIDATION_FAILED", "start_time must be RFC 3339")
		return
	}
	endTime, err := time.Parse(time.RFC3339, dto.EndTime)
	if err != nil {
		httpapi.WriteError(w, r, http.StatusUnprocessableEntity, "SCHEDULING_VALIDATION_FAILED", "end_time must be RFC 3339")
		return
	}
	if !endTime.After(startTime) {
		httpapi.WriteError(w, r, http.StatusUnprocessableEntity, "SCHEDULING_VALIDATION_FAILED", "end_time must be after start_time")
		return
	}

	tenantID, err := composables.UseTenantID(r.Context())
	if err != nil {
		httpapi.WriteError(w, r, http.StatusInternalServerError, "SCHEDULING_INTERNAL", "internal error")
		return
	}

	entity := booking.New(tenantID, startTime, endTime)
	entity.SetCustomerID(parseOptionalUUID(dto.CustomerID))
	entity.SetServiceID(parseOptionalUUID(dto.ServiceID))
	entity.SetEmployeeID(parseOptionalUUID(dto.EmployeeID))
	if dto.Status != "" {
		entity.SetStatus(booking.Status(dto.Status))
	}
	entity.SetWalkIn(dto.IsWalkIn)
	entity.SetNotes(dto.Notes)

	created, err := c.bookings.Create(r.Context(), entity)
	if err != nil {
		httpapi.WriteError(w, r, http.StatusInternalServerError, "SCHEDULING_INTERNAL", "internal error")
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, toBookingViewModel(created))
}

func (c *BookingController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		httpapi.WriteError(w, r, http.StatusBadRequest, "SCHEDULING_INVALID_ID", "invalid booking id")
		return
	}
	if err := c.bookings.Delete(r.Context(), id); err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			httpapi.WriteError(w, r, http.StatusNotFound, "SCHEDULING_BOOKING_NOT_FOUND", err.Error())
			return
		}
		httpapi.WriteError(w, r, http.StatusInternalServerError, "SCHEDULING_INTERNAL", "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Validated as uuid-or-empty by the DTO tags before this runs.
func parseOptionalUUID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}

func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
