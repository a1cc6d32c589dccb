package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/bookline-app/bookline/modules/dataimport/domain/entities/importbatch"
	"github.com/bookline-app/bookline/modules/dataimport/presentation/controllers/dtos"
	"github.com/bookline-app/bookline/modules/dataimport/presentation/mappers"
	"github.com/bookline-app/bookline/modules/dataimport/presentation/viewmodels"
	"github.com/bookline-app/bookline/modules/dataimport/services"
	"github.com/bookline-app/bookline/pkg/application"
	"github.com/bookline-app/bookline/pkg/middleware"
)

type ImportController struct {
	app      application.Application
	imports  *services.ImportService
	basePath string
}

func NewImportController(app application.Application) application.Controller {
	return &ImportController{
		app:      app,
		imports:  app.Service(services.ImportService{}).(*services.ImportService),
		basePath: "/data-import",
	}
}

func (c *ImportController) Key() string {
	return c.basePath
}

func (c *ImportController) Register(r *mux.Router) {
	commonMiddleware := []mux.MiddlewareFunc{
		middleware.RequireTenantFromHeader(),
	}

	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(commonMiddleware...)
	router.HandleFunc("/history", c.History).Methods(http.MethodGet)
	router.HandleFunc("/{id}/errors.csv", c.ErrorsCSV).Methods(http.MethodGet)
	// An import runs every chunk to completion and records partial failures
	// on the batch, so it must not sit inside one request transaction: the
	// first failed chunk would abort it and drag the batch row along. Chunks
	// commit individually in the storage layer instead.
	router.HandleFunc("/{type}", c.Import).Methods(http.MethodPost)

	writeRouter := r.PathPrefix(c.basePath).Subrouter()
	writeRouter.Use(commonMiddleware...)
	writeRouter.Use(middleware.WithTransaction())
	writeRouter.HandleFunc("/{id}/rollback", c.Rollback).Methods(http.MethodPost)
}

func (c *ImportController) Import(w http.ResponseWriter, r *http.Request) {
	importType, err := importbatch.ParseType(mux.Vars(r)["type"])
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "IMPORT_UNKNOWN_TYPE", err.Error())
		return
	}

	var dto dtos.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "IMPORT_INVALID_JSON", "invalid json")
		return
	}
	if _, ok := dto.Ok(r.Context()); !ok {
		writeAPIError(w, r, http.StatusUnprocessableEntity, "IMPORT_VALIDATION_FAILED", "mapping and rows are required")
		return
	}

	valid, invalid, err := c.imports.ValidateRows(importType, dto.Rows, dto.Mapping)
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "IMPORT_UNKNOWN_TYPE", err.Error())
		return
	}

	var validationErrors []importbatch.ImportError
	for _, row := range invalid {
		validationErrors = append(validationErrors, row.Errors...)
	}

	batch, err := c.imports.Execute(r.Context(), services.ExecuteParams{
		Type:     importType,
		Rows:     valid,
		Mapping:  dto.Mapping,
		FileName: dto.FileName,
	})
	if err != nil {
		if errors.Is(err, services.ErrNoValidRows) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"code":              "IMPORT_NO_VALID_ROWS",
				"message":           err.Error(),
				"validation_errors": mappers.ImportErrorsToViewModels(validationErrors),
			})
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "IMPORT_INTERNAL", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"batch":             mappers.ImportBatchToViewModel(batch),
		"errors":            mappers.ImportErrorsToViewModels(batch.ErrorLog()),
		"validation_errors": mappers.ImportErrorsToViewModels(validationErrors),
	})
}

func (c *ImportController) History(w http.ResponseWriter, r *http.Request) {
	batches, err := c.imports.History(r.Context())
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "IMPORT_INTERNAL", "internal error")
		return
	}
	items := make([]viewmodels.ImportBatch, 0, len(batches))
	for _, b := range batches {
		items = append(items, mappers.ImportBatchToViewModel(b))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
	})
}

func (c *ImportController) Rollback(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "IMPORT_INVALID_ID", "invalid batch id")
		return
	}

	batch, err := c.imports.Rollback(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, importbatch.ErrNotFound):
			writeAPIError(w, r, http.StatusNotFound, "IMPORT_BATCH_NOT_FOUND", err.Error())
		case errors.Is(err, services.ErrAlreadyRolledBack),
			errors.Is(err, services.ErrImportInProgress),
			errors.Is(err, services.ErrRollbackWindowExpired):
			writeAPIError(w, r, http.StatusConflict, "IMPORT_ROLLBACK_REJECTED", err.Error())
		default:
			writeAPIError(w, r, http.StatusInternalServerError, "IMPORT_INTERNAL", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"batch": mappers.ImportBatchToViewModel(batch),
	})
}

func (c *ImportController) ErrorsCSV(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "IMPORT_INVALID_ID", "invalid batch id")
		return
	}

	batch, err := c.imports.GetBatch(r.Context(), id)
	if err != nil {
		if errors.Is(err, importbatch.ErrNotFound) {
			writeAPIError(w, r, http.StatusNotFound, "IMPORT_BATCH_NOT_FOUND", err.Error())
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "IMPORT_INTERNAL", "internal error")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="import-errors.csv"`)
	if err := services.WriteErrorsCSV(w, batch.ErrorLog()); err != nil {
		c.app.Logger().WithError(err).Error("failed to write error csv")
	}
}
