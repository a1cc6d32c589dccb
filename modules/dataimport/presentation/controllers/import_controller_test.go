package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookline-app/bookline/modules/dataimport/infrastructure/persistence"
	"github.com/bookline-app/bookline/modules/dataimport/presentation/controllers"
	"github.com/bookline-app/bookline/modules/dataimport/services"
	"github.com/bookline-app/bookline/pkg/application"
	"github.com/bookline-app/bookline/pkg/eventbus"
)

func newImportRouter(t *testing.T) *mux.Router {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	app.RegisterServices(
		services.NewImportService(
			persistence.NewInmemImportBatchRepository(),
			persistence.NewInmemTenantStore(),
			app.EventPublisher(),
		),
	)
	router := mux.NewRouter()
	controllers.NewImportController(app).Register(router)
	return router
}

func TestImportController_UnknownType(t *testing.T) {
	router := newImportRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/data-import/invoices", strings.NewReader(`{}`))
	req.Header.Set("X-Tenant-ID", uuid.NewString())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "IMPORT_UNKNOWN_TYPE")
	assert.Contains(t, rec.Body.String(), "Unknown import type")
}

// The import route must not open a request-scoped transaction: an import runs
// every chunk to completion and a failed chunk would abort such a transaction
// together with the batch row. No pool is wired here, so reaching the handler
// at all proves there is no transaction middleware in front of it.
func TestImportController_ImportRouteRunsWithoutRequestTransaction(t *testing.T) {
	router := newImportRouter(t)

	body := `{"mapping":{"Name":"full_name"},"rows":[{"Name":"Jane Doe"}]}`
	req := httptest.NewRequest(http.MethodPost, "/data-import/customers", strings.NewReader(body))
	req.Header.Set("X-Tenant-ID", uuid.NewString())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"completed"`)
}

func TestImportController_NoValidRows(t *testing.T) {
	router := newImportRouter(t)

	body := `{"mapping":{"Name":"full_name"},"rows":[{"Name":""}]}`
	req := httptest.NewRequest(http.MethodPost, "/data-import/customers", strings.NewReader(body))
	req.Header.Set("X-Tenant-ID", uuid.NewString())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "IMPORT_NO_VALID_ROWS")
	assert.Contains(t, rec.Body.String(), "No valid rows to import")
}
