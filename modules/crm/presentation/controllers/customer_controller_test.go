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

	"github.com/bookline-app/bookline/modules/crm/infrastructure/persistence"
	"github.com/bookline-app/bookline/modules/crm/presentation/controllers"
	"github.com/bookline-app/bookline/modules/crm/services"
	"github.com/bookline-app/bookline/pkg/application"
	"github.com/bookline-app/bookline/pkg/eventbus"
)

func newCustomerRouter(t *testing.T) *mux.Router {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	app.RegisterServices(
		services.NewCustomerService(persistence.NewCustomerRepository(), app.EventPublisher()),
	)
	router := mux.NewRouter()
	controllers.NewCustomerController(app).Register(router)
	return router
}

func TestCustomerController_RequiresTenantHeader(t *testing.T) {
	router := newCustomerRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "X-Tenant-ID")
}

func TestCustomerController_GetByID_InvalidID(t *testing.T) {
	router := newCustomerRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/customers/not-a-uuid", nil)
	req.Header.Set("X-Tenant-ID", uuid.NewString())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "CRM_INVALID_ID")
}

func TestCustomerController_Create_RejectsInvalidBody(t *testing.T) {
	router := newCustomerRouter(t)
	tenantID := uuid.NewString()

	cases := []struct {
		name string
		body string
		want int
		code string
	}{
		{"malformed json", "{", http.StatusBadRequest, "CRM_INVALID_JSON"},
		{"missing full_name", `{"email":"jane@example.com"}`, http.StatusUnprocessableEntity, "CRM_VALIDATION_FAILED"},
		{"bad email", `{"full_name":"Jane","email":"not-an-email"}`, http.StatusUnprocessableEntity, "CRM_VALIDATION_FAILED"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(tc.body))
			req.Header.Set("X-Tenant-ID", tenantID)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, tc.want, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.code)
		})
	}
}
