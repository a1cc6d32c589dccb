package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/bookline-app/bookline/pkg/composables"
)

const TenantHeader = "X-Tenant-ID"

// RequireTenantFromHeader resolves the tenant scope for API requests.
// Session/auth handling lives upstream; by the time a request reaches the
// core it must already carry a tenant id.
func RequireTenantFromHeader() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(TenantHeader))
			if raw == "" {
				http.Error(w, "missing "+TenantHeader+" header", http.StatusBadRequest)
				return
			}
			tenantID, err := uuid.Parse(raw)
			if err != nil {
				logger := composables.UseLogger(r.Context())
				logger.WithField("tenant", raw).WithError(err).Warn("invalid tenant header")
				http.Error(w, "invalid "+TenantHeader+" header", http.StatusBadRequest)
				return
			}
			next.ServeHTTP(w, r.WithContext(composables.WithTenantID(r.Context(), tenantID)))
		})
	}
}
