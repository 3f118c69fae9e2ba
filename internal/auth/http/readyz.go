package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/arcade/internal/auth/store"
	"github.com/aussiebroadwan/arcade/pkg/authsdk"
	"github.com/aussiebroadwan/arcade/pkg/httpx"
	"github.com/aussiebroadwan/arcade/pkg/jwtx"
	"github.com/aussiebroadwan/arcade/pkg/slogx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check
//	@Description	Reports whether the credential store answers and the token signer holds a usable key.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	authsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store, signer jwtx.Signer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := slogx.FromContext(r.Context())

		checks := &authsdk.HealthChecks{Database: "ok", Signer: "ok"}
		status, code := "ok", http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			log.Warn("readiness: store ping failed", "err", err)
			checks.Database = "error"
			status, code = "degraded", http.StatusServiceUnavailable
		}

		if err := signer.Validate(); err != nil {
			log.Warn("readiness: signer not usable", "err", err)
			checks.Signer = "error"
			status, code = "degraded", http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, authsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
