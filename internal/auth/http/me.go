package http

import (
	"net/http"

	"github.com/aussiebroadwan/arcade/pkg/authsdk"
	"github.com/aussiebroadwan/arcade/pkg/httpx"
)

// MeHandler godoc
//
//	@Summary		Current Caller
//	@Description	Describes the caller as recorded in their access token.
//	@Tags			Account
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	authsdk.MeResponse	"sub, role, scope, verified, expires_at"
//	@Failure		401	"missing or invalid access token"
//	@Router			/v1/me [get].
func MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := httpx.ClaimsFromContext(r.Context())
		if !ok {
			authsdk.ErrInvalidToken.WriteError(w)
			return
		}

		resp := authsdk.MeResponse{
			Subject:  claims.Subject,
			Role:     claims.Role,
			Scope:    claims.Scope,
			Verified: claims.IsVerified(),
		}
		if claims.ExpiresAt != nil {
			resp.ExpiresAt = claims.ExpiresAt.UTC()
		}
		httpx.WriteJSON(w, http.StatusOK, resp)
	}
}
