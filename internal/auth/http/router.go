package http

import (
	"log/slog"
	"net/http"
	"net/netip"
	"time"

	"github.com/aussiebroadwan/arcade/internal/auth/metrics"
	"github.com/aussiebroadwan/arcade/internal/auth/service"
	"github.com/aussiebroadwan/arcade/internal/auth/store"
	"github.com/aussiebroadwan/arcade/pkg/httpx"
	"github.com/aussiebroadwan/arcade/pkg/jwtx"
	"github.com/aussiebroadwan/arcade/pkg/slogx"

	_ "github.com/aussiebroadwan/arcade/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	signer       jwtx.Signer
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	PasswordAuthenticator     service.Authenticator
	SecondFactorAuthenticator service.Authenticator
	PrimarySuccess            service.SuccessHandler
	SecondFactorSuccess       service.SuccessHandler

	// TokenLimit throttles both token endpoints per client IP.
	TokenLimit httpx.RateLimitConfig
	// PublicLimit throttles the unauthenticated read endpoints.
	PublicLimit httpx.RateLimitConfig
	// TrustedProxies may report the client address via forwarding headers.
	TrustedProxies []netip.Prefix

	// Metrics serves /metrics when set.
	Metrics http.Handler

	// Now stamps error bodies. Nil means time.Now.
	Now func() time.Time
}

type route struct {
	pattern string
	handler http.Handler
}

func NewRouter(
	keys *jwtx.KeySet,
	signer jwtx.Signer,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		signer:       signer,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		TokenLimit:   httpx.StrictLimit,
		PublicLimit:  httpx.PublicLimit,
	}

	// Access log outermost so it sees what the auth state recorded.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		AuthStateMiddleware(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	for _, rt := range r.routes() {
		r.Mux.Handle(rt.pattern, rt.handler)
	}
}

// routes is every endpoint the service exposes. The token endpoints are
// registered without a method so any other method still gets the uniform
// method_not_supported failure.
func (r *Router) routes() []route {
	failure := FailureResponder{Now: r.Now}
	clientIP := httpx.TrustedProxyKeyExtractor(r.TrustedProxies)

	token := NewTokenHandler(r.PasswordAuthenticator, r.PrimarySuccess, failure)
	twoFactor := NewTwoFactorHandler(r.SecondFactorAuthenticator, r.SecondFactorSuccess, failure)

	routes := []route{
		{"/token", httpx.Chain(token,
			httpx.RateLimitMiddleware(r.TokenLimit, clientIP, rejectRateLimited(metrics.FlowPassword)),
		)},
		{"/token/2fa", httpx.Chain(twoFactor,
			httpx.RateLimitMiddleware(r.TokenLimit, clientIP, rejectRateLimited(metrics.FlowSecondFactor)),
		)},
		{"GET /v1/me", httpx.Chain(MeHandler(),
			httpx.RateLimitMiddleware(r.PublicLimit, clientIP, nil),
			httpx.AuthnMiddleware(r.verifier),
		)},
		{"GET /.well-known/jwks.json", httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitMiddleware(r.PublicLimit, clientIP, nil),
		)},
		{"GET /livez", LivezHandler(r.startTime, r.buildVersion)},
		{"GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.signer)},
		{"/swagger/", httpSwagger.Handler()},
	}

	if r.Metrics != nil {
		routes = append(routes, route{"GET /metrics", r.Metrics})
	}
	return routes
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Arcade Authentication Service API
//	@version		0.1.0
//	@description	Credential-to-token authentication for the arcade. Players log in with a username and password
//	@description	and, when enrolled, a TOTP code. Access tokens carry a single role and a list of scopes.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/arcade
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access or pending token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}
