package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/identity/internal/auth/domain"
	"github.com/aussiebroadwan/identity/internal/auth/service"
	"github.com/aussiebroadwan/identity/internal/auth/store"
	"github.com/aussiebroadwan/identity/pkg/httpx"
	"github.com/aussiebroadwan/identity/pkg/jwtx"
	"github.com/aussiebroadwan/identity/pkg/slogx"

	_ "github.com/aussiebroadwan/identity/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys            *jwtx.KeySet
	accessVerifier  jwtx.AccessVerifier
	refreshVerifier jwtx.RefreshVerifier
	buildVersion    string
	startTime       time.Time
	logger          *slog.Logger

	store            store.Store
	Cookies          CookieConfig
	AuthService      *service.AuthService
	TokenService     *service.TokenService
	TenantService    *service.TenantService
	AdminUserService *service.AdminUserService
}

func NewRouter(
	keys *jwtx.KeySet,
	accessVerifier jwtx.AccessVerifier,
	refreshVerifier jwtx.RefreshVerifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:             http.NewServeMux(),
		keys:            keys,
		accessVerifier:  accessVerifier,
		refreshVerifier: refreshVerifier,
		buildVersion:    buildVersion,
		startTime:       time.Now(),
		store:           st,
		logger:          logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerTenants()
	r.registerAdminUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Identity Service API
//	@version		0.1.0
//	@description	Multi-tenant identity service: registration, login, rotating refresh tokens and role based access.
//	@description
//	@description				Access tokens are RS256 JWTs verifiable with the JWKS endpoint. Refresh tokens are HS256 and only this service can check them.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/identity
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
//	@description				JWT access token. Format: "Bearer {token}".
//
//	@securityDefinitions.apikey	CookieAuth
//	@in							cookie
//	@name						accessToken
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService, Cookies: r.Cookies}

	// Credential endpoints - strict limit by IP against guessing
	r.Mux.Handle("POST /auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /auth/self",
		httpx.Chain(http.HandlerFunc(h.HandleSelf),
			httpx.AuthnMiddleware(r.accessVerifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// Refresh needs a live session, not just a valid signature
	r.Mux.Handle("POST /auth/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.RateLimitByIP(httpx.ModerateLimit),
			httpx.RefreshMiddleware(r.refreshVerifier, r.TokenService),
		),
	)

	// Logout accepts an already revoked refresh token so cookies always clear
	r.Mux.Handle("POST /auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.AuthnMiddleware(r.accessVerifier),
			httpx.ParseRefreshMiddleware(r.refreshVerifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerTenants() {
	h := &TenantsHandler{TenantService: r.TenantService}

	admin := func(next http.HandlerFunc) http.Handler {
		return httpx.Chain(next,
			httpx.AuthnMiddleware(r.accessVerifier),
			httpx.RequireRole(domain.RoleAdmin),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("POST /tenants", admin(h.HandleCreate))
	r.Mux.Handle("GET /tenants", admin(h.HandleList))
	r.Mux.Handle("PATCH /tenants/{id}", admin(h.HandleUpdate))
	r.Mux.Handle("DELETE /tenants/{id}", admin(h.HandleDelete))

	// Managers may read their own tenant
	r.Mux.Handle("GET /tenants/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.AuthnMiddleware(r.accessVerifier),
			httpx.RequireRole(domain.RoleAdmin, domain.RoleManager),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAdminUsers() {
	h := &AdminUsersHandler{AdminUserService: r.AdminUserService}

	admin := func(next http.HandlerFunc) http.Handler {
		return httpx.Chain(next,
			httpx.AuthnMiddleware(r.accessVerifier),
			httpx.RequireRole(domain.RoleAdmin),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("POST /admin/users", admin(h.HandleCreate))
	r.Mux.Handle("GET /admin/users", admin(h.HandleList))
	r.Mux.Handle("GET /admin/users/{id}", admin(h.HandleGet))
	r.Mux.Handle("PATCH /admin/users/{id}", admin(h.HandleUpdate))
	r.Mux.Handle("DELETE /admin/users/{id}", admin(h.HandleDelete))
}

func (r *Router) registerSystem() {
	// Public endpoints with high limits; monitoring and verifiers poll these
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
