package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/portalgate/internal/portal/domain"
	"github.com/aussiebroadwan/portalgate/internal/portal/policy"
	"github.com/aussiebroadwan/portalgate/internal/portal/service"
	"github.com/aussiebroadwan/portalgate/internal/portal/store"
	"github.com/aussiebroadwan/portalgate/internal/portal/websession"
	"github.com/aussiebroadwan/portalgate/pkg/httpx"
	"github.com/aussiebroadwan/portalgate/pkg/slogx"

	_ "github.com/aussiebroadwan/portalgate/api/portal" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	Sessions       *websession.Manager
	LoginService   *service.LoginService
	Tracker        *service.SessionTracker // Optional: disables last-seen updates when nil
	Gate           *policy.Gate
	MetricsHandler http.Handler // Optional: /metrics is not served when nil
}

func NewRouter(buildVersion string, st store.Store, sessions *websession.Manager, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		Sessions:     sessions,
	}

	// Set default middleware chain. The session is loaded inside the
	// request logger so failures carry the request id.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		sessions.Middleware(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerLogin()
	r.registerAccount()
	r.registerResources()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Portal Gate API
//	@version		0.1.0
//	@description	Login portals, session tracking and the policy-gated resource API of the business portal.
//	@description
//	@description	Every portal has its own login form. Authenticated requests carry the portal_session cookie.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/portalgate
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						portal_session
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerLogin() {
	h := &LoginHandler{LoginService: r.LoginService}

	for _, d := range domain.Definitions() {
		// GET renders the form - lenient rate limit
		r.Mux.Handle("GET "+d.LoginPath,
			httpx.Chain(h.Form(d.Portal),
				httpx.RateLimitByIP(httpx.LenientLimit),
			),
		)

		// POST - moderate IP limit, the per-account throttle lives in the login service
		r.Mux.Handle("POST "+d.LoginPath,
			httpx.Chain(h.Submit(d.Portal),
				httpx.RateLimitByIP(httpx.ModerateLimit),
			),
		)
	}
}

func (r *Router) registerAccount() {
	logout := &LogoutHandler{LoginService: r.LoginService}
	r.Mux.Handle("POST /logout",
		httpx.Chain(logout,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /v1/me",
		httpx.Chain(http.HandlerFunc(MeHandler),
			r.requireActor,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerResources() {
	h := &ResourceHandler{Store: r.store, Gate: r.Gate}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			r.requireActor,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /v1/employees/{id}", secured(h.GetEmployee))
	r.Mux.Handle("GET /v1/projects/{id}", secured(h.GetProject))
	r.Mux.Handle("GET /v1/tasks/{id}", secured(h.GetTask))
	r.Mux.Handle("PATCH /v1/tasks/{id}", secured(h.UpdateTask))
	r.Mux.Handle("DELETE /v1/tasks/{id}", secured(h.DeleteTask))
	r.Mux.Handle("GET /v1/timesheets/{id}", secured(h.GetTimesheet))
	r.Mux.Handle("POST /v1/timesheets/{id}/approve", secured(h.ApproveTimesheet))
	r.Mux.Handle("GET /v1/leave-requests/{id}", secured(h.GetLeaveRequest))
	r.Mux.Handle("GET /v1/payroll-items/{id}", secured(h.GetPayrollItem))
	r.Mux.Handle("GET /v1/licenses/{id}", secured(h.GetLicense))
	r.Mux.Handle("GET /v1/documents/{id}", secured(h.GetDocument))
}

func (r *Router) registerSystem() {
	// Health check endpoints - public rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	if r.MetricsHandler != nil {
		r.Mux.Handle("GET /metrics",
			httpx.Chain(r.MetricsHandler,
				httpx.RateLimitByIP(httpx.PublicLimit),
			),
		)
	}
}
