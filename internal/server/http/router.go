package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ltj54/restructuring/internal/server/domain"
	"github.com/ltj54/restructuring/internal/server/service"
	"github.com/ltj54/restructuring/internal/server/store"
	"github.com/ltj54/restructuring/pkg/httpx"
	"github.com/ltj54/restructuring/pkg/jwtx"
	"github.com/ltj54/restructuring/pkg/slogx"

	_ "github.com/ltj54/restructuring/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Config carries the router's static settings.
type Config struct {
	AppName string
	Version string
	Env     string
	Port    int
	CORS    httpx.CORSConfig
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	cfg       Config
	logger    *slog.Logger
	startTime time.Time
	store     store.Store

	AuthService      *service.AuthService
	UserService      *service.UserService
	JournalService   *service.JournalService
	PlanService      *service.PlanService
	InsuranceService *service.InsuranceService
}

func NewRouter(
	cfg Config,
	codec *jwtx.Codec,
	resolver httpx.IdentityResolver,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:       http.NewServeMux(),
		cfg:       cfg,
		logger:    logger,
		startTime: time.Now(),
		store:     st,
	}

	// Global chain, outermost first. Authentication never rejects on its own;
	// the policy at the end owns every 401/403.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.TraceMiddleware(cfg.AppName),
		httpx.CORSMiddleware(cfg.CORS),
		httpx.AuthnMiddleware(codec, resolver),
		httpx.PolicyMiddleware(routePolicy()),
	}

	return r
}

// routePolicy is the single authorization table for the whole API,
// first-match-wins. Anything not listed requires authentication.
func routePolicy() *httpx.Policy {
	return httpx.NewPolicy(
		httpx.Rule{Method: http.MethodGet, Pattern: "/api/hello", Requirement: httpx.Public},
		httpx.Rule{Method: http.MethodGet, Pattern: "/api/ping", Requirement: httpx.Public},
		httpx.Rule{Method: http.MethodGet, Pattern: "/api/health", Requirement: httpx.Public},
		httpx.Rule{Method: http.MethodGet, Pattern: "/favicon.ico", Requirement: httpx.Public},
		httpx.Rule{Method: http.MethodPost, Pattern: "/api/log", Requirement: httpx.Public},
		httpx.Rule{Method: http.MethodGet, Pattern: "/api/plan/me", Requirement: httpx.Public},
		httpx.Rule{Method: http.MethodPost, Pattern: "/api/auth/login", Requirement: httpx.Public},
		httpx.Rule{Method: http.MethodPost, Pattern: "/api/auth/register", Requirement: httpx.Public},
		httpx.Rule{Method: http.MethodPost, Pattern: "/api/auth/password/forgot", Requirement: httpx.Public},
		httpx.Rule{Method: http.MethodPost, Pattern: "/api/auth/password/reset", Requirement: httpx.Public},
		httpx.Rule{Method: http.MethodGet, Pattern: "/swagger/*", Requirement: httpx.Public},
		httpx.Rule{Method: "*", Pattern: "/api/admin/*", Requirement: httpx.Role(domain.AdminRole)},
		httpx.Rule{Method: http.MethodGet, Pattern: "/api/config", Requirement: httpx.Role(domain.AdminRole)},
		httpx.Rule{Method: http.MethodGet, Pattern: "/api/dbinfo", Requirement: httpx.Role(domain.AdminRole)},
		httpx.Rule{Method: "*", Pattern: "*", Requirement: httpx.Authenticated},
	)
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerMe()
	r.registerUsers()
	r.registerAdmin()
	r.registerJournal()
	r.registerPlan()
	r.registerInsurance()
	r.registerSystem()
	r.registerFrontendLog()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Restructuring Backend API
//	@version		0.1.0
//	@description	Insurance record restructuring backend with JWT session authentication.
//	@description
//	@description				Session tokens are HS256-signed and carried as "Bearer {token}".
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
//	@description				JWT session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	login := &LoginHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(login, httpx.RateLimitByIP(httpx.StrictLimit)),
	)

	register := &RegisterHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(register, httpx.RateLimitByIP(httpx.StrictLimit)),
	)

	forgot := &ForgotPasswordHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /api/auth/password/forgot",
		httpx.Chain(forgot, httpx.RateLimitByIP(httpx.StrictLimit)),
	)

	reset := &ResetPasswordHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /api/auth/password/reset",
		httpx.Chain(reset, httpx.RateLimitByIP(httpx.StrictLimit)),
	)
}

func (r *Router) registerMe() {
	r.Mux.Handle("GET /api/me", &MeHandler{})
}

func (r *Router) registerUsers() {
	h := &UserHandler{UserService: r.UserService}
	r.Mux.HandleFunc("GET /api/user/me", h.HandleGetMe)
	r.Mux.HandleFunc("PUT /api/user/me", h.HandleUpdateMe)
	r.Mux.HandleFunc("GET /api/user/{id}", h.HandleGetByID)
}

func (r *Router) registerAdmin() {
	h := &AdminUsersHandler{UserService: r.UserService}
	r.Mux.HandleFunc("GET /api/admin/users", h.HandleList)
	r.Mux.HandleFunc("GET /api/admin/users/{id}", h.HandleGet)
	r.Mux.HandleFunc("POST /api/admin/users/{id}/promote", h.HandlePromote)
	r.Mux.HandleFunc("POST /api/admin/users/{id}/demote", h.HandleDemote)
}

func (r *Router) registerJournal() {
	h := &JournalHandler{JournalService: r.JournalService}
	r.Mux.HandleFunc("POST /api/journal", h.HandleCreate)
	r.Mux.HandleFunc("GET /api/journal/all", h.HandleList)
}

func (r *Router) registerPlan() {
	h := &PlanHandler{PlanService: r.PlanService}
	r.Mux.HandleFunc("GET /api/plan/me", h.HandleGet)
	r.Mux.HandleFunc("PUT /api/plan/me", h.HandleUpsert)
}

func (r *Router) registerInsurance() {
	h := &InsuranceHandler{InsuranceService: r.InsuranceService}
	r.Mux.HandleFunc("GET /api/insurance/products", h.HandleListProducts)
	r.Mux.HandleFunc("GET /api/insurance/my", h.HandleListMine)
	r.Mux.HandleFunc("POST /api/insurance/my", h.HandleRegisterMine)
	r.Mux.HandleFunc("GET /api/insurance/snapshot", h.HandleGetSnapshot)
	r.Mux.HandleFunc("POST /api/insurance/snapshot", h.HandleSaveSnapshot)
	r.Mux.HandleFunc("POST /api/insurance/request", h.HandleSubmitRequest)
}

func (r *Router) registerSystem() {
	h := &SystemHandler{
		AppName:   r.cfg.AppName,
		Version:   r.cfg.Version,
		Env:       r.cfg.Env,
		Port:      r.cfg.Port,
		StartTime: r.startTime,
		Store:     r.store,
	}
	r.Mux.HandleFunc("GET /api/hello", h.HandleHello)
	r.Mux.HandleFunc("GET /api/ping", h.HandlePing)
	r.Mux.HandleFunc("GET /api/health", h.HandleHealth)
	r.Mux.HandleFunc("GET /api/config", h.HandleConfig)
	r.Mux.HandleFunc("GET /api/dbinfo", h.HandleDBInfo)
	r.Mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func (r *Router) registerFrontendLog() {
	h := &FrontendLogHandler{}
	r.Mux.Handle("POST /api/log",
		httpx.Chain(h, httpx.RateLimitByIP(httpx.LenientLimit)),
	)
}
