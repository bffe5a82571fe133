package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/taskden/taskden/internal/api/service"
	"github.com/taskden/taskden/internal/api/store"
	"github.com/taskden/taskden/pkg/httpx"
	"github.com/taskden/taskden/pkg/jwtx"
	"github.com/taskden/taskden/pkg/slogx"

	_ "github.com/taskden/taskden/api" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store       store.Store
	AuthService *service.AuthService
	TodoService *service.TodoService
	AIService   *service.AIService

	TokenTTL      time.Duration
	SecureCookies bool
	CORSOrigin    string
	PublicDir     string // optional; serves the SPA when set
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	if r.CORSOrigin != "" {
		r.middlewares = append(r.middlewares, httpx.CORS(r.CORSOrigin))
	}

	r.registerAuth()
	r.registerTodos()
	r.registerAI()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())

	if r.PublicDir != "" {
		r.Mux.Handle("/", SPAHandler(r.PublicDir))
	}
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Taskden API
//	@version		0.1.0
//	@description	Task-management REST API with cookie-based sessions and
//	@description	generative-AI assisted todo creation.
//
//	@contact.name	Taskden
//	@contact.url	https://github.com/taskden/taskden
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// session returns the re-fetch authentication middleware shared by every
// protected route.
func (r *Router) session() httpx.Middleware {
	return SessionMiddleware(r.verifier, r.AuthService)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService:   r.AuthService,
		TokenTTL:      r.TokenTTL,
		SecureCookies: r.SecureCookies,
	}

	r.Mux.Handle("POST /api/auth/register", http.HandlerFunc(h.HandleRegister))
	r.Mux.Handle("POST /api/auth/login", http.HandlerFunc(h.HandleLogin))
	r.Mux.Handle("POST /api/auth/logout", http.HandlerFunc(h.HandleLogout))

	r.Mux.Handle("GET /api/auth/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe), r.session()),
	)
}

func (r *Router) registerTodos() {
	h := &TodoHandler{TodoService: r.TodoService}
	session := r.session()

	r.Mux.Handle("POST /todo/create",
		httpx.Chain(http.HandlerFunc(h.HandleCreate), session),
	)
	r.Mux.Handle("GET /todo",
		httpx.Chain(http.HandlerFunc(h.HandleList), session),
	)
	r.Mux.Handle("PUT /todo/update/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate), session),
	)
	r.Mux.Handle("DELETE /todo/delete/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete), session),
	)
}

func (r *Router) registerAI() {
	h := &AIHandler{AIService: r.AIService}
	session := r.session()

	r.Mux.Handle("POST /ai/subtasks",
		httpx.Chain(http.HandlerFunc(h.HandleSubtasks), session),
	)
	r.Mux.Handle("POST /ai/parse",
		httpx.Chain(http.HandlerFunc(h.HandleParse), session),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
