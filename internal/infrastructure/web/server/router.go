package server

import (
	_ "mandi-service/internal/docs"
	"mandi-service/internal/infrastructure/metrics"
	"mandi-service/internal/infrastructure/ratelimit"
	"mandi-service/internal/infrastructure/web/handlers"
	"mandi-service/internal/infrastructure/web/middleware"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Mandi   *handlers.MandiHandler
	Auth    *handlers.AuthHandler
	Ads     *handlers.AdHandler
	Chat    *handlers.ChatHandler
	Request *handlers.RequestHandler
	Health  *handlers.HealthHandler
}

// Middlewares holds the configured cross cutting middleware
type Middlewares struct {
	Auth      *middleware.AuthMiddleware
	RateLimit *ratelimit.RateLimitMiddleware
	CORS      func(http.Handler) http.Handler
}

// NewRouter wires routes and the middleware chain:
// tracing -> security logging -> metrics -> CORS -> rate limit -> routes
func NewRouter(h Handlers, m Middlewares) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", h.Health.Root).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)
	r.HandleFunc("/ready", h.Health.Ready).Methods(http.MethodGet)

	// Monitoring endpoints
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// Documentation endpoints
	r.PathPrefix("/swagger/").Handler(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.HandleFunc("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})

	api := r.PathPrefix("/api").Subrouter()

	mandi := api.PathPrefix("/mandi").Subrouter()
	mandi.HandleFunc("/latest", h.Mandi.Latest).Methods(http.MethodGet)
	mandi.HandleFunc("/refresh", h.Mandi.Refresh).Methods(http.MethodGet)
	mandi.HandleFunc("/status", h.Mandi.Status).Methods(http.MethodGet)

	authRoutes := api.PathPrefix("/auth").Subrouter()
	authRoutes.HandleFunc("/signup", h.Auth.Signup).Methods(http.MethodPost)
	authRoutes.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)
	authRoutes.Handle("/me", m.Auth.Handler(http.HandlerFunc(h.Auth.Me))).Methods(http.MethodGet)

	// collections answer with and without the trailing slash
	collectionRoots := []string{"", "/"}

	ads := api.PathPrefix("/ads").Subrouter()
	for _, root := range collectionRoots {
		ads.HandleFunc(root, h.Ads.List).Methods(http.MethodGet)
		ads.Handle(root, m.Auth.Handler(http.HandlerFunc(h.Ads.Create))).Methods(http.MethodPost)
	}
	ads.HandleFunc("/{id}", h.Ads.Get).Methods(http.MethodGet)
	ads.Handle("/{id}", m.Auth.Handler(http.HandlerFunc(h.Ads.Delete))).Methods(http.MethodDelete)

	chat := api.PathPrefix("/chat").Subrouter()
	chat.Use(m.Auth.Handler)
	chat.HandleFunc("/conversation", h.Chat.StartConversation).Methods(http.MethodPost)
	chat.HandleFunc("/conversations", h.Chat.ListConversations).Methods(http.MethodGet)
	chat.HandleFunc("/messages/{conversationId}", h.Chat.ListMessages).Methods(http.MethodGet)
	chat.HandleFunc("/message", h.Chat.SendMessage).Methods(http.MethodPost)

	requests := api.PathPrefix("/requests").Subrouter()
	requests.Use(m.Auth.Handler)
	for _, root := range collectionRoots {
		requests.HandleFunc(root, h.Request.Create).Methods(http.MethodPost)
		requests.HandleFunc(root, h.Request.List).Methods(http.MethodGet)
	}
	requests.HandleFunc("/{id}/status", h.Request.UpdateStatus).Methods(http.MethodPut)

	var handler http.Handler = r
	if m.RateLimit != nil {
		handler = m.RateLimit.Handler(handler)
	}
	if m.CORS != nil {
		handler = m.CORS(handler)
	}
	handler = metrics.HTTPMetricsMiddleware(handler)
	handler = middleware.SecurityLoggingMiddleware(handler)
	handler = middleware.RequestTracingMiddleware(handler)

	return handler
}
