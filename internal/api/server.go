package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/paperstreet/tradetalk/internal/assistant"
)

// NewRouter builds the HTTP router with the standard middleware stack.
func NewRouter(svc *assistant.Service) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	handler := NewChatService(svc)
	r.Route("/api", func(r chi.Router) {
		handler.AddRoutes(r)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		WriteJsonResponse(w, map[string]string{"status": "ok"})
	})

	return r
}

// NewServer wraps the router in an http.Server ready to listen.
func NewServer(addr string, svc *assistant.Service) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewRouter(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
