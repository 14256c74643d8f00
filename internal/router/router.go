package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"botnest/internal/handlers"
	"botnest/internal/middleware"
	"botnest/internal/websocket"
)

// New wires the relay routes. wsHub may be nil when Redis is not configured;
// the exchange feed then answers 503.
func New(
	chatHandler *handlers.ChatHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/chat", chatHandler.Chat)

	// ──── Exchange feed ────
	if wsHub != nil {
		r.Get("/ws/exchanges", wsHub.HandleWebSocket)
	} else {
		r.Get("/ws/exchanges", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "exchange feed requires REDIS_URL", http.StatusServiceUnavailable)
		})
	}

	return r
}
