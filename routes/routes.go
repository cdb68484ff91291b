package routes

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	"github.com/hopon-app/hopon/handlers"
	"github.com/hopon-app/hopon/middleware"
)

type Handlers struct {
	Pages     *handlers.PageHandler
	Sports    *handlers.SportHandler
	Events    *handlers.EventHandler
	WebSocket *handlers.WebSocketHandler
	Static    fs.FS
}

type Options struct {
	Logger             *slog.Logger
	CORSAllowedOrigins []string
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(logger))
	router.Use(chiMiddleware.Recoverer)

	// Экраны приложения. Пустой сегмент sportId не совпадает ни с одним экраном.
	router.Get("/", h.Pages.Home)
	router.Get("/sport/{sportId:[^/]+}", h.Pages.SportActions)
	router.Get("/sport/{sportId:[^/]+}/join", h.Pages.Join)
	router.Get("/sport/{sportId:[^/]+}/create", h.Pages.Create)

	// Всё, что не совпало ни с одним маршрутом, получает страницу "Not found."
	router.NotFound(h.Pages.NotFound)
	router.MethodNotAllowed(h.Pages.NotFound)

	if h.Static != nil {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(h.Static)))
		router.Get("/static/*", func(w http.ResponseWriter, r *http.Request) {
			// Листинг каталогов не отдаём.
			if strings.HasSuffix(r.URL.Path, "/") {
				h.Pages.NotFound(w, r)
				return
			}
			w.Header().Set("Cache-Control", "public, max-age=3600")
			fileServer.ServeHTTP(w, r)
		})
	}

	router.Get("/health", handlers.Health)
	router.Get("/hello", handlers.Hello)

	router.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSAllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.NotFound(handlers.APINotFound)
		r.MethodNotAllowed(handlers.APIMethodNotAllowed)

		r.Route("/sports", func(r chi.Router) {
			r.Get("/", h.Sports.GetAllSports)
			r.Get("/{sportId}", h.Sports.GetSportByID)
			r.Get("/{sportId}/events", h.Events.ListEvents)
			r.Post("/{sportId}/events", h.Events.CreateEvent)
		})

		r.Route("/events/{eventID}", func(r chi.Router) {
			r.Get("/", h.Events.GetEvent)
			r.Delete("/", h.Events.DeleteEvent)
			r.Post("/participants", h.Events.JoinEvent)
		})
	})

	if h.WebSocket != nil {
		router.Get("/ws/sports/{sportId}", h.WebSocket.ServeWs)
	}
}
