package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"

	"github.com/Dosada05/tournament-dashboard/handlers"
)

type Handlers struct {
	Dashboard *handlers.DashboardHandler
	Referee   *handlers.RefereeHandler
	Admin     *handlers.AdminHandler
}

func SetupRoutes(h Handlers, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(chiMiddleware.Timeout(30 * time.Second))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.NotFound(handlers.NotFound)
	router.MethodNotAllowed(handlers.MethodNotAllowed)

	router.Get("/health", h.Dashboard.Health)

	router.Route("/api", func(r chi.Router) {
		// Публичные представления из кэша
		r.Get("/schedule", h.Dashboard.Schedule)
		r.Get("/upcoming", h.Dashboard.Upcoming)
		r.Route("/leaderboard", func(r chi.Router) {
			r.Get("/team", h.Dashboard.TeamLeaderboard)
			r.Get("/individual", h.Dashboard.IndividualLeaderboard)
			r.Get("/knockout", h.Dashboard.KnockoutLeaderboard)
			r.Get("/knockout/matches", h.Dashboard.KnockoutMatches)
		})
		r.Get("/winners", h.Dashboard.Winners)
		r.Get("/champions", h.Dashboard.Champions)
		r.Post("/refresh", h.Dashboard.Refresh)

		// Судья: PIN проверяет таблица
		r.Route("/referee/matches", func(r chi.Router) {
			r.Get("/", h.Referee.ListOpenMatches)
			r.Post("/{matchID}", h.Referee.SubmitMatch)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/actions", h.Admin.ListActions)
			r.Post("/actions/{action}", h.Admin.RunAction)
			r.Post("/publish", h.Admin.Publish)
		})
	})

	return router
}
