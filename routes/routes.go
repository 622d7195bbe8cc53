package routes

import (
	"github.com/dbv-club/championship-system/handlers"
	"github.com/dbv-club/championship-system/middleware"
	"github.com/dbv-club/championship-system/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	auth *middleware.Auth,
	authHandler *handlers.AuthHandler,
	championshipHandler *handlers.ChampionshipHandler,
	unitHandler *handlers.UnitHandler,
	evaluationHandler *handlers.EvaluationHandler,
	demeritHandler *handlers.DemeritHandler,
	classProgressHandler *handlers.ClassProgressHandler,
	rankingHandler *handlers.RankingHandler,
	dashboardHandler *handlers.DashboardHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	staff := []models.UserRole{models.RoleAdmin, models.RoleDirector, models.RoleCounselor}
	admins := []models.UserRole{models.RoleAdmin, models.RoleDirector}

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Get("/demerit-types", demeritHandler.ListTypesHandler)

	router.Route("/units", func(r chi.Router) {
		r.Get("/", unitHandler.ListHandler)
		r.Get("/{unitID}", unitHandler.GetByIDHandler)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(auth.Authorize(admins...))

			r.Post("/", unitHandler.CreateHandler)
			r.Put("/{unitID}", unitHandler.UpdateHandler)
			r.Put("/{unitID}/emblem", unitHandler.UploadEmblemHandler)
		})
	})

	router.Route("/championships", func(r chi.Router) {
		// Public read side: leaderboard and dashboards.
		r.Get("/", championshipHandler.ListHandler)
		r.Get("/{championshipID}", championshipHandler.GetByIDHandler)
		r.Get("/{championshipID}/leaderboard", rankingHandler.LeaderboardHandler)
		r.Get("/{championshipID}/summary", dashboardHandler.SummaryHandler)
		r.Get("/{championshipID}/units/{unitID}/daily", dashboardHandler.DailyDetailHandler)
		r.Get("/{championshipID}/units/{unitID}/history", dashboardHandler.HistoryHandler)
		r.Get("/{championshipID}/units/{unitID}/yearly", dashboardHandler.YearlyHandler)
		r.Get("/{championshipID}/units/{unitID}/class-progress", classProgressHandler.GetHandler)

		// Staff write side: every mutation triggers a full resync.
		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(auth.Authorize(staff...))

			r.Post("/{championshipID}/evaluations", evaluationHandler.CreateHandler)
			r.Post("/{championshipID}/demerits", demeritHandler.CreateHandler)
			r.Put("/{championshipID}/units/{unitID}/class-progress", classProgressHandler.UpsertHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(auth.Authorize(admins...))

			r.Post("/", championshipHandler.CreateHandler)
			r.Patch("/{championshipID}/status", championshipHandler.UpdateStatusHandler)
			r.Post("/{championshipID}/bootstrap", rankingHandler.BootstrapHandler)
			r.Post("/{championshipID}/synchronize", rankingHandler.SynchronizeHandler)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Use(auth.Authorize(staff...))

		r.Delete("/evaluations/{evaluationID}", evaluationHandler.DeleteHandler)
		r.Delete("/demerits/{demeritID}", demeritHandler.DeleteHandler)
	})
}
