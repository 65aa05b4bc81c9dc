package routes

import (
	"github.com/campstack/camp-system/handlers"
	"github.com/campstack/camp-system/middleware"
	"github.com/campstack/camp-system/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	teamHandler *handlers.TeamHandler,
	checkinHandler *handlers.CheckinHandler,
	galleryHandler *handlers.GalleryHandler,
	overviewHandler *handlers.OverviewHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate([]byte(jwtSecret))
	staffOnly := middleware.RequireRole(models.RoleStaff, models.RoleAdmin)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	router.Post("/auth/login", authHandler.Login)

	router.Route("/tournaments/{sport}", func(r chi.Router) {
		r.Get("/matches", tournamentHandler.ListMatches)
		r.Get("/standings", tournamentHandler.Standings)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/entries", tournamentHandler.Join)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Use(staffOnly)
		r.Put("/matches/{id}/score", tournamentHandler.UpdateScore)
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/balances", teamHandler.Balances)
		r.Get("/best-available", teamHandler.BestAvailable)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/switch", teamHandler.Switch)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Use(adminOnly)
		r.Post("/admin/teams/move", teamHandler.AdminMove)
	})

	router.Route("/checkin", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", checkinHandler.CheckIn)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(staffOnly)
			r.Post("/sessions", checkinHandler.CreateSession)
			r.Post("/sessions/{id}/close", checkinHandler.CloseSession)
			r.Get("/sessions/{id}/attendance", checkinHandler.ListAttendance)
		})
	})

	router.Route("/photos", func(r chi.Router) {
		r.Get("/", galleryHandler.ListApproved)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", galleryHandler.Upload)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(staffOnly)
			r.Get("/pending", galleryHandler.ListPending)
			r.Post("/{id}/review", galleryHandler.Review)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Use(staffOnly)
		r.Get("/overview", overviewHandler.Snapshot)
	})

	router.Get("/ws/{room}", webSocketHandler.ServeWs)
}
