package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/rgomide/gerenciador-torneio-sub001/handlers"
	"github.com/rgomide/gerenciador-torneio-sub001/middleware"
	"github.com/rgomide/gerenciador-torneio-sub001/models"
)

// SetupRoutes собирает все маршруты приложения.
// Чтение открыто, мутации требуют JWT с ролью admin или manager.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret []byte,
	authHandler *handlers.AuthHandler,
	institutionHandler *handlers.InstitutionHandler,
	unitHandler *handlers.UnitHandler,
	eventHandler *handlers.EventHandler,
	tournamentHandler *handlers.TournamentHandler,
	teamHandler *handlers.TeamHandler,
	playerHandler *handlers.PlayerHandler,
	matchHandler *handlers.MatchHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)
	manageOnly := middleware.Authorize(models.RoleAdmin, models.RoleManager)
	adminOnly := middleware.Authorize(models.RoleAdmin)

	router.Get("/swagger/*", httpSwagger.Handler())

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Get("/ws/matches/{matchID}", webSocketHandler.ServeMatch)

	router.Route("/institutions", func(r chi.Router) {
		r.Get("/", institutionHandler.List)
		r.Get("/{institutionID}", institutionHandler.GetByID)
		r.Get("/{institutionID}/units", unitHandler.ListByInstitution)

		r.Group(func(r chi.Router) {
			r.Use(authenticate, manageOnly)
			r.Post("/", institutionHandler.Create)
			r.Put("/{institutionID}", institutionHandler.Update)
			r.Post("/{institutionID}/logo", institutionHandler.UploadLogo)
			r.Post("/{institutionID}/units", unitHandler.Create)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate, adminOnly)
			r.Delete("/{institutionID}", institutionHandler.Delete)
		})
	})

	router.Route("/units", func(r chi.Router) {
		r.Get("/{unitID}", unitHandler.GetByID)
		r.Get("/{unitID}/events", eventHandler.ListByUnit)
		r.Get("/{unitID}/teams", teamHandler.ListByUnit)

		r.Group(func(r chi.Router) {
			r.Use(authenticate, manageOnly)
			r.Put("/{unitID}", unitHandler.Update)
			r.Delete("/{unitID}", unitHandler.Delete)
		})
	})

	router.Route("/events", func(r chi.Router) {
		r.Get("/{eventID}", eventHandler.GetByID)
		r.Get("/{eventID}/tournaments", tournamentHandler.ListByEvent)

		r.Group(func(r chi.Router) {
			r.Use(authenticate, manageOnly)
			r.Post("/", eventHandler.Create)
			r.Put("/{eventID}", eventHandler.Update)
			r.Delete("/{eventID}", eventHandler.Delete)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/{tournamentID}", tournamentHandler.GetByID)
		r.Get("/{tournamentID}/matches", matchHandler.ListByTournament)

		r.Group(func(r chi.Router) {
			r.Use(authenticate, manageOnly)
			r.Post("/", tournamentHandler.Create)
			r.Put("/{tournamentID}", tournamentHandler.Update)
			r.Delete("/{tournamentID}", tournamentHandler.Delete)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/{teamID}", teamHandler.GetByID)
		r.Get("/{teamID}/players", teamHandler.ListPlayers)

		r.Group(func(r chi.Router) {
			r.Use(authenticate, manageOnly)
			r.Post("/", teamHandler.Create)
			r.Put("/{teamID}", teamHandler.Update)
			r.Post("/{teamID}/logo", teamHandler.UploadLogo)
			r.Delete("/{teamID}", teamHandler.Delete)
		})
	})

	router.Route("/players", func(r chi.Router) {
		r.Get("/", playerHandler.List)
		r.Get("/{playerID}", playerHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate, manageOnly)
			r.Post("/", playerHandler.Create)
			r.Put("/{playerID}", playerHandler.Update)
			r.Delete("/{playerID}", playerHandler.Delete)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/{matchID}", matchHandler.GetByID)
		r.Get("/{matchID}/participations", matchHandler.ListParticipants)
		r.Get("/{matchID}/scores", matchHandler.ListScores)

		r.Group(func(r chi.Router) {
			r.Use(authenticate, manageOnly)
			r.Post("/", matchHandler.Create)
			r.Put("/{matchID}", matchHandler.Update)
			r.Post("/{matchID}/finish", matchHandler.Finish)
			r.Delete("/{matchID}", matchHandler.Delete)

			r.Post("/{matchID}/participations", matchHandler.RegisterParticipant)
			r.Delete("/participations/{participationID}", matchHandler.RemoveParticipant)

			r.Post("/{matchID}/scores", matchHandler.AddScore)
			r.Delete("/scores/{scoreID}", matchHandler.DeleteScore)
		})
	})
}
