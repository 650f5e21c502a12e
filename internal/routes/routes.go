package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/saeid-a/CoachSchedBack/internal/config"
	"github.com/saeid-a/CoachSchedBack/internal/handlers"
	"github.com/saeid-a/CoachSchedBack/internal/middleware"
	"github.com/saeid-a/CoachSchedBack/internal/repository"
	"github.com/saeid-a/CoachSchedBack/internal/services"
	"go.uber.org/zap"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool, log *zap.Logger) {
	userRepo := repository.NewUserRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	callRepo := repository.NewCallRepository(db)

	slotService := services.NewSlotService(slotRepo, userRepo, log)
	bookingService := services.NewBookingService(db, bookingRepo, log)
	callService := services.NewCallService(callRepo, bookingRepo, log)

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	slotHandler := handlers.NewSlotHandler(slotService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	callHandler := handlers.NewCallHandler(callService)
	userHandler := handlers.NewUserHandler(userRepo)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	protected := api.Group("", middleware.AuthRequired(cfg.JWTSecret))

	protected.Get("/slots", slotHandler.ListSlots)
	protected.Post("/slots", slotHandler.CreateSlot)

	protected.Get("/bookings", bookingHandler.ListBookings)
	protected.Post("/bookings", bookingHandler.CreateBooking)

	protected.Get("/calls", callHandler.ListCalls)
	protected.Post("/calls", callHandler.CreateCall)
	protected.Put("/calls/:id", callHandler.UpdateCall)

	protected.Patch("/user/:id", userHandler.UpdatePhone)

	if cfg.DocsEnabled() {
		registerDocsRoutes(app)
	}
}
