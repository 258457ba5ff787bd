package main

import (
	"context"
	"strings"

	authHandlers "shifa-clinic/cmd/server/handlers/auth"
	"shifa-clinic/cmd/server/handlers/httperr"
	patientsHandlers "shifa-clinic/cmd/server/handlers/patients"
	"shifa-clinic/cmd/server/middlewares"
	"shifa-clinic/internal/clients/mongo"
	"shifa-clinic/internal/config"
	"shifa-clinic/internal/logger"
	authService "shifa-clinic/internal/services/auth"
	patientsService "shifa-clinic/internal/services/patients"
	"shifa-clinic/internal/utils/crypto"

	"shifa-clinic/cmd/server/handlers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// setupRouter configures and returns a Fiber app with all routes
func setupRouter(ctx context.Context, cfg config.Config) *fiber.App {

	// Initialize validator and register password validation
	v := validator.New()
	if err := crypto.RegisterPasswordValidator(v); err != nil {
		logger.L().Error("failed to register password validator", "err", err)
		panic(err)
	}

	// Validate JWT algorithm at boot
	alg := strings.ToUpper(cfg.JWTAlgorithm)
	switch alg {
	case "HS256":
		// Valid algorithm
	default:
		logger.L().Error(authService.ErrUnsupportedJWTAlg.Error(), "algorithm", cfg.JWTAlgorithm)
		panic(authService.ErrUnsupportedJWTAlg.Error() + ": " + cfg.JWTAlgorithm)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: httperr.Handler,
		Immutable:    true, // make Fiber copy all request-derived strings
	})

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Content-Type, Authorization",
	}))

	if cfg.RouteMetricsEnabled {
		middlewares.AttachMetrics(app)
	}

	// Health check endpoint, outside the API group to avoid request logging
	app.Get("/healthz", handlers.Healthz)

	var api fiber.Router
	if cfg.RequestLoggingEnabled {
		api = app.Group("/api", fiberlogger.New())
		logger.L().Info("request logging enabled")
	} else {
		api = app.Group("/api")
		logger.L().Info("request logging disabled")
	}

	jwtMiddleware := middlewares.JWT(cfg)

	usersRepo, err := mongo.NewUsersRepo(ctx, mongo.DB())
	if err != nil {
		logger.L().Error("failed to create users repository", "error", err)
		panic(err)
	}

	authSvc := authService.NewService(usersRepo, cfg, logger.L())
	authH := authHandlers.NewHandlers(authSvc, v)

	api.Post("/register", authH.Register)
	api.Post("/login", authH.Login)

	patientsSvc := patientsService.NewService(usersRepo, logger.L())
	patientsH := patientsHandlers.NewHandlers(patientsSvc)

	api.Get("/patients", jwtMiddleware, patientsH.List)

	// Identity of the current bearer (exercises the middleware success path)
	api.Get("/me", jwtMiddleware, handlers.Me)

	return app
}
