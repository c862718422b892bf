// Package main is the entry point for the API server.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"etude/internal/config"
	"etude/internal/handlers"
	"etude/internal/middleware"
	"etude/internal/repositories"
	"etude/internal/repositories/media"
	"etude/internal/routes"
	"etude/internal/services/auth"
	"etude/internal/services/contact"
	"etude/internal/services/dashboard"
	"etude/internal/services/documents"
	"etude/internal/services/fees"
	"etude/internal/services/property"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
)

func main() {
	config.LoadEnv()
	config.SetupLogger()

	if err := repositories.InitDB(); err != nil {
		log.Fatal().Err(err).Msg("database initialization failed")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repositories.InitCache(ctx)
	defer repositories.Close()
	go repositories.DBStats(ctx, time.Minute)

	schedule, err := fees.ScheduleFromPath(config.GetEnv("FEE_SCHEDULE_PATH", ""))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid fee schedule")
	}
	log.Info().Str("version", schedule.Version).Msg("fee schedule loaded")
	calc := fees.NewCalculator(schedule)

	mediaRoot := config.GetEnv("MEDIA_ROOT", "./media")
	images, err := media.NewOsStore(mediaRoot, config.GetEnv("MEDIA_BASE_URL", "/media"), media.DefaultMaxSize)
	if err != nil {
		log.Fatal().Err(err).Msg("media store initialization failed")
	}

	var publisher contact.Publisher = contact.NoopPublisher{}
	if brokers := config.KafkaBrokers(); len(brokers) > 0 {
		topic := config.GetEnv("KAFKA_CONTACT_TOPIC", "contact-requests")
		publisher = contact.NewKafkaPublisher(config.NewKafkaWriter(brokers, topic))
		log.Info().Strs("brokers", brokers).Str("topic", topic).Msg("contact leads published to kafka")
	}

	cacheLayer := repositories.ActiveCache()
	userRepo := repositories.NewUserRepository(repositories.DB, cacheLayer)
	authService := auth.NewService(userRepo)
	propertyService := property.NewService(repositories.NewPropertyRepository(repositories.DB), images, cacheLayer, calc)
	contactService := contact.NewService(repositories.NewContactRepository(repositories.DB), publisher)
	defer func() {
		if err := contactService.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close contact publisher")
		}
	}()

	app := fiber.New(fiber.Config{
		AppName:   "etude-api",
		BodyLimit: int(media.DefaultMaxSize) + 1<<20,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(corsOrigins(), ","),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Static("/media", mediaRoot)

	routes.SetupRoutes(app, routes.Handlers{
		Health:     handlers.NewHealthHandler(repositories.DB, repositories.CacheService),
		Auth:       handlers.NewAuthHandler(authService),
		Fees:       handlers.NewFeesHandler(calc),
		Properties: handlers.NewPropertyHandler(propertyService),
		Contact:    handlers.NewContactHandler(contactService),
		Documents:  handlers.NewDocumentsHandler(documents.NewCatalogue(), documents.NewRenderer(config.LoadOffice())),
		Dashboard:  handlers.NewDashboardHandler(dashboard.NewService(repositories.DB)),
	}, middleware.NewAuthMiddleware(authService), routes.DefaultOptions())

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	addr := ":" + config.GetEnv("PORT", "3000")
	log.Info().Str("addr", addr).Msg("server starting")
	if err := app.Listen(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}

// corsOrigins never returns a wildcard since credentials are allowed.
func corsOrigins() []string {
	if origins := config.GetListEnv("CORS_ORIGINS"); len(origins) > 0 {
		return origins
	}
	return []string{"http://localhost:5173"}
}
