package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/portfolio-api/internal/config"
	"github.com/noah-isme/portfolio-api/internal/database"
	"github.com/noah-isme/portfolio-api/internal/handler"
	"github.com/noah-isme/portfolio-api/internal/middleware"
	"github.com/noah-isme/portfolio-api/internal/notifier"
	"github.com/noah-isme/portfolio-api/internal/observability"
	"github.com/noah-isme/portfolio-api/internal/repository"
	"github.com/noah-isme/portfolio-api/internal/router"
	"github.com/noah-isme/portfolio-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", cfg.AppName).Logger()

	notify, err := buildNotifier(cfg, logger)
	if err != nil {
		log.Fatalf("failed to configure notifier: %v", err)
	}

	validate := service.NewValidator()

	emailPipeline := service.NewSubmissionService(service.SubmissionOptions{Name: "email"}, validate, notify, logger)
	deps := router.Dependencies{
		EmailHandler:   handler.NewEmailHandler(emailPipeline, logger),
		MetricsHandler: observability.MetricsHandler(nil),
	}

	if cfg.StoreEnabled {
		db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		if err := database.Migrate(db); err != nil {
			log.Fatalf("%v", err)
		}

		contactRepo := repository.NewContactRepository(db)
		contactPipeline := service.NewSubmissionService(service.SubmissionOptions{
			Name:          "contacts",
			Store:         contactRepo,
			SubjectFormat: "New Contact Form Submission from %s",
		}, validate, notify, logger)
		contactService := service.NewContactService(contactRepo, validate, logger)
		deps.ContactHandler = handler.NewContactHandler(contactPipeline, contactService, logger)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		// The notifier may hold a request for its full timeout.
		WriteTimeout: cfg.NotifierTimeout + 5*time.Second,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AllowedOrigins: cfg.CORSAllowedOrigins})
	router.Register(app, cfg, deps)

	logger.Info().
		Str("addr", cfg.HTTPAddress()).
		Str("transport", cfg.NotifierTransport).
		Bool("store", cfg.StoreEnabled).
		Strs("cors_origins", cfg.CORSAllowedOrigins).
		Msg("starting server")

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func buildNotifier(cfg config.Config, logger zerolog.Logger) (*notifier.Notifier, error) {
	var transport notifier.Transport
	switch cfg.NotifierTransport {
	case config.TransportSMTP:
		smtp, err := notifier.NewSMTPTransport(notifier.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			Timeout:  cfg.NotifierTimeout,
		}, logger)
		if err != nil {
			return nil, err
		}
		transport = smtp
	case config.TransportSendGrid:
		sendGrid, err := notifier.NewSendGridTransport(cfg.SendGridAPIKey, cfg.SendGridBaseURL)
		if err != nil {
			return nil, err
		}
		transport = sendGrid
	default:
		transport = notifier.NewLogTransport(logger)
	}

	location, err := notifier.ParseLocation(cfg.NotifierTimezone)
	if err != nil {
		return nil, err
	}

	to := cfg.NotifierTo
	if to == "" {
		// Only reachable with the log transport.
		to = "owner@localhost"
	}

	return notifier.New(transport, notifier.Config{
		To:       to,
		From:     cfg.NotifierFrom,
		FromName: cfg.NotifierFromName,
		Location: location,
		Timeout:  cfg.NotifierTimeout,
	}, logger)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
