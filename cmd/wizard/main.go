package main

import (
	"bookingwizard/internal/wizard/categories"
	"bookingwizard/internal/wizard/core"
	"bookingwizard/internal/wizard/handler"
	"bookingwizard/internal/wizard/service"
	"bookingwizard/internal/wizard/submission"
	"bookingwizard/internal/wizard/validator"
	"bookingwizard/pkg/app"
	"bookingwizard/pkg/client"
	"bookingwizard/pkg/config"
	"bookingwizard/pkg/kafka"
	kafka_middleware "bookingwizard/pkg/kafka/middleware"
)

const ServiceName = "booking-wizard"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Booking Wizard service")
	serverApp := app.NewApplication(cfg)

	source := initCategorySource(cfg)
	publisher := initPublisher(cfg, serverApp)
	wizardService := initServices(cfg, source, publisher)
	serverApp.OnShutdown("wizard-sessions", func() error {
		wizardService.Stop()
		return nil
	})

	serverApp.SetApp(
		handler.NewHealthHandler(source, cfg.Log),
		handler.NewWizardHandler(wizardService, cfg.Log),
	)
	serverApp.Run()
}

func initCategorySource(cfg *config.Config) categories.Source {
	if cfg.CategoryServiceURL == "" {
		cfg.Log.Info("Using built-in booking categories")
		return categories.StaticSource{}
	}

	categoryClient := client.NewClient(cfg.CategoryServiceURL, cfg.ClientTimeout)
	cfg.Log.Info("Using category metadata service", "url", cfg.CategoryServiceURL)
	return categories.NewHTTPSource(categoryClient.Categories, cfg.Log)
}

func initPublisher(cfg *config.Config, serverApp *app.Application) submission.Publisher {
	brokers := kafka.ParseBrokers(cfg.KafkaBrokers)
	if len(brokers) == 0 {
		cfg.Log.Info("Kafka brokers not configured, booking events are disabled")
		return submission.NopPublisher{}
	}

	producer, err := kafka.NewProducer(kafka.Config{
		Brokers:     brokers,
		Topic:       cfg.KafkaTopic,
		DLQTopic:    cfg.KafkaDLQTopic,
		RequireAcks: -1,
	})
	if err != nil {
		cfg.Log.Fatal("Failed to create kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	serverApp.OnShutdown("kafka-producer", producer.Close)

	cfg.Log.Info("Booking events enabled", "topic", producer.Topic(), "brokers", brokers)
	return submission.NewKafkaPublisher(producer)
}

func initServices(cfg *config.Config, source categories.Source, publisher submission.Publisher) service.WizardService {
	bookingClient := client.NewClient(cfg.BookingServiceURL, cfg.ClientTimeout)
	submitter := submission.NewHTTPSubmitter(bookingClient.Bookings, submission.BreakerSettings{
		ConsecutiveFailures: uint32(cfg.BreakerFailures),
		OpenTimeout:         cfg.BreakerTimeout,
	}, cfg.Log)

	deps := core.Dependencies{
		Common:             validator.NewCommonValidator(cfg.Log),
		Fields:             categories.NewValidator(cfg.Log),
		Submitter:          submitter,
		Publisher:          publisher,
		Logger:             cfg.Log,
		CancellationPolicy: cfg.CancellationPolicy,
		DefaultCurrency:    cfg.DefaultCurrency,
	}

	wizardService := service.NewWizardService(source, deps, cfg.SessionTTL, cfg.Log)
	cfg.Log.Info("Wizard service initialized",
		"booking_service", cfg.BookingServiceURL,
		"session_ttl", cfg.SessionTTL,
	)
	return wizardService
}
