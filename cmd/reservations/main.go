package main

import (
	"voltslot/internal/health"
	"voltslot/internal/reservations/handler"
	"voltslot/internal/reservations/repository"
	"voltslot/internal/reservations/service"
	"voltslot/internal/reservations/validator"
	stationsrepository "voltslot/internal/stations/repository"
	"voltslot/pkg/app"
	"voltslot/pkg/config"
	"voltslot/pkg/kafka"
	kafka_config "voltslot/pkg/kafka/config"
	kafka_middleware "voltslot/pkg/kafka/middleware"
)

const ServiceName = "reservations"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Reservations service")

	notifier := initNotifier(cfg)
	defer func() {
		if err := notifier.Close(); err != nil {
			cfg.Log.Error("Failed to close notifier", "error", err)
		}
	}()

	reservationService := initServices(cfg, notifier)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg,
		handler.NewReservationHandler(reservationService, cfg.Log),
		health.NewHealthHandler(cfg.Client.Mongo, cfg.Log),
	)
	serverApp.Run()
}

func initNotifier(cfg *config.Config) service.Notifier {
	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.ReservationEventsTopic, cfg.ReservationEventsDLQ)
	if err != nil {
		cfg.Log.Error("Failed to create Kafka producer, events disabled", "error", err)
		return service.NewNoopNotifier()
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	}

	cfg.Log.Info("Reservation event producer initialized",
		"topic", cfg.ReservationEventsTopic,
		"dlq_topic", cfg.ReservationEventsDLQ,
	)
	return service.NewKafkaNotifier(producer, ServiceName, cfg.Log)
}

func initServices(cfg *config.Config, notifier service.Notifier) service.ReservationService {
	reservationValidator := validator.NewReservationValidator(cfg.Log)
	reservationRepo := repository.NewMongoReservationRepository(cfg)
	lockRepo := repository.NewSlotLockRepository(cfg)
	waitlistRepo := repository.NewWaitlistRepository(cfg)
	stationRepo := stationsrepository.NewMongoStationRepository(cfg)

	reservationService := service.NewReservationService(
		reservationRepo,
		lockRepo,
		waitlistRepo,
		stationRepo,
		reservationValidator,
		notifier,
		cfg,
	)

	cfg.Log.Info("Reservation service initialized", "database", cfg.MongoDatabaseName)
	return reservationService
}
