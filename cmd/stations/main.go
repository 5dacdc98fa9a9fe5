package main

import (
	"voltslot/internal/health"
	"voltslot/internal/stations/handler"
	"voltslot/internal/stations/repository"
	"voltslot/internal/stations/service"
	"voltslot/internal/stations/validator"
	"voltslot/pkg/app"
	"voltslot/pkg/config"
)

const ServiceName = "stations"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Stations service")
	stationService := initServices(cfg)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg,
		handler.NewStationHandler(stationService, cfg.Log),
		health.NewHealthHandler(cfg.Client.Mongo, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config) service.StationService {
	stationValidator := validator.NewStationValidator(cfg.Log)
	stationRepo := repository.NewMongoStationRepository(cfg)
	stationService := service.NewStationService(
		stationRepo,
		stationValidator,
		cfg,
	)

	cfg.Log.Info("Station service initialized", "database", cfg.MongoDatabaseName)
	return stationService
}
