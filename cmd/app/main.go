package main

import (
	"fmt"
	"log/slog"
	"os"

	"parcel/cmd"
	httpin "parcel/internal/adapters/in/http"
	"parcel/internal/adapters/out/postgres/cityregistry"
	"parcel/internal/adapters/out/postgres/courierrepo"
	"parcel/internal/adapters/out/postgres/ledgerrepo"
	"parcel/internal/adapters/out/postgres/parcelrepo"
	"parcel/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := openDatabase(configs)
	migrateDatabase(gormDB)

	var redisClient *redis.Client
	if configs.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: configs.RedisAddr})
	}

	app := cmd.NewCompositionRoot(configs, gormDB, redisClient, logger)

	jobManager := jobs.NewJobManager(
		app.CreateReconcileParcelsCommandHandler(),
		configs.ReconcileSchedule,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:             goDotEnvVariable("HTTP_PORT"),
		DBHost:               goDotEnvVariable("DB_HOST"),
		DBPort:               goDotEnvVariable("DB_PORT"),
		DBUser:               goDotEnvVariable("DB_USER"),
		DBPassword:           goDotEnvVariable("DB_PASSWORD"),
		DBName:               goDotEnvVariable("DB_NAME"),
		DBSslMode:            goDotEnvVariable("DB_SSLMODE"),
		CarrierBaseURL:       goDotEnvVariable("CARRIER_BASE_URL"),
		CarrierToken:         goDotEnvVariable("CARRIER_TOKEN"),
		CarrierSecretKey:     goDotEnvVariable("CARRIER_SECRET_KEY"),
		CarrierCourierEmail:  goDotEnvVariable("CARRIER_COURIER_EMAIL"),
		CarrierCourierName:   goDotEnvVariable("CARRIER_COURIER_NAME"),
		CarrierCourierTariff: goDotEnvVariable("CARRIER_COURIER_TARIFF"),
		RedisAddr:            goDotEnvVariable("REDIS_ADDR"),
		ReconcileSchedule:    goDotEnvVariable("RECONCILE_SCHEDULE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	// TranslateError turns driver unique violations into gorm.ErrDuplicatedKey,
	// which the repositories rely on.
	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func migrateDatabase(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&parcelrepo.ParcelDTO{},
		&ledgerrepo.LedgerDTO{},
		&ledgerrepo.LedgerEventDTO{},
		&courierrepo.CourierDTO{},
		&courierrepo.CourierCityDTO{},
		&cityregistry.CityDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	assignHandler, err := app.CreateAssignParcelsCommandHandler()
	if err != nil {
		log.Fatalf("Failed to build assignment handler: %v", err)
	}

	server := httpin.NewServer(
		assignHandler,
		app.CreateReconcileParcelsCommandHandler(),
		app.CreateTrackParcelQueryHandler(),
		app.CreateListCarrierShipmentsQueryHandler(),
	)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
