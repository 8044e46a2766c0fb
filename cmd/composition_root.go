package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"parcel/internal/adapters/out/carrier"
	"parcel/internal/adapters/out/postgres"
	"parcel/internal/adapters/out/postgres/cityregistry"
	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/application/usecases/queries"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// trackingCacheTTL bounds the staleness of the public tracking view.
const trackingCacheTTL = 2 * time.Minute

type CompositionRoot struct {
	config        Config
	gormDB        *gorm.DB
	uowFactory    postgres.GormUnitOfWorkFactory
	carrierClient *carrier.Client
	cachedCarrier ports.CarrierClient
	logger        *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, redisClient *redis.Client, logger *slog.Logger) CompositionRoot {
	carrierClient := carrier.NewClient(carrier.Config{
		BaseURL:   config.CarrierBaseURL,
		Token:     config.CarrierToken,
		SecretKey: config.CarrierSecretKey,
	}, nil)

	// The cache serves the public tracking endpoint only. Reconciliation
	// and hand-offs always talk to the carrier directly.
	var cachedCarrier ports.CarrierClient = carrierClient
	if redisClient != nil {
		cachedCarrier = carrier.NewCachedClient(carrierClient, redisClient, trackingCacheTTL, logger)
	}

	return CompositionRoot{
		config:        config,
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		carrierClient: carrierClient,
		cachedCarrier: cachedCarrier,
		logger:        logger,
	}
}

func (c *CompositionRoot) CreateProvisionCarrierCourierCommandHandler() commands.ProvisionCarrierCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewProvisionCarrierCourierCommandHandler(f, cityregistry.NewGormCityRegistry(c.gormDB))
}

func (c *CompositionRoot) CreateAssignParcelsCommandHandler() (commands.AssignParcelsCommandHandler, error) {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})

	courierSource, err := c.createCarrierCourierSource()
	if err != nil {
		return commands.AssignParcelsCommandHandler{}, err
	}

	return commands.NewAssignParcelsCommandHandler(f, c.carrierClient, courierSource), nil
}

func (c *CompositionRoot) CreateReconcileParcelsCommandHandler() commands.ReconcileParcelsCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcileParcelsCommandHandler(f, c.carrierClient, nil)
}

func (c *CompositionRoot) CreateTrackParcelQueryHandler() queries.TrackParcelQueryHandler {
	return queries.NewTrackParcelQueryHandler(c.gormDB, c.cachedCarrier)
}

func (c *CompositionRoot) CreateListCarrierShipmentsQueryHandler() queries.ListCarrierShipmentsQueryHandler {
	return queries.NewListCarrierShipmentsQueryHandler(c.carrierClient)
}

// createCarrierCourierSource binds the provisioning handler to the carrier
// courier identity configured for this deployment.
func (c *CompositionRoot) createCarrierCourierSource() (*carrierCourierSource, error) {
	tariff, err := decimal.NewFromString(c.config.CarrierCourierTariff)
	if err != nil {
		return nil, fmt.Errorf("invalid carrier courier tariff %q: %w", c.config.CarrierCourierTariff, err)
	}

	cmd, err := commands.NewProvisionCarrierCourierCommand(
		c.config.CarrierCourierEmail,
		c.config.CarrierCourierName,
		tariff,
	)
	if err != nil {
		return nil, err
	}

	handler := c.CreateProvisionCarrierCourierCommandHandler()
	return &carrierCourierSource{handler: handler, cmd: cmd}, nil
}

// carrierCourierSource adapts the provisioning handler to the
// CarrierCourierSource contract used by batch hand-offs.
type carrierCourierSource struct {
	handler commands.ProvisionCarrierCourierCommandHandler
	cmd     commands.ProvisionCarrierCourierCommand
}

func (s *carrierCourierSource) GetOrCreateCarrierCourier(ctx context.Context) (kernel.UUID, error) {
	return s.handler.Handle(ctx, s.cmd)
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
