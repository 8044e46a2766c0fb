package courierrepo_test

import (
	"context"
	"testing"
	"time"

	"parcel/internal/adapters/out/postgres/courierrepo"
	"parcel/internal/core/domain/model/courier"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// CourierRepositoryIntegrationTestSuite provides integration tests for
// CourierRepository using PostgreSQL containers. The duplicate-email cases
// pin down the behavior carrier provisioning relies on.
type CourierRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *courierrepo.GormCourierRepository
	tracker    *MockAggregateTracker
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&courierrepo.CourierDTO{},
		&courierrepo.CourierCityDTO{},
	))
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE courier_cities, couriers").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = courierrepo.NewGormCourierRepository(suite.db, suite.tracker)
}

func (suite *CourierRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CourierRepositoryIntegrationTestSuite) TestAdd_ValidCourier_PersistsWithCities() {
	ctx := context.Background()

	aggregate := suite.createTestCourier("agent@example.com")
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Once()

	err := suite.repository.Add(ctx, aggregate)
	suite.Require().NoError(err)

	suite.assertCourierCount(1)
	suite.assertCityCount(len(aggregate.ServiceableCities()))
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestAdd_DuplicateEmail_ReturnsAlreadyExists() {
	ctx := context.Background()

	first := suite.createTestCourier("carrier@example.com")
	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	suite.Require().NoError(suite.repository.Add(ctx, first))

	second := suite.createTestCourier("carrier@example.com")
	err := suite.repository.Add(ctx, second)
	suite.Require().Error(err)

	var alreadyExistsErr *errs.ObjectAlreadyExistsError
	suite.Require().ErrorAs(err, &alreadyExistsErr)
	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)

	suite.assertCourierCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGet_ExistingCourier_RoundTripsAllFields() {
	ctx := context.Background()

	original := suite.createTestCourier("roundtrip@example.com")
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.True(original.IsEqual(retrieved))
	suite.Equal(original.Name(), retrieved.Name())
	suite.Equal(original.Email(), retrieved.Email())
	suite.Equal(original.Kind(), retrieved.Kind())
	suite.True(original.BaseTariff().Equal(retrieved.BaseTariff()))
	suite.ElementsMatch(original.ServiceableCities(), retrieved.ServiceableCities())
	suite.Equal(original.PasswordHash(), retrieved.PasswordHash())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetByEmail_ExistingCourier_ReturnsCourier() {
	ctx := context.Background()

	original := suite.createTestCourier("lookup@example.com")
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.GetByEmail(ctx, "lookup@example.com")
	suite.Require().NoError(err)
	suite.True(original.IsEqual(retrieved))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetByEmail_UnknownEmail_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.GetByEmail(ctx, "missing@example.com")
	suite.Nil(retrieved)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_ReplacesCityList() {
	ctx := context.Background()

	original := suite.createTestCourier("update@example.com")
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, original))

	updated, err := courier.RestoreCourier(
		original.ID(),
		original.Name(),
		original.Email(),
		original.Kind(),
		original.BaseTariff(),
		[]string{"Rabat"},
		original.PasswordHash(),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, updated))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)
	suite.Equal([]string{"Rabat"}, retrieved.ServiceableCities())
	suite.assertCityCount(1)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_NonExistentCourier_ReturnsError() {
	ctx := context.Background()

	err := suite.repository.Update(ctx, suite.createTestCourier("ghost@example.com"))
	suite.Require().Error(err)
	suite.tracker.AssertExpectations(suite.T())
}

// createTestCourier creates a company courier with two serviceable cities.
func (suite *CourierRepositoryIntegrationTestSuite) createTestCourier(email string) *courier.Courier {
	aggregate, err := courier.NewCourier(
		kernel.NewUUID(),
		"Test Courier",
		email,
		courier.KindCompany,
		decimal.NewFromInt(30),
		[]string{"Casablanca", "Marrakech"},
		"$2a$10$abcdefghijklmnopqrstuv",
	)
	suite.Require().NoError(err)
	return aggregate
}

// assertCourierCount verifies the number of couriers in the database.
func (suite *CourierRepositoryIntegrationTestSuite) assertCourierCount(expected int) {
	var count int64
	err := suite.db.Model(&courierrepo.CourierDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

// assertCityCount verifies the number of courier city rows in the database.
func (suite *CourierRepositoryIntegrationTestSuite) assertCityCount(expected int) {
	var count int64
	err := suite.db.Model(&courierrepo.CourierCityDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestCourierRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CourierRepositoryIntegrationTestSuite))
}
