package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"fleethvac/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type MockTenantLister struct {
	mock.Mock
}

func (m *MockTenantLister) List(ctx context.Context) ([]*models.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tenant), args.Error(1)
}

type MockMaintenanceFinder struct {
	mock.Mock
}

func (m *MockMaintenanceFinder) ListMaintenanceDue(ctx context.Context, tenantID string, dueBy, lastServicedBefore time.Time) ([]*models.Aggregate, error) {
	args := m.Called(ctx, tenantID, dueBy, lastServicedBefore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Aggregate), args.Error(1)
}

type MockFaultFinder struct {
	mock.Mock
}

func (m *MockFaultFinder) ListFaulted(ctx context.Context, tenantID string, since time.Time) ([]string, error) {
	args := m.Called(ctx, tenantID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockAlertPublisher struct {
	mock.Mock
}

func (m *MockAlertPublisher) PublishMaintenanceAlert(ctx context.Context, alert models.MaintenanceAlert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

type MaintenanceAlertTestSuite struct {
	suite.Suite
	tenants    *MockTenantLister
	aggregates *MockMaintenanceFinder
	readings   *MockFaultFinder
	publisher  *MockAlertPublisher
	logs       *observer.ObservedLogs
	svc        *MaintenanceAlertService
	now        time.Time
}

func (s *MaintenanceAlertTestSuite) SetupTest() {
	s.tenants = new(MockTenantLister)
	s.aggregates = new(MockMaintenanceFinder)
	s.readings = new(MockFaultFinder)
	s.publisher = new(MockAlertPublisher)

	core, logs := observer.New(zap.InfoLevel)
	s.logs = logs
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s.svc = NewMaintenanceAlertService(s.tenants, s.aggregates, s.readings, s.publisher,
		90*24*time.Hour, time.Hour, zap.New(core))
	s.svc.now = func() time.Time { return s.now }
}

func (s *MaintenanceAlertTestSuite) TearDownTest() {
	s.tenants.AssertExpectations(s.T())
	s.aggregates.AssertExpectations(s.T())
	s.readings.AssertExpectations(s.T())
	s.publisher.AssertExpectations(s.T())
}

func (s *MaintenanceAlertTestSuite) TestCheckTenantCombinesOverdueAndFaulted() {
	s.aggregates.On("ListMaintenanceDue", mock.Anything, "acme", s.now, s.now.Add(-90*24*time.Hour)).
		Return([]*models.Aggregate{{AggregateNumber: "AG-1"}, {AggregateNumber: "AG-2"}}, nil).Once()
	s.readings.On("ListFaulted", mock.Anything, "acme", s.now.Add(-time.Hour)).
		Return([]string{"AG-2", "AG-7"}, nil).Once()

	alert, err := s.svc.CheckTenant(context.Background(), "acme")

	s.Require().NoError(err)
	s.Require().NotNil(alert)
	s.Equal("acme", alert.TenantID)
	s.Equal(2, alert.OverdueCount)
	s.Equal(2, alert.FaultCount)
	s.Equal([]string{"AG-1", "AG-2", "AG-7"}, alert.AggregateNumbers)
	s.Equal(s.now, alert.GeneratedAt)
}

func (s *MaintenanceAlertTestSuite) TestCheckTenantNothingDue() {
	s.aggregates.On("ListMaintenanceDue", mock.Anything, "acme", mock.Anything, mock.Anything).
		Return([]*models.Aggregate{}, nil).Once()
	s.readings.On("ListFaulted", mock.Anything, "acme", mock.Anything).Return([]string{}, nil).Once()

	alert, err := s.svc.CheckTenant(context.Background(), "acme")

	s.NoError(err)
	s.Nil(alert)
}

func (s *MaintenanceAlertTestSuite) TestSweepPublishesPerTenantAndSkipsFailures() {
	s.tenants.On("List", mock.Anything).
		Return([]*models.Tenant{{ID: "acme"}, {ID: "broken"}, {ID: "quiet"}}, nil).Once()

	s.aggregates.On("ListMaintenanceDue", mock.Anything, "acme", mock.Anything, mock.Anything).
		Return([]*models.Aggregate{{AggregateNumber: "AG-1"}}, nil).Once()
	s.readings.On("ListFaulted", mock.Anything, "acme", mock.Anything).Return([]string{}, nil).Once()

	s.aggregates.On("ListMaintenanceDue", mock.Anything, "broken", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection reset")).Once()

	s.aggregates.On("ListMaintenanceDue", mock.Anything, "quiet", mock.Anything, mock.Anything).
		Return([]*models.Aggregate{}, nil).Once()
	s.readings.On("ListFaulted", mock.Anything, "quiet", mock.Anything).Return([]string{}, nil).Once()

	s.publisher.On("PublishMaintenanceAlert", mock.Anything, mock.MatchedBy(func(a models.MaintenanceAlert) bool {
		return a.TenantID == "acme" && a.OverdueCount == 1
	})).Return(nil).Once()

	err := s.svc.Sweep(context.Background())

	s.NoError(err)
	s.Equal(1, s.logs.FilterMessage("maintenance check failed").Len())
	s.Equal(1, s.logs.FilterMessage("aggregates need attention").Len())
}

func (s *MaintenanceAlertTestSuite) TestSweepPublishFailureIsLogged() {
	s.tenants.On("List", mock.Anything).Return([]*models.Tenant{{ID: "acme"}}, nil).Once()
	s.aggregates.On("ListMaintenanceDue", mock.Anything, "acme", mock.Anything, mock.Anything).
		Return([]*models.Aggregate{}, nil).Once()
	s.readings.On("ListFaulted", mock.Anything, "acme", mock.Anything).Return([]string{"AG-3"}, nil).Once()
	s.publisher.On("PublishMaintenanceAlert", mock.Anything, mock.Anything).Return(errors.New("not connected")).Once()

	s.NoError(s.svc.Sweep(context.Background()))
	s.Equal(1, s.logs.FilterMessage("failed to publish maintenance alert").Len())
}

func (s *MaintenanceAlertTestSuite) TestSweepTenantListFailure() {
	s.tenants.On("List", mock.Anything).Return(nil, errors.New("db down")).Once()

	s.Error(s.svc.Sweep(context.Background()))
}

func TestMaintenanceAlertSuite(t *testing.T) {
	suite.Run(t, new(MaintenanceAlertTestSuite))
}

func TestSweepWithoutPublisherOnlyLogs(t *testing.T) {
	tenants := new(MockTenantLister)
	aggregates := new(MockMaintenanceFinder)
	readings := new(MockFaultFinder)

	tenants.On("List", mock.Anything).Return([]*models.Tenant{{ID: "acme"}}, nil).Once()
	aggregates.On("ListMaintenanceDue", mock.Anything, "acme", mock.Anything, mock.Anything).
		Return([]*models.Aggregate{{AggregateNumber: "AG-1"}}, nil).Once()
	readings.On("ListFaulted", mock.Anything, "acme", mock.Anything).Return([]string{}, nil).Once()

	svc := NewMaintenanceAlertService(tenants, aggregates, readings, nil, 0, 0, zap.NewNop())

	assert.NoError(t, svc.Sweep(context.Background()))
	tenants.AssertExpectations(t)
	aggregates.AssertExpectations(t)
}
