package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"time"

	"fleethvac/internal/common"
	"fleethvac/internal/middleware"
	"fleethvac/internal/models"
	"fleethvac/internal/repositories"
	"fleethvac/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

var testActor = models.Actor{Email: "jane@acme.test", Name: "Jane Doe", Subject: "obj-1"}

type MockFleetService struct {
	mock.Mock
}

func (m *MockFleetService) ListTrains(ctx context.Context, tenantID string) ([]*models.TrainSummary, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TrainSummary), args.Error(1)
}

func (m *MockFleetService) GetTrain(ctx context.Context, tenantID string, trainID int64) (*models.TrainDetail, error) {
	args := m.Called(ctx, tenantID, trainID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TrainDetail), args.Error(1)
}

func (m *MockFleetService) ConfigureTrain(ctx context.Context, tenantID string, actor models.Actor, input models.ConfigureTrainInput) (*models.TrainDetail, error) {
	args := m.Called(ctx, tenantID, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TrainDetail), args.Error(1)
}

func (m *MockFleetService) UpdateTrain(ctx context.Context, tenantID string, actor models.Actor, trainID int64, update models.TrainUpdate) (*models.Train, error) {
	args := m.Called(ctx, tenantID, actor, trainID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Train), args.Error(1)
}

func (m *MockFleetService) DeleteTrain(ctx context.Context, tenantID string, actor models.Actor, trainID int64) error {
	args := m.Called(ctx, tenantID, actor, trainID)
	return args.Error(0)
}

func (m *MockFleetService) ListWagons(ctx context.Context, tenantID string, trainID int64) ([]models.Wagon, error) {
	args := m.Called(ctx, tenantID, trainID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Wagon), args.Error(1)
}

func (m *MockFleetService) UpdateWagon(ctx context.Context, tenantID string, actor models.Actor, wagonID int64, update models.WagonUpdate) (*models.Wagon, error) {
	args := m.Called(ctx, tenantID, actor, wagonID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wagon), args.Error(1)
}

func (m *MockFleetService) ListAggregates(ctx context.Context, tenantID string, filter models.AggregateFilter) ([]*models.Aggregate, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Aggregate), args.Error(1)
}

func (m *MockFleetService) GetAggregate(ctx context.Context, tenantID string, aggregateID int64) (*models.Aggregate, error) {
	args := m.Called(ctx, tenantID, aggregateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Aggregate), args.Error(1)
}

func (m *MockFleetService) CreateAggregate(ctx context.Context, tenantID string, actor models.Actor, aggregate *models.Aggregate) (*models.Aggregate, error) {
	args := m.Called(ctx, tenantID, actor, aggregate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Aggregate), args.Error(1)
}

func (m *MockFleetService) UpdateAggregate(ctx context.Context, tenantID string, actor models.Actor, aggregateID int64, update models.AggregateUpdate) (*models.Aggregate, error) {
	args := m.Called(ctx, tenantID, actor, aggregateID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Aggregate), args.Error(1)
}

func (m *MockFleetService) ListSpare(ctx context.Context, tenantID string) ([]*models.Aggregate, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Aggregate), args.Error(1)
}

func (m *MockFleetService) ListReadings(ctx context.Context, tenantID string, aggregateID int64, limit int) ([]*models.SensorReading, error) {
	args := m.Called(ctx, tenantID, aggregateID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SensorReading), args.Error(1)
}

func (m *MockFleetService) History(ctx context.Context, tenantID string, aggregateID int64) (*models.AggregateHistory, error) {
	args := m.Called(ctx, tenantID, aggregateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AggregateHistory), args.Error(1)
}

func (m *MockFleetService) MaintenanceDue(ctx context.Context, tenantID string, dueBy time.Time) ([]*models.Aggregate, error) {
	args := m.Called(ctx, tenantID, dueBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Aggregate), args.Error(1)
}

type MockAggregateService struct {
	mock.Mock
}

func (m *MockAggregateService) Assign(ctx context.Context, tenantID string, actor models.Actor, aggregateID, wagonID int64) (*models.Aggregate, error) {
	args := m.Called(ctx, tenantID, actor, aggregateID, wagonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Aggregate), args.Error(1)
}

func (m *MockAggregateService) Unassign(ctx context.Context, tenantID string, actor models.Actor, aggregateID int64) (*models.Aggregate, error) {
	args := m.Called(ctx, tenantID, actor, aggregateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Aggregate), args.Error(1)
}

func (m *MockAggregateService) Replace(ctx context.Context, tenantID string, actor models.Actor, req services.ReplaceRequest) (*services.ReplaceResult, error) {
	args := m.Called(ctx, tenantID, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ReplaceResult), args.Error(1)
}

func (m *MockAggregateService) Swap(ctx context.Context, tenantID string, actor models.Actor, aggregateID, targetID int64) (*services.SwapResult, error) {
	args := m.Called(ctx, tenantID, actor, aggregateID, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SwapResult), args.Error(1)
}

func (m *MockAggregateService) RecordReading(ctx context.Context, tenantID string, reading *models.SensorReading) error {
	args := m.Called(ctx, tenantID, reading)
	return args.Error(0)
}

type MockTenantService struct {
	mock.Mock
}

func (m *MockTenantService) GetByID(ctx context.Context, id string) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantService) List(ctx context.Context) ([]*models.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tenant), args.Error(1)
}

func (m *MockTenantService) EnsureTenant(ctx context.Context, id, name string) (*models.Tenant, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantService) GetConfiguration(ctx context.Context, tenantID string) (*models.TenantConfiguration, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TenantConfiguration), args.Error(1)
}

func (m *MockTenantService) UpdateConfiguration(ctx context.Context, tenantID string, actor models.Actor, req *services.UpdateConfigurationRequest) (*models.TenantConfiguration, error) {
	args := m.Called(ctx, tenantID, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TenantConfiguration), args.Error(1)
}

func (m *MockTenantService) UploadLogo(ctx context.Context, tenantID string, actor models.Actor, logo services.LogoUpload) (*models.Tenant, error) {
	args := m.Called(ctx, tenantID, actor, logo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

type MockAuditLogsService struct {
	mock.Mock
}

func (m *MockAuditLogsService) Record(ctx context.Context, db repositories.DBTX, entry models.AuditEntry) error {
	args := m.Called(ctx, db, entry)
	return args.Error(0)
}

func (m *MockAuditLogsService) GetAuditLog(ctx context.Context, tenantID string, id uuid.UUID) (*models.AuditLog, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuditLog), args.Error(1)
}

func (m *MockAuditLogsService) ListAuditLogs(ctx context.Context, tenantID string, filters *models.AuditLogFilters) ([]*models.AuditLog, int, error) {
	args := m.Called(ctx, tenantID, filters)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.AuditLog), args.Int(1), args.Error(2)
}

func (m *MockAuditLogsService) GetAuditSummary(ctx context.Context, tenantID string, startDate, endDate time.Time) (*models.AuditLogSummary, error) {
	args := m.Called(ctx, tenantID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuditLogSummary), args.Error(1)
}

func (m *MockAuditLogsService) ExportAuditLogs(ctx context.Context, tenantID string, filters *models.AuditLogFilters) ([]byte, error) {
	args := m.Called(ctx, tenantID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Answer(ctx context.Context, tenantID string, actor models.Actor, req services.ChatRequest) (*models.ChatResponse, error) {
	args := m.Called(ctx, tenantID, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatResponse), args.Error(1)
}

// testAPI mounts the real route table behind a fake identity middleware
type testAPI struct {
	echo       *echo.Echo
	fleet      *MockFleetService
	lifecycle  *MockAggregateService
	tenants    *MockTenantService
	audit      *MockAuditLogsService
	chat       *MockChatService
	jobs       *fakeJobs
	resolver   *services.TenantResolver
	tenantID   string
	superAdmin bool
	anonymous  bool
}

func newTestAPI() *testAPI {
	t := &testAPI{
		echo:      echo.New(),
		fleet:     new(MockFleetService),
		lifecycle: new(MockAggregateService),
		tenants:   new(MockTenantService),
		audit:     new(MockAuditLogsService),
		chat:      new(MockChatService),
		jobs:      newFakeJobs("maintenance-alerts"),
		resolver:  services.NewTenantResolver("default", nil, nil, zap.NewNop()),
		tenantID:  "acme",
	}
	t.echo.Validator = NewRequestValidator()
	t.echo.HTTPErrorHandler = common.HTTPErrorHandler(zap.NewNop())

	api := t.echo.Group("/api", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !t.anonymous {
				ctx := common.WithIdentity(c.Request().Context(), t.tenantID, testActor, t.superAdmin)
				c.SetRequest(c.Request().WithContext(ctx))
			}
			return next(c)
		}
	})
	Routes{
		Trains:     NewTrainHandlers(t.fleet),
		Aggregates: NewAggregateHandlers(t.fleet, t.lifecycle),
		AuditLogs:  NewAuditLogsHandlers(t.audit),
		Tenants:    NewTenantHandlers(t.tenants, t.resolver),
		Chat:       NewChatHandlers(t.chat),
		Jobs:       NewJobHandlers(t.jobs),
	}.Register(api, middleware.RequireSuperAdmin())
	return t
}

func (t *testAPI) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	t.echo.ServeHTTP(rec, req)
	return rec
}

func (t *testAPI) assertExpectations(tb mock.TestingT) {
	t.fleet.AssertExpectations(tb)
	t.lifecycle.AssertExpectations(tb)
	t.tenants.AssertExpectations(tb)
	t.audit.AssertExpectations(tb)
	t.chat.AssertExpectations(tb)
}

func decodeError(rec *httptest.ResponseRecorder) common.ErrorResponse {
	var body common.ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return body
}
