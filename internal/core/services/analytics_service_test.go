package services_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/daybook-app/daybook_backend/internal/apperrors"
	"github.com/daybook-app/daybook_backend/internal/core/domain"
	portsrepo "github.com/daybook-app/daybook_backend/internal/core/ports/repositories"
	portssvc "github.com/daybook-app/daybook_backend/internal/core/ports/services"
	"github.com/daybook-app/daybook_backend/internal/core/services"
)

// --- Mock AnalyticsRepository ---
type MockAnalyticsRepository struct {
	mock.Mock
}

var _ portsrepo.AnalyticsRepositoryFacade = (*MockAnalyticsRepository)(nil)

func (m *MockAnalyticsRepository) MetricAverages(ctx context.Context, userID string, from, to time.Time) ([]domain.MetricAverage, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MetricAverage), args.Error(1)
}

func (m *MockAnalyticsRepository) HabitCompletionRates(ctx context.Context, userID string, from, to time.Time) ([]domain.HabitCompletionRate, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HabitCompletionRate), args.Error(1)
}

func (m *MockAnalyticsRepository) MetricCorrelation(ctx context.Context, userID, keyA, keyB string, from, to time.Time) (*domain.MetricCorrelation, error) {
	args := m.Called(ctx, userID, keyA, keyB, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MetricCorrelation), args.Error(1)
}

func (m *MockAnalyticsRepository) EntriesForExport(ctx context.Context, userID string, from, to time.Time) ([]domain.ExportRow, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExportRow), args.Error(1)
}

// --- Test Suite ---
type AnalyticsServiceTestSuite struct {
	suite.Suite
	mockAnalyticsRepo *MockAnalyticsRepository
	service           portssvc.AnalyticsSvcFacade
	from              time.Time
	to                time.Time
}

func (suite *AnalyticsServiceTestSuite) SetupTest() {
	suite.mockAnalyticsRepo = new(MockAnalyticsRepository)
	suite.service = services.NewAnalyticsService(suite.mockAnalyticsRepo)
	suite.from = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	suite.to = time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
}

func (suite *AnalyticsServiceTestSuite) TestGetSummary_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	avg := decimal.NewFromFloat(7.2)
	metrics := []domain.MetricAverage{{Key: "sleep_hours", Count: 20, Average: &avg}}
	habits := []domain.HabitCompletionRate{{HabitID: "meditate", MarkedDays: 20, CompletedDays: 15, CompletionRate: 0.75}}

	suite.mockAnalyticsRepo.On("MetricAverages", ctx, userID, suite.from, suite.to).Return(metrics, nil).Once()
	suite.mockAnalyticsRepo.On("HabitCompletionRates", ctx, userID, suite.from, suite.to).Return(habits, nil).Once()

	summary, err := suite.service.GetSummary(ctx, userID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Require().NotNil(summary)
	suite.Equal(metrics, summary.Metrics)
	suite.Equal(habits, summary.Habits)
	suite.Equal(suite.from, summary.From)
	suite.Equal(suite.to, summary.To)
	suite.mockAnalyticsRepo.AssertExpectations(suite.T())
}

func (suite *AnalyticsServiceTestSuite) TestGetSummary_RejectsInvertedRange() {
	ctx := context.Background()

	summary, err := suite.service.GetSummary(ctx, uuid.NewString(), suite.to, suite.from)

	suite.Require().Error(err)
	suite.Nil(summary)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(400, appErr.Code)
	suite.mockAnalyticsRepo.AssertNotCalled(suite.T(), "MetricAverages", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AnalyticsServiceTestSuite) TestGetCorrelation_RejectsIdenticalKeys() {
	ctx := context.Background()

	corr, err := suite.service.GetCorrelation(ctx, uuid.NewString(), "mood", "mood", suite.from, suite.to)

	suite.Require().Error(err)
	suite.Nil(corr)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(400, appErr.Code)
	suite.mockAnalyticsRepo.AssertNotCalled(suite.T(), "MetricCorrelation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AnalyticsServiceTestSuite) TestGetCorrelation_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	coeff := 0.42
	expected := &domain.MetricCorrelation{KeyA: "mood", KeyB: "sleep_hours", SampleCount: 18, Coefficient: &coeff}

	suite.mockAnalyticsRepo.On("MetricCorrelation", ctx, userID, "mood", "sleep_hours", suite.from, suite.to).Return(expected, nil).Once()

	corr, err := suite.service.GetCorrelation(ctx, userID, "mood", "sleep_hours", suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Equal(expected, corr)
	suite.mockAnalyticsRepo.AssertExpectations(suite.T())
}

func (suite *AnalyticsServiceTestSuite) TestExportCSV_WritesHeaderAndRows() {
	ctx := context.Background()
	userID := uuid.NewString()
	sleep := decimal.NewFromFloat(7.5)
	rows := []domain.ExportRow{
		{
			EntryDate:   time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
			JournalText: strPtr("Slept well"),
			MetricKey:   strPtr("sleep_hours"),
			ValueNum:    &sleep,
		},
		{
			EntryDate:   time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
			JournalText: strPtr("No metrics today"),
		},
	}

	suite.mockAnalyticsRepo.On("EntriesForExport", ctx, userID, suite.from, suite.to).Return(rows, nil).Once()

	var buf bytes.Buffer
	err := suite.service.ExportCSV(ctx, userID, suite.from, suite.to, &buf)

	suite.Require().NoError(err)
	expected := "entry_date,journal_text,metric_key,value_num,value_text\n" +
		"2025-03-14,Slept well,sleep_hours,7.5,\n" +
		"2025-03-15,No metrics today,,,\n"
	suite.Equal(expected, buf.String())
	suite.mockAnalyticsRepo.AssertExpectations(suite.T())
}

func TestAnalyticsService(t *testing.T) {
	suite.Run(t, new(AnalyticsServiceTestSuite))
}
