package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/daybook-app/daybook_backend/internal/apperrors"
	"github.com/daybook-app/daybook_backend/internal/core/domain"
	portsrepo "github.com/daybook-app/daybook_backend/internal/core/ports/repositories"
	portssvc "github.com/daybook-app/daybook_backend/internal/core/ports/services"
	"github.com/daybook-app/daybook_backend/internal/core/services"
	"github.com/daybook-app/daybook_backend/internal/dto"
)

// --- Mock EntryRepository ---
type MockEntryRepository struct {
	mock.Mock
}

// Ensure MockEntryRepository implements portsrepo.EntryRepositoryWithTx
var _ portsrepo.EntryRepositoryWithTx = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockEntryRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockEntryRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID, userID string) (*domain.Entry, error) {
	args := m.Called(ctx, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) ListEntries(ctx context.Context, userID string, from, to *time.Time, limit int, nextToken *string) ([]domain.Entry, *string, error) {
	args := m.Called(ctx, userID, from, to, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Entry), returnedNextToken, args.Error(2)
}

func (m *MockEntryRepository) FindMetricsByEntryID(ctx context.Context, entryID string) ([]domain.Metric, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Metric), args.Error(1)
}

func (m *MockEntryRepository) FindHabitMarksByEntryID(ctx context.Context, entryID string) ([]domain.HabitMark, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HabitMark), args.Error(1)
}

func (m *MockEntryRepository) FindEntryForUpdate(ctx context.Context, tx pgx.Tx, userID string, entryDate time.Time) (*domain.Entry, error) {
	args := m.Called(ctx, tx, userID, entryDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) InsertEntry(ctx context.Context, tx pgx.Tx, entry domain.Entry) (*domain.Entry, error) {
	args := m.Called(ctx, tx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) UpdateEntryContent(ctx context.Context, tx pgx.Tx, entryID string, templateID *string, journalText *string, updatedAt time.Time) (*domain.Entry, error) {
	args := m.Called(ctx, tx, entryID, templateID, journalText, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) UpdateEntryText(ctx context.Context, tx pgx.Tx, entryID, userID string, journalText string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, entryID, userID, journalText, updatedAt)
	return args.Error(0)
}

func (m *MockEntryRepository) ReplaceMetrics(ctx context.Context, tx pgx.Tx, entryID string, metrics []domain.Metric) error {
	args := m.Called(ctx, tx, entryID, metrics)
	return args.Error(0)
}

func (m *MockEntryRepository) ReplaceHabitMarks(ctx context.Context, tx pgx.Tx, entryID string, habits []domain.HabitMark) error {
	args := m.Called(ctx, tx, entryID, habits)
	return args.Error(0)
}

func (m *MockEntryRepository) ListUnresolvedConflicts(ctx context.Context, userID string) ([]domain.Conflict, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Conflict), args.Error(1)
}

func (m *MockEntryRepository) ListUnresolvedConflictsByEntry(ctx context.Context, entryID, userID string) ([]domain.Conflict, error) {
	args := m.Called(ctx, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Conflict), args.Error(1)
}

func (m *MockEntryRepository) InsertConflict(ctx context.Context, tx pgx.Tx, conflict domain.Conflict) (string, error) {
	args := m.Called(ctx, tx, conflict)
	return args.String(0), args.Error(1)
}

func (m *MockEntryRepository) FindConflictForUpdate(ctx context.Context, tx pgx.Tx, conflictID, userID string) (*domain.Conflict, *string, error) {
	args := m.Called(ctx, tx, conflictID, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var entryText *string
	if args.Get(1) != nil {
		textVal := args.Get(1).(string)
		entryText = &textVal
	}
	return args.Get(0).(*domain.Conflict), entryText, args.Error(2)
}

func (m *MockEntryRepository) MarkConflictResolved(ctx context.Context, tx pgx.Tx, conflictID string) error {
	args := m.Called(ctx, tx, conflictID)
	return args.Error(0)
}

// --- Test Suite ---
type EntryServiceTestSuite struct {
	suite.Suite
	mockEntryRepo *MockEntryRepository
	service       portssvc.EntrySvcFacade
}

func (suite *EntryServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.service = services.NewEntryService(suite.mockEntryRepo)
}

// expectTx wires the Begin/Commit/Rollback flow every mutating call runs
// through. Rollback fires even after a successful commit (deferred), so it
// is allowed but not required.
func (suite *EntryServiceTestSuite) expectTx(ctx context.Context) {
	suite.mockEntryRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockEntryRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockEntryRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()
}

// expectTxNoCommit is for paths that bail out before committing.
func (suite *EntryServiceTestSuite) expectTxNoCommit(ctx context.Context) {
	suite.mockEntryRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockEntryRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
}

func strPtr(s string) *string {
	return &s
}

// --- UpsertEntry Tests ---

func (suite *EntryServiceTestSuite) TestUpsertEntry_CreatesNewEntry() {
	ctx := context.Background()
	userID := uuid.NewString()
	entryDate := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	req := dto.UpsertEntryRequest{
		EntryDate:   "2025-03-14",
		JournalText: strPtr("First entry of the day"),
	}

	suite.expectTx(ctx)
	suite.mockEntryRepo.On("FindEntryForUpdate", ctx, mock.Anything, userID, entryDate).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockEntryRepo.On("InsertEntry", ctx, mock.Anything, mock.MatchedBy(func(e domain.Entry) bool {
		return e.UserID == userID &&
			e.EntryDate.Equal(entryDate) &&
			e.JournalText != nil && *e.JournalText == "First entry of the day" &&
			e.EntryID != "" &&
			e.CreatedAt.Equal(e.UpdatedAt)
	})).Return(&domain.Entry{EntryID: "new-entry", UserID: userID, EntryDate: entryDate, JournalText: req.JournalText}, nil).Once()

	entry, conflictID, err := suite.service.UpsertEntry(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal("new-entry", entry.EntryID)
	suite.Nil(conflictID)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "ReplaceMetrics", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "ReplaceHabitMarks", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestUpsertEntry_InvalidEntryDate() {
	ctx := context.Background()

	entry, conflictID, err := suite.service.UpsertEntry(ctx, uuid.NewString(), dto.UpsertEntryRequest{EntryDate: "14-03-2025"})

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.Nil(conflictID)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(400, appErr.Code)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *EntryServiceTestSuite) TestUpsertEntry_InvalidBaseUpdatedAt() {
	ctx := context.Background()

	req := dto.UpsertEntryRequest{
		EntryDate:     "2025-03-14",
		BaseUpdatedAt: strPtr("not-a-timestamp"),
	}

	entry, conflictID, err := suite.service.UpsertEntry(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.Nil(conflictID)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(400, appErr.Code)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *EntryServiceTestSuite) TestUpsertEntry_AbsentTextKeepsStored() {
	ctx := context.Background()
	userID := uuid.NewString()
	entryDate := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	storedAt := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	existing := &domain.Entry{
		EntryID:     "entry-1",
		UserID:      userID,
		EntryDate:   entryDate,
		JournalText: strPtr("kept text"),
		AuditFields: domain.AuditFields{CreatedAt: storedAt, UpdatedAt: storedAt},
	}

	req := dto.UpsertEntryRequest{
		EntryDate:  "2025-03-14",
		TemplateID: strPtr("tmpl-1"),
	}

	suite.expectTx(ctx)
	suite.mockEntryRepo.On("FindEntryForUpdate", ctx, mock.Anything, userID, entryDate).Return(existing, nil).Once()
	suite.mockEntryRepo.On("UpdateEntryContent", ctx, mock.Anything, "entry-1", req.TemplateID, mock.MatchedBy(func(text *string) bool {
		return text != nil && *text == "kept text"
	}), mock.AnythingOfType("time.Time")).Return(existing, nil).Once()

	entry, conflictID, err := suite.service.UpsertEntry(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Nil(conflictID)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "InsertConflict", mock.Anything, mock.Anything, mock.Anything)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestUpsertEntry_NoBaseVersionNeverConflicts() {
	ctx := context.Background()
	userID := uuid.NewString()
	entryDate := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	storedAt := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	existing := &domain.Entry{
		EntryID:     "entry-1",
		UserID:      userID,
		EntryDate:   entryDate,
		JournalText: strPtr("completely different stored text"),
		AuditFields: domain.AuditFields{CreatedAt: storedAt, UpdatedAt: storedAt},
	}

	req := dto.UpsertEntryRequest{
		EntryDate:   "2025-03-14",
		JournalText: strPtr("incoming text"),
	}

	suite.expectTx(ctx)
	suite.mockEntryRepo.On("FindEntryForUpdate", ctx, mock.Anything, userID, entryDate).Return(existing, nil).Once()
	suite.mockEntryRepo.On("UpdateEntryContent", ctx, mock.Anything, "entry-1", (*string)(nil), req.JournalText, mock.AnythingOfType("time.Time")).Return(existing, nil).Once()

	_, conflictID, err := suite.service.UpsertEntry(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Nil(conflictID)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "InsertConflict", mock.Anything, mock.Anything, mock.Anything)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestUpsertEntry_MatchingBaseNoConflict() {
	ctx := context.Background()
	userID := uuid.NewString()
	entryDate := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	storedAt := time.Date(2025, 3, 14, 9, 0, 0, 123456000, time.UTC)

	existing := &domain.Entry{
		EntryID:     "entry-1",
		UserID:      userID,
		EntryDate:   entryDate,
		JournalText: strPtr("old text"),
		AuditFields: domain.AuditFields{CreatedAt: storedAt, UpdatedAt: storedAt},
	}

	req := dto.UpsertEntryRequest{
		EntryDate:     "2025-03-14",
		JournalText:   strPtr("new text"),
		BaseUpdatedAt: strPtr(storedAt.Format(time.RFC3339Nano)),
	}

	suite.expectTx(ctx)
	suite.mockEntryRepo.On("FindEntryForUpdate", ctx, mock.Anything, userID, entryDate).Return(existing, nil).Once()
	suite.mockEntryRepo.On("UpdateEntryContent", ctx, mock.Anything, "entry-1", (*string)(nil), req.JournalText, mock.AnythingOfType("time.Time")).Return(existing, nil).Once()

	_, conflictID, err := suite.service.UpsertEntry(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Nil(conflictID)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "InsertConflict", mock.Anything, mock.Anything, mock.Anything)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestUpsertEntry_EquivalentTextsNoConflict() {
	ctx := context.Background()
	userID := uuid.NewString()
	entryDate := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	storedAt := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	staleBase := storedAt.Add(-time.Hour)

	existing := &domain.Entry{
		EntryID:     "entry-1",
		UserID:      userID,
		EntryDate:   entryDate,
		JournalText: strPtr("Slept well, went running."),
		AuditFields: domain.AuditFields{CreatedAt: storedAt, UpdatedAt: storedAt},
	}

	// Same words modulo case, whitespace and punctuation.
	req := dto.UpsertEntryRequest{
		EntryDate:     "2025-03-14",
		JournalText:   strPtr("slept well  went running"),
		BaseUpdatedAt: strPtr(staleBase.Format(time.RFC3339Nano)),
	}

	suite.expectTx(ctx)
	suite.mockEntryRepo.On("FindEntryForUpdate", ctx, mock.Anything, userID, entryDate).Return(existing, nil).Once()
	suite.mockEntryRepo.On("UpdateEntryContent", ctx, mock.Anything, "entry-1", (*string)(nil), req.JournalText, mock.AnythingOfType("time.Time")).Return(existing, nil).Once()

	_, conflictID, err := suite.service.UpsertEntry(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Nil(conflictID)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "InsertConflict", mock.Anything, mock.Anything, mock.Anything)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestUpsertEntry_StaleBaseRecordsConflictAndWrites() {
	ctx := context.Background()
	userID := uuid.NewString()
	entryDate := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	storedAt := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	staleBase := storedAt.Add(-time.Hour)

	existing := &domain.Entry{
		EntryID:     "entry-1",
		UserID:      userID,
		EntryDate:   entryDate,
		JournalText: strPtr("text written on the other device"),
		AuditFields: domain.AuditFields{CreatedAt: storedAt, UpdatedAt: storedAt},
	}

	req := dto.UpsertEntryRequest{
		EntryDate:     "2025-03-14",
		JournalText:   strPtr("text written offline"),
		BaseUpdatedAt: strPtr(staleBase.Format(time.RFC3339Nano)),
	}

	suite.expectTx(ctx)
	suite.mockEntryRepo.On("FindEntryForUpdate", ctx, mock.Anything, userID, entryDate).Return(existing, nil).Once()
	suite.mockEntryRepo.On("InsertConflict", ctx, mock.Anything, mock.MatchedBy(func(c domain.Conflict) bool {
		return c.EntryID == "entry-1" &&
			c.Field == domain.ConflictFieldJournalText &&
			c.LocalVersion == "text written offline" &&
			c.RemoteVersion == "text written on the other device" &&
			c.Status == domain.ConflictUnresolved
	})).Return("conflict-1", nil).Once()
	// Write still lands with the incoming text.
	suite.mockEntryRepo.On("UpdateEntryContent", ctx, mock.Anything, "entry-1", (*string)(nil), req.JournalText, mock.AnythingOfType("time.Time")).Return(existing, nil).Once()

	_, conflictID, err := suite.service.UpsertEntry(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(conflictID)
	suite.Equal("conflict-1", *conflictID)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestUpsertEntry_EmptyMetricListClearsSet() {
	ctx := context.Background()
	userID := uuid.NewString()
	entryDate := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	storedAt := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	existing := &domain.Entry{
		EntryID:     "entry-1",
		UserID:      userID,
		EntryDate:   entryDate,
		JournalText: strPtr("text"),
		AuditFields: domain.AuditFields{CreatedAt: storedAt, UpdatedAt: storedAt},
	}

	req := dto.UpsertEntryRequest{
		EntryDate: "2025-03-14",
		Metrics:   []dto.MetricInput{},
	}

	suite.expectTx(ctx)
	suite.mockEntryRepo.On("FindEntryForUpdate", ctx, mock.Anything, userID, entryDate).Return(existing, nil).Once()
	suite.mockEntryRepo.On("UpdateEntryContent", ctx, mock.Anything, "entry-1", (*string)(nil), existing.JournalText, mock.AnythingOfType("time.Time")).Return(existing, nil).Once()
	suite.mockEntryRepo.On("ReplaceMetrics", ctx, mock.Anything, "entry-1", []domain.Metric{}).Return(nil).Once()

	_, _, err := suite.service.UpsertEntry(ctx, userID, req)

	suite.Require().NoError(err)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "ReplaceHabitMarks", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestUpsertEntry_ReplacesMetricsAndHabits() {
	ctx := context.Background()
	userID := uuid.NewString()
	entryDate := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	req := dto.UpsertEntryRequest{
		EntryDate: "2025-03-14",
		Metrics: []dto.MetricInput{
			{Key: "mood", ValueText: strPtr("good")},
		},
		Habits: []dto.HabitInput{
			{HabitID: "habit-1", Completed: true},
			{HabitID: "habit-2", Completed: false},
		},
	}

	created := &domain.Entry{EntryID: "entry-1", UserID: userID, EntryDate: entryDate}

	suite.expectTx(ctx)
	suite.mockEntryRepo.On("FindEntryForUpdate", ctx, mock.Anything, userID, entryDate).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockEntryRepo.On("InsertEntry", ctx, mock.Anything, mock.AnythingOfType("domain.Entry")).Return(created, nil).Once()
	suite.mockEntryRepo.On("ReplaceMetrics", ctx, mock.Anything, "entry-1", []domain.Metric{
		{Key: "mood", ValueText: strPtr("good")},
	}).Return(nil).Once()
	suite.mockEntryRepo.On("ReplaceHabitMarks", ctx, mock.Anything, "entry-1", []domain.HabitMark{
		{HabitID: "habit-1", Completed: true},
		{HabitID: "habit-2", Completed: false},
	}).Return(nil).Once()

	_, _, err := suite.service.UpsertEntry(ctx, userID, req)

	suite.Require().NoError(err)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestUpsertEntry_RepoErrorRollsBack() {
	ctx := context.Background()
	userID := uuid.NewString()
	entryDate := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	expectedErr := assert.AnError

	suite.expectTxNoCommit(ctx)
	suite.mockEntryRepo.On("FindEntryForUpdate", ctx, mock.Anything, userID, entryDate).Return(nil, expectedErr).Once()

	entry, conflictID, err := suite.service.UpsertEntry(ctx, userID, dto.UpsertEntryRequest{EntryDate: "2025-03-14"})

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
	suite.Nil(entry)
	suite.Nil(conflictID)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

// --- ResolveConflict Tests ---

func (suite *EntryServiceTestSuite) TestResolveConflict_KeepCurrent() {
	ctx := context.Background()
	userID := uuid.NewString()
	conflict := &domain.Conflict{
		ConflictID:    "conflict-1",
		EntryID:       "entry-1",
		Field:         domain.ConflictFieldJournalText,
		LocalVersion:  "local",
		RemoteVersion: "remote",
		Status:        domain.ConflictUnresolved,
	}

	suite.expectTx(ctx)
	suite.mockEntryRepo.On("FindConflictForUpdate", ctx, mock.Anything, "conflict-1", userID).Return(conflict, "current entry text", nil).Once()
	suite.mockEntryRepo.On("MarkConflictResolved", ctx, mock.Anything, "conflict-1").Return(nil).Once()

	resolved, err := suite.service.ResolveConflict(ctx, userID, "conflict-1", dto.ResolveConflictRequest{Action: "keep_current"})

	suite.Require().NoError(err)
	suite.True(resolved)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "UpdateEntryText", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestResolveConflict_UseOtherRestoresRemote() {
	ctx := context.Background()
	userID := uuid.NewString()
	conflict := &domain.Conflict{
		ConflictID:    "conflict-1",
		EntryID:       "entry-1",
		Field:         domain.ConflictFieldJournalText,
		LocalVersion:  "local",
		RemoteVersion: "remote version to restore",
		Status:        domain.ConflictUnresolved,
	}

	suite.expectTx(ctx)
	suite.mockEntryRepo.On("FindConflictForUpdate", ctx, mock.Anything, "conflict-1", userID).Return(conflict, "current entry text", nil).Once()
	suite.mockEntryRepo.On("UpdateEntryText", ctx, mock.Anything, "entry-1", userID, "remote version to restore", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockEntryRepo.On("MarkConflictResolved", ctx, mock.Anything, "conflict-1").Return(nil).Once()

	resolved, err := suite.service.ResolveConflict(ctx, userID, "conflict-1", dto.ResolveConflictRequest{Action: "use_other"})

	suite.Require().NoError(err)
	suite.True(resolved)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestResolveConflict_MergeManual() {
	ctx := context.Background()
	userID := uuid.NewString()
	conflict := &domain.Conflict{
		ConflictID:    "conflict-1",
		EntryID:       "entry-1",
		Field:         domain.ConflictFieldJournalText,
		LocalVersion:  "local",
		RemoteVersion: "remote",
		Status:        domain.ConflictUnresolved,
	}

	suite.expectTx(ctx)
	suite.mockEntryRepo.On("FindConflictForUpdate", ctx, mock.Anything, "conflict-1", userID).Return(conflict, "current entry text", nil).Once()
	suite.mockEntryRepo.On("UpdateEntryText", ctx, mock.Anything, "entry-1", userID, "merged by hand", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockEntryRepo.On("MarkConflictResolved", ctx, mock.Anything, "conflict-1").Return(nil).Once()

	resolved, err := suite.service.ResolveConflict(ctx, userID, "conflict-1", dto.ResolveConflictRequest{
		Action:     "merge_manual",
		MergedText: strPtr("merged by hand"),
	})

	suite.Require().NoError(err)
	suite.True(resolved)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestResolveConflict_MergeManualRequiresText() {
	ctx := context.Background()

	resolved, err := suite.service.ResolveConflict(ctx, uuid.NewString(), "conflict-1", dto.ResolveConflictRequest{Action: "merge_manual"})

	suite.Require().Error(err)
	suite.False(resolved)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(400, appErr.Code)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *EntryServiceTestSuite) TestResolveConflict_UnknownAction() {
	ctx := context.Background()

	resolved, err := suite.service.ResolveConflict(ctx, uuid.NewString(), "conflict-1", dto.ResolveConflictRequest{Action: "flip_a_coin"})

	suite.Require().Error(err)
	suite.False(resolved)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(400, appErr.Code)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *EntryServiceTestSuite) TestResolveConflict_MissingOrResolvedReturnsFalse() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.expectTxNoCommit(ctx)
	suite.mockEntryRepo.On("FindConflictForUpdate", ctx, mock.Anything, "gone", userID).Return(nil, nil, apperrors.ErrNotFound).Once()

	resolved, err := suite.service.ResolveConflict(ctx, userID, "gone", dto.ResolveConflictRequest{Action: "keep_current"})

	suite.Require().NoError(err)
	suite.False(resolved)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "MarkConflictResolved", mock.Anything, mock.Anything, mock.Anything)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

// --- Read path Tests ---

func (suite *EntryServiceTestSuite) TestGetEntryByID_AssemblesDetail() {
	ctx := context.Background()
	userID := uuid.NewString()
	entry := &domain.Entry{EntryID: "entry-1", UserID: userID, JournalText: strPtr("text")}
	metrics := []domain.Metric{{Key: "mood", ValueText: strPtr("good")}}
	habits := []domain.HabitMark{{HabitID: "habit-1", Completed: true}}
	conflicts := []domain.Conflict{{ConflictID: "conflict-1", EntryID: "entry-1", Status: domain.ConflictUnresolved}}

	suite.mockEntryRepo.On("FindEntryByID", ctx, "entry-1", userID).Return(entry, nil).Once()
	suite.mockEntryRepo.On("FindMetricsByEntryID", ctx, "entry-1").Return(metrics, nil).Once()
	suite.mockEntryRepo.On("FindHabitMarksByEntryID", ctx, "entry-1").Return(habits, nil).Once()
	suite.mockEntryRepo.On("ListUnresolvedConflictsByEntry", ctx, "entry-1", userID).Return(conflicts, nil).Once()

	detail, err := suite.service.GetEntryByID(ctx, userID, "entry-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(detail)
	suite.Equal(*entry, detail.Entry)
	suite.Equal(metrics, detail.Metrics)
	suite.Equal(habits, detail.Habits)
	suite.Equal(conflicts, detail.Conflicts)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestGetEntryByID_NotFound() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockEntryRepo.On("FindEntryByID", ctx, "missing", userID).Return(nil, apperrors.ErrNotFound).Once()

	detail, err := suite.service.GetEntryByID(ctx, userID, "missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(detail)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestListEntries_DefaultsLimit() {
	ctx := context.Background()
	userID := uuid.NewString()
	entries := []domain.Entry{{EntryID: "entry-1", UserID: userID}}

	suite.mockEntryRepo.On("ListEntries", ctx, userID, (*time.Time)(nil), (*time.Time)(nil), 50, (*string)(nil)).Return(entries, nil, nil).Once()

	got, nextToken, err := suite.service.ListEntries(ctx, userID, nil, nil, 0, nil)

	suite.Require().NoError(err)
	suite.Equal(entries, got)
	suite.Nil(nextToken)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func TestEntryService(t *testing.T) {
	suite.Run(t, new(EntryServiceTestSuite))
}
