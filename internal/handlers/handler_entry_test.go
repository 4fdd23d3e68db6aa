package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/daybook-app/daybook_backend/internal/apperrors"
	"github.com/daybook-app/daybook_backend/internal/core/domain"
	portssvc "github.com/daybook-app/daybook_backend/internal/core/ports/services"
	"github.com/daybook-app/daybook_backend/internal/dto"
	"github.com/daybook-app/daybook_backend/internal/handlers"
	"github.com/daybook-app/daybook_backend/internal/middleware"
)

// --- Mock EntryService ---
type MockEntryService struct {
	mock.Mock
}

var _ portssvc.EntrySvcFacade = (*MockEntryService)(nil)

func (m *MockEntryService) UpsertEntry(ctx context.Context, userID string, req dto.UpsertEntryRequest) (*domain.Entry, *string, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var conflictID *string
	if args.Get(1) != nil {
		idVal := args.Get(1).(string)
		conflictID = &idVal
	}
	return args.Get(0).(*domain.Entry), conflictID, args.Error(2)
}

func (m *MockEntryService) GetEntryByID(ctx context.Context, userID string, entryID string) (*domain.EntryDetail, error) {
	args := m.Called(ctx, userID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntryDetail), args.Error(1)
}

func (m *MockEntryService) ListEntries(ctx context.Context, userID string, from, to *time.Time, limit int, nextToken *string) ([]domain.Entry, *string, error) {
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

func (m *MockEntryService) ListUnresolvedConflicts(ctx context.Context, userID string) ([]domain.Conflict, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Conflict), args.Error(1)
}

func (m *MockEntryService) ResolveConflict(ctx context.Context, userID string, conflictID string, req dto.ResolveConflictRequest) (bool, error) {
	args := m.Called(ctx, userID, conflictID, req)
	return args.Bool(0), args.Error(1)
}

// --- Test Suite ---
type EntryHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockEntryService *MockEntryService
	jwtSecret        string
}

func (suite *EntryHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "daybook-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *EntryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockEntryService = new(MockEntryService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterEntryRoutes(v1, suite.mockEntryService)
	handlers.RegisterConflictRoutes(v1, suite.mockEntryService)
}

func (suite *EntryHandlerTestSuite) doJSON(method, url, userID string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *EntryHandlerTestSuite) TestUpsertEntry_Success() {
	userID := uuid.NewString()
	text := "Wrote some tests"
	now := time.Now().UTC().Truncate(time.Microsecond)
	entry := &domain.Entry{
		EntryID:     uuid.NewString(),
		UserID:      userID,
		EntryDate:   time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		JournalText: &text,
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	suite.mockEntryService.On("UpsertEntry", mock.Anything, userID, mock.MatchedBy(func(r dto.UpsertEntryRequest) bool {
		return r.EntryDate == "2025-03-14" && r.JournalText != nil && *r.JournalText == text
	})).Return(entry, nil, nil).Once()

	w := suite.doJSON(http.MethodPut, "/api/v1/entries", userID, gin.H{
		"entryDate":   "2025-03-14",
		"journalText": text,
	})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.UpsertEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(entry.EntryID, resp.Entry.ID)
	suite.Equal("2025-03-14", resp.Entry.EntryDate)
	suite.Nil(resp.ConflictID)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestUpsertEntry_ReturnsConflictID() {
	userID := uuid.NewString()
	conflictID := uuid.NewString()
	entry := &domain.Entry{
		EntryID:   uuid.NewString(),
		UserID:    userID,
		EntryDate: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
	}

	suite.mockEntryService.On("UpsertEntry", mock.Anything, userID, mock.AnythingOfType("dto.UpsertEntryRequest")).Return(entry, conflictID, nil).Once()

	w := suite.doJSON(http.MethodPut, "/api/v1/entries", userID, gin.H{
		"entryDate":     "2025-03-14",
		"journalText":   "offline edit",
		"baseUpdatedAt": "2025-03-14T08:00:00Z",
	})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.UpsertEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.ConflictID)
	suite.Equal(conflictID, *resp.ConflictID)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestUpsertEntry_RejectsBadDateFormat() {
	userID := uuid.NewString()

	w := suite.doJSON(http.MethodPut, "/api/v1/entries", userID, gin.H{
		"entryDate": "14/03/2025",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockEntryService.AssertNotCalled(suite.T(), "UpsertEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryHandlerTestSuite) TestUpsertEntry_RequiresAuth() {
	req, _ := http.NewRequest(http.MethodPut, "/api/v1/entries", bytes.NewReader([]byte(`{"entryDate":"2025-03-14"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockEntryService.AssertNotCalled(suite.T(), "UpsertEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryHandlerTestSuite) TestGetEntry_NotFound() {
	userID := uuid.NewString()
	entryID := uuid.NewString()

	suite.mockEntryService.On("GetEntryByID", mock.Anything, userID, entryID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/entries/"+entryID, userID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestListEntries_PassesRangeAndLimit() {
	userID := uuid.NewString()
	entries := []domain.Entry{{
		EntryID:   uuid.NewString(),
		UserID:    userID,
		EntryDate: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
	}}

	suite.mockEntryService.On("ListEntries", mock.Anything, userID,
		mock.MatchedBy(func(from *time.Time) bool {
			return from != nil && from.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
		}),
		mock.MatchedBy(func(to *time.Time) bool {
			return to != nil && to.Equal(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC))
		}),
		10, (*string)(nil)).Return(entries, "next-page", nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/entries?from=2025-03-01&to=2025-03-31&limit=10", userID, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListEntriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Entries, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("next-page", *resp.NextToken)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestResolveConflict_NoContentOnSuccess() {
	userID := uuid.NewString()
	conflictID := uuid.NewString()

	suite.mockEntryService.On("ResolveConflict", mock.Anything, userID, conflictID, mock.MatchedBy(func(r dto.ResolveConflictRequest) bool {
		return r.Action == "use_other"
	})).Return(true, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/conflicts/"+conflictID+"/resolve", userID, gin.H{"action": "use_other"})

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestResolveConflict_NotFoundWhenGone() {
	userID := uuid.NewString()
	conflictID := uuid.NewString()

	suite.mockEntryService.On("ResolveConflict", mock.Anything, userID, conflictID, mock.AnythingOfType("dto.ResolveConflictRequest")).Return(false, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/conflicts/"+conflictID+"/resolve", userID, gin.H{"action": "keep_current"})

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestResolveConflict_RejectsUnknownAction() {
	userID := uuid.NewString()

	w := suite.doJSON(http.MethodPost, "/api/v1/conflicts/"+uuid.NewString()+"/resolve", userID, gin.H{"action": "coin_flip"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockEntryService.AssertNotCalled(suite.T(), "ResolveConflict", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestEntryHandler(t *testing.T) {
	suite.Run(t, new(EntryHandlerTestSuite))
}
