package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"fieldserv/internal/handler"
	"fieldserv/internal/model"
	"fieldserv/internal/repository"
	"fieldserv/internal/service"
)

// MockRecordService is a mock implementation of service.RecordService.
type MockRecordService struct {
	mock.Mock
}

func (m *MockRecordService) CreateRecord(ctx context.Context, actor *model.User, in service.RecordInput) (*model.Record, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Record), args.Error(1)
}

func (m *MockRecordService) ListRecords(ctx context.Context, filter repository.RecordFilter) ([]model.Record, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Record), args.Error(1)
}

func TestRecordHandler_ListRecords_Filters(t *testing.T) {
	locID := uint(3)

	tests := []struct {
		name         string
		query        string
		expectFilter repository.RecordFilter
	}{
		{
			name:         "location filter",
			query:        "location_id=3",
			expectFilter: repository.RecordFilter{LocationID: &locID},
		},
		{
			name:         "unknown keys are ignored",
			query:        "location_id=3&sort=asc&whatever=1",
			expectFilter: repository.RecordFilter{LocationID: &locID},
		},
		{
			name:         "no filters",
			query:        "",
			expectFilter: repository.RecordFilter{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockRecordService)
			mockSvc.On("ListRecords", mock.Anything, tt.expectFilter).Return([]model.Record{}, nil)

			h := handler.NewRecordHandler(mockSvc)
			e := newEcho()

			req := httptest.NewRequest(http.MethodGet, "/api/records?"+tt.query, nil)
			rec := httptest.NewRecorder()

			err := h.ListRecords(e.NewContext(req, rec))
			assert.NoError(t, err)
			assert.Equal(t, http.StatusOK, rec.Code)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestRecordHandler_ListRecords_MalformedFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "non-numeric location_id", query: "location_id=abc"},
		{name: "bad from timestamp", query: "from=yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewRecordHandler(new(MockRecordService))
			e := newEcho()

			req := httptest.NewRequest(http.MethodGet, "/api/records?"+tt.query, nil)
			rec := httptest.NewRecorder()

			err := h.ListRecords(e.NewContext(req, rec))
			httpErr, ok := err.(*echo.HTTPError)
			assert.True(t, ok)
			assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Code)
		})
	}
}

func TestRecordHandler_CreateRecord_RequiresActor(t *testing.T) {
	h := handler.NewRecordHandler(new(MockRecordService))
	e := newEcho()

	req := httptest.NewRequest(http.MethodPost, "/api/records", strings.NewReader(`{"location_id":1,"service_type":"mowing"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	// No guard ran, so there is no resolved user on the context.
	err := h.CreateRecord(e.NewContext(req, rec))
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
