package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"example.com/gatherly/services/planning/internal/models"
	"example.com/gatherly/services/planning/internal/repository"
	"example.com/gatherly/services/planning/internal/rules"
	"example.com/gatherly/services/planning/internal/service"
)

// MockEventService is a mock implementation of service.EventService
type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) Create(ctx context.Context, req *service.CreateEventRequest) (*models.Event, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventService) GetByID(ctx context.Context, id string) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventService) ListParticipants(ctx context.Context, eventID string) ([]models.EventParticipant, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EventParticipant), args.Error(1)
}

func (m *MockEventService) Invite(ctx context.Context, eventID, userID string) (*models.EventParticipant, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EventParticipant), args.Error(1)
}

func (m *MockEventService) Respond(ctx context.Context, eventID, userID string, accept bool) error {
	args := m.Called(ctx, eventID, userID, accept)
	return args.Error(0)
}

func (m *MockEventService) ListAudit(ctx context.Context, eventID string) ([]models.EventAuditLog, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EventAuditLog), args.Error(1)
}

// MockLifecycleService is a mock implementation of service.LifecycleService
type MockLifecycleService struct {
	mock.Mock
}

func (m *MockLifecycleService) CanTransition(event *models.Event, target models.EventStatus) bool {
	args := m.Called(event, target)
	return args.Bool(0)
}

func (m *MockLifecycleService) ValidateTransition(ctx context.Context, event *models.Event, target models.EventStatus) error {
	args := m.Called(ctx, event, target)
	return args.Error(0)
}

func (m *MockLifecycleService) TransitionTo(ctx context.Context, eventID string, target models.EventStatus, reason string) (*models.Event, error) {
	args := m.Called(ctx, eventID, target, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func newEventRouter(events *MockEventService, lifecycle *MockLifecycleService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewEventHandler(events, lifecycle, logrus.New())
	router.POST("/api/v1/events", handler.CreateEvent)
	router.GET("/api/v1/events/:id", handler.GetEvent)
	router.POST("/api/v1/events/:id/transition", handler.TransitionEvent)
	router.GET("/api/v1/events/:id/audit", handler.ListAudit)
	return router
}

func TestCreateEventReturns201(t *testing.T) {
	events := new(MockEventService)
	router := newEventRouter(events, new(MockLifecycleService))

	created := &models.Event{Base: models.Base{UUID: "ev1"}, Title: "Team dinner", Status: models.StatusDraft}
	events.On("Create", mock.Anything, mock.Anything).Return(created, nil)

	body := `{"title":"Team dinner","event_type":"dinner","organizer_id":"org1","scheduled_date":"2025-06-20T19:00:00Z","expected_attendees":8}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var got models.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, "ev1", got.UUID)
	require.Equal(t, models.StatusDraft, got.Status)
}

func TestCreateEventMissingFieldsReturns400(t *testing.T) {
	events := new(MockEventService)
	router := newEventRouter(events, new(MockLifecycleService))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", bytes.NewBufferString(`{"title":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	events.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateEventRuleViolationReturns400(t *testing.T) {
	events := new(MockEventService)
	router := newEventRouter(events, new(MockLifecycleService))

	violation := rules.NewViolation(rules.RuleAdvanceScheduling, "Events must be scheduled at least 3 days in advance")
	events.On("Create", mock.Anything, mock.Anything).Return(nil, violation)

	body := `{"title":"Team dinner","event_type":"dinner","organizer_id":"org1","scheduled_date":"2025-06-20T19:00:00Z","expected_attendees":8}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), rules.RuleAdvanceScheduling)
}

func TestGetEventNotFoundReturns404(t *testing.T) {
	events := new(MockEventService)
	router := newEventRouter(events, new(MockLifecycleService))

	events.On("GetByID", mock.Anything, "missing").Return(nil, repository.ErrNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/missing", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTransitionEvent(t *testing.T) {
	lifecycle := new(MockLifecycleService)
	router := newEventRouter(new(MockEventService), lifecycle)

	updated := &models.Event{Base: models.Base{UUID: "ev1"}, Status: models.StatusPlanning}
	lifecycle.On("TransitionTo", mock.Anything, "ev1", models.StatusPlanning, "ready to plan").
		Return(updated, nil)

	body := `{"target_status":"planning","reason":"ready to plan"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/ev1/transition", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	lifecycle.AssertExpectations(t)
}

func TestTransitionEventUnknownStatusReturns400(t *testing.T) {
	lifecycle := new(MockLifecycleService)
	router := newEventRouter(new(MockEventService), lifecycle)

	body := `{"target_status":"warp_speed"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/ev1/transition", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	lifecycle.AssertNotCalled(t, "TransitionTo", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransitionEventRejectedReturns409(t *testing.T) {
	lifecycle := new(MockLifecycleService)
	router := newEventRouter(new(MockEventService), lifecycle)

	lifecycle.On("TransitionTo", mock.Anything, "ev1", models.StatusVoting, "").
		Return(nil, &service.InvalidTransitionError{From: models.StatusDraft, To: models.StatusVoting})

	body := `{"target_status":"voting"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/ev1/transition", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "draft")
}

func TestListAudit(t *testing.T) {
	events := new(MockEventService)
	router := newEventRouter(events, new(MockLifecycleService))

	entries := []models.EventAuditLog{
		{EventID: "ev1", OldStatus: models.StatusDraft, NewStatus: models.StatusPlanning, Reason: "kickoff"},
	}
	events.On("ListAudit", mock.Anything, "ev1").Return(entries, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/ev1/audit", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "kickoff")
}
