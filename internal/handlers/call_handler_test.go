package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/CoachSchedBack/internal/models"
	"github.com/saeid-a/CoachSchedBack/internal/services"
)

type stubCallService struct {
	recordResult *models.Call
	recordErr    error
	updateResult *models.Call
	updateErr    error
	listResult   []models.CallDetail
	listErr      error
	lastCoachID  int64
	lastBooking  int64
	lastCallID   int64
	lastInput    services.FeedbackInput
	recordCalls  int
}

func (s *stubCallService) RecordFeedback(_ context.Context, coachID, bookingID int64, input services.FeedbackInput) (*models.Call, error) {
	s.recordCalls++
	s.lastCoachID = coachID
	s.lastBooking = bookingID
	s.lastInput = input
	return s.recordResult, s.recordErr
}

func (s *stubCallService) UpdateFeedback(_ context.Context, coachID, callID int64, input services.FeedbackInput) (*models.Call, error) {
	s.lastCoachID = coachID
	s.lastCallID = callID
	s.lastInput = input
	return s.updateResult, s.updateErr
}

func (s *stubCallService) ListFeedback(_ context.Context, coachID int64) ([]models.CallDetail, error) {
	s.lastCoachID = coachID
	return s.listResult, s.listErr
}

func newCallTestApp(service callApplicationService, role, userID string) *fiber.App {
	handler := &CallHandler{service: service}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", role)
		c.Locals("user_id", userID)
		return c.Next()
	})
	app.Post("/api/calls", handler.CreateCall)
	app.Put("/api/calls/:id", handler.UpdateCall)
	app.Get("/api/calls", handler.ListCalls)
	return app
}

func TestCreateCallReturnsCreated(t *testing.T) {
	service := &stubCallService{
		recordResult: &models.Call{ID: 3, BookingID: 10, CoachID: 7, Satisfaction: 4, Notes: "solid session"},
	}
	app := newCallTestApp(service, models.RoleCoach, "7")

	req := httptest.NewRequest(http.MethodPost, "/api/calls", strings.NewReader(`{
		"bookingId": 10,
		"satisfaction": 4,
		"notes": "solid session"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastCoachID != 7 || service.lastBooking != 10 {
		t.Fatalf("expected coach 7 booking 10, got %d/%d", service.lastCoachID, service.lastBooking)
	}
	if service.lastInput.Satisfaction != 4 {
		t.Fatalf("expected satisfaction 4, got %d", service.lastInput.Satisfaction)
	}
}

func TestCreateCallRejectsMissingFields(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing bookingId", `{"satisfaction": 4, "notes": "x"}`},
		{"missing satisfaction", `{"bookingId": 10, "notes": "x"}`},
		{"missing notes", `{"bookingId": 10, "satisfaction": 4}`},
		{"blank notes", `{"bookingId": 10, "satisfaction": 4, "notes": "  "}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service := &stubCallService{}
			app := newCallTestApp(service, models.RoleCoach, "7")

			req := httptest.NewRequest(http.MethodPost, "/api/calls", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}
			if service.recordCalls != 0 {
				t.Fatalf("expected no service call")
			}
		})
	}
}

func TestCreateCallSatisfactionBoundsPassThrough(t *testing.T) {
	// Out-of-range values reach the service, which rejects them; both ends
	// come back as 400.
	for _, satisfaction := range []int{0, 6} {
		service := &stubCallService{recordErr: services.ErrInvalidInput}
		app := newCallTestApp(service, models.RoleCoach, "7")

		body := fmt.Sprintf(`{"bookingId": 10, "satisfaction": %d, "notes": "x"}`, satisfaction)
		req := httptest.NewRequest(http.MethodPost, "/api/calls", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("satisfaction %d: expected 400, got %d", satisfaction, resp.StatusCode)
		}
	}
}

func TestCreateCallDuplicateReturns400(t *testing.T) {
	service := &stubCallService{recordErr: services.ErrDuplicateFeedback}
	app := newCallTestApp(service, models.RoleCoach, "7")

	req := httptest.NewRequest(http.MethodPost, "/api/calls", strings.NewReader(`{"bookingId": 10, "satisfaction": 4, "notes": "x"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate, got %d", resp.StatusCode)
	}
}

func TestCreateCallForbiddenForNonOwner(t *testing.T) {
	service := &stubCallService{recordErr: services.ErrForbidden}
	app := newCallTestApp(service, models.RoleCoach, "8")

	req := httptest.NewRequest(http.MethodPost, "/api/calls", strings.NewReader(`{"bookingId": 10, "satisfaction": 4, "notes": "x"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestCreateCallRejectsMismatchedCoachID(t *testing.T) {
	service := &stubCallService{}
	app := newCallTestApp(service, models.RoleCoach, "7")

	req := httptest.NewRequest(http.MethodPost, "/api/calls", strings.NewReader(`{"bookingId": 10, "coachId": 8, "satisfaction": 4, "notes": "x"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if service.recordCalls != 0 {
		t.Fatalf("expected no service call")
	}
}

func TestCreateCallBookingNotFoundReturns404(t *testing.T) {
	service := &stubCallService{recordErr: services.ErrBookingNotFound}
	app := newCallTestApp(service, models.RoleCoach, "7")

	req := httptest.NewRequest(http.MethodPost, "/api/calls", strings.NewReader(`{"bookingId": 999, "satisfaction": 4, "notes": "x"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestCreateCallRejectsStudentRole(t *testing.T) {
	service := &stubCallService{}
	app := newCallTestApp(service, models.RoleStudent, "2")

	req := httptest.NewRequest(http.MethodPost, "/api/calls", strings.NewReader(`{"bookingId": 10, "satisfaction": 4, "notes": "x"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestUpdateCallRevisesFeedback(t *testing.T) {
	service := &stubCallService{
		updateResult: &models.Call{ID: 3, Satisfaction: 5, Notes: "revised"},
	}
	app := newCallTestApp(service, models.RoleCoach, "7")

	req := httptest.NewRequest(http.MethodPut, "/api/calls/3", strings.NewReader(`{"satisfaction": 5, "notes": "revised"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastCallID != 3 || service.lastCoachID != 7 {
		t.Fatalf("expected call 3 coach 7, got %d/%d", service.lastCallID, service.lastCoachID)
	}
}

func TestUpdateCallInvalidIDReturns400(t *testing.T) {
	service := &stubCallService{}
	app := newCallTestApp(service, models.RoleCoach, "7")

	req := httptest.NewRequest(http.MethodPut, "/api/calls/abc", strings.NewReader(`{"satisfaction": 5, "notes": "x"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestListCallsUsesTokenIdentity(t *testing.T) {
	service := &stubCallService{
		listResult: []models.CallDetail{{Call: models.Call{ID: 3, CoachID: 7}, StudentName: "Student Charlie"}},
	}
	app := newCallTestApp(service, models.RoleCoach, "7")

	req := httptest.NewRequest(http.MethodGet, "/api/calls", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastCoachID != 7 {
		t.Fatalf("expected coach 7, got %d", service.lastCoachID)
	}
}

func TestListCallsRejectsForeignCoachID(t *testing.T) {
	service := &stubCallService{}
	app := newCallTestApp(service, models.RoleCoach, "7")

	req := httptest.NewRequest(http.MethodGet, "/api/calls?coachId=8", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}
