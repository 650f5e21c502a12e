package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/CoachSchedBack/internal/models"
	"github.com/saeid-a/CoachSchedBack/internal/services"
)

type callApplicationService interface {
	RecordFeedback(ctx context.Context, coachID, bookingID int64, input services.FeedbackInput) (*models.Call, error)
	UpdateFeedback(ctx context.Context, coachID, callID int64, input services.FeedbackInput) (*models.Call, error)
	ListFeedback(ctx context.Context, coachID int64) ([]models.CallDetail, error)
}

type CallHandler struct {
	service callApplicationService
}

func NewCallHandler(service *services.CallService) *CallHandler {
	return &CallHandler{service: service}
}

type createCallRequest struct {
	BookingID    int64  `json:"bookingId"`
	CoachID      int64  `json:"coachId"`
	Satisfaction *int   `json:"satisfaction"`
	Notes        string `json:"notes"`
}

type updateCallRequest struct {
	Satisfaction *int   `json:"satisfaction"`
	Notes        string `json:"notes"`
}

func (h *CallHandler) CreateCall(c *fiber.Ctx) error {
	actorID, ok := requireRole(c, models.RoleCoach)
	if !ok {
		return nil
	}

	var req createCallRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.BookingID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bookingId is required"})
	}
	if req.Satisfaction == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "satisfaction is required"})
	}
	if strings.TrimSpace(req.Notes) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "notes is required"})
	}
	if req.CoachID != 0 && req.CoachID != actorID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	call, err := h.service.RecordFeedback(c.Context(), actorID, req.BookingID, services.FeedbackInput{
		Satisfaction: *req.Satisfaction,
		Notes:        req.Notes,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(call)
}

func (h *CallHandler) UpdateCall(c *fiber.Ctx) error {
	actorID, ok := requireRole(c, models.RoleCoach)
	if !ok {
		return nil
	}

	callID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || callID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid call id"})
	}

	var req updateCallRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Satisfaction == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "satisfaction is required"})
	}
	if strings.TrimSpace(req.Notes) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "notes is required"})
	}

	call, err := h.service.UpdateFeedback(c.Context(), actorID, callID, services.FeedbackInput{
		Satisfaction: *req.Satisfaction,
		Notes:        req.Notes,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(call)
}

func (h *CallHandler) ListCalls(c *fiber.Ctx) error {
	actorID, ok := requireRole(c, models.RoleCoach)
	if !ok {
		return nil
	}

	coachID, err := parseOptionalID(strings.TrimSpace(c.Query("coachId")))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid coachId"})
	}
	if coachID != nil && *coachID != actorID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	calls, err := h.service.ListFeedback(c.Context(), actorID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(calls)
}
