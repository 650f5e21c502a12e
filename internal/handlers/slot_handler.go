package handlers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/CoachSchedBack/internal/models"
	"github.com/saeid-a/CoachSchedBack/internal/repository"
	"github.com/saeid-a/CoachSchedBack/internal/services"
)

type slotApplicationService interface {
	PublishSlot(ctx context.Context, coachID int64, startTime time.Time) (*models.Slot, error)
	ListSlots(ctx context.Context, filter repository.SlotListFilter) ([]models.SlotDetail, error)
}

type SlotHandler struct {
	service slotApplicationService
}

func NewSlotHandler(service *services.SlotService) *SlotHandler {
	return &SlotHandler{service: service}
}

type createSlotRequest struct {
	StartTime string `json:"startTime"`
	CoachID   int64  `json:"coachId"`
}

func (h *SlotHandler) CreateSlot(c *fiber.Ctx) error {
	actorID, ok := requireRole(c, models.RoleCoach)
	if !ok {
		return nil
	}

	var req createSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if strings.TrimSpace(req.StartTime) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "startTime is required"})
	}
	startTime, err := time.Parse(time.RFC3339, strings.TrimSpace(req.StartTime))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "startTime must be a valid RFC3339 timestamp"})
	}

	// The slot owner is the authenticated coach. A client-supplied coachId
	// is accepted only when it agrees with the token.
	if req.CoachID != 0 && req.CoachID != actorID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	slot, err := h.service.PublishSlot(c.Context(), actorID, startTime)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(slot)
}

func (h *SlotHandler) ListSlots(c *fiber.Ctx) error {
	coachID, err := parseOptionalID(strings.TrimSpace(c.Query("coachId")))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid coachId"})
	}

	var isBooked *bool
	if raw := strings.TrimSpace(c.Query("isBooked")); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid isBooked"})
		}
		isBooked = &value
	}

	slots, err := h.service.ListSlots(c.Context(), repository.SlotListFilter{
		CoachID:  coachID,
		IsBooked: isBooked,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(slots)
}
