package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/CoachSchedBack/internal/models"
	"github.com/saeid-a/CoachSchedBack/internal/repository"
	"github.com/saeid-a/CoachSchedBack/internal/services"
)

type bookingApplicationService interface {
	BookSlot(ctx context.Context, studentID, slotID int64) (*models.BookingDetail, error)
	ListBookings(ctx context.Context, filter repository.BookingListFilter) ([]models.BookingDetail, error)
}

type BookingHandler struct {
	service bookingApplicationService
}

func NewBookingHandler(service *services.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

type createBookingRequest struct {
	SlotID    int64 `json:"slotId"`
	StudentID int64 `json:"studentId"`
}

func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	actorID, ok := requireRole(c, models.RoleStudent)
	if !ok {
		return nil
	}

	var req createBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.SlotID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "slotId is required"})
	}
	if req.StudentID != 0 && req.StudentID != actorID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	booking, err := h.service.BookSlot(c.Context(), actorID, req.SlotID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

func (h *BookingHandler) ListBookings(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	studentID, err := parseOptionalID(strings.TrimSpace(c.Query("studentId")))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid studentId"})
	}
	coachID, err := parseOptionalID(strings.TrimSpace(c.Query("coachId")))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid coachId"})
	}

	if studentID == nil && coachID == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "studentId or coachId is required"})
	}

	// Listings are scoped to the caller's own identity.
	role := actorRole(c)
	if studentID != nil && (role != models.RoleStudent || *studentID != actorID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	if coachID != nil && (role != models.RoleCoach || *coachID != actorID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	bookings, err := h.service.ListBookings(c.Context(), repository.BookingListFilter{
		StudentID: studentID,
		CoachID:   coachID,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(bookings)
}
