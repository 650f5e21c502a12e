package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/CoachSchedBack/internal/models"
	"github.com/saeid-a/CoachSchedBack/internal/repository"
	"go.uber.org/zap"
)

const (
	minSatisfaction = 1
	maxSatisfaction = 5
)

type bookingDetailReader interface {
	GetDetailByID(ctx context.Context, bookingID int64) (*models.BookingDetail, error)
}

type callStore interface {
	Create(ctx context.Context, input repository.CreateCallInput) (*models.Call, error)
	GetByID(ctx context.Context, callID int64) (*models.Call, error)
	Update(ctx context.Context, callID int64, satisfaction int, notes string) (*models.Call, error)
	ListByCoachID(ctx context.Context, coachID int64) ([]models.CallDetail, error)
}

type CallService struct {
	callRepo    callStore
	bookingRepo bookingDetailReader
	logger      *zap.Logger
}

func NewCallService(callRepo callStore, bookingRepo bookingDetailReader, logger *zap.Logger) *CallService {
	return &CallService{
		callRepo:    callRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

type FeedbackInput struct {
	Satisfaction int
	Notes        string
}

func validateFeedbackInput(input FeedbackInput) error {
	if input.Satisfaction < minSatisfaction || input.Satisfaction > maxSatisfaction {
		return ErrInvalidInput
	}
	if strings.TrimSpace(input.Notes) == "" {
		return ErrInvalidInput
	}
	return nil
}

// RecordFeedback attaches feedback to a booking. Only the coach who owns the
// booked slot may record it, and a booking accepts feedback exactly once: a
// repeat attempt fails rather than overwriting, backed by the unique
// constraint on calls.booking_id.
func (s *CallService) RecordFeedback(ctx context.Context, coachID, bookingID int64, input FeedbackInput) (*models.Call, error) {
	if coachID <= 0 || bookingID <= 0 {
		return nil, ErrInvalidInput
	}
	if err := validateFeedbackInput(input); err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.GetDetailByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.Slot.CoachID != coachID {
		return nil, ErrForbidden
	}
	if booking.Call != nil {
		return nil, ErrDuplicateFeedback
	}

	call, err := s.callRepo.Create(ctx, repository.CreateCallInput{
		BookingID:    bookingID,
		CoachID:      coachID,
		Satisfaction: input.Satisfaction,
		Notes:        strings.TrimSpace(input.Notes),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateFeedback
		}
		s.logger.Error("create call failed", zap.Int64("booking_id", bookingID), zap.Error(err))
		return nil, err
	}
	return call, nil
}

// UpdateFeedback revises an existing feedback record in place. The one-call-
// per-booking invariant is untouched: only satisfaction and notes change.
func (s *CallService) UpdateFeedback(ctx context.Context, coachID, callID int64, input FeedbackInput) (*models.Call, error) {
	if coachID <= 0 || callID <= 0 {
		return nil, ErrInvalidInput
	}
	if err := validateFeedbackInput(input); err != nil {
		return nil, err
	}

	call, err := s.callRepo.GetByID(ctx, callID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCallNotFound
		}
		return nil, err
	}
	if call.CoachID != coachID {
		return nil, ErrForbidden
	}

	return s.callRepo.Update(ctx, callID, input.Satisfaction, strings.TrimSpace(input.Notes))
}

func (s *CallService) ListFeedback(ctx context.Context, coachID int64) ([]models.CallDetail, error) {
	if coachID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.callRepo.ListByCoachID(ctx, coachID)
}
