package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/CoachSchedBack/internal/models"
	"github.com/saeid-a/CoachSchedBack/internal/repository"
	"go.uber.org/zap"
)

type userReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type slotStore interface {
	Create(ctx context.Context, input repository.CreateSlotInput) (*models.Slot, error)
	List(ctx context.Context, filter repository.SlotListFilter) ([]models.SlotDetail, error)
}

type SlotService struct {
	slotRepo slotStore
	userRepo userReader
	logger   *zap.Logger
}

func NewSlotService(slotRepo slotStore, userRepo userReader, logger *zap.Logger) *SlotService {
	return &SlotService{
		slotRepo: slotRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// PublishSlot creates a fixed-length availability window for a coach. The
// end time is always derived from the start time, so the two-hour invariant
// holds regardless of what the client sends. Overlapping windows are allowed.
func (s *SlotService) PublishSlot(ctx context.Context, coachID int64, startTime time.Time) (*models.Slot, error) {
	if coachID <= 0 || startTime.IsZero() {
		return nil, ErrInvalidInput
	}

	coach, err := s.userRepo.GetByID(ctx, coachID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCoachNotFound
		}
		return nil, err
	}
	if !coach.IsCoach {
		return nil, ErrCoachNotFound
	}

	slot, err := s.slotRepo.Create(ctx, repository.CreateSlotInput{
		CoachID:   coachID,
		StartTime: startTime.UTC(),
		EndTime:   startTime.UTC().Add(models.SlotDuration),
	})
	if err != nil {
		s.logger.Error("create slot failed", zap.Int64("coach_id", coachID), zap.Error(err))
		return nil, err
	}
	return slot, nil
}

func (s *SlotService) ListSlots(ctx context.Context, filter repository.SlotListFilter) ([]models.SlotDetail, error) {
	return s.slotRepo.List(ctx, filter)
}
