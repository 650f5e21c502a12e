package services

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/CoachSchedBack/internal/models"
	"github.com/saeid-a/CoachSchedBack/internal/repository"
	"go.uber.org/zap"
)

type stubSlotRepo struct {
	createResult *models.Slot
	createErr    error
	listResult   []models.SlotDetail
	listErr      error
	lastCreate   repository.CreateSlotInput
	lastFilter   repository.SlotListFilter
	createCalls  int
}

func (r *stubSlotRepo) Create(_ context.Context, input repository.CreateSlotInput) (*models.Slot, error) {
	r.createCalls++
	r.lastCreate = input
	if r.createResult != nil {
		return r.createResult, r.createErr
	}
	return &models.Slot{
		ID:        1,
		CoachID:   input.CoachID,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
	}, r.createErr
}

func (r *stubSlotRepo) List(_ context.Context, filter repository.SlotListFilter) ([]models.SlotDetail, error) {
	r.lastFilter = filter
	return r.listResult, r.listErr
}

type stubUserRepo struct {
	user *models.User
	err  error
}

func (r *stubUserRepo) GetByID(_ context.Context, _ int64) (*models.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.user, nil
}

func TestPublishSlotDerivesTwoHourEndTime(t *testing.T) {
	slotRepo := &stubSlotRepo{}
	userRepo := &stubUserRepo{user: &models.User{ID: 5, IsCoach: true}}
	service := NewSlotService(slotRepo, userRepo, zap.NewNop())

	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	slot, err := service.PublishSlot(context.Background(), 5, start)
	if err != nil {
		t.Fatalf("PublishSlot: %v", err)
	}

	if got := slot.EndTime.Sub(slot.StartTime); got != 2*time.Hour {
		t.Fatalf("expected 2h duration, got %v", got)
	}
	if !slot.EndTime.Equal(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected end time %v", slot.EndTime)
	}
	if slotRepo.lastCreate.CoachID != 5 {
		t.Fatalf("expected coach id 5, got %d", slotRepo.lastCreate.CoachID)
	}
}

func TestPublishSlotDurationAcrossDSTTransition(t *testing.T) {
	slotRepo := &stubSlotRepo{}
	userRepo := &stubUserRepo{user: &models.User{ID: 5, IsCoach: true}}
	service := NewSlotService(slotRepo, userRepo, zap.NewNop())

	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// 2024-03-10 01:30 local straddles the spring-forward gap.
	start := time.Date(2024, 3, 10, 1, 30, 0, 0, loc)
	slot, err := service.PublishSlot(context.Background(), 5, start)
	if err != nil {
		t.Fatalf("PublishSlot: %v", err)
	}

	if got := slot.EndTime.Sub(slot.StartTime); got != 2*time.Hour {
		t.Fatalf("expected exactly 2h across DST, got %v", got)
	}
}

func TestPublishSlotRejectsUnknownCoach(t *testing.T) {
	slotRepo := &stubSlotRepo{}
	userRepo := &stubUserRepo{err: pgx.ErrNoRows}
	service := NewSlotService(slotRepo, userRepo, zap.NewNop())

	_, err := service.PublishSlot(context.Background(), 999, time.Now())
	if err != ErrCoachNotFound {
		t.Fatalf("expected ErrCoachNotFound, got %v", err)
	}
	if slotRepo.createCalls != 0 {
		t.Fatalf("expected no slot created, got %d creates", slotRepo.createCalls)
	}
}

func TestPublishSlotRejectsNonCoachUser(t *testing.T) {
	slotRepo := &stubSlotRepo{}
	userRepo := &stubUserRepo{user: &models.User{ID: 3, IsCoach: false}}
	service := NewSlotService(slotRepo, userRepo, zap.NewNop())

	_, err := service.PublishSlot(context.Background(), 3, time.Now())
	if err != ErrCoachNotFound {
		t.Fatalf("expected ErrCoachNotFound, got %v", err)
	}
}

func TestPublishSlotRejectsInvalidInput(t *testing.T) {
	service := NewSlotService(&stubSlotRepo{}, &stubUserRepo{}, zap.NewNop())

	if _, err := service.PublishSlot(context.Background(), 0, time.Now()); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for zero coach id, got %v", err)
	}
	if _, err := service.PublishSlot(context.Background(), 5, time.Time{}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for zero time, got %v", err)
	}
}

func TestListSlotsPassesFilter(t *testing.T) {
	slotRepo := &stubSlotRepo{
		listResult: []models.SlotDetail{{Slot: models.Slot{ID: 7, CoachID: 5}}},
	}
	service := NewSlotService(slotRepo, &stubUserRepo{}, zap.NewNop())

	coachID := int64(5)
	booked := false
	slots, err := service.ListSlots(context.Background(), repository.SlotListFilter{
		CoachID:  &coachID,
		IsBooked: &booked,
	})
	if err != nil {
		t.Fatalf("ListSlots: %v", err)
	}
	if len(slots) != 1 || slots[0].ID != 7 {
		t.Fatalf("unexpected slots %+v", slots)
	}
	if slotRepo.lastFilter.CoachID == nil || *slotRepo.lastFilter.CoachID != 5 {
		t.Fatalf("expected coach filter 5, got %+v", slotRepo.lastFilter)
	}
	if slotRepo.lastFilter.IsBooked == nil || *slotRepo.lastFilter.IsBooked {
		t.Fatalf("expected isBooked=false filter, got %+v", slotRepo.lastFilter)
	}
}
