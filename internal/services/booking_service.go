package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/saeid-a/CoachSchedBack/internal/models"
	"github.com/saeid-a/CoachSchedBack/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrForbidden         = errors.New("forbidden")
	ErrSlotBooked        = errors.New("slot is already booked")
	ErrDuplicateFeedback = errors.New("feedback for this call has already been recorded")
	ErrSlotNotFound      = errors.New("slot not found")
	ErrStudentNotFound   = errors.New("student not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrCallNotFound      = errors.New("call not found")
	ErrCoachNotFound     = errors.New("coach not found")
)

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

type BookingService struct {
	db          *pgxpool.Pool
	bookingRepo *repository.BookingRepository
	logger      *zap.Logger
}

func NewBookingService(db *pgxpool.Pool, bookingRepo *repository.BookingRepository, logger *zap.Logger) *BookingService {
	return &BookingService{
		db:          db,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// BookSlot claims a slot for a student. The availability check, the booking
// insert, and the is_booked flip run in one transaction; the row lock taken
// by GetByIDForUpdate serializes racing claims and the unique constraint on
// bookings.slot_id is the backstop. Exactly one of two concurrent claims for
// the same slot can succeed.
func (s *BookingService) BookSlot(ctx context.Context, studentID, slotID int64) (*models.BookingDetail, error) {
	if slotID <= 0 || studentID <= 0 {
		return nil, ErrInvalidInput
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txSlotRepo := repository.NewSlotRepository(tx)
	txBookingRepo := repository.NewBookingRepository(tx)
	txUserRepo := repository.NewUserRepository(tx)

	slot, err := txSlotRepo.GetByIDForUpdate(ctx, slotID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	if slot.IsBooked {
		return nil, ErrSlotBooked
	}

	student, err := txUserRepo.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	if student.IsCoach {
		return nil, ErrStudentNotFound
	}

	booking, err := txBookingRepo.Create(ctx, slotID, studentID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotBooked
		}
		s.logger.Error("create booking failed", zap.Int64("slot_id", slotID), zap.Error(err))
		return nil, err
	}

	if err := txSlotRepo.MarkBooked(ctx, slotID); err != nil {
		s.logger.Error("mark slot booked failed", zap.Int64("slot_id", slotID), zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return s.bookingRepo.GetDetailByID(ctx, booking.ID)
}

func (s *BookingService) ListBookings(ctx context.Context, filter repository.BookingListFilter) ([]models.BookingDetail, error) {
	if filter.StudentID == nil && filter.CoachID == nil {
		return nil, ErrInvalidInput
	}
	return s.bookingRepo.List(ctx, filter)
}
