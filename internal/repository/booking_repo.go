package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/saeid-a/CoachSchedBack/internal/models"
)

type BookingListFilter struct {
	StudentID *int64
	CoachID   *int64
}

type BookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, slotID, studentID int64) (*models.Booking, error) {
	query := `
		INSERT INTO bookings (slot_id, student_id)
		VALUES ($1, $2)
		RETURNING id, slot_id, student_id, created_at
	`

	var booking models.Booking
	err := r.db.QueryRow(ctx, query, slotID, studentID).Scan(
		&booking.ID,
		&booking.SlotID,
		&booking.StudentID,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID int64) (*models.Booking, error) {
	query := `
		SELECT id, slot_id, student_id, created_at
		FROM bookings
		WHERE id = $1
	`
	var booking models.Booking
	err := r.db.QueryRow(ctx, query, bookingID).Scan(
		&booking.ID,
		&booking.SlotID,
		&booking.StudentID,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

const bookingDetailColumns = `
	b.id, b.slot_id, b.student_id, b.created_at,
	s.id, s.coach_id, s.start_time, s.end_time, s.is_booked, s.created_at,
	c.id, c.name, c.phone,
	st.id, st.name, st.phone,
	f.id, f.booking_id, f.coach_id, f.satisfaction, f.notes, f.created_at
`

const bookingDetailJoins = `
	FROM bookings b
	JOIN slots s ON s.id = b.slot_id
	JOIN users c ON c.id = s.coach_id
	JOIN users st ON st.id = b.student_id
	LEFT JOIN calls f ON f.booking_id = b.id
`

func (r *BookingRepository) GetDetailByID(ctx context.Context, bookingID int64) (*models.BookingDetail, error) {
	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE b.id = $1
	`, bookingDetailColumns, bookingDetailJoins)

	detail, err := scanBookingDetail(r.db.QueryRow(ctx, query, bookingID))
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// List returns bookings visible to a student or a coach. Callers must set at
// least one filter id.
func (r *BookingRepository) List(ctx context.Context, filter BookingListFilter) ([]models.BookingDetail, error) {
	args := []any{}
	whereParts := []string{}

	if filter.StudentID != nil {
		args = append(args, *filter.StudentID)
		whereParts = append(whereParts, fmt.Sprintf("b.student_id = $%d", len(args)))
	}
	if filter.CoachID != nil {
		args = append(args, *filter.CoachID)
		whereParts = append(whereParts, fmt.Sprintf("s.coach_id = $%d", len(args)))
	}
	if len(whereParts) == 0 {
		return nil, fmt.Errorf("booking list filter requires a student or coach id")
	}

	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE %s
		ORDER BY s.start_time ASC, b.id ASC
	`, bookingDetailColumns, bookingDetailJoins, strings.Join(whereParts, " AND "))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]models.BookingDetail, 0)
	for rows.Next() {
		detail, err := scanBookingDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return details, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookingDetail(row rowScanner) (*models.BookingDetail, error) {
	var detail models.BookingDetail
	var callID, callBookingID, callCoachID *int64
	var callSatisfaction *int
	var callNotes *string
	var callCreatedAt *time.Time

	err := row.Scan(
		&detail.ID,
		&detail.SlotID,
		&detail.StudentID,
		&detail.CreatedAt,
		&detail.Slot.ID,
		&detail.Slot.CoachID,
		&detail.Slot.StartTime,
		&detail.Slot.EndTime,
		&detail.Slot.IsBooked,
		&detail.Slot.CreatedAt,
		&detail.Slot.Coach.ID,
		&detail.Slot.Coach.Name,
		&detail.Slot.Coach.Phone,
		&detail.Student.ID,
		&detail.Student.Name,
		&detail.Student.Phone,
		&callID,
		&callBookingID,
		&callCoachID,
		&callSatisfaction,
		&callNotes,
		&callCreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if callID != nil {
		detail.Call = &models.Call{
			ID:           *callID,
			BookingID:    *callBookingID,
			CoachID:      *callCoachID,
			Satisfaction: *callSatisfaction,
			Notes:        *callNotes,
			CreatedAt:    *callCreatedAt,
		}
	}
	return &detail, nil
}
