package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/saeid-a/CoachSchedBack/internal/models"
)

type CreateSlotInput struct {
	CoachID   int64
	StartTime time.Time
	EndTime   time.Time
}

type SlotListFilter struct {
	CoachID  *int64
	IsBooked *bool
}

type SlotRepository struct {
	db DBTX
}

func NewSlotRepository(db DBTX) *SlotRepository {
	return &SlotRepository{db: db}
}

func (r *SlotRepository) Create(ctx context.Context, input CreateSlotInput) (*models.Slot, error) {
	query := `
		INSERT INTO slots (coach_id, start_time, end_time, is_booked)
		VALUES ($1, $2, $3, FALSE)
		RETURNING id, coach_id, start_time, end_time, is_booked, created_at
	`

	var slot models.Slot
	err := r.db.QueryRow(ctx, query, input.CoachID, input.StartTime, input.EndTime).Scan(
		&slot.ID,
		&slot.CoachID,
		&slot.StartTime,
		&slot.EndTime,
		&slot.IsBooked,
		&slot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *SlotRepository) GetByID(ctx context.Context, slotID int64) (*models.Slot, error) {
	query := `
		SELECT id, coach_id, start_time, end_time, is_booked, created_at
		FROM slots
		WHERE id = $1
	`
	var slot models.Slot
	err := r.db.QueryRow(ctx, query, slotID).Scan(
		&slot.ID,
		&slot.CoachID,
		&slot.StartTime,
		&slot.EndTime,
		&slot.IsBooked,
		&slot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// GetByIDForUpdate locks the slot row for the duration of the enclosing
// transaction. The booking flow relies on this to serialize racing claims.
func (r *SlotRepository) GetByIDForUpdate(ctx context.Context, slotID int64) (*models.Slot, error) {
	query := `
		SELECT id, coach_id, start_time, end_time, is_booked, created_at
		FROM slots
		WHERE id = $1
		FOR UPDATE
	`
	var slot models.Slot
	err := r.db.QueryRow(ctx, query, slotID).Scan(
		&slot.ID,
		&slot.CoachID,
		&slot.StartTime,
		&slot.EndTime,
		&slot.IsBooked,
		&slot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *SlotRepository) MarkBooked(ctx context.Context, slotID int64) error {
	query := `
		UPDATE slots
		SET is_booked = TRUE
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, slotID)
	return err
}

func (r *SlotRepository) List(ctx context.Context, filter SlotListFilter) ([]models.SlotDetail, error) {
	args := []any{}
	whereParts := []string{}

	if filter.CoachID != nil {
		args = append(args, *filter.CoachID)
		whereParts = append(whereParts, fmt.Sprintf("s.coach_id = $%d", len(args)))
	}
	if filter.IsBooked != nil {
		args = append(args, *filter.IsBooked)
		whereParts = append(whereParts, fmt.Sprintf("s.is_booked = $%d", len(args)))
	}

	whereClause := ""
	if len(whereParts) > 0 {
		whereClause = "WHERE " + strings.Join(whereParts, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT s.id, s.coach_id, s.start_time, s.end_time, s.is_booked, s.created_at,
		       c.id, c.name, c.phone,
		       b.id, b.created_at,
		       st.id, st.name, st.phone
		FROM slots s
		JOIN users c ON c.id = s.coach_id
		LEFT JOIN bookings b ON b.slot_id = s.id
		LEFT JOIN users st ON st.id = b.student_id
		%s
		ORDER BY s.start_time ASC, s.id ASC
	`, whereClause)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]models.SlotDetail, 0)
	for rows.Next() {
		var detail models.SlotDetail
		var bookingID *int64
		var bookingCreatedAt *time.Time
		var studentID *int64
		var studentName, studentPhone *string

		if err := rows.Scan(
			&detail.ID,
			&detail.CoachID,
			&detail.StartTime,
			&detail.EndTime,
			&detail.IsBooked,
			&detail.CreatedAt,
			&detail.Coach.ID,
			&detail.Coach.Name,
			&detail.Coach.Phone,
			&bookingID,
			&bookingCreatedAt,
			&studentID,
			&studentName,
			&studentPhone,
		); err != nil {
			return nil, err
		}

		if bookingID != nil && studentID != nil {
			detail.Booking = &models.BookingSummary{
				ID:        *bookingID,
				CreatedAt: *bookingCreatedAt,
				Student: models.UserRef{
					ID:    *studentID,
					Name:  *studentName,
					Phone: *studentPhone,
				},
			}
		}
		details = append(details, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return details, nil
}
