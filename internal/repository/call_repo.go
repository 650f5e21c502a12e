package repository

import (
	"context"

	"github.com/saeid-a/CoachSchedBack/internal/models"
)

type CreateCallInput struct {
	BookingID    int64
	CoachID      int64
	Satisfaction int
	Notes        string
}

type CallRepository struct {
	db DBTX
}

func NewCallRepository(db DBTX) *CallRepository {
	return &CallRepository{db: db}
}

func (r *CallRepository) Create(ctx context.Context, input CreateCallInput) (*models.Call, error) {
	query := `
		INSERT INTO calls (booking_id, coach_id, satisfaction, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, booking_id, coach_id, satisfaction, notes, created_at
	`

	var call models.Call
	err := r.db.QueryRow(ctx, query, input.BookingID, input.CoachID, input.Satisfaction, input.Notes).Scan(
		&call.ID,
		&call.BookingID,
		&call.CoachID,
		&call.Satisfaction,
		&call.Notes,
		&call.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &call, nil
}

func (r *CallRepository) GetByID(ctx context.Context, callID int64) (*models.Call, error) {
	query := `
		SELECT id, booking_id, coach_id, satisfaction, notes, created_at
		FROM calls
		WHERE id = $1
	`
	var call models.Call
	err := r.db.QueryRow(ctx, query, callID).Scan(
		&call.ID,
		&call.BookingID,
		&call.CoachID,
		&call.Satisfaction,
		&call.Notes,
		&call.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &call, nil
}

func (r *CallRepository) Update(ctx context.Context, callID int64, satisfaction int, notes string) (*models.Call, error) {
	query := `
		UPDATE calls
		SET satisfaction = $2, notes = $3
		WHERE id = $1
		RETURNING id, booking_id, coach_id, satisfaction, notes, created_at
	`
	var call models.Call
	err := r.db.QueryRow(ctx, query, callID, satisfaction, notes).Scan(
		&call.ID,
		&call.BookingID,
		&call.CoachID,
		&call.Satisfaction,
		&call.Notes,
		&call.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &call, nil
}

// ListByCoachID returns the coach's feedback history enriched with student
// contact details and the session time window, newest first.
func (r *CallRepository) ListByCoachID(ctx context.Context, coachID int64) ([]models.CallDetail, error) {
	query := `
		SELECT f.id, f.booking_id, f.coach_id, f.satisfaction, f.notes, f.created_at,
		       st.name, st.phone,
		       s.start_time, s.end_time
		FROM calls f
		JOIN bookings b ON b.id = f.booking_id
		JOIN users st ON st.id = b.student_id
		JOIN slots s ON s.id = b.slot_id
		WHERE f.coach_id = $1
		ORDER BY f.created_at DESC, f.id DESC
	`

	rows, err := r.db.Query(ctx, query, coachID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]models.CallDetail, 0)
	for rows.Next() {
		var detail models.CallDetail
		if err := rows.Scan(
			&detail.ID,
			&detail.BookingID,
			&detail.CoachID,
			&detail.Satisfaction,
			&detail.Notes,
			&detail.CreatedAt,
			&detail.StudentName,
			&detail.StudentPhone,
			&detail.Slot.StartTime,
			&detail.Slot.EndTime,
		); err != nil {
			return nil, err
		}
		details = append(details, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return details, nil
}
