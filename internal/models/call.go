package models

import "time"

// Call is a coach's post-session feedback record. At most one exists per
// booking; the database enforces this with a unique constraint.
type Call struct {
	ID           int64     `json:"id"`
	BookingID    int64     `json:"bookingId"`
	CoachID      int64     `json:"coachId"`
	Satisfaction int       `json:"satisfaction"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CallDetail is a feedback row enriched for the coach history view.
type CallDetail struct {
	Call
	StudentName  string     `json:"studentName"`
	StudentPhone string     `json:"studentPhone"`
	Slot         TimeWindow `json:"slot"`
}
