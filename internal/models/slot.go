package models

import "time"

// SlotDuration is the fixed length of every availability window. End times
// are always derived from the start time, never stored independently by
// callers.
const SlotDuration = 2 * time.Hour

type Slot struct {
	ID        int64     `json:"id"`
	CoachID   int64     `json:"coachId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	IsBooked  bool      `json:"isBooked"`
	CreatedAt time.Time `json:"createdAt"`
}

// SlotDetail is a slot with its coach and, when booked, the claiming
// booking and student.
type SlotDetail struct {
	Slot
	Coach   UserRef         `json:"coach"`
	Booking *BookingSummary `json:"booking,omitempty"`
}

// BookingSummary is the booking projection nested under a booked slot.
type BookingSummary struct {
	ID        int64     `json:"id"`
	Student   UserRef   `json:"student"`
	CreatedAt time.Time `json:"createdAt"`
}

// TimeWindow is the slot time range nested in feedback rows.
type TimeWindow struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}
