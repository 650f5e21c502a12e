package models

import "time"

type Booking struct {
	ID        int64     `json:"id"`
	SlotID    int64     `json:"slotId"`
	StudentID int64     `json:"studentId"`
	CreatedAt time.Time `json:"createdAt"`
}

// SlotWithCoach is the slot projection nested under a booking.
type SlotWithCoach struct {
	Slot
	Coach UserRef `json:"coach"`
}

// BookingDetail is the canonical booking response shape: the booking joined
// with its slot (including the owning coach), the student, and any feedback
// already recorded for it.
type BookingDetail struct {
	Booking
	Slot    SlotWithCoach `json:"slot"`
	Student UserRef       `json:"student"`
	Call    *Call         `json:"call,omitempty"`
}
