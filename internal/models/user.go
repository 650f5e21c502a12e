package models

import "time"

const (
	RoleCoach   = "coach"
	RoleStudent = "student"
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	IsCoach      bool      `json:"isCoach"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Role maps the isCoach flag onto the role string carried in JWT claims.
func (u *User) Role() string {
	if u.IsCoach {
		return RoleCoach
	}
	return RoleStudent
}

// UserRef is the contact projection embedded in booking and slot responses.
type UserRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name, Phone: u.Phone}
}
