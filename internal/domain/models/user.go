package models

import "time"

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

// Participant is a user together with their attendance record when one exists.
type Participant struct {
	User
	Attendance *AttendanceRecord `json:"attendance,omitempty"`
}
