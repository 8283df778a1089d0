package domain

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
)

// Reservation is a booking of a room for one date and a [start,end) time
// interval. Times are stored as "HH:MM" strings, the date as "2006-01-02".
// Exactly one of LineUserID / UserID is set: a reservation always belongs to
// either a chat identity or a web account, never both.
type Reservation struct {
	ID         int64             `json:"id"`
	RoomID     int64             `json:"room_id" validate:"required"`
	Date       string            `json:"date" validate:"required"`
	StartTime  string            `json:"start_time" validate:"required"`
	EndTime    string            `json:"end_time" validate:"required"`
	Name       string            `json:"name"`
	LineUserID string            `json:"line_user_id,omitempty"`
	UserID     *int64            `json:"user_id,omitempty"`
	Status     ReservationStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`

	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}
