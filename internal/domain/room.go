package domain

import (
	"fmt"
	"time"
)

// Room is a static catalog entry. The set of rooms is fixed and seeded, users
// cannot edit it.
type Room struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Capacity  int       `json:"capacity" validate:"required,gt=0"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName falls back to "Room {id}" when the catalog row has no name,
// e.g. for reservations that reference a room missing from the seed set.
func (r Room) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return FallbackRoomName(r.ID)
}

func FallbackRoomName(id int64) string {
	return fmt.Sprintf("Room %d", id)
}
