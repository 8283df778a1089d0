package availability

import (
	"fmt"
	"strconv"
	"strings"

	"roomreserve/internal/domain"
)

const (
	slotsPerDay = 24

	// MaxDurationMinutes is the exclusive upper bound on a reservation:
	// exactly 5 hours is rejected, 4h59m is fine.
	MaxDurationMinutes = 5 * 60
)

// Slot is one fixed clock-hour window of a day, derived from the
// reservations for a room and date. Never persisted.
type Slot struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Booked bool   `json:"is_booked"`
}

// GenerateSlots builds the 24-entry availability grid for one room/date.
// Slot i covers [i:00,(i+1):00). A slot is booked if any reservation covers
// the slot start, or starts inside the slot (half-open on both sides).
func GenerateSlots(reservations []domain.Reservation) []Slot {
	slots := make([]Slot, 0, slotsPerDay)
	for i := 0; i < slotsPerDay; i++ {
		slotStart := i * 60
		slotEnd := (i + 1) * 60

		booked := false
		for _, r := range reservations {
			start, err := clockMinutes(r.StartTime)
			if err != nil {
				continue
			}
			end, err := clockMinutes(r.EndTime)
			if err != nil {
				continue
			}
			if (start <= slotStart && end > slotStart) ||
				(start >= slotStart && start < slotEnd) {
				booked = true
				break
			}
		}

		slots = append(slots, Slot{
			Start:  fmt.Sprintf("%02d:00", i),
			End:    fmt.Sprintf("%02d:00", i+1),
			Booked: booked,
		})
	}
	return slots
}

// ValidateInterval enforces the ordering and maximum-duration rules for a
// proposed [start,end) interval. Each failure is a distinct sentinel so the
// caller can show the right message.
func ValidateInterval(start, end string) error {
	s, err := clockMinutes(start)
	if err != nil {
		return err
	}
	e, err := clockMinutes(end)
	if err != nil {
		return err
	}
	if s >= e {
		return ErrStartNotBeforeEnd
	}
	if e-s >= MaxDurationMinutes {
		return ErrTooLong
	}
	return nil
}

// IsAvailable reports whether the proposed interval avoids every booked
// slot: it must lie entirely before or entirely after each one. Unbooked
// slots impose no constraint. Malformed times count as unavailable.
func IsAvailable(start, end string, slots []Slot) bool {
	s, err := clockMinutes(start)
	if err != nil {
		return false
	}
	e, err := clockMinutes(end)
	if err != nil {
		return false
	}

	for _, slot := range slots {
		if !slot.Booked {
			continue
		}
		slotStart, err := clockMinutes(slot.Start)
		if err != nil {
			return false
		}
		slotEnd, err := clockMinutes(slot.End)
		if err != nil {
			return false
		}
		if e <= slotStart || s >= slotEnd {
			continue
		}
		return false
	}
	return true
}

// clockMinutes parses "HH:MM" (a trailing ":SS" is tolerated and ignored)
// into minutes since midnight. "24:00" is accepted as the end of day.
func clockMinutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, ErrBadTime
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, ErrBadTime
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, ErrBadTime
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, ErrBadTime
	}
	return h*60 + m, nil
}
