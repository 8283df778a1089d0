package catalog

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"roomreserve/internal/domain"
	"roomreserve/internal/modules/availability"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("room not found")
)

type RoomRepository interface {
	List(ctx context.Context) ([]domain.Room, error)
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

type ReservationLister interface {
	ListByRoomAndDate(ctx context.Context, roomID int64, date string) ([]domain.Reservation, error)
}

type Service struct {
	rooms        RoomRepository
	reservations ReservationLister
}

func NewService(rooms RoomRepository, reservations ReservationLister) *Service {
	return &Service{rooms: rooms, reservations: reservations}
}

func (s *Service) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return s.rooms.List(ctx)
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return room, nil
}

type AvailabilityResponse struct {
	RoomID int64               `json:"room_id"`
	Date   string              `json:"date"`
	Slots  []availability.Slot `json:"slots"`
}

// GetAvailability rebuilds the 24-slot grid for one room and date from the
// reservations on record. The grid owns no state; every call recomputes it.
func (s *Service) GetAvailability(ctx context.Context, roomID int64, dateStr string) (*AvailabilityResponse, error) {
	if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		return nil, ErrValidation
	}

	if _, err := s.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}

	reservations, err := s.reservations.ListByRoomAndDate(ctx, roomID, dateStr)
	if err != nil {
		return nil, err
	}

	return &AvailabilityResponse{
		RoomID: roomID,
		Date:   dateStr,
		Slots:  availability.GenerateSlots(reservations),
	}, nil
}
