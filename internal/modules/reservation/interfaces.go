package reservation

import (
	"context"

	"roomreserve/internal/domain"
	"roomreserve/internal/repository"
)

// ReservationRepository is the store surface the committer needs.
type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListByRoomAndDate(ctx context.Context, roomID int64, date string) ([]domain.Reservation, error)
	ListByUser(ctx context.Context, userID int64) ([]repository.UserReservationDetails, error)
	AttachChatIdentity(ctx context.Context, id int64, lineUserID string) error
}
