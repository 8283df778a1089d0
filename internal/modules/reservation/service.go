package reservation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"roomreserve/internal/domain"
	"roomreserve/internal/modules/availability"
	"roomreserve/internal/repository"
)

// PostCommitHook runs after a reservation row exists. Hooks are best-effort:
// a failing hook is logged and never rolls the reservation back.
type PostCommitHook func(ctx context.Context, r *domain.Reservation) error

type namedHook struct {
	name string
	fn   PostCommitHook
}

type Service struct {
	reservations ReservationRepository
	hooks        []namedHook
}

func NewService(reservations ReservationRepository) *Service {
	return &Service{reservations: reservations}
}

// AddPostCommitHook registers a hook under a name used in failure logs.
// Not safe for concurrent use; register everything during wiring.
func (s *Service) AddPostCommitHook(name string, fn PostCommitHook) {
	s.hooks = append(s.hooks, namedHook{name: name, fn: fn})
}

// ReserveInput carries everything needed to commit a reservation. Identity
// is the tagged channel identity; its zero value is rejected.
type ReserveInput struct {
	RoomID    int64
	Date      string
	StartTime string
	EndTime   string
	Name      string
	Identity  domain.Identity
}

// Reserve validates the proposed interval against a fresh availability grid
// and commits it. The insert itself is conditional on no overlapping
// confirmed reservation, so a stale grid cannot produce a double booking.
func (s *Service) Reserve(ctx context.Context, in ReserveInput) (*domain.Reservation, error) {
	if in.Identity.IsZero() {
		return nil, ErrIdentityRequired
	}
	if in.RoomID <= 0 || in.Name == "" {
		return nil, ErrValidation
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return nil, ErrValidation
	}
	if err := availability.ValidateInterval(in.StartTime, in.EndTime); err != nil {
		return nil, err
	}

	existing, err := s.reservations.ListByRoomAndDate(ctx, in.RoomID, in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	slots := availability.GenerateSlots(existing)
	if !availability.IsAvailable(in.StartTime, in.EndTime, slots) {
		return nil, ErrNotAvailable
	}

	r := &domain.Reservation{
		RoomID:    in.RoomID,
		Date:      in.Date,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Name:      in.Name,
		Status:    domain.ReservationConfirmed,
	}
	switch in.Identity.Kind() {
	case domain.IdentityChat:
		r.LineUserID = in.Identity.LineUserID()
	case domain.IdentityWeb:
		id := in.Identity.UserID()
		r.UserID = &id
	}

	if err := s.reservations.Create(ctx, r); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if r.ID == 0 {
		return nil, fmt.Errorf("%w: no data returned", ErrStore)
	}

	s.runPostCommitHooks(ctx, r)

	log.Printf("reservation_created id=%d room_id=%d date=%s start=%s end=%s channel=%s",
		r.ID, r.RoomID, r.Date, r.StartTime, r.EndTime, in.Identity.Kind())
	return r, nil
}

func (s *Service) runPostCommitHooks(ctx context.Context, r *domain.Reservation) {
	for _, h := range s.hooks {
		if err := h.fn(ctx, r); err != nil {
			log.Printf("post_commit_hook_failed hook=%s reservation_id=%d error=%q", h.name, r.ID, err)
		}
	}
}

// ConfirmByChat attaches the sender's chat identity to the reservation and
// flips it to confirmed. Confirming an already-confirmed reservation is a
// no-op query; the second return value reports whether that was the case.
func (s *Service) ConfirmByChat(ctx context.Context, id int64, lineUserID string) (*domain.Reservation, bool, error) {
	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrNotFound
		}
		return nil, false, fmt.Errorf("%w: %v", ErrStore, err)
	}

	if r.Status == domain.ReservationConfirmed {
		return r, true, nil
	}

	if err := s.reservations.AttachChatIdentity(ctx, id, lineUserID); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrStore, err)
	}

	updated, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return updated, false, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return r, nil
}

func (s *Service) ListForUser(ctx context.Context, userID int64) ([]ReservationItem, error) {
	rows, err := s.reservations.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	out := make([]ReservationItem, 0, len(rows))
	for _, r := range rows {
		name := r.RoomName
		if name == "" {
			name = domain.FallbackRoomName(r.RoomID)
		}
		out = append(out, ReservationItem{
			ID:        r.ID,
			RoomID:    r.RoomID,
			RoomName:  name,
			Date:      r.Date,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
			Name:      r.Name,
			Status:    r.Status,
		})
	}
	return out, nil
}
