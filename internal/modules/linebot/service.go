package linebot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"roomreserve/internal/domain"
	"roomreserve/internal/modules/notify"
	"roomreserve/internal/modules/reservation"
)

const (
	apologyGeneric = "Sorry, there was an error processing your request. Please try again later."
	apologyConfirm = "Sorry, there was an error confirming your reservation. Please try again later."
)

// UserLinker stores chat identities and links them to web accounts.
type UserLinker interface {
	UpsertLineUser(ctx context.Context, lineUserID string) (*domain.User, error)
	SetLineUserID(ctx context.Context, userID int64, lineUserID string) error
}

// ReservationConfirmer is the slice of the reservation service the bot uses.
type ReservationConfirmer interface {
	ConfirmByChat(ctx context.Context, id int64, lineUserID string) (*domain.Reservation, bool, error)
}

type Service struct {
	users        UserLinker
	reservations ReservationConfirmer
	rooms        notify.RoomGetter
	messenger    notify.Messenger
	liffID       string
}

func NewService(
	users UserLinker,
	reservations ReservationConfirmer,
	rooms notify.RoomGetter,
	messenger notify.Messenger,
	liffID string,
) *Service {
	return &Service{
		users:        users,
		reservations: reservations,
		rooms:        rooms,
		messenger:    messenger,
		liffID:       liffID,
	}
}

// HandleTextMessage classifies one inbound message and sends the reply
// through the event's single-use reply token. Store failures never reach the
// chat transport; the user gets a generic apology instead.
func (s *Service) HandleTextMessage(ctx context.Context, replyToken, lineUserID, text string) error {
	log.Printf("line_message_received line_user_id=%s text=%q", lineUserID, text)

	intent := ParseIntent(text)
	switch intent.Kind {
	case IntentStartFlow:
		return s.startFlow(ctx, replyToken, lineUserID)
	case IntentConfirm:
		return s.confirm(ctx, replyToken, lineUserID, intent.ReservationID)
	default:
		return s.messenger.Reply(ctx, replyToken,
			fmt.Sprintf("I received your message: %q. How can I assist you with your reservation?", intent.Text))
	}
}

func (s *Service) startFlow(ctx context.Context, replyToken, lineUserID string) error {
	if s.liffID == "" {
		log.Printf("line_start_flow_unconfigured line_user_id=%s", lineUserID)
		return s.messenger.Reply(ctx, replyToken, apologyGeneric)
	}

	if _, err := s.users.UpsertLineUser(ctx, lineUserID); err != nil {
		log.Printf("line_store_user_failed line_user_id=%s error=%q", lineUserID, err)
		return s.messenger.Reply(ctx, replyToken, apologyGeneric)
	}

	liffURL := fmt.Sprintf("https://liff.line.me/%s?lineUserId=%s", s.liffID, lineUserID)
	return s.messenger.Reply(ctx, replyToken,
		"Thank you! Please click the link below to reserve a room:",
		liffURL,
	)
}

func (s *Service) confirm(ctx context.Context, replyToken, lineUserID, idStr string) error {
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return s.replyNotFound(ctx, replyToken, idStr)
	}

	r, already, err := s.reservations.ConfirmByChat(ctx, id, lineUserID)
	if err != nil {
		if errors.Is(err, reservation.ErrNotFound) {
			return s.replyNotFound(ctx, replyToken, idStr)
		}
		log.Printf("line_confirm_failed reservation_id=%d line_user_id=%s error=%q", id, lineUserID, err)
		return s.messenger.Reply(ctx, replyToken, apologyConfirm)
	}

	details := notify.Details(s.roomName(ctx, r.RoomID), r)
	if already {
		return s.messenger.Reply(ctx, replyToken,
			fmt.Sprintf("Reservation %d is already confirmed. Here are the details:\n\n%s", r.ID, details))
	}
	return s.messenger.Reply(ctx, replyToken,
		fmt.Sprintf("Reservation %d has been confirmed. Thank you!\n\nReservation Details:\n%s", r.ID, details))
}

func (s *Service) replyNotFound(ctx context.Context, replyToken, idStr string) error {
	return s.messenger.Reply(ctx, replyToken,
		fmt.Sprintf("Sorry, we couldn't find a reservation with ID %s. Please check the ID and try again.", idStr))
}

// LinkAccount stamps a client-collected LINE id onto a web account, used by
// the confirmation page flow.
func (s *Service) LinkAccount(ctx context.Context, userID int64, lineUserID string) error {
	return s.users.SetLineUserID(ctx, userID, lineUserID)
}

func (s *Service) roomName(ctx context.Context, roomID int64) string {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return domain.FallbackRoomName(roomID)
	}
	return room.DisplayName()
}
