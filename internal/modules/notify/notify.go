package notify

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"roomreserve/internal/domain"
)

// RedirectDelaySeconds is how long the confirmation page waits before
// redirecting into the chat app. The client cancels the timer if the page is
// torn down first.
const RedirectDelaySeconds = 10

// Messenger is the push/reply surface of the chat platform.
type Messenger interface {
	Push(ctx context.Context, to string, text string) error
	Reply(ctx context.Context, replyToken string, texts ...string) error
}

type RoomGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// Service formats and delivers reservation confirmations: a push message for
// chat identities, a page payload for the web surface.
type Service struct {
	messenger Messenger
	rooms     RoomGetter
	basicID   string
}

func NewService(messenger Messenger, rooms RoomGetter, basicID string) *Service {
	return &Service{messenger: messenger, rooms: rooms, basicID: basicID}
}

// SendChatConfirmation pushes the confirmation text to the reserving chat
// identity. Best-effort: callers log the error and move on.
func (s *Service) SendChatConfirmation(ctx context.Context, lineUserID string, r *domain.Reservation) error {
	text := fmt.Sprintf(
		"Your reservation has been confirmed!\n\nReservation Details:\n%s\n\nThank you for using our service!",
		Details(s.roomName(ctx, r.RoomID), r),
	)
	if err := s.messenger.Push(ctx, lineUserID, text); err != nil {
		return err
	}
	log.Printf("line_confirmation_sent line_user_id=%s reservation_id=%d", lineUserID, r.ID)
	return nil
}

// ConfirmationPage is what the web confirmation surface renders: the
// summary, a deep link back into the chat app pre-filled with the
// confirmation command, and the auto-redirect delay.
type ConfirmationPage struct {
	ReservationID        int64  `json:"reservation_id"`
	RoomName             string `json:"room_name"`
	Date                 string `json:"date"`
	Time                 string `json:"time"`
	Name                 string `json:"name"`
	Status               string `json:"status"`
	ChatDeepLink         string `json:"chat_deep_link"`
	RedirectAfterSeconds int    `json:"redirect_after_seconds"`
}

func (s *Service) ConfirmationPage(ctx context.Context, r *domain.Reservation) ConfirmationPage {
	return ConfirmationPage{
		ReservationID:        r.ID,
		RoomName:             s.roomName(ctx, r.RoomID),
		Date:                 FormatLongDate(r.Date),
		Time:                 fmt.Sprintf("%s - %s", r.StartTime, r.EndTime),
		Name:                 r.Name,
		Status:               string(r.Status),
		ChatDeepLink:         s.DeepLink(r.ID),
		RedirectAfterSeconds: RedirectDelaySeconds,
	}
}

// DeepLink opens the bot chat pre-filled with "Confirm reservation {id}".
func (s *Service) DeepLink(reservationID int64) string {
	q := url.Values{"message": {fmt.Sprintf("Confirm reservation %d", reservationID)}}
	return fmt.Sprintf("https://line.me/R/ti/p/%s?%s", s.basicID, q.Encode())
}

// Details renders the shared summary block used in chat messages.
// Times stay raw HH:MM, the date becomes a long-form US date.
func Details(roomName string, r *domain.Reservation) string {
	return fmt.Sprintf("Room: %s\nDate: %s\nTime: %s - %s",
		roomName, FormatLongDate(r.Date), r.StartTime, r.EndTime)
}

// FormatLongDate renders "2025-01-05" as "January 5, 2025". Unparseable
// dates pass through untouched.
func FormatLongDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}

func (s *Service) roomName(ctx context.Context, roomID int64) string {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return domain.FallbackRoomName(roomID)
	}
	return room.DisplayName()
}
