package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"roomreserve/internal/domain"
)

type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) Push(ctx context.Context, to string, text string) error {
	args := m.Called(ctx, to, text)
	return args.Error(0)
}

func (m *MockMessenger) Reply(ctx context.Context, replyToken string, texts ...string) error {
	args := m.Called(ctx, replyToken, texts)
	return args.Error(0)
}

type MockRoomGetter struct {
	mock.Mock
}

func (m *MockRoomGetter) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func sampleReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:        42,
		RoomID:    1,
		Date:      "2025-06-01",
		StartTime: "10:00",
		EndTime:   "12:00",
		Name:      "Alice",
		Status:    domain.ReservationConfirmed,
	}
}

func TestFormatLongDate(t *testing.T) {
	assert.Equal(t, "June 1, 2025", FormatLongDate("2025-06-01"))
	assert.Equal(t, "January 5, 2025", FormatLongDate("2025-01-05"))
	assert.Equal(t, "not-a-date", FormatLongDate("not-a-date"))
}

func TestDetails(t *testing.T) {
	got := Details("AIS 5G GARAGE", sampleReservation())
	assert.Equal(t, "Room: AIS 5G GARAGE\nDate: June 1, 2025\nTime: 10:00 - 12:00", got)
}

func TestService_ConfirmationPage(t *testing.T) {
	rooms := new(MockRoomGetter)
	rooms.On("GetByID", mock.Anything, int64(1)).Return(&domain.Room{ID: 1, Name: "Room 601"}, nil)
	s := NewService(new(MockMessenger), rooms, "@roombot")

	page := s.ConfirmationPage(context.Background(), sampleReservation())

	assert.Equal(t, int64(42), page.ReservationID)
	assert.Equal(t, "Room 601", page.RoomName)
	assert.Equal(t, "June 1, 2025", page.Date)
	assert.Equal(t, "10:00 - 12:00", page.Time)
	assert.Equal(t, "Alice", page.Name)
	assert.Equal(t, "confirmed", page.Status)
	assert.Equal(t, "https://line.me/R/ti/p/@roombot?message=Confirm+reservation+42", page.ChatDeepLink)
	assert.Equal(t, 10, page.RedirectAfterSeconds)
}

func TestService_ConfirmationPage_RoomLookupFailure(t *testing.T) {
	rooms := new(MockRoomGetter)
	rooms.On("GetByID", mock.Anything, int64(1)).Return(nil, errors.New("db down"))
	s := NewService(new(MockMessenger), rooms, "@roombot")

	page := s.ConfirmationPage(context.Background(), sampleReservation())

	assert.Equal(t, "Room 1", page.RoomName)
}

func TestService_SendChatConfirmation(t *testing.T) {
	rooms := new(MockRoomGetter)
	rooms.On("GetByID", mock.Anything, int64(1)).Return(&domain.Room{ID: 1, Name: "AIS 5G GARAGE"}, nil)

	messenger := new(MockMessenger)
	want := "Your reservation has been confirmed!\n\nReservation Details:\n" +
		"Room: AIS 5G GARAGE\nDate: June 1, 2025\nTime: 10:00 - 12:00" +
		"\n\nThank you for using our service!"
	messenger.On("Push", mock.Anything, "U1234", want).Return(nil)

	s := NewService(messenger, rooms, "@roombot")
	err := s.SendChatConfirmation(context.Background(), "U1234", sampleReservation())

	require.NoError(t, err)
	messenger.AssertExpectations(t)
}

func TestService_SendChatConfirmation_PushFailure(t *testing.T) {
	rooms := new(MockRoomGetter)
	rooms.On("GetByID", mock.Anything, int64(1)).Return(&domain.Room{ID: 1, Name: "AIS 5G GARAGE"}, nil)

	messenger := new(MockMessenger)
	messenger.On("Push", mock.Anything, "U1234", mock.Anything).Return(errors.New("push failed"))

	s := NewService(messenger, rooms, "@roombot")
	err := s.SendChatConfirmation(context.Background(), "U1234", sampleReservation())

	assert.EqualError(t, err, "push failed")
}
