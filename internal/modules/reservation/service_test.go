package reservation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"roomreserve/internal/domain"
	"roomreserve/internal/modules/availability"
	"roomreserve/internal/repository"
)

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	if args.Error(0) == nil && r != nil {
		r.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ListByRoomAndDate(ctx context.Context, roomID int64, date string) ([]domain.Reservation, error) {
	args := m.Called(ctx, roomID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ListByUser(ctx context.Context, userID int64) ([]repository.UserReservationDetails, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.UserReservationDetails), args.Error(1)
}

func (m *MockReservationRepository) AttachChatIdentity(ctx context.Context, id int64, lineUserID string) error {
	args := m.Called(ctx, id, lineUserID)
	return args.Error(0)
}

func validInput() ReserveInput {
	return ReserveInput{
		RoomID:    1,
		Date:      "2025-06-01",
		StartTime: "10:00",
		EndTime:   "12:00",
		Name:      "Alice",
		Identity:  domain.WebIdentity(42),
	}
}

func TestService_Reserve_Success(t *testing.T) {
	repo := new(MockReservationRepository)
	repo.On("ListByRoomAndDate", mock.Anything, int64(1), "2025-06-01").Return([]domain.Reservation{}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(repo)

	r, err := service.Reserve(context.Background(), validInput())

	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, int64(999), r.ID)
	assert.Equal(t, domain.ReservationConfirmed, r.Status)
	require.NotNil(t, r.UserID)
	assert.Equal(t, int64(42), *r.UserID)
	assert.Empty(t, r.LineUserID)
	repo.AssertExpectations(t)
}

func TestService_Reserve_ChatIdentity(t *testing.T) {
	repo := new(MockReservationRepository)
	repo.On("ListByRoomAndDate", mock.Anything, int64(1), "2025-06-01").Return([]domain.Reservation{}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(repo)

	in := validInput()
	in.Identity = domain.ChatIdentity("U1234")
	r, err := service.Reserve(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, "U1234", r.LineUserID)
	assert.Nil(t, r.UserID)
}

func TestService_Reserve_IdentityRequired(t *testing.T) {
	service := NewService(new(MockReservationRepository))

	in := validInput()
	in.Identity = domain.Identity{}
	_, err := service.Reserve(context.Background(), in)

	assert.ErrorIs(t, err, ErrIdentityRequired)
}

func TestService_Reserve_IntervalRules(t *testing.T) {
	service := NewService(new(MockReservationRepository))

	tests := []struct {
		name    string
		start   string
		end     string
		wantErr error
	}{
		{"start after end", "12:00", "10:00", availability.ErrStartNotBeforeEnd},
		{"start equals end", "10:00", "10:00", availability.ErrStartNotBeforeEnd},
		{"exactly five hours", "09:00", "14:00", availability.ErrTooLong},
		{"bad time", "soon", "14:00", availability.ErrBadTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			in.StartTime = tt.start
			in.EndTime = tt.end
			_, err := service.Reserve(context.Background(), in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_Reserve_BadDate(t *testing.T) {
	service := NewService(new(MockReservationRepository))

	in := validInput()
	in.Date = "June 1st"
	_, err := service.Reserve(context.Background(), in)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Reserve_NotAvailable(t *testing.T) {
	repo := new(MockReservationRepository)
	repo.On("ListByRoomAndDate", mock.Anything, int64(1), "2025-06-01").Return([]domain.Reservation{
		{RoomID: 1, Date: "2025-06-01", StartTime: "11:00", EndTime: "13:00", Status: domain.ReservationConfirmed},
	}, nil)

	service := NewService(repo)

	_, err := service.Reserve(context.Background(), validInput())

	assert.ErrorIs(t, err, ErrNotAvailable)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Reserve_ConflictFromStore(t *testing.T) {
	// The grid looked free but the conditional insert lost the race.
	repo := new(MockReservationRepository)
	repo.On("ListByRoomAndDate", mock.Anything, int64(1), "2025-06-01").Return([]domain.Reservation{}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrOverlap)

	service := NewService(repo)

	_, err := service.Reserve(context.Background(), validInput())

	assert.ErrorIs(t, err, ErrConflict)
}

func TestService_Reserve_StoreError(t *testing.T) {
	repo := new(MockReservationRepository)
	repo.On("ListByRoomAndDate", mock.Anything, int64(1), "2025-06-01").Return([]domain.Reservation{}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	service := NewService(repo)

	_, err := service.Reserve(context.Background(), validInput())

	assert.ErrorIs(t, err, ErrStore)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestService_Reserve_HookFailureDoesNotFailCommit(t *testing.T) {
	repo := new(MockReservationRepository)
	repo.On("ListByRoomAndDate", mock.Anything, int64(1), "2025-06-01").Return([]domain.Reservation{}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(repo)
	hookRan := false
	service.AddPostCommitHook("failing", func(ctx context.Context, r *domain.Reservation) error {
		hookRan = true
		return errors.New("push failed")
	})

	r, err := service.Reserve(context.Background(), validInput())

	require.NoError(t, err)
	assert.True(t, hookRan)
	assert.Equal(t, int64(999), r.ID)
}

func TestService_Reserve_HooksRunInOrder(t *testing.T) {
	repo := new(MockReservationRepository)
	repo.On("ListByRoomAndDate", mock.Anything, int64(1), "2025-06-01").Return([]domain.Reservation{}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(repo)
	var order []string
	service.AddPostCommitHook("first", func(ctx context.Context, r *domain.Reservation) error {
		order = append(order, "first")
		return errors.New("boom")
	})
	service.AddPostCommitHook("second", func(ctx context.Context, r *domain.Reservation) error {
		order = append(order, "second")
		return nil
	})

	_, err := service.Reserve(context.Background(), validInput())

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestService_ConfirmByChat_NotFound(t *testing.T) {
	repo := new(MockReservationRepository)
	repo.On("GetByID", mock.Anything, int64(77)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(repo)

	_, _, err := service.ConfirmByChat(context.Background(), 77, "U1234")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_ConfirmByChat_AlreadyConfirmedIsIdempotent(t *testing.T) {
	existing := &domain.Reservation{
		ID: 5, RoomID: 1, Date: "2025-06-01",
		StartTime: "10:00", EndTime: "12:00",
		Status: domain.ReservationConfirmed,
	}
	repo := new(MockReservationRepository)
	repo.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)

	service := NewService(repo)

	r, already, err := service.ConfirmByChat(context.Background(), 5, "U1234")

	require.NoError(t, err)
	assert.True(t, already)
	assert.Equal(t, existing, r)
	repo.AssertNotCalled(t, "AttachChatIdentity", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_ConfirmByChat_AttachesIdentity(t *testing.T) {
	pending := &domain.Reservation{
		ID: 5, RoomID: 1, Date: "2025-06-01",
		StartTime: "10:00", EndTime: "12:00",
		Status: domain.ReservationPending,
	}
	confirmed := &domain.Reservation{
		ID: 5, RoomID: 1, Date: "2025-06-01",
		StartTime: "10:00", EndTime: "12:00",
		LineUserID: "U1234",
		Status:     domain.ReservationConfirmed,
	}

	repo := new(MockReservationRepository)
	repo.On("GetByID", mock.Anything, int64(5)).Return(pending, nil).Once()
	repo.On("AttachChatIdentity", mock.Anything, int64(5), "U1234").Return(nil)
	repo.On("GetByID", mock.Anything, int64(5)).Return(confirmed, nil).Once()

	service := NewService(repo)

	r, already, err := service.ConfirmByChat(context.Background(), 5, "U1234")

	require.NoError(t, err)
	assert.False(t, already)
	assert.Equal(t, domain.ReservationConfirmed, r.Status)
	assert.Equal(t, "U1234", r.LineUserID)
	repo.AssertExpectations(t)
}

func TestService_ListForUser_RoomNameFallback(t *testing.T) {
	repo := new(MockReservationRepository)
	repo.On("ListByUser", mock.Anything, int64(42)).Return([]repository.UserReservationDetails{
		{ID: 1, RoomID: 2, RoomName: "Room 601", Date: "2025-06-01", StartTime: "10:00", EndTime: "11:00", Status: "confirmed"},
		{ID: 2, RoomID: 9, RoomName: "", Date: "2025-06-02", StartTime: "12:00", EndTime: "13:00", Status: "confirmed"},
	}, nil)

	service := NewService(repo)

	items, err := service.ListForUser(context.Background(), 42)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Room 601", items[0].RoomName)
	assert.Equal(t, "Room 9", items[1].RoomName)
}
