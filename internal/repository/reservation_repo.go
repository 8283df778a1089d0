package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"roomreserve/internal/domain"
)

// ErrOverlap means the conditional insert found a confirmed reservation
// overlapping the requested interval and wrote nothing.
var ErrOverlap = errors.New("overlapping reservation exists")

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

type reservationModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	RoomID     int64     `gorm:"column:room_id"`
	Date       string    `gorm:"column:date"`
	StartTime  string    `gorm:"column:start_time"`
	EndTime    string    `gorm:"column:end_time"`
	Name       string    `gorm:"column:name"`
	LineUserID *string   `gorm:"column:line_user_id"`
	UserID     *int64    `gorm:"column:user_id"`
	Status     string    `gorm:"column:status"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (reservationModel) TableName() string { return "reservations" }

func toDomainReservation(m reservationModel) *domain.Reservation {
	var lineUserID string
	if m.LineUserID != nil {
		lineUserID = *m.LineUserID
	}

	return &domain.Reservation{
		ID:         m.ID,
		RoomID:     m.RoomID,
		Date:       m.Date,
		StartTime:  m.StartTime,
		EndTime:    m.EndTime,
		Name:       m.Name,
		LineUserID: lineUserID,
		UserID:     m.UserID,
		Status:     domain.ReservationStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toReservationModel(r *domain.Reservation) reservationModel {
	var lineUserID *string
	if r.LineUserID != "" {
		v := r.LineUserID
		lineUserID = &v
	}

	return reservationModel{
		ID:         r.ID,
		RoomID:     r.RoomID,
		Date:       r.Date,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		Name:       r.Name,
		LineUserID: lineUserID,
		UserID:     r.UserID,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// Create inserts the reservation only if no confirmed reservation for the
// same room and date overlaps [start,end). The check and the insert are one
// statement, so two racing requests cannot both pass a prior read. Overlap
// uses half-open comparison on the "HH:MM" strings, which order correctly
// because they are zero-padded.
func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	m := toReservationModel(res)
	now := time.Now().UTC()

	q := `
INSERT INTO reservations (room_id, date, start_time, end_time, name, line_user_id, user_id, status, created_at, updated_at)
SELECT ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
WHERE NOT EXISTS (
    SELECT 1 FROM reservations
    WHERE room_id = ?
      AND date = ?
      AND status = 'confirmed'
      AND start_time < ?
      AND end_time > ?
)
RETURNING id, room_id, date, start_time, end_time, name, line_user_id, user_id, status, created_at, updated_at
`
	var out reservationModel
	tx := r.db.WithContext(ctx).Raw(q,
		m.RoomID, m.Date, m.StartTime, m.EndTime, m.Name, m.LineUserID, m.UserID, m.Status, now, now,
		m.RoomID, m.Date, m.EndTime, m.StartTime,
	).Scan(&out)
	if tx.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(tx.Error, &pgErr) {
			// 23P01 exclusion / 23505 unique from idx_no_overlap. The
			// constraint backs the NOT EXISTS guard on Postgres.
			if pgErr.Code == "23P01" || (pgErr.Code == "23505" && pgErr.ConstraintName == "idx_no_overlap") {
				return ErrOverlap
			}
		}
		return tx.Error
	}
	if tx.RowsAffected == 0 || out.ID == 0 {
		return ErrOverlap
	}

	*res = *toDomainReservation(out)
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var m reservationModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReservation(m), nil
}

func (r *ReservationRepository) ListByRoomAndDate(ctx context.Context, roomID int64, date string) ([]domain.Reservation, error) {
	var ms []reservationModel
	tx := r.db.WithContext(ctx).
		Where("room_id = ? AND date = ?", roomID, date).
		Order("start_time").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Reservation, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainReservation(m))
	}
	return out, nil
}

// UserReservationDetails is a reservation row joined with the room name for
// the "my reservations" listing.
type UserReservationDetails struct {
	ID        int64  `gorm:"column:id"`
	RoomID    int64  `gorm:"column:room_id"`
	RoomName  string `gorm:"column:room_name"`
	Date      string `gorm:"column:date"`
	StartTime string `gorm:"column:start_time"`
	EndTime   string `gorm:"column:end_time"`
	Name      string `gorm:"column:name"`
	Status    string `gorm:"column:status"`
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID int64) ([]UserReservationDetails, error) {
	var rows []UserReservationDetails
	q := `
SELECT res.id, res.room_id, COALESCE(rm.name, '') AS room_name,
       res.date, res.start_time, res.end_time, res.name, res.status
FROM reservations res
LEFT JOIN rooms rm ON rm.id = res.room_id
WHERE res.user_id = ?
ORDER BY res.date ASC, res.start_time ASC
`
	tx := r.db.WithContext(ctx).Raw(q, userID).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

// AttachChatIdentity stamps the LINE user id onto the reservation and flips
// it to confirmed. Used by the chat confirmation flow.
func (r *ReservationRepository) AttachChatIdentity(ctx context.Context, id int64, lineUserID string) error {
	tx := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"line_user_id": lineUserID,
			"status":       string(domain.ReservationConfirmed),
			"updated_at":   time.Now().UTC(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
