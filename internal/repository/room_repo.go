package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"roomreserve/internal/domain"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	Capacity  int       `gorm:"column:capacity"`
	ImageURL  string    `gorm:"column:image_url"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (roomModel) TableName() string { return "rooms" }

func toDomainRoom(m roomModel) domain.Room {
	return domain.Room{
		ID:        m.ID,
		Name:      m.Name,
		Capacity:  m.Capacity,
		ImageURL:  m.ImageURL,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *RoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	var ms []roomModel
	tx := r.db.WithContext(ctx).Order("id").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Room, 0, len(ms))
	for _, m := range ms {
		out = append(out, toDomainRoom(m))
	}
	return out, nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	room := toDomainRoom(m)
	return &room, nil
}

// Touch bumps the room's updated_at. The reservation committer calls it
// post-commit so anything caching the room detail view can see it is stale.
func (r *RoomRepository) Touch(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&roomModel{}).
		Where("id = ?", id).
		Update("updated_at", time.Now().UTC()).Error
}
