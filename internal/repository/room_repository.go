package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"roomnest/internal/model"
)

// RoomRepository defines listing persistence operations.
type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	Update(ctx context.Context, room *model.Room) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Room, error)
	FindByIDWithOwner(ctx context.Context, id uuid.UUID) (*model.Room, error)
	List(ctx context.Context) ([]model.Room, error)
	ListWithOwners(ctx context.Context) ([]model.Room, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Room, error)
}

type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository creates a new room repository.
func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) Create(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *roomRepository) Update(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *roomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Room{}, "id = ?", id).Error
}

func (r *roomRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	var room model.Room
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// FindByIDWithOwner loads the room with its owner identity for public detail views.
func (r *roomRepository) FindByIDWithOwner(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	var room model.Room
	if err := r.db.WithContext(ctx).Preload("Owner").Where("id = ?", id).First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) List(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	if err := r.db.WithContext(ctx).Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *roomRepository) ListWithOwners(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	if err := r.db.WithContext(ctx).Preload("Owner").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *roomRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Room, error) {
	var rooms []model.Room
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}
