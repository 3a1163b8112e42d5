package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"roomnest/internal/cache"
	"roomnest/internal/errors"
	"roomnest/internal/model"
	"roomnest/internal/repository"
)

const (
	roomsCacheKey = "rooms:all"
	roomsCacheTTL = 5 * time.Minute
)

// RoomInput carries the fields a caller may set on a room. The same set is the
// update allow-list: owner and booked state can never come from a request body.
type RoomInput struct {
	Title       string
	Description string
	Rent        decimal.Decimal
	Location    string
	Facilities  []string
	Photos      []string
	Mobile      string
	Name        string
}

// RoomView is a room joined with its owner's public contact fields.
type RoomView struct {
	model.Room
	OwnerEmail  string `json:"owner_email,omitempty"`
	OwnerMobile string `json:"owner_mobile,omitempty"`
}

// RoomService handles listing operations and enforces the ownership guard on
// mutations.
type RoomService interface {
	CreateRoom(ctx context.Context, ownerID uuid.UUID, input RoomInput) (*model.Room, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*RoomView, error)
	ListRooms(ctx context.Context) ([]RoomView, error)
	UpdateRoom(ctx context.Context, id, callerID uuid.UUID, input RoomInput) (*model.Room, error)
	DeleteRoom(ctx context.Context, id, callerID uuid.UUID) error
}

type roomService struct {
	roomRepo repository.RoomRepository
	userRepo repository.UserRepository
	cache    *cache.Client
}

// NewRoomService creates a new room service.
func NewRoomService(roomRepo repository.RoomRepository, userRepo repository.UserRepository, cache *cache.Client) RoomService {
	return &roomService{
		roomRepo: roomRepo,
		userRepo: userRepo,
		cache:    cache,
	}
}

// CreateRoom stores a new listing for the owner. The owner's phone is filled
// in from the listing's mobile field the first time one is provided.
func (s *roomService) CreateRoom(ctx context.Context, ownerID uuid.UUID, input RoomInput) (*model.Room, error) {
	room := &model.Room{
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		Rent:        input.Rent,
		Location:    input.Location,
		Facilities:  input.Facilities,
		Photos:      input.Photos,
		Mobile:      input.Mobile,
		Name:        input.Name,
	}
	if room.Title == "" {
		room.Title = "Untitled Room"
	}
	if room.Facilities == nil {
		room.Facilities = []string{}
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	if input.Mobile != "" {
		owner, err := s.userRepo.FindByID(ctx, ownerID)
		if err == nil && owner.Phone == "" {
			owner.Phone = input.Mobile
			_ = s.userRepo.Update(ctx, owner)
		}
	}

	_ = s.cache.Delete(ctx, roomsCacheKey)

	return room, nil
}

// GetRoom returns the room with its owner's contact details joined.
func (s *roomService) GetRoom(ctx context.Context, id uuid.UUID) (*RoomView, error) {
	room, err := s.roomRepo.FindByIDWithOwner(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("find room: %w", err)
	}
	view := toRoomView(*room)
	return &view, nil
}

// ListRooms returns all listings with owner contact joined, cached.
func (s *roomService) ListRooms(ctx context.Context) ([]RoomView, error) {
	if data, _ := s.cache.Get(ctx, roomsCacheKey); data != nil {
		var cached []RoomView
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	rooms, err := s.roomRepo.ListWithOwners(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	views := make([]RoomView, 0, len(rooms))
	for _, room := range rooms {
		views = append(views, toRoomView(room))
	}

	if payload, err := json.Marshal(views); err == nil {
		_ = s.cache.Set(ctx, roomsCacheKey, payload, roomsCacheTTL)
	}

	return views, nil
}

// UpdateRoom merges the allow-listed fields into the room. The caller must be
// the room's owner.
func (s *roomService) UpdateRoom(ctx context.Context, id, callerID uuid.UUID, input RoomInput) (*model.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("find room: %w", err)
	}

	if room.OwnerID != callerID {
		return nil, errors.ErrForbidden
	}

	if input.Title != "" {
		room.Title = input.Title
	}
	if input.Description != "" {
		room.Description = input.Description
	}
	if !input.Rent.IsZero() {
		room.Rent = input.Rent
	}
	if input.Location != "" {
		room.Location = input.Location
	}
	if input.Facilities != nil {
		room.Facilities = input.Facilities
	}
	if input.Photos != nil {
		room.Photos = input.Photos
	}
	if input.Mobile != "" {
		room.Mobile = input.Mobile
	}
	if input.Name != "" {
		room.Name = input.Name
	}

	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, fmt.Errorf("update room: %w", err)
	}

	_ = s.cache.Delete(ctx, roomsCacheKey)

	return room, nil
}

// DeleteRoom removes the room. The caller must be the room's owner.
func (s *roomService) DeleteRoom(ctx context.Context, id, callerID uuid.UUID) error {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrRoomNotFound
		}
		return fmt.Errorf("find room: %w", err)
	}

	if room.OwnerID != callerID {
		return errors.ErrForbidden
	}

	if err := s.roomRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete room: %w", err)
	}

	_ = s.cache.Delete(ctx, roomsCacheKey)

	return nil
}

func toRoomView(room model.Room) RoomView {
	return RoomView{
		Room:        room,
		OwnerEmail:  room.Owner.Email,
		OwnerMobile: room.Owner.Phone,
	}
}
