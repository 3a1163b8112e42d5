package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"roomnest/internal/errors"
	"roomnest/internal/model"
)

func TestCreateRoom_BackfillsOwnerPhone(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	userRepo := new(MockUserRepository)
	svc := NewRoomService(roomRepo, userRepo, nil)

	ownerID := uuid.New()
	owner := &model.User{ID: ownerID, Role: model.RoleOwner}

	roomRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Room")).Return(nil)
	userRepo.On("FindByID", mock.Anything, ownerID).Return(owner, nil)
	userRepo.On("Update", mock.Anything, owner).Return(nil)

	room, err := svc.CreateRoom(context.Background(), ownerID, RoomInput{
		Title:  "Sunny single",
		Rent:   decimal.NewFromInt(450),
		Mobile: "555-0101",
	})

	assert.NoError(t, err)
	assert.Equal(t, ownerID, room.OwnerID)
	assert.Equal(t, "555-0101", owner.Phone)
	userRepo.AssertExpectations(t)
}

func TestCreateRoom_DefaultsTitle(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	userRepo := new(MockUserRepository)
	svc := NewRoomService(roomRepo, userRepo, nil)

	roomRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Room")).Return(nil)

	room, err := svc.CreateRoom(context.Background(), uuid.New(), RoomInput{
		Rent: decimal.NewFromInt(300),
	})

	assert.NoError(t, err)
	assert.Equal(t, "Untitled Room", room.Title)
	assert.NotNil(t, room.Facilities)
}

func TestUpdateRoom_MergesAllowListedFieldsOnly(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	userRepo := new(MockUserRepository)
	svc := NewRoomService(roomRepo, userRepo, nil)

	ownerID := uuid.New()
	roomID := uuid.New()
	room := &model.Room{
		ID:       roomID,
		OwnerID:  ownerID,
		Title:    "Old title",
		Rent:     decimal.NewFromInt(400),
		IsBooked: true,
	}

	roomRepo.On("FindByID", mock.Anything, roomID).Return(room, nil)
	roomRepo.On("Update", mock.Anything, room).Return(nil)

	updated, err := svc.UpdateRoom(context.Background(), roomID, ownerID, RoomInput{
		Title: "New title",
		Rent:  decimal.NewFromInt(500),
	})

	assert.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	assert.True(t, decimal.NewFromInt(500).Equal(updated.Rent))
	// Protected fields survive any update body.
	assert.Equal(t, ownerID, updated.OwnerID)
	assert.True(t, updated.IsBooked)
}

func TestUpdateRoom_ForbiddenForNonOwner(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	userRepo := new(MockUserRepository)
	svc := NewRoomService(roomRepo, userRepo, nil)

	roomID := uuid.New()
	room := &model.Room{ID: roomID, OwnerID: uuid.New()}

	roomRepo.On("FindByID", mock.Anything, roomID).Return(room, nil)

	updated, err := svc.UpdateRoom(context.Background(), roomID, uuid.New(), RoomInput{Title: "Hijacked"})

	assert.ErrorIs(t, err, errors.ErrForbidden)
	assert.Nil(t, updated)
	roomRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteRoom_OwnerOnly(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	userRepo := new(MockUserRepository)
	svc := NewRoomService(roomRepo, userRepo, nil)

	ownerID := uuid.New()
	roomID := uuid.New()
	room := &model.Room{ID: roomID, OwnerID: ownerID}

	roomRepo.On("FindByID", mock.Anything, roomID).Return(room, nil)

	err := svc.DeleteRoom(context.Background(), roomID, uuid.New())
	assert.ErrorIs(t, err, errors.ErrForbidden)
	roomRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	roomRepo.On("Delete", mock.Anything, roomID).Return(nil)
	err = svc.DeleteRoom(context.Background(), roomID, ownerID)
	assert.NoError(t, err)
}

func TestDeleteRoom_NotFound(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	userRepo := new(MockUserRepository)
	svc := NewRoomService(roomRepo, userRepo, nil)

	roomID := uuid.New()
	roomRepo.On("FindByID", mock.Anything, roomID).Return(nil, gorm.ErrRecordNotFound)

	err := svc.DeleteRoom(context.Background(), roomID, uuid.New())

	assert.ErrorIs(t, err, errors.ErrRoomNotFound)
}

func TestListRooms_JoinsOwnerContact(t *testing.T) {
	roomRepo := new(MockRoomRepository)
	userRepo := new(MockUserRepository)
	svc := NewRoomService(roomRepo, userRepo, nil)

	owner := model.User{ID: uuid.New(), Email: "owner@example.com", Phone: "555-0101"}
	rooms := []model.Room{
		{ID: uuid.New(), OwnerID: owner.ID, Title: "Sunny single", Owner: owner},
	}
	roomRepo.On("ListWithOwners", mock.Anything).Return(rooms, nil)

	views, err := svc.ListRooms(context.Background())

	assert.NoError(t, err)
	assert.Len(t, views, 1)
	assert.Equal(t, "owner@example.com", views[0].OwnerEmail)
	assert.Equal(t, "555-0101", views[0].OwnerMobile)
}
