package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"roomnest/internal/model"
)

func newAdminServiceForTest(
	userRepo *MockUserRepository,
	roomRepo *MockRoomRepository,
	bookingRepo *MockBookingRepository,
	contactRepo *MockContactMessageRepository,
) AdminService {
	return NewAdminService(userRepo, roomRepo, bookingRepo, contactRepo)
}

func TestStudentReports_CountsAndLastBooking(t *testing.T) {
	userRepo := new(MockUserRepository)
	roomRepo := new(MockRoomRepository)
	bookingRepo := new(MockBookingRepository)
	contactRepo := new(MockContactMessageRepository)
	svc := newAdminServiceForTest(userRepo, roomRepo, bookingRepo, contactRepo)

	active := model.User{ID: uuid.New(), Email: "asha@example.com", Phone: "555-0102", Role: model.RoleStudent}
	idle := model.User{ID: uuid.New(), Email: "bo@example.com", Role: model.RoleStudent}

	first := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	last := time.Date(2025, 3, 5, 9, 30, 0, 0, time.UTC)
	bookings := []model.Booking{
		{ID: uuid.New(), StudentID: active.ID, CreatedAt: first},
		{ID: uuid.New(), StudentID: active.ID, CreatedAt: last},
	}

	userRepo.On("ListByRole", mock.Anything, model.RoleStudent).Return([]model.User{active, idle}, nil)
	bookingRepo.On("ListByStudent", mock.Anything, active.ID).Return(bookings, nil)
	bookingRepo.On("ListByStudent", mock.Anything, idle.ID).Return([]model.Booking{}, nil)

	reports, err := svc.StudentReports(context.Background())

	assert.NoError(t, err)
	assert.Len(t, reports, 2)

	assert.Equal(t, "asha@example.com", reports[0].Email)
	assert.Equal(t, "555-0102", reports[0].Phone)
	assert.Equal(t, 2, reports[0].TotalBookings)
	assert.Equal(t, last, *reports[0].LastBookingDate)

	assert.Equal(t, 0, reports[1].TotalBookings)
	assert.Nil(t, reports[1].LastBookingDate)
}

func TestOwnerReports_JoinsOwnerContactPerListing(t *testing.T) {
	userRepo := new(MockUserRepository)
	roomRepo := new(MockRoomRepository)
	bookingRepo := new(MockBookingRepository)
	contactRepo := new(MockContactMessageRepository)
	svc := newAdminServiceForTest(userRepo, roomRepo, bookingRepo, contactRepo)

	owner := model.User{ID: uuid.New(), Email: "owner@example.com", Phone: "555-0101"}
	uploaded := time.Date(2025, 1, 20, 8, 0, 0, 0, time.UTC)
	rooms := []model.Room{
		{
			ID:        uuid.New(),
			OwnerID:   owner.ID,
			Rent:      decimal.NewFromInt(450),
			CreatedAt: uploaded,
			Owner:     owner,
		},
		{
			// Owner without a profile phone falls back to the listing's mobile.
			ID:      uuid.New(),
			OwnerID: uuid.New(),
			Rent:    decimal.NewFromInt(600),
			Mobile:  "555-0199",
			Owner:   model.User{Email: "second@example.com"},
		},
	}
	roomRepo.On("ListWithOwners", mock.Anything).Return(rooms, nil)

	reports, err := svc.OwnerReports(context.Background())

	assert.NoError(t, err)
	assert.Len(t, reports, 2)

	assert.Equal(t, "owner@example.com", reports[0].Email)
	assert.Equal(t, "555-0101", reports[0].Mobile)
	assert.Equal(t, uploaded, reports[0].LastUpload)
	assert.True(t, decimal.NewFromInt(450).Equal(reports[0].TotalEarnings))

	assert.Equal(t, "second@example.com", reports[1].Email)
	assert.Equal(t, "555-0199", reports[1].Mobile)
}

func TestMessages_ReturnsStoredMessages(t *testing.T) {
	userRepo := new(MockUserRepository)
	roomRepo := new(MockRoomRepository)
	bookingRepo := new(MockBookingRepository)
	contactRepo := new(MockContactMessageRepository)
	svc := newAdminServiceForTest(userRepo, roomRepo, bookingRepo, contactRepo)

	messages := []model.ContactMessage{
		{ID: uuid.New(), Name: "Visitor", Email: "v@example.com", Message: "Is room 12 available?"},
	}
	contactRepo.On("List", mock.Anything).Return(messages, nil)

	got, err := svc.Messages(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, messages, got)
}
