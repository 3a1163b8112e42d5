package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"roomnest/internal/model"
	"roomnest/internal/repository"
)

// StudentReport is one row of the admin student overview: a student with a
// summary of their booking history.
type StudentReport struct {
	Email           string     `json:"email"`
	Phone           string     `json:"phone,omitempty"`
	TotalBookings   int        `json:"total_bookings"`
	LastBookingDate *time.Time `json:"last_booking_date,omitempty"`
}

// OwnerReport is one row of the admin owner overview: a listing with its
// owner's contact details. Earnings are the listing's current rent; a real
// revenue ledger does not exist yet.
type OwnerReport struct {
	Email         string          `json:"email"`
	Mobile        string          `json:"mobile,omitempty"`
	LastUpload    time.Time       `json:"last_upload"`
	TotalEarnings decimal.Decimal `json:"total_earnings"`
}

// AdminService provides read-only aggregation over identities, rooms, and
// bookings. Every method assumes the caller's admin role was already checked
// by the gate.
type AdminService interface {
	StudentReports(ctx context.Context) ([]StudentReport, error)
	OwnerReports(ctx context.Context) ([]OwnerReport, error)
	Messages(ctx context.Context) ([]model.ContactMessage, error)
}

type adminService struct {
	userRepo    repository.UserRepository
	roomRepo    repository.RoomRepository
	bookingRepo repository.BookingRepository
	contactRepo repository.ContactMessageRepository
}

// NewAdminService creates a new admin reporting service.
func NewAdminService(
	userRepo repository.UserRepository,
	roomRepo repository.RoomRepository,
	bookingRepo repository.BookingRepository,
	contactRepo repository.ContactMessageRepository,
) AdminService {
	return &adminService{
		userRepo:    userRepo,
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		contactRepo: contactRepo,
	}
}

// StudentReports joins every student with their booking count and the
// timestamp of their most recent booking.
func (s *adminService) StudentReports(ctx context.Context) ([]StudentReport, error) {
	students, err := s.userRepo.ListByRole(ctx, model.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}

	reports := make([]StudentReport, 0, len(students))
	for _, student := range students {
		bookings, err := s.bookingRepo.ListByStudent(ctx, student.ID)
		if err != nil {
			return nil, fmt.Errorf("list bookings for %s: %w", student.Email, err)
		}

		report := StudentReport{
			Email:         student.Email,
			Phone:         student.Phone,
			TotalBookings: len(bookings),
		}
		if len(bookings) > 0 {
			last := bookings[len(bookings)-1].CreatedAt
			report.LastBookingDate = &last
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// OwnerReports returns one row per listing with the owner's email and mobile
// sourced from the identity store.
func (s *adminService) OwnerReports(ctx context.Context) ([]OwnerReport, error) {
	rooms, err := s.roomRepo.ListWithOwners(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	reports := make([]OwnerReport, 0, len(rooms))
	for _, room := range rooms {
		mobile := room.Owner.Phone
		if mobile == "" {
			mobile = room.Mobile
		}
		reports = append(reports, OwnerReport{
			Email:         room.Owner.Email,
			Mobile:        mobile,
			LastUpload:    room.CreatedAt,
			TotalEarnings: room.Rent,
		})
	}
	return reports, nil
}

// Messages returns all contact messages, newest first.
func (s *adminService) Messages(ctx context.Context) ([]model.ContactMessage, error) {
	messages, err := s.contactRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}
