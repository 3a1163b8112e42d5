package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"roomnest/internal/cache"
	"roomnest/internal/errors"
	"roomnest/internal/model"
	"roomnest/internal/repository"
)

// CancellationWindow is how long after creation a requester may cancel a booking.
const CancellationWindow = 24 * time.Hour

// defaultBookingMonths applies when a request omits the rental duration.
const defaultBookingMonths = 1

// RentedRoom is a booking joined with its room snapshot, flattened for the
// student-facing rented-rooms view.
type RentedRoom struct {
	BookingID uuid.UUID  `json:"booking_id"`
	BookedAt  time.Time  `json:"booked_at"`
	StartDate time.Time  `json:"start_date"`
	EndDate   time.Time  `json:"end_date"`
	Months    int        `json:"months"`
	Room      model.Room `json:"room"`
}

// RentalRecord is one booking of an owned room, with the renting student joined.
type RentalRecord struct {
	BookingID       uuid.UUID `json:"booking_id"`
	StudentUsername string    `json:"student_username"`
	StudentEmail    string    `json:"student_email"`
	BookedAt        time.Time `json:"booked_at"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
}

// OwnedRoomHistory is an owner's room together with every booking made against it.
type OwnedRoomHistory struct {
	Room    model.Room     `json:"room"`
	Rentals []RentalRecord `json:"rentals"`
}

// BookingService is the booking engine: it creates, lists, and cancels
// bookings, enforcing the conflict and ownership rules.
type BookingService interface {
	CreateBooking(ctx context.Context, studentID uuid.UUID, role model.Role, roomID uuid.UUID, months, guests int) (*model.Booking, error)
	ListBookingsForStudent(ctx context.Context, studentID uuid.UUID) ([]RentedRoom, error)
	CancelBooking(ctx context.Context, bookingID, requesterID uuid.UUID) error
	RentalHistory(ctx context.Context, ownerID uuid.UUID) ([]OwnedRoomHistory, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	roomRepo    repository.RoomRepository
	cache       *cache.Client
	// Mutex map for per-room locking around the conflict check + insert.
	roomMutexes sync.Map
	now         func() time.Time
}

// NewBookingService creates a new booking service.
func NewBookingService(
	bookingRepo repository.BookingRepository,
	roomRepo repository.RoomRepository,
	cache *cache.Client,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		cache:       cache,
		now:         time.Now,
	}
}

// getMutex returns a mutex for a specific room ID.
func (s *bookingService) getMutex(roomID uuid.UUID) *sync.Mutex {
	value, _ := s.roomMutexes.LoadOrStore(roomID.String(), &sync.Mutex{})
	return value.(*sync.Mutex)
}

// CreateBooking reserves a room for the student over [now, now+months].
// Creation is rejected with a conflict when any existing booking for the room
// has an overlapping window. The check and insert run under a per-room mutex
// so concurrent requests against the same room cannot both pass the check.
func (s *bookingService) CreateBooking(ctx context.Context, studentID uuid.UUID, role model.Role, roomID uuid.UUID, months, guests int) (*model.Booking, error) {
	if role != model.RoleStudent {
		return nil, errors.ErrForbidden
	}

	if months <= 0 {
		months = defaultBookingMonths
	}
	start := s.now()
	end := start.AddDate(0, months, 0)

	mutex := s.getMutex(roomID)
	mutex.Lock()
	defer mutex.Unlock()

	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("find room: %w", err)
	}

	overlapping, err := s.bookingRepo.FindOverlapping(ctx, roomID, start, end)
	if err != nil {
		return nil, fmt.Errorf("check conflicts: %w", err)
	}
	if len(overlapping) > 0 {
		return nil, errors.ErrBookingConflict
	}

	booking := &model.Booking{
		RoomID:    roomID,
		StudentID: studentID,
		StartDate: start,
		EndDate:   end,
		Months:    months,
		Guests:    guests,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	// Display hint only; availability truth is the overlap query.
	if !room.IsBooked {
		room.IsBooked = true
		if err := s.roomRepo.Update(ctx, room); err != nil {
			return nil, fmt.Errorf("mark room booked: %w", err)
		}
	}

	_ = s.cache.Delete(ctx, roomsCacheKey)

	return booking, nil
}

// ListBookingsForStudent returns the student's bookings joined with room
// snapshots. An empty result is a valid empty list, not an error.
func (s *bookingService) ListBookingsForStudent(ctx context.Context, studentID uuid.UUID) ([]RentedRoom, error) {
	bookings, err := s.bookingRepo.ListByStudentWithRooms(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	rented := make([]RentedRoom, 0, len(bookings))
	for _, booking := range bookings {
		rented = append(rented, RentedRoom{
			BookingID: booking.ID,
			BookedAt:  booking.CreatedAt,
			StartDate: booking.StartDate,
			EndDate:   booking.EndDate,
			Months:    booking.Months,
			Room:      booking.Room,
		})
	}
	return rented, nil
}

// CancelBooking deletes the booking if the requester created it and the
// cancellation window has not passed. The room's booked flag is left as is.
func (s *bookingService) CancelBooking(ctx context.Context, bookingID, requesterID uuid.UUID) error {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrBookingNotFound
		}
		return fmt.Errorf("find booking: %w", err)
	}

	if booking.StudentID != requesterID {
		return errors.ErrForbidden
	}

	if s.now().Sub(booking.CreatedAt) > CancellationWindow {
		return errors.ErrCancellationWindowExpired
	}

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}

// RentalHistory returns each of the owner's rooms with its bookings and the
// renting students joined.
func (s *bookingService) RentalHistory(ctx context.Context, ownerID uuid.UUID) ([]OwnedRoomHistory, error) {
	rooms, err := s.roomRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	roomIDs := make([]uuid.UUID, 0, len(rooms))
	for _, room := range rooms {
		roomIDs = append(roomIDs, room.ID)
	}

	bookings, err := s.bookingRepo.ListByRooms(ctx, roomIDs)
	if err != nil {
		return nil, fmt.Errorf("list room bookings: %w", err)
	}

	byRoom := make(map[uuid.UUID][]RentalRecord, len(rooms))
	for _, booking := range bookings {
		byRoom[booking.RoomID] = append(byRoom[booking.RoomID], RentalRecord{
			BookingID:       booking.ID,
			StudentUsername: booking.Student.Username,
			StudentEmail:    booking.Student.Email,
			BookedAt:        booking.CreatedAt,
			StartDate:       booking.StartDate,
			EndDate:         booking.EndDate,
		})
	}

	history := make([]OwnedRoomHistory, 0, len(rooms))
	for _, room := range rooms {
		history = append(history, OwnedRoomHistory{
			Room:    room,
			Rentals: byRoom[room.ID],
		})
	}
	return history, nil
}
