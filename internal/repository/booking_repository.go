package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"roomnest/internal/model"
)

// BookingRepository defines booking ledger persistence operations.
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	// FindOverlapping returns bookings for the room whose window intersects
	// [start, end]: existing start <= end AND existing end >= start.
	FindOverlapping(ctx context.Context, roomID uuid.UUID, start, end time.Time) ([]model.Booking, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.Booking, error)
	ListByStudentWithRooms(ctx context.Context, studentID uuid.UUID) ([]model.Booking, error)
	ListByRooms(ctx context.Context, roomIDs []uuid.UUID) ([]model.Booking, error)
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository.
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Booking{}, "id = ?", id).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var booking model.Booking
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindOverlapping(ctx context.Context, roomID uuid.UUID, start, end time.Time) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND start_date <= ? AND end_date >= ?", roomID, end, start).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := r.db.WithContext(ctx).Where("student_id = ?", studentID).Order("created_at").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListByStudentWithRooms joins each booking with its room snapshot.
func (r *bookingRepository) ListByStudentWithRooms(ctx context.Context, studentID uuid.UUID) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Preload("Room").
		Where("student_id = ?", studentID).
		Order("created_at").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListByRooms returns bookings for any of the given rooms, with the student
// identity joined for owner-side rental history.
func (r *bookingRepository) ListByRooms(ctx context.Context, roomIDs []uuid.UUID) ([]model.Booking, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("room_id IN ?", roomIDs).
		Order("created_at").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
