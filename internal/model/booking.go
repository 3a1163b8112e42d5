package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking represents a student's reservation of a room for a time window.
// CreatedAt doubles as the booking timestamp the cancellation window is
// measured against.
type Booking struct {
	ID        uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	RoomID    uuid.UUID      `json:"room_id" gorm:"type:char(36);not null;index"`
	StudentID uuid.UUID      `json:"student_id" gorm:"type:char(36);not null;index"`
	StartDate time.Time      `json:"start_date" gorm:"not null;index"`
	EndDate   time.Time      `json:"end_date" gorm:"not null;index"`
	Months    int            `json:"months" gorm:"not null;default:1"`
	Guests    int            `json:"guests,omitempty"`
	CreatedAt time.Time      `json:"booked_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Room    Room `json:"-" gorm:"foreignKey:RoomID"`
	Student User `json:"-" gorm:"foreignKey:StudentID"`
}

// BeforeCreate sets UUID before creating the record.
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Overlaps reports whether the booking window intersects [start, end].
func (b *Booking) Overlaps(start, end time.Time) bool {
	return !b.StartDate.After(end) && !b.EndDate.Before(start)
}
