package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Room represents a room listed for rent by an owner.
type Room struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	OwnerID     uuid.UUID       `json:"owner_id" gorm:"type:char(36);not null;index"`
	Title       string          `json:"title" gorm:"size:255;not null;default:'Untitled Room'"`
	Description string          `json:"description" gorm:"type:text"`
	Rent        decimal.Decimal `json:"rent" gorm:"type:decimal(20,2);not null"`
	Location    string          `json:"location" gorm:"size:255"`
	Facilities  []string        `json:"facilities" gorm:"serializer:json"`
	Photos      []string        `json:"photos" gorm:"serializer:json"`
	Mobile      string          `json:"mobile" gorm:"size:32"`
	Name        string          `json:"name" gorm:"size:255"`
	IsBooked    bool            `json:"is_booked" gorm:"default:false;index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	Owner User `json:"-" gorm:"foreignKey:OwnerID"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
