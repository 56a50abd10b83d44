package model

import "time"

// Record is a logged service visit tied to one location and one creating user.
// Records are immutable after creation except for their attached photos.
type Record struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	LocationID  uint       `json:"location_id" gorm:"not null;index"`
	CreatedBy   uint       `json:"created_by" gorm:"not null;index"`
	ServiceType string     `json:"service_type" gorm:"size:255;not null"`
	Notes       string     `json:"notes,omitempty" gorm:"type:text"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at" gorm:"index"`

	// Relations
	Location *Location `json:"location,omitempty" gorm:"foreignKey:LocationID"`
	Photos   []Photo   `json:"photos,omitempty" gorm:"foreignKey:RecordID"`
}
