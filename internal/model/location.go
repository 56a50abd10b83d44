package model

import "time"

// Location is a service site that records reference.
type Location struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null;index"`
	Address   string    `json:"address" gorm:"size:512"`
	City      string    `json:"city,omitempty" gorm:"size:255;index"`
	Lat       *float64  `json:"lat,omitempty"`
	Lng       *float64  `json:"lng,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
