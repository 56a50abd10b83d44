package model

import (
	"time"

	"gorm.io/gorm"
)

// PhotoPhase distinguishes before/after shots of a service visit.
type PhotoPhase string

const (
	PhaseBefore PhotoPhase = "BEFORE"
	PhaseAfter  PhotoPhase = "AFTER"
)

// Valid reports whether p is a known phase.
func (p PhotoPhase) Valid() bool {
	return p == PhaseBefore || p == PhaseAfter
}

// UploadsURLPrefix is the public path uploaded photos are served under.
const UploadsURLPrefix = "/uploads/"

// Photo is a binary attachment bound to exactly one record. The bytes live
// on disk under StoredName; only metadata is kept in the database.
type Photo struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	RecordID         uint       `json:"record_id" gorm:"not null;index"`
	Phase            PhotoPhase `json:"phase" gorm:"size:50;not null"`
	StoredName       string     `json:"-" gorm:"uniqueIndex;size:255;not null"`
	OriginalFilename string     `json:"original_filename" gorm:"size:255"`
	SizeBytes        int64      `json:"size_bytes"`
	CreatedAt        time.Time  `json:"created_at"`

	// URLPath is derived from StoredName and never persisted.
	URLPath string `json:"url_path" gorm:"-"`
}

// AfterCreate fills the derived retrieval URL.
func (p *Photo) AfterCreate(tx *gorm.DB) error {
	p.URLPath = UploadsURLPrefix + p.StoredName
	return nil
}

// AfterFind fills the derived retrieval URL.
func (p *Photo) AfterFind(tx *gorm.DB) error {
	p.URLPath = UploadsURLPrefix + p.StoredName
	return nil
}
