package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fieldserv/internal/model"
)

// RecordFilter narrows record listings. Nil fields are not applied; set
// fields combine conjunctively.
type RecordFilter struct {
	LocationID *uint
	CreatedBy  *uint
	From       *time.Time
	To         *time.Time
}

// RecordRepository defines record persistence operations.
type RecordRepository interface {
	Create(ctx context.Context, record *model.Record) error
	FindByID(ctx context.Context, id uint) (*model.Record, error)
	List(ctx context.Context, filter RecordFilter) ([]model.Record, error)
}

type recordRepository struct {
	db *gorm.DB
}

// NewRecordRepository builds a GORM-backed repository.
func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) Create(ctx context.Context, record *model.Record) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *recordRepository) FindByID(ctx context.Context, id uint) (*model.Record, error) {
	var record model.Record
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns records most-recent-first. Each call is an independent query,
// so repeated listings with no intervening writes return identical results.
func (r *recordRepository) List(ctx context.Context, filter RecordFilter) ([]model.Record, error) {
	q := r.db.WithContext(ctx).Order("id DESC")
	if filter.LocationID != nil {
		q = q.Where("location_id = ?", *filter.LocationID)
	}
	if filter.CreatedBy != nil {
		q = q.Where("created_by = ?", *filter.CreatedBy)
	}
	if filter.From != nil {
		q = q.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("created_at <= ?", *filter.To)
	}

	var records []model.Record
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
