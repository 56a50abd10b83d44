package repository

import (
	"context"

	"gorm.io/gorm"

	"fieldserv/internal/model"
)

// PhotoRepository defines photo persistence operations.
type PhotoRepository interface {
	CreateBatch(ctx context.Context, photos []model.Photo) error
	ListByRecord(ctx context.Context, recordID uint) ([]model.Photo, error)
}

type photoRepository struct {
	db *gorm.DB
}

// NewPhotoRepository builds a GORM-backed repository.
func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

// CreateBatch inserts all photo rows in one transaction. Either every row of
// an attach call lands or none do.
func (r *photoRepository) CreateBatch(ctx context.Context, photos []model.Photo) error {
	if len(photos) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&photos).Error
	})
}

func (r *photoRepository) ListByRecord(ctx context.Context, recordID uint) ([]model.Photo, error) {
	var photos []model.Photo
	if err := r.db.WithContext(ctx).Where("record_id = ?", recordID).Order("id").Find(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}
