package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "fieldserv/internal/errors"
	"fieldserv/internal/model"
	"fieldserv/internal/repository"
)

// allowedExtensions mirrors the formats the mobile clients produce.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Upload is one file of an attach call, decoupled from multipart plumbing.
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// PhotoStorage persists and removes photo bytes by stored name.
type PhotoStorage interface {
	Save(ctx context.Context, name string, r io.Reader) (int64, error)
	Remove(ctx context.Context, name string) error
}

// PhotoService binds uploaded files to records.
type PhotoService interface {
	AttachPhotos(ctx context.Context, recordID uint, phase model.PhotoPhase, uploads []Upload) ([]model.Photo, error)
	ListPhotos(ctx context.Context, recordID uint) ([]model.Photo, error)
}

type photoService struct {
	recordRepo repository.RecordRepository
	photoRepo  repository.PhotoRepository
	storage    PhotoStorage
	maxBytes   int64
}

// NewPhotoService builds a PhotoService.
func NewPhotoService(recordRepo repository.RecordRepository, photoRepo repository.PhotoRepository, storage PhotoStorage, maxBytes int64) PhotoService {
	return &photoService{
		recordRepo: recordRepo,
		photoRepo:  photoRepo,
		storage:    storage,
		maxBytes:   maxBytes,
	}
}

// AttachPhotos persists every uploaded file and its metadata row, or nothing.
// Validation runs over the whole batch before any byte is written; after
// that, a failure on any file or on the row insert removes everything the
// call wrote so no partial attachment is ever observable.
func (s *photoService) AttachPhotos(ctx context.Context, recordID uint, phase model.PhotoPhase, uploads []Upload) ([]model.Photo, error) {
	if _, err := s.recordRepo.FindByID(ctx, recordID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, fmt.Errorf("resolve record: %w", err)
	}

	if !phase.Valid() {
		return nil, fmt.Errorf("%w: unknown phase %q", apperrors.ErrInvalidUpload, phase)
	}
	if len(uploads) == 0 {
		return nil, fmt.Errorf("%w: no files submitted", apperrors.ErrInvalidUpload)
	}
	for _, up := range uploads {
		ext := strings.ToLower(filepath.Ext(up.Filename))
		if !allowedExtensions[ext] {
			return nil, fmt.Errorf("%w: %s has unsupported format", apperrors.ErrInvalidUpload, up.Filename)
		}
		if s.maxBytes > 0 && up.Size > s.maxBytes {
			return nil, fmt.Errorf("%w: %s too large", apperrors.ErrInvalidUpload, up.Filename)
		}
	}

	written := make([]string, 0, len(uploads))
	rollback := func() {
		for _, name := range written {
			_ = s.storage.Remove(ctx, name)
		}
	}

	photos := make([]model.Photo, 0, len(uploads))
	for _, up := range uploads {
		name := storedName(recordID, up.Filename)
		size, err := s.storage.Save(ctx, name, up.Content)
		if err != nil {
			rollback()
			return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageFailure, err)
		}
		written = append(written, name)
		photos = append(photos, model.Photo{
			RecordID:         recordID,
			Phase:            phase,
			StoredName:       name,
			OriginalFilename: up.Filename,
			SizeBytes:        size,
		})
	}

	if err := s.photoRepo.CreateBatch(ctx, photos); err != nil {
		rollback()
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageFailure, err)
	}

	return photos, nil
}

func (s *photoService) ListPhotos(ctx context.Context, recordID uint) ([]model.Photo, error) {
	if _, err := s.recordRepo.FindByID(ctx, recordID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, fmt.Errorf("resolve record: %w", err)
	}
	return s.photoRepo.ListByRecord(ctx, recordID)
}

// storedName derives a collision-resistant file name from the record id and
// a random token, keeping the original extension. Concurrent attach calls
// can never collide on disk paths.
func storedName(recordID uint, filename string) string {
	u := uuid.New()
	return fmt.Sprintf("r%d_%x%s", recordID, u[:], strings.ToLower(filepath.Ext(filename)))
}
