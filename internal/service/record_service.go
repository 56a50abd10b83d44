package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "fieldserv/internal/errors"
	"fieldserv/internal/model"
	"fieldserv/internal/repository"
)

// RecordInput carries the caller-supplied fields of a new record. The
// creator is never part of the input; it is stamped from the acting user.
type RecordInput struct {
	LocationID  uint
	ServiceType string
	Notes       string
	StartedAt   *time.Time
	EndedAt     *time.Time
}

// RecordService exposes the service-visit ledger.
type RecordService interface {
	CreateRecord(ctx context.Context, actor *model.User, in RecordInput) (*model.Record, error)
	ListRecords(ctx context.Context, filter repository.RecordFilter) ([]model.Record, error)
}

type recordService struct {
	recordRepo   repository.RecordRepository
	locationRepo repository.LocationRepository
}

// NewRecordService builds a RecordService.
func NewRecordService(recordRepo repository.RecordRepository, locationRepo repository.LocationRepository) RecordService {
	return &recordService{
		recordRepo:   recordRepo,
		locationRepo: locationRepo,
	}
}

// CreateRecord verifies the referenced location exists, stamps the creator
// and stores the record. Nothing is written when the location is missing.
func (s *recordService) CreateRecord(ctx context.Context, actor *model.User, in RecordInput) (*model.Record, error) {
	if _, err := s.locationRepo.FindByID(ctx, in.LocationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLocationNotFound
		}
		return nil, fmt.Errorf("resolve location: %w", err)
	}

	record := &model.Record{
		LocationID:  in.LocationID,
		CreatedBy:   actor.ID,
		ServiceType: in.ServiceType,
		Notes:       in.Notes,
		StartedAt:   in.StartedAt,
		EndedAt:     in.EndedAt,
	}
	if err := s.recordRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}
	return record, nil
}

func (s *recordService) ListRecords(ctx context.Context, filter repository.RecordFilter) ([]model.Record, error) {
	return s.recordRepo.List(ctx, filter)
}
