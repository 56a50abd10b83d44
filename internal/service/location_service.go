package service

import (
	"context"
	"fmt"

	"fieldserv/internal/model"
	"fieldserv/internal/repository"
)

// LocationService exposes the location registry.
type LocationService interface {
	CreateLocation(ctx context.Context, location *model.Location) (*model.Location, error)
	ListLocations(ctx context.Context) ([]model.Location, error)
}

type locationService struct {
	repo repository.LocationRepository
}

// NewLocationService builds a LocationService.
func NewLocationService(repo repository.LocationRepository) LocationService {
	return &locationService{repo: repo}
}

// CreateLocation stores a new location. There is no uniqueness constraint
// beyond the id; two locations may share a name.
func (s *locationService) CreateLocation(ctx context.Context, location *model.Location) (*model.Location, error) {
	if err := s.repo.Create(ctx, location); err != nil {
		return nil, fmt.Errorf("create location: %w", err)
	}
	return location, nil
}

func (s *locationService) ListLocations(ctx context.Context) ([]model.Location, error) {
	return s.repo.List(ctx)
}
