package service

import (
	"context"
	"time"

	"github.com/mapwise/capmap/internal/domain"
	"github.com/mapwise/capmap/internal/repository"
	"github.com/google/uuid"
)

type mapService struct {
	maps     repository.MapRepo
	cats     repository.CategoryRepo
	caps     repository.CapabilityRepo
	applied  repository.AppliedTemplateRepo
}

func NewMapService(maps repository.MapRepo, cats repository.CategoryRepo,
	caps repository.CapabilityRepo, applied repository.AppliedTemplateRepo) MapService {
	return &mapService{maps: maps, cats: cats, caps: caps, applied: applied}
}

func (s *mapService) Create(ctx context.Context, m *domain.Map) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.SizeHours == nil {
		m.SizeHours = domain.DefaultSizeHours()
	}
	if err := m.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	return s.maps.Create(ctx, m)
}

func (s *mapService) GetByID(ctx context.Context, id string) (*domain.Map, error) {
	return s.maps.GetByID(ctx, id)
}

func (s *mapService) List(ctx context.Context) ([]*domain.Map, error) {
	return s.maps.List(ctx)
}

func (s *mapService) Update(ctx context.Context, m *domain.Map) error {
	if err := m.Validate(); err != nil {
		return err
	}
	m.UpdatedAt = time.Now().UTC()
	return s.maps.Update(ctx, m)
}

func (s *mapService) Delete(ctx context.Context, id string) error {
	return s.maps.Delete(ctx, id)
}

func (s *mapService) LoadBoard(ctx context.Context, mapID string) (*BoardData, error) {
	m, err := s.maps.GetByID(ctx, mapID)
	if err != nil {
		return nil, err
	}
	cats, err := s.cats.ListByMap(ctx, mapID)
	if err != nil {
		return nil, err
	}
	caps, err := s.caps.ListByMap(ctx, mapID)
	if err != nil {
		return nil, err
	}
	applied, err := s.applied.ListByMap(ctx, mapID)
	if err != nil {
		return nil, err
	}
	return &BoardData{
		Map:              m,
		Categories:       cats,
		Capabilities:     caps,
		AppliedTemplates: applied,
	}, nil
}
