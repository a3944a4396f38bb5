package service

import (
	"context"
	"time"

	"github.com/mapwise/capmap/internal/domain"
	"github.com/mapwise/capmap/internal/repository"
	"github.com/google/uuid"
)

type capabilityService struct {
	caps repository.CapabilityRepo
	cats repository.CategoryRepo
	maps repository.MapRepo
}

func NewCapabilityService(caps repository.CapabilityRepo, cats repository.CategoryRepo,
	maps repository.MapRepo) CapabilityService {
	return &capabilityService{caps: caps, cats: cats, maps: maps}
}

func (s *capabilityService) Create(ctx context.Context, c *domain.Capability) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Size == "" {
		c.Size = domain.SizeTBD
	}
	if err := c.Validate(); err != nil {
		return err
	}

	cat, err := s.cats.GetByID(ctx, c.CategoryID)
	if err != nil {
		return err
	}
	m, err := s.maps.GetByID(ctx, cat.MapID)
	if err != nil {
		return err
	}
	c.Hours = m.HoursFor(c.Size)

	max, err := s.caps.MaxSortOrder(ctx, c.CategoryID)
	if err != nil {
		return err
	}
	c.SortOrder = max + 1

	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	return s.caps.Create(ctx, c)
}

func (s *capabilityService) GetByID(ctx context.Context, id string) (*domain.Capability, error) {
	return s.caps.GetByID(ctx, id)
}

func (s *capabilityService) ListByCategory(ctx context.Context, categoryID string) ([]*domain.Capability, error) {
	return s.caps.ListByCategory(ctx, categoryID)
}

func (s *capabilityService) Update(ctx context.Context, c *domain.Capability) error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.UpdatedAt = time.Now().UTC()
	return s.caps.Update(ctx, c)
}

func (s *capabilityService) Move(ctx context.Context, id, newCategoryID string) error {
	c, err := s.caps.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.cats.GetByID(ctx, newCategoryID); err != nil {
		return err
	}
	max, err := s.caps.MaxSortOrder(ctx, newCategoryID)
	if err != nil {
		return err
	}
	c.CategoryID = newCategoryID
	c.SortOrder = max + 1
	c.UpdatedAt = time.Now().UTC()
	return s.caps.Update(ctx, c)
}

func (s *capabilityService) Delete(ctx context.Context, id string) error {
	return s.caps.Delete(ctx, id)
}
