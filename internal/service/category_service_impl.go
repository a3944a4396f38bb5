package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mapwise/capmap/internal/db"
	"github.com/mapwise/capmap/internal/domain"
	"github.com/mapwise/capmap/internal/repository"
	"github.com/google/uuid"
)

type categoryService struct {
	cats repository.CategoryRepo
	uow  db.UnitOfWork
}

func NewCategoryService(cats repository.CategoryRepo, uow db.UnitOfWork) CategoryService {
	return &categoryService{cats: cats, uow: uow}
}

func (s *categoryService) Create(ctx context.Context, c *domain.Category) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if c.SortOrder == 0 {
		max, err := s.cats.MaxSortOrder(ctx, c.MapID)
		if err != nil {
			return err
		}
		c.SortOrder = max + 1
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	return s.cats.Create(ctx, c)
}

func (s *categoryService) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	return s.cats.GetByID(ctx, id)
}

func (s *categoryService) ListByMap(ctx context.Context, mapID string) ([]*domain.Category, error) {
	return s.cats.ListByMap(ctx, mapID)
}

func (s *categoryService) Update(ctx context.Context, c *domain.Category) error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.UpdatedAt = time.Now().UTC()
	return s.cats.Update(ctx, c)
}

// Move repositions a category at a zero-based position within its map,
// then rewrites every sibling's sort order in one transaction.
func (s *categoryService) Move(ctx context.Context, id string, position int) error {
	cat, err := s.cats.GetByID(ctx, id)
	if err != nil {
		return err
	}
	siblings, err := s.cats.ListByMap(ctx, cat.MapID)
	if err != nil {
		return err
	}

	rest := make([]*domain.Category, 0, len(siblings))
	for _, c := range siblings {
		if c.ID != id {
			rest = append(rest, c)
		}
	}
	if position < 0 {
		position = 0
	}
	if position > len(rest) {
		position = len(rest)
	}

	ordered := make([]*domain.Category, 0, len(rest)+1)
	ordered = append(ordered, rest[:position]...)
	ordered = append(ordered, cat)
	ordered = append(ordered, rest[position:]...)

	now := time.Now().UTC()
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCats := repository.NewSQLiteCategoryRepo(tx)
		for i, c := range ordered {
			if c.SortOrder == i {
				continue
			}
			c.SortOrder = i
			c.UpdatedAt = now
			if err := txCats.Update(ctx, c); err != nil {
				return fmt.Errorf("reordering category %s: %w", c.ID, err)
			}
		}
		return nil
	})
}

// Delete removes the category and all of its capabilities in one
// transaction, so a failure cannot leave orphan rows behind.
func (s *categoryService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCaps := repository.NewSQLiteCapabilityRepo(tx)
		txCats := repository.NewSQLiteCategoryRepo(tx)

		if err := txCaps.DeleteByCategory(ctx, id); err != nil {
			return fmt.Errorf("deleting category capabilities: %w", err)
		}
		if err := txCats.Delete(ctx, id); err != nil {
			return fmt.Errorf("deleting category: %w", err)
		}
		return nil
	})
}
