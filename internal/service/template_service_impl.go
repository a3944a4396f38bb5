package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mapwise/capmap/internal/db"
	"github.com/mapwise/capmap/internal/domain"
	"github.com/mapwise/capmap/internal/repository"
	tmpl "github.com/mapwise/capmap/internal/template"
)

type templateService struct {
	templateDir string
	maps        MapService
	cats        repository.CategoryRepo
	uow         db.UnitOfWork
}

func NewTemplateService(templateDir string, maps MapService, cats repository.CategoryRepo,
	uow db.UnitOfWork) TemplateService {
	return &templateService{templateDir: templateDir, maps: maps, cats: cats, uow: uow}
}

type templateEntry struct {
	Schema *tmpl.TemplateSchema
	Path   string
}

func (s *templateService) List(ctx context.Context) ([]domain.Template, error) {
	entries, err := s.loadTemplateEntries()
	if err != nil {
		return nil, err
	}
	templates := make([]domain.Template, 0, len(entries))
	for _, e := range entries {
		templates = append(templates, domain.Template{
			ID:          e.Schema.ID,
			Name:        e.Schema.Name,
			Description: e.Schema.Description,
			Path:        e.Path,
		})
	}
	return templates, nil
}

func (s *templateService) Get(ctx context.Context, name string) (*domain.Template, error) {
	entry, err := s.resolveTemplate(name)
	if err != nil {
		return nil, err
	}
	return &domain.Template{
		ID:          entry.Schema.ID,
		Name:        entry.Schema.Name,
		Description: entry.Schema.Description,
		Path:        entry.Path,
	}, nil
}

func (s *templateService) Apply(ctx context.Context, mapID, templateName string) (*BoardData, error) {
	entry, err := s.resolveTemplate(templateName)
	if err != nil {
		return nil, err
	}

	m, err := s.maps.GetByID(ctx, mapID)
	if err != nil {
		return nil, err
	}

	maxOrder, err := s.cats.MaxSortOrder(ctx, mapID)
	if err != nil {
		return nil, err
	}

	generated, err := tmpl.Execute(entry.Schema, m, maxOrder+1)
	if err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	// Persist all generated entities atomically.
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCats := repository.NewSQLiteCategoryRepo(tx)
		txCaps := repository.NewSQLiteCapabilityRepo(tx)
		txApplied := repository.NewSQLiteAppliedTemplateRepo(tx)

		for _, cat := range generated.Categories {
			if err := txCats.Create(ctx, cat); err != nil {
				return fmt.Errorf("creating category '%s': %w", cat.Name, err)
			}
		}
		for _, c := range generated.Capabilities {
			if err := txCaps.Create(ctx, c); err != nil {
				return fmt.Errorf("creating capability '%s': %w", c.Name, err)
			}
		}
		return txApplied.Record(ctx, &domain.AppliedTemplate{
			MapID:      mapID,
			TemplateID: entry.Schema.ID,
			AppliedAt:  time.Now().UTC(),
		})
	})
	if err != nil {
		return nil, err
	}

	return s.maps.LoadBoard(ctx, mapID)
}

func (s *templateService) resolveTemplate(name string) (*templateEntry, error) {
	input := strings.TrimSpace(name)
	if input == "" {
		return nil, fmt.Errorf("template '%s' not found: empty template name", name)
	}

	entries, err := s.loadTemplateEntries()
	if err != nil {
		return nil, fmt.Errorf("template '%s' not found: listing templates: %w", name, err)
	}

	// Resolve by file stem, filename, schema ID, or display name (case-insensitive).
	for i := range entries {
		entry := &entries[i]
		fileStem := strings.TrimSuffix(filepath.Base(entry.Path), filepath.Ext(entry.Path))
		if strings.EqualFold(fileStem, input) ||
			strings.EqualFold(filepath.Base(entry.Path), input) ||
			strings.EqualFold(entry.Schema.ID, input) ||
			strings.EqualFold(entry.Schema.Name, input) {
			return entry, nil
		}
	}
	return nil, fmt.Errorf("template '%s' not found", name)
}

func (s *templateService) loadTemplateEntries() ([]templateEntry, error) {
	files, err := os.ReadDir(s.templateDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading template directory: %w", err)
	}

	var entries []templateEntry
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.templateDir, f.Name())
		schema, err := tmpl.LoadSchema(path)
		if err != nil {
			return nil, fmt.Errorf("loading template %s: %w", f.Name(), err)
		}
		entries = append(entries, templateEntry{Schema: schema, Path: path})
	}
	return entries, nil
}
