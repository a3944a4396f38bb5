package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mapwise/capmap/internal/cli"
	"github.com/mapwise/capmap/internal/db"
	"github.com/mapwise/capmap/internal/repository"
	"github.com/mapwise/capmap/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.capmap/capmap.db
	dbPath := os.Getenv("CAPMAP_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".capmap", "capmap.db")
	}

	// Determine template directory
	templateDir := os.Getenv("CAPMAP_TEMPLATES")
	if templateDir == "" {
		// Check for ./templates in current directory first (development)
		if stat, err := os.Stat("./templates"); err == nil && stat.IsDir() {
			templateDir = "./templates"
		} else {
			// Fall back to ~/.capmap/templates (production)
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("finding home directory: %w", err)
			}
			templateDir = filepath.Join(home, ".capmap", "templates")
		}
	}

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	mapRepo := repository.NewSQLiteMapRepo(database)
	categoryRepo := repository.NewSQLiteCategoryRepo(database)
	capabilityRepo := repository.NewSQLiteCapabilityRepo(database)
	appliedRepo := repository.NewSQLiteAppliedTemplateRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Wire services
	mapSvc := service.NewMapService(mapRepo, categoryRepo, capabilityRepo, appliedRepo)

	app := &cli.App{
		Maps:         mapSvc,
		Categories:   service.NewCategoryService(categoryRepo, uow),
		Capabilities: service.NewCapabilityService(capabilityRepo, categoryRepo, mapRepo),
		Bulk:         service.NewBulkService(mapRepo, capabilityRepo),
		Templates:    service.NewTemplateService(templateDir, mapSvc, categoryRepo, uow),
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
