package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/tgienger/studyhub/internal/catalog"
	"github.com/tgienger/studyhub/internal/config"
	"github.com/tgienger/studyhub/internal/db"
	"github.com/tgienger/studyhub/internal/export"
	"github.com/tgienger/studyhub/internal/logger"
	"github.com/tgienger/studyhub/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = `usage:
  studyhub                 start the study hub
  studyhub export <file>   write progress to an .xlsx workbook
  studyhub --version       print version information`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "-v":
			fmt.Printf("studyhub %s (commit: %s, built: %s)\n", version, commit, date)
			return nil
		case "--help", "-h":
			fmt.Println(usage)
			return nil
		case "export":
			if len(args) != 2 {
				return fmt.Errorf("export needs exactly one file name\n%s", usage)
			}
		default:
			return fmt.Errorf("unknown command %q\n%s", args[0], usage)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log, cfg.LogPath())
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer log.Sync()

	database, err := db.New(cfg.DBPath())
	if err != nil {
		log.Error("database init failed", zap.String("path", cfg.DBPath()), zap.Error(err))
		return fmt.Errorf("initializing database: %w", err)
	}
	defer database.Close()

	cat, err := loadCatalog(cfg, database, log)
	if err != nil {
		return err
	}

	if len(args) == 2 {
		return exportProgress(args[1], cat, log)
	}

	app := ui.NewApp(database, cat, log, ui.Options{
		UserName:     cfg.UI.UserName,
		RecentLimit:  cfg.UI.RecentLimit,
		SuggestLimit: cfg.UI.SuggestLimit,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		log.Error("program exited with error", zap.Error(err))
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}

// loadCatalog reads the syllabus and overlays the progress saved in the database
func loadCatalog(cfg *config.Config, database *db.DB, log *zap.Logger) (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.Data.CatalogPath, log)
	if err != nil {
		return nil, err
	}

	progress, err := database.ListTopicProgress()
	if err != nil {
		return nil, fmt.Errorf("loading progress: %w", err)
	}
	tags, err := database.ListAllTopicTags()
	if err != nil {
		return nil, fmt.Errorf("loading tags: %w", err)
	}
	if skipped := cat.Overlay(progress, tags); skipped > 0 {
		log.Warn("saved progress for unknown topics ignored", zap.Int("skipped", skipped))
	}
	return cat, nil
}

func exportProgress(path string, cat *catalog.Catalog, log *zap.Logger) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := export.WriteProgress(f, cat); err != nil {
		f.Close()
		return fmt.Errorf("exporting progress: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info("progress exported", zap.String("path", path))
	fmt.Printf("Progress written to %s\n", path)
	return nil
}
