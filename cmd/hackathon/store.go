package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vibecodeutah/hackathon-site/internal/config"
	"github.com/vibecodeutah/hackathon-site/internal/storage"
	"github.com/vibecodeutah/hackathon-site/internal/storage/memory"
	"github.com/vibecodeutah/hackathon-site/internal/storage/sqlite"
	"github.com/vibecodeutah/hackathon-site/internal/storage/supabase"
)

// openStore builds the configured backend wrapped with tracing.
func openStore(cfg config.StorageConfig) (storage.Store, error) {
	var (
		store storage.Store
		err   error
	)

	switch cfg.Type {
	case config.StorageMemory:
		store = memory.New()
	case config.StorageSQLite:
		if dir := filepath.Dir(cfg.SQLite.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create data directory: %w", err)
			}
		}
		store, err = sqlite.New(cfg.SQLite.Path)
	case config.StorageSupabase:
		store, err = supabase.New(supabase.Config{URL: cfg.Supabase.URL, Key: cfg.Supabase.Key()})
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Type, err)
	}

	return storage.Traced(store, cfg.Type), nil
}
