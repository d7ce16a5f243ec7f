package cache

import (
	"fmt"
	"log/slog"

	"github.com/spf13/viper"
)

// InvalidateCmd represents the cache invalidate subcommand.
type InvalidateCmd struct{}

func (i *InvalidateCmd) Run() error {
	dbPath := viper.GetString("cache.dbfile")

	slog.Info("Invalidating cover cache", "database", dbPath)

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}
	defer func() { _ = store.Close() }()

	rowsDeleted, err := store.InvalidateAll()
	if err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}

	slog.Info("Cache invalidated", "rows_deleted", rowsDeleted)
	return nil
}
