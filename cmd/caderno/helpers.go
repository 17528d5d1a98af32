package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/caderno/internal/config"
	"github.com/Veraticus/caderno/internal/model"
	"github.com/Veraticus/caderno/internal/state"
	"github.com/Veraticus/caderno/internal/storage"
)

// openStore initializes the sqlite-backed store for the configured user and
// year. Callers own the returned cleanup.
func openStore(ctx context.Context) (*state.Store, func(), error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/caderno/caderno.db"
	}
	dbPath = config.ExpandPath(dbPath)

	persist, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, nil, err
	}

	if err := persist.Migrate(ctx); err != nil {
		_ = persist.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	store, err := state.Open(ctx, persist, activeUser(), activeYear())
	if err != nil {
		_ = persist.Close()
		return nil, nil, err
	}

	cleanup := func() {
		_ = store.Close()
		_ = persist.Close()
	}
	return store, cleanup, nil
}

// activeUser returns the partition owner from flags/config.
func activeUser() string {
	if user := viper.GetString("user"); user != "" {
		return user
	}
	return "aluno"
}

// activeYear returns the partition year from config, defaulting to the
// current calendar year.
func activeYear() int {
	if year := viper.GetInt("year"); year != 0 {
		return year
	}
	return time.Now().Year()
}

// parseDate validates a YYYY-MM-DD argument.
func parseDate(arg string) (string, error) {
	if _, err := time.Parse(model.DateLayout, arg); err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", arg)
	}
	return arg, nil
}
