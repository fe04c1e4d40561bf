package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taskmgr/task-api/internal/config"
	"github.com/taskmgr/task-api/internal/service"
)

// seedAdmin makes sure the configured default account exists. Running it
// against a database that already has the account changes nothing.
func seedAdmin(ctx context.Context, cfg config.SeedConfig, users service.UserService, logger *slog.Logger) error {
	if !cfg.Enabled {
		return nil
	}

	user, created, err := users.EnsureUser(ctx, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to seed default user: %w", err)
	}

	if created {
		logger.Info("Default user created", "user_id", user.ID.String())
	} else {
		logger.Debug("Default user already present", "user_id", user.ID.String())
	}
	return nil
}
