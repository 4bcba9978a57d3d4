package main

import (
	"context"

	"github.com/ashgrove/trackshift/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase initializes the SQLite database and applies pending migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	if err := r.openDatabase(); err != nil {
		return err
	}

	r.logger.Infof("database ready at %s", r.config.Database.Path)
	return r.writePlain("✓ Database initialized and migrations applied\n")
}

// SetupConfig writes a starter config.toml from the embedded example.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("output")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Infof("wrote config to %s", path)
	r.writePlain("✓ Config created at %s\n", path)
	return r.writePlain("Fill in your Spotify client credentials before running 'auth login'.\n")
}
