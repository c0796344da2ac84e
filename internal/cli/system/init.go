package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/tracklit/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Delete the existing SQLite database before initializing."`
	Yes   bool `short:"y" help:"Skip the confirmation prompt for --force."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Success("Initialized tracklit storage at: %s", ctx.Store.GetConfigPath())
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	if ctx.Config.IsPostgres() {
		return errors.New("--force is only supported for SQLite storage")
	}

	dbPath := ctx.Store.GetConfigPath()
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to access existing database: %w", err)
	}

	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete all moods and habits in %s?", dbPath))
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("init cancelled")
		}
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	for _, path := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
	}
	ctx.Warn("Deleted existing database at: %s", dbPath)
	return nil
}
