package backups

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/tracklit/internal/cli"
	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/lockfile"
)

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
	List    BackupListCmd    `cmd:"" help:"List available backups."`
	Restore BackupRestoreCmd `cmd:"" help:"Restore the database from a backup."`
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	path, err := mgr.Create()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	ctx.Success("Backup created: %s", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.Println("No backups found.")
		ctx.Println(cli.MutedStyle.Render("Backups are stored in: " + mgr.Dir()))
		return nil
	}

	ctx.Println(cli.HeaderStyle.Render(fmt.Sprintf("Backups (%d total, keeping most recent %d)", len(backups), constants.MaxBackups)))
	for _, b := range backups {
		ctx.Printf("  %s  %s  (%.1f KB)\n",
			b.Timestamp.Local().Format("2006-01-02 15:04:05"), filepath.Base(b.Path), float64(b.Size)/1024.0)
	}
	ctx.Println(cli.MutedStyle.Render("Backup directory: " + mgr.Dir()))
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

// resolve finds the backup as given, then inside the backup directory
func (c *BackupRestoreCmd) resolve(backupDir string) (string, error) {
	if _, err := os.Stat(c.BackupFile); err == nil {
		return filepath.Abs(c.BackupFile)
	}
	if !filepath.IsAbs(c.BackupFile) {
		candidate := filepath.Join(backupDir, c.BackupFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("backup file not found: tried %s and %s", c.BackupFile, backupDir)
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	path, err := c.resolve(mgr.Dir())
	if err != nil {
		return err
	}

	lockPath := lockfile.PathFor(filepath.Dir(ctx.Store.GetConfigPath()))
	if holder, running, err := lockfile.Read(lockPath); err == nil && running {
		return fmt.Errorf("stop the tracklit server (pid %d) before restoring", holder.PID)
	}

	if !c.Yes {
		ctx.Warn("This replaces the current database. A backup of it is taken first.")
		ok, err := ctx.Confirm(fmt.Sprintf("Restore from %s?", filepath.Base(path)))
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("restore cancelled")
		}
	}

	if err := ctx.Store.Close(); err != nil {
		ctx.Warn("Failed to close database connection: %v", err)
	}

	safety, err := mgr.Restore(path)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	if safety != "" {
		ctx.Println(cli.MutedStyle.Render("Previous database saved as " + filepath.Base(safety)))
	}
	ctx.Success("Database restored from %s", filepath.Base(path))
	return nil
}
