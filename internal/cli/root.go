package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/tracklit/internal/backup"
	"github.com/julianstephens/tracklit/internal/config"
	"github.com/julianstephens/tracklit/internal/logger"
	"github.com/julianstephens/tracklit/internal/service"
	"github.com/julianstephens/tracklit/internal/storage"
	"github.com/julianstephens/tracklit/internal/utils"
)

// ErrBackupsUnsupported is returned by backup commands on a PostgreSQL store
var ErrBackupsUnsupported = errors.New("backups are only supported for SQLite storage")

type Context struct {
	Store  storage.Provider
	Config *config.Config
	Out    io.Writer
	// Confirm asks a yes/no question before a destructive action
	Confirm func(title string) (bool, error)
}

func NewContext(store storage.Provider, cfg *config.Config) *Context {
	return &Context{
		Store:   store,
		Config:  cfg,
		Out:     os.Stdout,
		Confirm: Confirm,
	}
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Out, args...)
}

// Location returns the configured timezone for calendar-day decisions
func (c *Context) Location() (*time.Location, error) {
	return utils.LoadLocation(c.Config.Timezone)
}

// Services builds the mood and habit services over store in the configured
// timezone. A nil store means the context's own.
func (c *Context) Services(store storage.Provider) (*service.MoodService, *service.HabitService, error) {
	if store == nil {
		store = c.Store
	}
	loc, err := c.Location()
	if err != nil {
		return nil, nil, err
	}
	return service.NewMoodService(store),
		service.NewHabitService(store, service.WithLocation(loc)),
		nil
}

func (c *Context) BackupManager() (*backup.Manager, error) {
	if c.Config.IsPostgres() {
		return nil, ErrBackupsUnsupported
	}
	return backup.NewManager(c.Store.GetConfigPath()), nil
}

// PerformAutomaticBackup snapshots a SQLite store before a destructive
// command. Failures are logged and never block the command.
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.BackupManager()
	if err != nil {
		return
	}
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
