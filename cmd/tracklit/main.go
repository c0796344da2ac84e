package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/tracklit/internal/cli"
	"github.com/julianstephens/tracklit/internal/cli/backups"
	"github.com/julianstephens/tracklit/internal/cli/habits"
	"github.com/julianstephens/tracklit/internal/cli/moods"
	"github.com/julianstephens/tracklit/internal/cli/system"
	"github.com/julianstephens/tracklit/internal/config"
	"github.com/julianstephens/tracklit/internal/constants"
	apperrors "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/logger"
	"github.com/julianstephens/tracklit/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite file path, PostgreSQL connection string, or 'keyring' (overrides TRACKLIT_DB). PostgreSQL credentials must NOT be embedded; use the keyring or TRACKLIT_DB_CONNECTION instead."`
	Verbose bool   `name:"debug" help:"Enable debug logging."`

	Serve    system.ServeCmd    `cmd:"" help:"Run the HTTP API server." default:"1"`
	Init     system.InitCmd     `cmd:"" help:"Initialize tracklit storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate system.ValidateCmd `cmd:"" help:"Validate stored moods and habits for conflicts."`
	Backup   backups.BackupCmd  `cmd:"" help:"Manage database backups."`
	Mood     moods.MoodCmd      `cmd:"" help:"Record and review mood entries."`
	Habit    habits.HabitCmd    `cmd:"" help:"Manage habits and habit tracking."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive mood and habit dashboard."`
	Keyring  system.KeyringCmd  `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Debug    system.DebugCmd    `cmd:"" help:"Debug commands for troubleshooting."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal mood and habit tracking backend"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.New()
	if err != nil {
		apperrors.Fatal(err)
	}
	if CLI.Config != "" {
		if cfg.DBPath, err = config.ExpandPath(CLI.Config); err != nil {
			apperrors.Fatal(err)
		}
	}
	cfg.Debug = cfg.Debug || CLI.Verbose

	command := ctx.Command()
	logDir, err := cfg.ResolveLogDir()
	if err != nil {
		apperrors.Fatal(err)
	}
	if err := logger.Init(logger.Config{
		Debug:   cfg.Debug,
		Console: command == "serve",
		LogDir:  logDir,
		Format:  cfg.LogFormat,
	}); err != nil {
		apperrors.Fatalf("failed to initialize logger: %v", err)
	}

	var store storage.Provider
	// keyring commands manage the secret NewStore would resolve
	if !strings.HasPrefix(command, "keyring") {
		if store, err = cli.NewStore(cfg); err != nil {
			apperrors.Fatal(err)
		}
		defer store.Close()

		// init and serve create the store, doctor reports on it
		if command != "init" && command != "serve" && command != "doctor" {
			if err := store.Load(); err != nil {
				apperrors.Fatal(err)
			}
		}
	}

	if err := ctx.Run(cli.NewContext(store, cfg)); err != nil {
		if store != nil {
			store.Close()
		}
		apperrors.Fatal(err)
	}
}
