package system

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/julianstephens/tracklit/internal/cli"
	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/lockfile"
	"github.com/julianstephens/tracklit/internal/utils"
	"github.com/julianstephens/tracklit/internal/validation"
)

var errCheckWarning = errors.New("warning")

type check struct {
	name string
	// needsDB checks are skipped when the database is unreachable
	needsDB bool
	run     func(context.Context, *cli.Context) error
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println(cli.HeaderStyle.Render("Running diagnostics"))
	ctx.Println()

	checks := []check{
		{"Database reachable", false, checkDBReachable},
		{"Schema version", true, checkSchemaVersion},
		{"Migrations complete", true, checkMigrationsComplete},
		{"Backups present", false, checkBackupsPresent},
		{"Data validation", true, checkValidation},
		{"Completion integrity", true, checkCompletionIntegrity},
		{"Clock/timezone", false, checkClockTimezone},
		{"Server lock", false, checkServerLock},
	}

	bg := context.Background()
	failed := false
	dbReachable := true
	for i, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Println(cli.MutedStyle.Render(fmt.Sprintf("⊘ %s: SKIPPED (database not reachable)", c.name)))
			continue
		}

		err := c.run(bg, ctx)
		switch {
		case err == nil:
			ctx.Success("%s: OK", c.name)
		case errors.Is(err, errCheckWarning):
			ctx.Warn("%s: WARNING", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Fail("%s: FAIL", c.name)
			ctx.Printf("   Error: %v\n", err)
			failed = true
			if i == 0 {
				dbReachable = false
			}
		}
	}

	ctx.Println()
	if failed {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func warnf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errCheckWarning, fmt.Sprintf(format, args...))
}

func checkDBReachable(parent context.Context, ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	c, cancel := context.WithTimeout(parent, constants.ReadinessPingTimeout)
	defer cancel()
	return ctx.Store.Ping(c)
}

func checkSchemaVersion(_ context.Context, ctx *cli.Context) error {
	current, latest, err := ctx.Store.SchemaVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(_ context.Context, ctx *cli.Context) error {
	current, latest, err := ctx.Store.SchemaVersion()
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run '%s migrate')",
			current, latest, constants.AppName)
	}
	return nil
}

func checkBackupsPresent(_ context.Context, ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if errors.Is(err, cli.ErrBackupsUnsupported) {
		return nil
	}
	if err != nil {
		return err
	}

	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return warnf("no backups found, consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

// checkValidation reports content problems as warnings; integrity problems
// are covered by checkCompletionIntegrity
func checkValidation(parent context.Context, ctx *cli.Context) error {
	result, err := collectConflicts(parent, ctx)
	if err != nil {
		return err
	}

	var content int
	for _, conflict := range result.Conflicts {
		if conflict.Type != validation.ConflictOrphanCompletion && conflict.Type != validation.ConflictDuplicateCompletion {
			content++
		}
	}
	if content > 0 {
		return warnf("%d conflict(s) found, run '%s validate' for details", content, constants.AppName)
	}
	return nil
}

func checkCompletionIntegrity(parent context.Context, ctx *cli.Context) error {
	orphans, err := ctx.Store.CountOrphanCompletions(parent)
	if err != nil {
		return err
	}
	if orphans > 0 {
		return fmt.Errorf("found %d completion(s) referencing missing habits", orphans)
	}

	dups, err := ctx.Store.CountDuplicateCompletions(parent)
	if err != nil {
		return err
	}
	if dups > 0 {
		return fmt.Errorf("found %d duplicate completion row(s)", dups)
	}
	return nil
}

func checkClockTimezone(_ context.Context, ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if !utils.ValidateTimezone(ctx.Config.Timezone) {
		return fmt.Errorf("invalid timezone %q in %s", ctx.Config.Timezone, constants.EnvTimezone)
	}
	return nil
}

func checkServerLock(_ context.Context, ctx *cli.Context) error {
	if ctx.Config.IsPostgres() {
		return nil
	}
	holder, running, err := lockfile.Read(lockfile.PathFor(filepath.Dir(ctx.Store.GetConfigPath())))
	if err != nil {
		return warnf("%v", err)
	}
	if running {
		ctx.Println(cli.MutedStyle.Render(fmt.Sprintf("   server running on %s (pid %d)", holder.Addr, holder.PID)))
	}
	return nil
}
