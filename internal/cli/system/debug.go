package system

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/tracklit/internal/cli"
)

type DebugCmd struct {
	DBPath     DebugDBPathCmd     `cmd:"" name:"db-path" help:"Show the storage location and schema version."`
	DumpHabits DebugDumpHabitsCmd `cmd:"" help:"Dump stored habits with completions as JSON."`
	DumpMoods  DebugDumpMoodsCmd  `cmd:"" help:"Dump stored mood entries as JSON."`
}

func writeJSON(ctx *cli.Context, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(data))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	out := map[string]interface{}{
		"path":   ctx.Store.GetConfigPath(),
		"driver": ctx.Store.Driver(),
	}
	if current, latest, err := ctx.Store.SchemaVersion(); err == nil {
		out["schemaVersion"] = current
		out["latestVersion"] = latest
	}
	return writeJSON(ctx, out)
}

// DebugDumpHabitsCmd prints raw stored rows without derived statistics
type DebugDumpHabitsCmd struct{}

func (cmd *DebugDumpHabitsCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.ListHabits(context.Background())
	if err != nil {
		return err
	}
	return writeJSON(ctx, habits)
}

type DebugDumpMoodsCmd struct {
	Days int `help:"Only entries from the last N days (0 dumps everything)." default:"0"`
}

func (cmd *DebugDumpMoodsCmd) Run(ctx *cli.Context) error {
	since := time.Time{}
	if cmd.Days > 0 {
		since = time.Now().Add(-time.Duration(cmd.Days) * 24 * time.Hour)
	}
	moods, err := ctx.Store.ListMoodsSince(context.Background(), since)
	if err != nil {
		return err
	}
	return writeJSON(ctx, moods)
}
