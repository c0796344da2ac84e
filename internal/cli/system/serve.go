package system

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/tracklit/internal/api"
	"github.com/julianstephens/tracklit/internal/cli"
	"github.com/julianstephens/tracklit/internal/lockfile"
	"github.com/julianstephens/tracklit/internal/logger"
	"github.com/julianstephens/tracklit/internal/storage"
)

type ServeCmd struct {
	Addr string `help:"Listen address (overrides TRACKLIT_ADDR)."`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.serve(sigCtx, ctx, nil)
}

// serve runs until parent is cancelled. ready, when set, receives the bound
// address once the listener is open.
func (c *ServeCmd) serve(parent context.Context, ctx *cli.Context, ready chan<- string) error {
	addr := ctx.Config.Addr
	if c.Addr != "" {
		addr = c.Addr
	}

	if !ctx.Config.IsPostgres() {
		lock, err := lockfile.Acquire(lockfile.PathFor(filepath.Dir(ctx.Store.GetConfigPath())), addr)
		if err != nil {
			return err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logger.Warn("Failed to release server lock", "error", err)
			}
		}()
	}

	// Init creates the schema on first start and applies pending migrations after
	if err := ctx.Store.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	store := storage.NewInstrumented(ctx.Store)
	moods, habits, err := ctx.Services(store)
	if err != nil {
		return err
	}

	if !ctx.Config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.Options{
		Moods:          moods,
		Habits:         habits,
		Store:          store,
		CORSOrigins:    ctx.Config.CORSOrigins,
		MoodWindowDays: ctx.Config.MoodWindowDays,
	})

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	if ready != nil {
		ready <- ln.Addr().String()
	}

	ctx.Printf("tracklit listening on %s (storage: %s)\n", ln.Addr().String(), ctx.Store.GetConfigPath())
	return api.Serve(parent, api.NewServer(addr, router), ln)
}
