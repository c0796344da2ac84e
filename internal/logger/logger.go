package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/tracklit/internal/constants"
)

// Logger is the process-wide logger. Nil until Init; the package helpers
// are no-ops before then so library code can log unconditionally.
var Logger *log.Logger

type Config struct {
	Debug bool
	// Console mirrors log output to stderr, used by the foreground server
	Console bool
	LogDir  string
	// Format is "text" (default) or "json"
	Format string
}

func formatter(name string) (log.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	}
	return 0, fmt.Errorf("unknown log format %q (want text, json or logfmt)", name)
}

// Init points the global logger at a size-rotated file in cfg.LogDir
func Init(cfg Config) error {
	format, err := formatter(cfg.Format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.LogDir, 0755); err != nil {
		return err
	}

	var out io.Writer = &lumberjack.Logger{
		Filename:   filepath.Join(cfg.LogDir, constants.LogFileName),
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   true,
	}
	if cfg.Debug || cfg.Console {
		out = io.MultiWriter(os.Stderr, out)
	}

	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
	}

	Logger = log.NewWithOptions(out, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.LogPrefix,
		Formatter:       format,
	})
	return nil
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// Fatal logs at fatal level when initialized, then exits with status 1
func Fatal(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Fatal(msg, keyvals...)
	}
	os.Exit(1)
}
