// Package lockfile guards against two tracklit servers running against the
// same database. The lock records "addr|pid" and is considered stale once
// its pid no longer belongs to a tracklit process.
package lockfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid

	ErrAlreadyRunning = errors.New("tracklit server is already running")
	ErrMalformed      = errors.New("lockfile is malformed")
)

// Holder describes the server recorded in a lockfile
type Holder struct {
	Addr string
	PID  int
}

// Lock is an acquired server lockfile
type Lock struct {
	path string
	pid  int
}

// PathFor returns the lockfile location for a database directory
func PathFor(dir string) string {
	return filepath.Join(dir, constants.ServerLockfileName)
}

func parse(content string) (Holder, error) {
	parts := strings.Split(strings.TrimSpace(content), "|")
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
		return Holder{}, ErrMalformed
	}
	pid, err := strconv.Atoi(parts[1])
	if err != nil || pid <= 0 {
		return Holder{}, fmt.Errorf("%w: invalid process ID", ErrMalformed)
	}
	return Holder{Addr: parts[0], PID: pid}, nil
}

// Read returns the live holder of the lockfile at path. A missing, malformed
// or stale lockfile yields ok == false.
func Read(path string) (Holder, bool, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Holder{}, false, nil
	}
	if err != nil {
		return Holder{}, false, fmt.Errorf("failed to read lockfile: %w", err)
	}

	holder, err := parse(string(content))
	if err != nil {
		logger.Warn("Ignoring unreadable lockfile", "path", path, "error", err)
		return Holder{}, false, nil
	}

	alive, err := isTracklit(holder.PID)
	if err != nil {
		return Holder{}, false, err
	}
	return holder, alive, nil
}

func isTracklit(pid int) (bool, error) {
	process, err := findProcessFunc(pid)
	if err != nil {
		return false, fmt.Errorf("failed to look up process %d: %w", pid, err)
	}
	if process == nil {
		return false, nil
	}
	return strings.HasPrefix(process.Executable(), constants.AppName), nil
}

// Acquire writes a lockfile for this process. It fails with
// ErrAlreadyRunning when another live tracklit server holds it.
func Acquire(path, addr string) (*Lock, error) {
	return acquire(path, addr, getpidFunc())
}

func acquire(path, addr string, pid int) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create lockfile directory: %w", err)
	}

	// The record is written to a private file and hard-linked into place, so
	// creation is exclusive and readers never see a partial record.
	tmp := fmt.Sprintf("%s.%d.tmp", path, pid)
	if err := os.WriteFile(tmp, []byte(fmt.Sprintf("%s|%d\n", addr, pid)), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	defer os.Remove(tmp)

	for attempt := 0; attempt < 2; attempt++ {
		err := os.Link(tmp, path)
		if err == nil {
			logger.Debug("Acquired server lock", "path", path, "pid", pid)
			return &Lock{path: path, pid: pid}, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("failed to create lockfile: %w", err)
		}

		holder, alive, err := Read(path)
		if err != nil {
			return nil, err
		}
		if alive && holder.PID != pid {
			return nil, fmt.Errorf("%w (pid %d on %s)", ErrAlreadyRunning, holder.PID, holder.Addr)
		}
		logger.Debug("Replacing stale server lock", "path", path, "holder", holder.PID)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}
	return nil, fmt.Errorf("%w: lockfile at %s was recreated while acquiring", ErrAlreadyRunning, path)
}

// Release removes the lockfile if this process still owns it
func (l *Lock) Release() error {
	content, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read lockfile: %w", err)
	}
	if holder, err := parse(string(content)); err == nil && holder.PID != l.pid {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}
