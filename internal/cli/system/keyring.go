package system

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/julianstephens/tracklit/internal/cli"
	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/keyring"
	"github.com/julianstephens/tracklit/internal/storage/postgres"
)

type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
	Get    KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
	Status KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
}

type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	connStr := strings.TrimSpace(cmd.ConnectionString)
	if !strings.HasPrefix(connStr, "postgres://") &&
		!strings.HasPrefix(connStr, "postgresql://") &&
		!strings.Contains(connStr, "host=") {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	// The keyring is encrypted, so an embedded password is fine here
	if _, err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
		return fmt.Errorf("invalid connection string: %w", err)
	}

	if err := keyring.SetConnectionString(connStr); err != nil {
		return err
	}

	ctx.Success("Connection string stored in OS keyring")
	ctx.Printf("  Use it with --config=%s or %s=%s\n", constants.KeyringDBPath, constants.EnvDBPath, constants.KeyringDBPath)
	return nil
}

type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetConnectionString()
	if errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("no connection string found in keyring, use '%s keyring set' to store one", constants.AppName)
	}
	if err != nil {
		return err
	}

	ctx.Println(maskPassword(connStr))
	return nil
}

type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return err
	}
	ctx.Success("Connection string deleted from OS keyring")
	return nil
}

type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Fail("OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}

	ctx.Success("OS keyring is available")
	if _, err := keyring.GetConnectionString(); err == nil {
		ctx.Success("Connection string is stored in keyring")
	} else if errors.Is(err, keyring.ErrNotFound) {
		ctx.Println("ℹ No connection string stored in keyring")
	}
	return nil
}

// maskPassword hides the password of a URL or key=value connection string
func maskPassword(connStr string) string {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil || u.User == nil {
			return connStr
		}
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), "****")
			return strings.Replace(u.String(), "%2A%2A%2A%2A", "****", 1)
		}
		return connStr
	}

	parts := strings.Fields(connStr)
	for i, part := range parts {
		if k, _, ok := strings.Cut(part, "="); ok && strings.EqualFold(k, "password") {
			parts[i] = k + "=****"
		}
	}
	return strings.Join(parts, " ")
}
