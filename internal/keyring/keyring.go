// Package keyring keeps the PostgreSQL connection string in the OS keyring so
// it never has to be written to a config file.
package keyring

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/tracklit/internal/constants"
)

var (
	ErrNotFound           = errors.New("credentials not found in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Source names where a connection string was found
type Source string

const (
	SourceEnv     Source = "env"
	SourceKeyring Source = "keyring"
)

const (
	service = constants.AppName
	user    = constants.DefaultKeyringUser
)

// translate maps go-keyring errors onto this package's sentinels
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, keyring.ErrNotFound):
		return ErrNotFound
	case op == "":
		return fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return fmt.Errorf("failed to %s credentials in keyring: %w", op, err)
}

func GetConnectionString() (string, error) {
	connStr, err := keyring.Get(service, user)
	if err != nil {
		return "", translate("", err)
	}
	return connStr, nil
}

func SetConnectionString(connStr string) error {
	if connStr = strings.TrimSpace(connStr); connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	return translate("store", keyring.Set(service, user, connStr))
}

func DeleteConnectionString() error {
	return translate("delete", keyring.Delete(service, user))
}

// ResolveConnectionString returns the PostgreSQL connection string from
// TRACKLIT_DB_CONNECTION, falling back to the keyring.
func ResolveConnectionString() (string, Source, error) {
	if v := strings.TrimSpace(os.Getenv(constants.EnvDBConn)); v != "" {
		return v, SourceEnv, nil
	}
	connStr, err := GetConnectionString()
	if err != nil {
		return "", "", err
	}
	return connStr, SourceKeyring, nil
}

// IsAvailable probes the keyring with a read. A not-found answer still
// means the backend works.
func IsAvailable() bool {
	_, err := keyring.Get(service, "availability-probe")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
