package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/tracklit/internal/config"
	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/keyring"
	"github.com/julianstephens/tracklit/internal/logger"
	"github.com/julianstephens/tracklit/internal/storage"
	"github.com/julianstephens/tracklit/internal/storage/postgres"
	"github.com/julianstephens/tracklit/internal/storage/sqlite"
)

// NewStore picks the storage backend for cfg. PostgreSQL URLs given on the
// command line or in TRACKLIT_DB must not carry a password; the keyring and
// TRACKLIT_DB_CONNECTION are trusted secret stores and may.
func NewStore(cfg *config.Config) (storage.Provider, error) {
	switch {
	case config.IsPostgresURL(cfg.DBPath):
		if _, err := postgres.ValidateConnString(cfg.DBPath); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w; store the full connection string with 'tracklit keyring set' "+
					"or export %s and use --config=%s", err, constants.EnvDBConn, constants.KeyringDBPath)
			}
			return nil, err
		}
		return postgres.New(cfg.DBPath), nil

	case cfg.DBPath == constants.KeyringDBPath:
		connStr, source, err := keyring.ResolveConnectionString()
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, fmt.Errorf("no PostgreSQL connection string found; set %s or run 'tracklit keyring set'", constants.EnvDBConn)
		}
		if err != nil {
			return nil, err
		}
		if _, err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, err
		}
		logger.Debug("Using PostgreSQL connection string", "source", source)
		return postgres.New(connStr), nil

	default:
		return sqlite.NewStore(cfg.DBPath), nil
	}
}
