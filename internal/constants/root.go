package constants

import "time"

const (
	AppName            = "tracklit"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/tracklit/tracklit.db"
	KeyringDBPath      = "keyring"
	Version            = "v0.1.0"

	// DateFormat is the calendar-day format used for habit completions (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimestampFormat is a fixed-width UTC layout. Stored timestamps must compare
	// lexicographically in the same order as chronologically.
	TimestampFormat = "2006-01-02T15:04:05.000000000Z"

	// API constants
	APIPrefix              = "/api"
	DefaultAddr            = ":8000"
	DefaultCORSOrigins     = "*"
	DefaultMoodWindowDays  = 30
	// Windows longer than this cover every stored entry
	MaxMoodWindowDays = 100000
	RequestIDHeader        = "X-Request-ID"
	ServerReadTimeout      = 10 * time.Second
	ServerWriteTimeout     = 15 * time.Second
	ServerIdleTimeout      = 60 * time.Second
	ServerShutdownTimeout  = 30 * time.Second
	ReadinessPingTimeout   = 1 * time.Second
	DefaultTimezone        = "Local"
	SQLiteBusyTimeoutMs    = 5000
	PostgresMaxOpenConns   = 25
	PostgresConnMaxLifeMin = 5

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "tracklit-"
	BackupFileSuffix = ".db"

	// Lockfile constants
	ServerLockfileName = "tracklit-server.lock"

	// Logging constants
	LogDirName     = "logs"
	LogFileName    = "tracklit.log"
	LogMaxSizeMB   = 10
	LogMaxBackups  = 3
	LogMaxAgeDays  = 28
	LogPrefix      = "tracklit"
	EnvDBPath      = "TRACKLIT_DB"
	EnvDBConn      = "TRACKLIT_DB_CONNECTION"
	EnvAddr        = "TRACKLIT_ADDR"
	EnvCORSOrigins = "TRACKLIT_CORS_ORIGINS"
	EnvTimezone    = "TRACKLIT_TIMEZONE"
	EnvMoodWindow  = "TRACKLIT_MOOD_WINDOW_DAYS"
	EnvLogDir      = "TRACKLIT_LOG_DIR"
	EnvDebug       = "TRACKLIT_DEBUG"
	EnvLogFormat   = "TRACKLIT_LOG_FORMAT"
)
