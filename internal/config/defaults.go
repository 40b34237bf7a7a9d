// Package config handles taskboard configuration.
package config

// Default values for a new data directory.
var (
	DefaultDir = ".taskboard"

	DefaultBackend              = "file"
	DefaultSeedURL              = "https://jsonplaceholder.typicode.com/posts"
	DefaultSeedCount            = 9
	DefaultSeedTimeout          = "10s"
	DefaultNotificationDuration = "3s"
	DefaultLogLevel             = "warn"
	DefaultLogFormat            = "text"
	DefaultLogFile              = "taskboard.log"
	DefaultTitleLines           = 1
)

const (
	// ConfigFileName is the name of the config file within the data directory.
	ConfigFileName = "config.yml"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 2

	// EnvFileName is the dotenv file read from the working directory.
	EnvFileName = ".env"
)

// Environment variables that override file settings.
const (
	EnvDir      = "TASKBOARD_DIR"
	EnvStore    = "TASKBOARD_STORE"
	EnvSeedURL  = "TASKBOARD_SEED_URL"
	EnvLogLevel = "TASKBOARD_LOG_LEVEL"
	EnvOutput   = "TASKBOARD_OUTPUT"
)
