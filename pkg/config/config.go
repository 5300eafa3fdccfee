// Package config provides configuration management for esdveg.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Plants: source, timeout_sec
//   - Assembly: collapse_empty
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - Log: level, format, destination
//   - General: jobs_number, metrics_file
//
// Runtime-only fields (CLI flags only):
//   - DebugDB, WithAudit, WithExport (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use ESDVEG_ prefix with underscores for nesting:
//
//	ESDVEG_PLANTS_SOURCE=/data/plants.txt
//	ESDVEG_DATABASE_HOST=localhost
//	ESDVEG_LOG_LEVEL=info
//	ESDVEG_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// DefaultPlantsSource is the USDA PLANTS advanced search page that offers
// a download of the complete species list with synonyms.
const DefaultPlantsSource = "https://plants.sc.egov.usda.gov/java/" +
	"AdvancedSearchServlet?dsp_vernacular=on&dsp_family=on&dsp_dur=on&" +
	"dsp_grwhabt=on&dsp_nativestatuscode=on&Synonyms=all&dsp_synonyms=on&" +
	"dsp_authorname_separate=on&viewby=sciname"

// Config represents the complete esdveg configuration.
type Config struct {
	// Plants describes where the authoritative species table comes from.
	Plants PlantsConfig `mapstructure:"plants" yaml:"plants"`

	// Assembly contains settings of the final vegetation string formatting.
	Assembly AssemblyConfig `mapstructure:"assembly" yaml:"assembly"`

	// Database contains PostgreSQL connection settings used by export.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers processing sites.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// MetricsFile is a path where Prometheus metrics of a run are written
	// in the text exposition format. Empty means no metrics file.
	MetricsFile string `mapstructure:"metrics_file" yaml:"metrics_file"`

	// DebugDB is a path to a SQLite file that receives intermediate
	// tables of a run. Empty means no debug store.
	DebugDB string `yaml:"-"`

	// WithAudit enables the report of unmatched scientific names.
	WithAudit bool `yaml:"-"`

	// WithExport enables export of final records to PostgreSQL.
	WithExport bool `yaml:"-"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string `yaml:"-"`
}

// PlantsConfig describes the authoritative species table.
type PlantsConfig struct {
	// Source is a local file path or an http(s) URL. A URL may point to
	// the table itself or to an HTML page with a 'Download' link.
	Source string `mapstructure:"source" yaml:"source"`

	// TimeoutSec limits the whole download of the table.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// AssemblyConfig contains settings of the vegetation string assembly.
type AssemblyConfig struct {
	// CollapseEmpty removes empty interior strata placeholders, so
	// 'PIPO//BOGR' becomes 'PIPO/BOGR'. By default empty strata keep
	// their slot.
	CollapseEmpty bool `mapstructure:"collapse_empty" yaml:"collapse_empty"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize defines the number of rows sent per CopyFrom call
	// during export.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Plants: PlantsConfig{
			Source:     DefaultPlantsSource,
			TimeoutSec: 120,
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "esdveg",
			SSLMode:   "disable",
			BatchSize: 10_000,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
