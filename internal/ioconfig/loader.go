// Package ioconfig loads esdveg configuration from config.yaml and
// environment variables.
package ioconfig

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/gnames/esdveg/internal/iofs"
	"github.com/gnames/esdveg/pkg/config"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables of esdveg.
const EnvPrefix = "ESDVEG"

// envKeys are the persistent configuration keys that can be set by
// environment variables. They match the fields of config.ToOptions.
var envKeys = []string{
	"plants.source",
	"plants.timeout_sec",
	"assembly.collapse_empty",
	"database.host",
	"database.port",
	"database.user",
	"database.password",
	"database.database",
	"database.ssl_mode",
	"database.batch_size",
	"log.level",
	"log.format",
	"log.destination",
	"jobs_number",
	"metrics_file",
}

// Load reads configuration file at cfgPath and applies environment
// variables on top of it. A missing file is not an error, in that case
// only defaults and environment variables are used. The result is a valid
// config: values that do not pass validation are ignored with warnings.
func Load(cfgPath string) (*config.Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	initEnvVars(v)
	setDefaults(v, config.New())

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		err := v.ReadInConfig()
		var notFound viper.ConfigFileNotFoundError
		switch {
		case err == nil:
		case errors.As(err, &notFound), errors.Is(err, fs.ErrNotExist):
		default:
			return nil, iofs.ReadFileError(cfgPath, err)
		}
	}

	var raw config.Config
	if err := v.Unmarshal(&raw); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	res := config.New()
	res.Update(raw.ToOptions())
	return res, nil
}

func initEnvVars(v *viper.Viper) {
	// Keys are bound one by one, so it is clear which variables are
	// supported: ESDVEG_PLANTS_SOURCE, ESDVEG_LOG_LEVEL etc.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, k := range envKeys {
		_ = v.BindEnv(k)
	}
	v.AutomaticEnv()
}

func setDefaults(v *viper.Viper, cfg *config.Config) {
	v.SetDefault("plants.source", cfg.Plants.Source)
	v.SetDefault("plants.timeout_sec", cfg.Plants.TimeoutSec)
	v.SetDefault("assembly.collapse_empty", cfg.Assembly.CollapseEmpty)
	v.SetDefault("database.host", cfg.Database.Host)
	v.SetDefault("database.port", cfg.Database.Port)
	v.SetDefault("database.user", cfg.Database.User)
	v.SetDefault("database.password", cfg.Database.Password)
	v.SetDefault("database.database", cfg.Database.Database)
	v.SetDefault("database.ssl_mode", cfg.Database.SSLMode)
	v.SetDefault("database.batch_size", cfg.Database.BatchSize)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.destination", cfg.Log.Destination)
	v.SetDefault("jobs_number", cfg.JobsNumber)
}
