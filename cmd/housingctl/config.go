package main

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/iliyamo/campus-housing/internal/config"
)

const (
	keyDBUser    = "db_user"
	keyDBPass    = "db_pass"
	keyDBHost    = "db_host"
	keyDBPort    = "db_port"
	keyDBName    = "db_name"
	keyJWTSecret = "jwt_secret"
)

// loadConfig layers environment variables (DB_HOST, JWT_SECRET, ...) over
// an optional YAML file using the same keys in lower case.  An explicit
// --config path must exist; the default housingctl.yaml may be absent.
func loadConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(keyDBHost, "127.0.0.1")
	v.SetDefault(keyDBPort, "3306")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("housingctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// dbConfig extracts the database settings, failing on the required ones.
func dbConfig(v *viper.Viper) (config.Config, error) {
	cfg := config.Config{
		DBUser: v.GetString(keyDBUser),
		DBPass: v.GetString(keyDBPass),
		DBHost: v.GetString(keyDBHost),
		DBPort: v.GetString(keyDBPort),
		DBName: v.GetString(keyDBName),
	}
	if cfg.DBUser == "" || cfg.DBName == "" {
		return config.Config{}, errors.New("db_user and db_name must be set (env DB_USER, DB_NAME or config file)")
	}
	return cfg, nil
}
