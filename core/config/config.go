package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"steam-ledger/core/database"
	"steam-ledger/core/logger"
	"steam-ledger/core/server"
	"steam-ledger/core/storage"
	"steam-ledger/feature/notion"
	"steam-ledger/feature/steam"
	"steam-ledger/feature/sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the status API and the scheduler.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the sync report archive.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Steam holds the library provider credentials and endpoints.
	Steam steam.Config `mapstructure:"steam"`
	// Notion holds the notes provider credentials and endpoints.
	Notion notion.Config `mapstructure:"notion"`
	// Sync holds the limits of one sync pass.
	Sync sync.Config `mapstructure:"sync"`
}

// LoadConfig loads configuration from a config file, the .env file and environment variables.
// Environment variables win over the file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	v.SetConfigName("config")
	v.AddConfigPath(path)
	v.AddConfigPath("$HOME/.steam-ledger")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Map environment variables to nested keys (e.g. STEAM_API_KEY -> steam.api_key)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate reports the settings a sync pass cannot run without.
func (c *Config) Validate() error {
	return missing(append(c.libraryMissing(), c.notesMissing()...))
}

// ValidateLibrary reports the settings the library provider cannot run without.
func (c *Config) ValidateLibrary() error {
	return missing(c.libraryMissing())
}

func (c *Config) libraryMissing() []string {
	var keys []string
	if c.Steam.APIKey == "" {
		keys = append(keys, "steam.api_key")
	}
	if c.Steam.UserID == "" {
		keys = append(keys, "steam.user_id")
	}
	return keys
}

func (c *Config) notesMissing() []string {
	var keys []string
	if c.Notion.APIKey == "" {
		keys = append(keys, "notion.api_key")
	}
	if c.Notion.DatabaseID == "" {
		keys = append(keys, "notion.database_id")
	}
	return keys
}

func missing(keys []string) error {
	if len(keys) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(keys, ", "))
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
