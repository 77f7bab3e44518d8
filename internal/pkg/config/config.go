package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// RestConfig aggregates every setting the REST application needs.
type RestConfig struct {
	Port     string           `mapstructure:"port"`
	Database DatabaseSettings `mapstructure:"database"`
	Logger   LoggerSettings   `mapstructure:"logger"`
	Storage  StorageSettings  `mapstructure:"storage"`
}

// InitializeRestConfig loads the REST configuration from an optional YAML file
// and the environment. Environment variables take precedence over file values:
// PORT overrides the listen port, DATABASE_URL overrides the database section
// and the R2_* variables switch the track store to Cloudflare R2.
func InitializeRestConfig(configPath string) (*RestConfig, error) {
	v := viper.New()

	v.SetDefault("port", "8000")
	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("storage.provider", LocalStorageProvider)
	v.SetDefault("storage.local_dir", defaultTrackDir())

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
			}
		}
	}

	v.AutomaticEnv()

	var cfg RestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		settings, err := DatabaseSettingsFromURL(dbURL)
		if err != nil {
			return nil, fmt.Errorf("invalid DATABASE_URL: %w", err)
		}
		cfg.Database = settings
	} else if cfg.Database.Type == "" {
		cfg.Database = DefaultSqliteSettings()
	}

	applyR2Environment(&cfg.Storage)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks every settings section.
func (c *RestConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("validation failed for RestConfig: port is required")
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	return nil
}

// applyR2Environment fills R2 settings from the environment and selects the r2
// provider when the required variables are all present.
func applyR2Environment(s *StorageSettings) {
	if accountID := os.Getenv("R2_ACCOUNT_ID"); accountID != "" {
		s.R2AccountID = accountID
	}
	if accessKeyID := os.Getenv("R2_ACCESS_KEY_ID"); accessKeyID != "" {
		s.R2AccessKeyID = accessKeyID
	}
	if secret := os.Getenv("R2_SECRET_ACCESS_KEY"); secret != "" {
		s.R2SecretAccessKey = secret
	}
	if bucket := os.Getenv("R2_BUCKET"); bucket != "" {
		s.R2Bucket = bucket
	}
	if baseURL := os.Getenv("R2_PUBLIC_BASEURL"); baseURL != "" {
		s.R2PublicBaseURL = baseURL
	}

	if s.R2AccountID != "" && s.R2AccessKeyID != "" && s.R2SecretAccessKey != "" && s.R2Bucket != "" {
		s.Provider = R2StorageProvider
	}
}

func defaultTrackDir() string {
	if info, err := os.Stat("/data"); err == nil && info.IsDir() {
		return filepath.Join("/data", "gpx")
	}
	return filepath.Join("data", "gpx")
}
