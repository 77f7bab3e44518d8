package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Supported track storage providers
const (
	LocalStorageProvider = "local"
	R2StorageProvider    = "r2"
)

// StorageSettings holds the configuration for the GPX track store. The local
// provider keeps raw files under LocalDir; the r2 provider uploads them to an
// S3-compatible Cloudflare R2 bucket.
type StorageSettings struct {
	Provider string `mapstructure:"provider" validate:"required,oneof=local r2"`
	LocalDir string `mapstructure:"local_dir"`

	R2AccountID       string `mapstructure:"r2_account_id"`
	R2AccessKeyID     string `mapstructure:"r2_access_key_id"`
	R2SecretAccessKey string `mapstructure:"r2_secret_access_key"`
	R2Bucket          string `mapstructure:"r2_bucket"`
	R2PublicBaseURL   string `mapstructure:"r2_public_base_url"`
}

// Validate checks that all fields required by the selected provider are set
func (s *StorageSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for StorageSettings: %w", err)
	}

	switch s.Provider {
	case LocalStorageProvider:
		if s.LocalDir == "" {
			return fmt.Errorf("validation failed for StorageSettings: local_dir is required for the local provider")
		}
	case R2StorageProvider:
		if s.R2AccountID == "" || s.R2AccessKeyID == "" || s.R2SecretAccessKey == "" || s.R2Bucket == "" {
			return fmt.Errorf("validation failed for StorageSettings: r2 provider requires account id, access key id, secret access key and bucket")
		}
	}

	return nil
}
