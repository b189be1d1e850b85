package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophcatalog/internal/flagx"
	"github.com/dmitrijs2005/gophcatalog/internal/timex"
)

// JsonConfig is the on-disk shape of the optional JSON config file.
// Durations accept strings such as "30m" or integer nanoseconds.
type JsonConfig struct {
	HTTPAddr                     string         `json:"http_addr"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	Environment                  string         `json:"environment"`
	HashConcurrency              int            `json:"hash_concurrency"`
	RefreshTokenCleanupInterval  timex.Duration `json:"refresh_token_cleanup_interval"`
	ImageStore                   string         `json:"image_store"`
	UploadDir                    string         `json:"upload_dir"`
	MaxUploadSize                int64          `json:"max_upload_size"`
	S3RootUser                   string         `json:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password"`
	S3Bucket                     string         `json:"s3_bucket"`
	S3Region                     string         `json:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint"`
	S3PublicURL                  string         `json:"s3_public_url"`
}

// parseJson loads the file named by -c/-config (if any) and copies every
// field present in it over config. Missing keys keep their current values.
func parseJson(config *Config) error {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return nil
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return fmt.Errorf("config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("config file %s: %w", jsonConfigFile, err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration.Duration != 0 {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	setString(&config.Environment, c.Environment)
	if c.HashConcurrency != 0 {
		config.HashConcurrency = c.HashConcurrency
	}
	if c.RefreshTokenCleanupInterval.Duration != 0 {
		config.RefreshTokenCleanupInterval = c.RefreshTokenCleanupInterval.Duration
	}
	setString(&config.ImageStore, c.ImageStore)
	setString(&config.UploadDir, c.UploadDir)
	if c.MaxUploadSize != 0 {
		config.MaxUploadSize = c.MaxUploadSize
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3PublicURL, c.S3PublicURL)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
