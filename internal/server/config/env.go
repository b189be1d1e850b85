package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvConfig mirrors the subset of Config settable from the environment.
// Token lifetimes follow the deployment convention: access token in
// minutes, refresh token in days.
type EnvConfig struct {
	HTTPAddr                    string        `env:"HTTP_ADDR"`
	DatabaseDSN                 string        `env:"DATABASE_URL"`
	SecretKey                   string        `env:"JWT_SECRET"`
	AccessTokenMinutes          int           `env:"ACCESS_TOKEN_DURATION"`
	RefreshTokenDays            int           `env:"REFRESH_TOKEN_DURATION"`
	Environment                 string        `env:"ENVIRONMENT"`
	HashConcurrency             int           `env:"HASH_CONCURRENCY"`
	RefreshTokenCleanupInterval time.Duration `env:"REFRESH_TOKEN_CLEANUP_INTERVAL"`
	ImageStore                  string        `env:"IMAGE_STORE"`
	UploadDir                   string        `env:"UPLOAD_DIR"`
	MaxUploadSize               int64         `env:"MAX_UPLOAD_SIZE"`
	S3RootUser                  string        `env:"S3_ROOT_USER"`
	S3RootPassword              string        `env:"S3_ROOT_PASSWORD"`
	S3Bucket                    string        `env:"S3_BUCKET"`
	S3Region                    string        `env:"S3_REGION"`
	S3BaseEndpoint              string        `env:"S3_BASE_ENDPOINT"`
	S3PublicURL                 string        `env:"S3_PUBLIC_URL"`
}

// parseEnv overlays environment variables onto config. A .env file in the
// working directory is loaded first if present; variables already set in
// the process environment win over it. Unset variables leave config as is.
func parseEnv(config *Config) error {
	_ = godotenv.Load()

	accessMinutes := int(config.AccessTokenValidityDuration / time.Minute)
	refreshDays := int(config.RefreshTokenValidityDuration / (24 * time.Hour))

	c := &EnvConfig{
		HTTPAddr:                    config.HTTPAddr,
		DatabaseDSN:                 config.DatabaseDSN,
		SecretKey:                   config.SecretKey,
		AccessTokenMinutes:          accessMinutes,
		RefreshTokenDays:            refreshDays,
		Environment:                 config.Environment,
		HashConcurrency:             config.HashConcurrency,
		RefreshTokenCleanupInterval: config.RefreshTokenCleanupInterval,
		ImageStore:                  config.ImageStore,
		UploadDir:                   config.UploadDir,
		MaxUploadSize:               config.MaxUploadSize,
		S3RootUser:                  config.S3RootUser,
		S3RootPassword:              config.S3RootPassword,
		S3Bucket:                    config.S3Bucket,
		S3Region:                    config.S3Region,
		S3BaseEndpoint:              config.S3BaseEndpoint,
		S3PublicURL:                 config.S3PublicURL,
	}

	if err := env.Parse(c); err != nil {
		return fmt.Errorf("environment: %w", err)
	}

	config.HTTPAddr = c.HTTPAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	if c.AccessTokenMinutes != accessMinutes {
		config.AccessTokenValidityDuration = time.Duration(c.AccessTokenMinutes) * time.Minute
	}
	if c.RefreshTokenDays != refreshDays {
		config.RefreshTokenValidityDuration = time.Duration(c.RefreshTokenDays) * 24 * time.Hour
	}
	config.Environment = c.Environment
	config.HashConcurrency = c.HashConcurrency
	config.RefreshTokenCleanupInterval = c.RefreshTokenCleanupInterval
	config.ImageStore = c.ImageStore
	config.UploadDir = c.UploadDir
	config.MaxUploadSize = c.MaxUploadSize
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.S3PublicURL = c.S3PublicURL
	return nil
}
