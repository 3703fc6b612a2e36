// Package config centraliza la configuración del servicio: env-first con
// defaults, y un livestock.yaml opcional para dev.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRemote   = "remote"

	PhotosNone  = "none"
	PhotosLocal = "local"
	PhotosS3    = "s3"
)

type Config struct {
	Port    string
	AppName string

	Storage       string // memory | postgres | remote
	DBDSN         string
	RemoteBaseURL string
	RemoteTimeout time.Duration

	PhotoDriver string // none | local | s3
	PhotoDir    string
	S3Bucket    string
	S3Prefix    string
	S3Region    string
	S3Endpoint  string

	LogLevel  string
	LogFormat string
}

func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("app_name", "livestock-registry")
	v.SetDefault("storage", StorageMemory)
	v.SetDefault("db_dsn", "")
	v.SetDefault("remote_base_url", "")
	v.SetDefault("remote_timeout", "10s")
	v.SetDefault("photo_driver", PhotosNone)
	v.SetDefault("photo_dir", "./photos")
	v.SetDefault("s3_bucket", "")
	v.SetDefault("s3_prefix", "animales/")
	v.SetDefault("s3_region", "")
	v.SetDefault("s3_endpoint", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	v.AutomaticEnv()

	// Config file opcional; en su ausencia valen env + defaults
	v.SetConfigName("livestock")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/livestock")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	timeout, err := time.ParseDuration(v.GetString("remote_timeout"))
	if err != nil {
		timeout = 10 * time.Second
	}

	cfg := Config{
		Port:          v.GetString("port"),
		AppName:       v.GetString("app_name"),
		Storage:       strings.ToLower(strings.TrimSpace(v.GetString("storage"))),
		DBDSN:         v.GetString("db_dsn"),
		RemoteBaseURL: v.GetString("remote_base_url"),
		RemoteTimeout: timeout,
		PhotoDriver:   strings.ToLower(strings.TrimSpace(v.GetString("photo_driver"))),
		PhotoDir:      v.GetString("photo_dir"),
		S3Bucket:      v.GetString("s3_bucket"),
		S3Prefix:      v.GetString("s3_prefix"),
		S3Region:      v.GetString("s3_region"),
		S3Endpoint:    v.GetString("s3_endpoint"),
		LogLevel:      v.GetString("log_level"),
		LogFormat:     v.GetString("log_format"),
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Storage {
	case StorageMemory:
	case StoragePostgres:
		if strings.TrimSpace(c.DBDSN) == "" {
			return errors.New("db_dsn required for postgres storage")
		}
	case StorageRemote:
		if strings.TrimSpace(c.RemoteBaseURL) == "" {
			return errors.New("remote_base_url required for remote storage")
		}
	default:
		return errors.New("storage must be memory, postgres or remote")
	}

	switch c.PhotoDriver {
	case PhotosNone, PhotosLocal:
	case PhotosS3:
		if strings.TrimSpace(c.S3Bucket) == "" {
			return errors.New("s3_bucket required for s3 photos")
		}
	default:
		return errors.New("photo_driver must be none, local or s3")
	}

	return nil
}
