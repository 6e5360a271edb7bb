package models

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
}

type Config struct {
	APIBaseURL     string        `mapstructure:"api_base_url"`
	FirebaseAPIKey string        `mapstructure:"firebase_api_key"`
	ImgBBAPIKey    string        `mapstructure:"imgbb_api_key"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryBackoff   time.Duration `mapstructure:"retry_backoff"`

	// client-local state files (the browser-storage equivalent)
	StateDir string `mapstructure:"state_dir"`
	Theme    string `mapstructure:"theme"`

	// activity events
	EventsEnabled   bool   `mapstructure:"events_enabled"`
	EventsSink      string `mapstructure:"events_sink"` // console, file, kafka
	EventsFile      string `mapstructure:"events_file"`
	KafkaBrokerList string `mapstructure:"kafka_broker_list"`
	KafkaTopic      string `mapstructure:"kafka_topic"`

	// report export
	ExportFormat      string             `mapstructure:"export_format"` // csv, json, parquet
	ExportPath        string             `mapstructure:"export_path"`
	ExportDestination string             `mapstructure:"export_destination"` // local, s3
	CloudStorage      CloudStorageConfig `mapstructure:"cloud_storage"`

	// local snapshot cache
	PostgresDSN string `mapstructure:"postgres_dsn"`

	// demo mode
	DemoAddr string `mapstructure:"demo_addr"`
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("unable to resolve home directory: %w", err)
		}
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".shopctl")
	}

	viper.SetEnvPrefix("shophub")
	viper.AutomaticEnv()

	viper.SetDefault("request_timeout", "15s")
	viper.SetDefault("max_retries", 3)
	viper.SetDefault("retry_backoff", "500ms")
	viper.SetDefault("events_sink", "console")
	viper.SetDefault("kafka_topic", "shophub_client_events")
	viper.SetDefault("export_format", "csv")
	viper.SetDefault("export_destination", "local")
	viper.SetDefault("theme", "light")
	viper.SetDefault("demo_addr", "localhost:8490")

	// a missing config file is fine, env vars and flags can carry everything
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if config.StateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("unable to resolve home directory: %w", err)
		}
		config.StateDir = filepath.Join(home, ".shopctl.d")
	}

	return &config, nil
}

func (cfg *Config) CartFile() string    { return filepath.Join(cfg.StateDir, "cart.json") }
func (cfg *Config) SessionFile() string { return filepath.Join(cfg.StateDir, "session.json") }
func (cfg *Config) PrefsFile() string   { return filepath.Join(cfg.StateDir, "prefs.json") }
