package config

import (
	"log"

	"github.com/spf13/viper"
)

type ReportConfig struct {
	// BetweenDates separates the start and end of a date range in
	// rendered summaries.
	BetweenDates string `mapstructure:"between_dates"`
	ShowDays     bool   `mapstructure:"show_days"`
	ShowMonths   bool   `mapstructure:"show_months"`
}

type CollectorConfig struct {
	FetchTimeoutSeconds int `mapstructure:"fetch_timeout_seconds"`

	// North Dakota's DMR feed requires a subscription.
	NorthDakotaUsername string `mapstructure:"north_dakota_username"`
	NorthDakotaPassword string `mapstructure:"north_dakota_password"`
}

type Config struct {
	DatabaseURL      string          `mapstructure:"database_url"`
	ServerPort       string          `mapstructure:"server_port"`
	JWTSecret        string          `mapstructure:"jwt_secret"`
	MaxRecordAgeDays int             `mapstructure:"max_record_age_days"`
	MemoTTLMinutes   int             `mapstructure:"memo_ttl_minutes"`
	Report           ReportConfig    `mapstructure:"report"`
	Collector        CollectorConfig `mapstructure:"collector"`
}

// Load reads the configuration from a YAML file and returns a Config instance.
func Load() *Config {
	v := viper.New()

	// Look for config in the current directory and ./config
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.AddConfigPath("./config")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		log.Fatalf("Error unmarshalling config: %v", err)
	}

	// Fallback defaults
	if config.ServerPort == "" {
		config.ServerPort = "8080"
	}

	if config.JWTSecret == "" {
		log.Fatal("JWT secret must be set in the config file")
	}

	if config.MaxRecordAgeDays == 0 {
		config.MaxRecordAgeDays = 3650
	}
	if config.MemoTTLMinutes == 0 {
		config.MemoTTLMinutes = 30
	}
	if config.Collector.FetchTimeoutSeconds == 0 {
		config.Collector.FetchTimeoutSeconds = 30
	}
	if config.Report.BetweenDates == "" {
		config.Report.BetweenDates = "::"
	}

	return &config
}
