package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode       string        `mapstructure:"mode"`
	Port       int           `mapstructure:"port"`
	StaticPath string        `mapstructure:"static_path"`
	ReadLimit  int64         `mapstructure:"read_limit"`
	PingPeriod time.Duration `mapstructure:"ping_period"`
	Secret     string        `mapstructure:"secret"`

	// Detection collaborator settings. An empty classifier URL means no
	// model is wired; detect requests then fail per-request, never fatally.
	LabelsPath         string        `mapstructure:"labels_path"`
	ClassifierURL      string        `mapstructure:"classifier_url"`
	ClassifierTimeout  time.Duration `mapstructure:"classifier_timeout"`
	InputSize          int           `mapstructure:"input_size"`
	DetectRateLimit    int           `mapstructure:"detect_rate_limit"`
	DetectRateInterval time.Duration `mapstructure:"detect_rate_interval"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 3000)
	v.SetDefault("static_path", "./web")
	v.SetDefault("read_limit", 1<<20)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("labels_path", "config/labels.txt")
	v.SetDefault("classifier_url", "")
	v.SetDefault("classifier_timeout", "5s")
	v.SetDefault("input_size", 64)
	v.SetDefault("detect_rate_limit", 10)
	v.SetDefault("detect_rate_interval", "1s")

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	log.Info().Str("module", "config").Str("mode", cfg.Mode).Int("port", cfg.Port).Str("static", cfg.StaticPath).Msg("config ready")
	return &cfg, nil
}
