package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Port            int           `env:"PORT" env-default:"3333" env-description:"listening port"`
	BaseURL         string        `env:"BASE_URL" env-default:"http://localhost:3333/" env-description:"server url published in the API docs"`
	APIVersion      int           `env:"API_VERSION" env-default:"4" env-description:"contract version to serve"`
	DefaultLanguage string        `env:"DEFAULT_LANGUAGE" env-default:"en" env-description:"BCP 47 tag reported as transcript language"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	Log             LogConfig     `env-prefix:"LOG_"`
	YouTube         YouTubeConfig `env-prefix:"YOUTUBE_"`
}

type LogConfig struct {
	Level string `env:"LEVEL" env-default:"debug"`
	JSON  bool   `env:"JSON" env-default:"false"`
}

type YouTubeConfig struct {
	BaseURL string        `env:"BASE_URL" env-default:"https://www.youtube.com"`
	GL      string        `env:"GL" env-default:"US"`
	Timeout time.Duration `env:"TIMEOUT" env-default:"0s" env-description:"upstream timeout, 0 disables it"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment variables: %w", err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT %d", cfg.Port)
	}
	if cfg.APIVersion < 1 {
		return nil, fmt.Errorf("invalid API_VERSION %d", cfg.APIVersion)
	}
	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err.Error())
	}
	return cfg
}
