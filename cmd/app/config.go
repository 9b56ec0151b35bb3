package main

import (
	"errors"
	"fmt"
	"strings"

	"TD_growth_tracker/internal/repository"
	"TD_growth_tracker/pkg/logger"

	"github.com/spf13/viper"
)

const (
	configPath   = "./"
	configName   = "config"
	configFormat = "yaml"
)

type Config struct {
	Store repository.Config `yaml:"store"`
	Game  GameConfig        `yaml:"game"`
	Log   LogConfig         `yaml:"log"`
}

type GameConfig struct {
	DareDailyCap int `yaml:"dareDailyCap"`
	DareReward   int `yaml:"dareReward"`
	MaxUsers     int `yaml:"maxUsers"`
	MaxAnswerLen int `yaml:"maxAnswerLen"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
}

func (c LogConfig) LoggerConfig() logger.Config {
	return logger.Config{
		Level:      c.Level,
		File:       c.File,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
	}
}

// LoadConfig reads config.yaml from the working directory if present and
// applies APP_-prefixed env overrides. Every key has a default so the
// program runs from an empty directory.
func LoadConfig() (*Config, error) {
	viper.SetConfigName(configName)
	viper.AddConfigPath(configPath)
	viper.SetConfigType(configFormat)

	viper.SetDefault("store.dir", ".")
	viper.SetDefault("store.usersFile", "users.txt")
	viper.SetDefault("store.promptsFile", "truth_questions.txt")
	viper.SetDefault("store.challengesFile", "dare_challenges.txt")
	viper.SetDefault("store.recordsFile", "records.txt")

	viper.SetDefault("game.dareDailyCap", 5)
	viper.SetDefault("game.dareReward", 10)
	viper.SetDefault("game.maxUsers", 100)
	viper.SetDefault("game.maxAnswerLen", 500)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", "truthordare.log")
	viper.SetDefault("log.maxSizeMB", 10)
	viper.SetDefault("log.maxBackups", 3)
	viper.SetDefault("log.maxAgeDays", 7)

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
