package main

import (
	"fmt"
	"os"

	"github.com/forestrie/go-mmrproof/hashing"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Hasher      string `yaml:"hasher"`
	LogLevel    string `yaml:"log_level"`
	Concurrency int    `yaml:"concurrency"`
	Issuer      string `yaml:"issuer"`
}

func defaultConfig() Config {
	return Config{
		Hasher:      hashing.NameBlake2b,
		LogLevel:    "INFO",
		Concurrency: 8,
		Issuer:      "mmrproof",
	}
}

// parseConfig reads the yaml file at path over the defaults. Fields absent
// from the file keep their default values.
func parseConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	rawFile, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read configuration: %w", err)
	}
	if err = yaml.Unmarshal(rawFile, &cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode configuration: %w", err)
	}
	return cfg, nil
}
