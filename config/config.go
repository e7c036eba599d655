// Package config loads chordchart settings from an optional YAML file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/jsphweid/chordchart/constants"
	"gopkg.in/yaml.v3"
)

const envPrefix = "CHORDCHART_"

type Config struct {
	OutDir       string `yaml:"out_dir"`
	PageLines    int    `yaml:"page_lines"`
	TargetWidth  int    `yaml:"target_width"`
	ScaleDegrees bool   `yaml:"scale_degrees"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	ServerAddr string `yaml:"server_addr"`

	DynamoEndpoint string `yaml:"dynamo_endpoint"`
	DynamoRegion   string `yaml:"dynamo_region"`
	DynamoTable    string `yaml:"dynamo_table"`
}

func Default() Config {
	return Config{
		OutDir:         constants.GetOutDir(),
		PageLines:      constants.DefaultPageLines,
		TargetWidth:    constants.DefaultTargetWidth,
		LogLevel:       "info",
		LogFormat:      "text",
		ServerAddr:     ":8080",
		DynamoEndpoint: "http://localhost:8000",
		DynamoRegion:   "localhost",
		DynamoTable:    "chordchart-songs",
	}
}

// Load applies, in order: defaults, the YAML file at path (skipped when it
// does not exist), a .env file in the working directory, then CHORDCHART_*
// environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("loading .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.OutDir, "OUT_DIR")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.LogFormat, "LOG_FORMAT")
	setString(&c.ServerAddr, "SERVER_ADDR")
	setString(&c.DynamoEndpoint, "DYNAMO_ENDPOINT")
	setString(&c.DynamoRegion, "DYNAMO_REGION")
	setString(&c.DynamoTable, "DYNAMO_TABLE")

	if err := setInt(&c.PageLines, "PAGE_LINES"); err != nil {
		return err
	}
	if err := setInt(&c.TargetWidth, "TARGET_WIDTH"); err != nil {
		return err
	}
	return setBool(&c.ScaleDegrees, "SCALE_DEGREES")
}

func getEnv(key string) (string, bool) {
	value := os.Getenv(envPrefix + key)
	return value, value != ""
}

func setString(dst *string, key string) {
	if v, ok := getEnv(key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := getEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", envPrefix, key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v, ok := getEnv(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", envPrefix, key, err)
	}
	*dst = b
	return nil
}
