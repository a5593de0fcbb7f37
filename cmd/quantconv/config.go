package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the quantconv configuration file
// (~/.config/quantconv/config.yaml). Empty fields leave flag defaults alone.
type Config struct {
	Quant     string   `yaml:"quant"`
	Tool      string   `yaml:"tool"`
	ToolArgs  []string `yaml:"tool_args"`
	LogLevel  string   `yaml:"log_level"`
	LogFormat string   `yaml:"log_format"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "quantconv", "config.yaml")
}

// loadConfig reads the config file at path. A missing file is not an error and
// yields a zero Config.
func loadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// applyConfig applies config file defaults to opts when the corresponding CLI
// flag was not explicitly set. isSet is usually (*cli.Command).IsSet.
//
// The config tool is only a fallback: an empty --tool or QUANTCONV_TOOL does
// not hide it, and tool_args follow the config tool only.
func applyConfig(isSet func(name string) bool, cfg Config, opts *options) {
	if cfg.Quant != "" && !isSet("q") {
		opts.quant = cfg.Quant
	}
	if cfg.Tool != "" && opts.tool == "" {
		opts.tool = cfg.Tool
		if len(cfg.ToolArgs) > 0 && !isSet("tool-arg") {
			opts.toolArgs = append([]string(nil), cfg.ToolArgs...)
		}
	}
	if cfg.LogLevel != "" && !isSet("log-level") {
		opts.logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !isSet("log-format") {
		opts.logFormat = cfg.LogFormat
	}
}
