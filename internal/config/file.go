package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config for YAML decoding. Nil fields were not set.
type fileConfig struct {
	DatasetPath     *string  `yaml:"dataset_path"`
	DatasetEncoding *string  `yaml:"dataset_encoding"`
	ResultLimit     *int     `yaml:"result_limit"`
	MatchCutoff     *float64 `yaml:"match_cutoff"`
	ServerPort      *string  `yaml:"server_port"`
	ServerURL       *string  `yaml:"server_url"`
	Warm            *bool    `yaml:"warm"`
	LogFile         *string  `yaml:"log_file"`
	LogLevel        *string  `yaml:"log_level"`
}

// ApplyFile overlays the keys set in the YAML file at path onto c.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := c.ApplyYAML(data); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	c.ConfigFile = path
	return nil
}

// ApplyYAML overlays the keys set in a YAML document onto c.
func (c *Config) ApplyYAML(data []byte) error {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}

	setString(&c.DatasetPath, fc.DatasetPath)
	setString(&c.DatasetEncoding, fc.DatasetEncoding)
	setString(&c.ServerPort, fc.ServerPort)
	setString(&c.ServerURL, fc.ServerURL)
	setString(&c.LogFile, fc.LogFile)
	if fc.ResultLimit != nil {
		c.ResultLimit = *fc.ResultLimit
	}
	if fc.MatchCutoff != nil {
		c.MatchCutoff = *fc.MatchCutoff
	}
	if fc.Warm != nil {
		c.Warm = *fc.Warm
	}
	if fc.LogLevel != nil {
		c.LogLevel = ParseLogLevel(*fc.LogLevel)
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
