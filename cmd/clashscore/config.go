package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/JiriCernyJC/cctbx-project/clash"
	"gopkg.in/yaml.v3"
)

//Config is the YAML configuration file. Fields left out keep their default values.
type Config struct {
	FindClashes           *bool    `yaml:"find_clashes"`
	FindHBonds            *bool    `yaml:"find_hbonds"`
	Strict                *bool    `yaml:"strict"`
	SortBy                *string  `yaml:"sort_by"`
	ClashCutoff           *float64 `yaml:"clash_cutoff"`
	HBondMaxModelDistance *float64 `yaml:"hbond_max_model_distance"`
	HAMin                 *float64 `yaml:"ha_min"`
	HAMax                 *float64 `yaml:"ha_max"`
	XAMin                 *float64 `yaml:"xa_min"`
	XAMax                 *float64 `yaml:"xa_max"`
	MinAngle              *float64 `yaml:"min_angle"`
	InlineCos             *float64 `yaml:"inline_cos"`
	DistanceTolerance     *float64 `yaml:"distance_tolerance"`
	LogLevel              string   `yaml:"log_level"`
	HistogramBins         int      `yaml:"histogram_bins"`
}

//LoadConfig reads a YAML configuration file. Unknown keys are an error.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()
	return decodeConfig(f)
}

func decodeConfig(r io.Reader) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &c, nil
}

//Apply copies the fields set in the configuration into opts.
func (C *Config) Apply(opts *clash.Options) {
	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setFloat := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setBool(&opts.FindClashes, C.FindClashes)
	setBool(&opts.FindHBonds, C.FindHBonds)
	setBool(&opts.Strict, C.Strict)
	if C.SortBy != nil {
		opts.SortBy = *C.SortBy
	}
	setFloat(&opts.ClashCutoff, C.ClashCutoff)
	setFloat(&opts.HBondMaxModelDistance, C.HBondMaxModelDistance)
	setFloat(&opts.HAMin, C.HAMin)
	setFloat(&opts.HAMax, C.HAMax)
	setFloat(&opts.XAMin, C.XAMin)
	setFloat(&opts.XAMax, C.XAMax)
	setFloat(&opts.MinAngle, C.MinAngle)
	setFloat(&opts.InlineCos, C.InlineCos)
	setFloat(&opts.DistanceTolerance, C.DistanceTolerance)
}

//parseLevel turns a level name into a slog level. Empty means info.
func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
