// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package config loads the optional TOML configuration file that overrides
// the analysis lexicons and the API limits.
package config

// In this file: config file loading and validation.

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/rusq/slackinsight/internal/action"
	"github.com/rusq/slackinsight/internal/network"
	"github.com/rusq/slackinsight/internal/sentiment"
)

// File is the configuration file layout.  Every section is optional: the
// file is decoded over the defaults, so callers only specify what they want
// to change.
type File struct {
	Limits    network.Limits   `toml:"limits"`
	Sentiment sentiment.Config `toml:"sentiment"`
	Action    action.Config    `toml:"action"`
}

// ErrConfigInvalid indicates that the config file failed validation.
var ErrConfigInvalid = errors.New("config validation failed")

// Default returns the configuration with all defaults applied.
func Default() *File {
	return &File{
		Limits:    network.DefLimits,
		Sentiment: sentiment.DefaultConfig(),
		Action:    action.DefaultConfig(),
	}
}

// Load reads, parses and validates the config file.  The returned config
// starts from Default with the file's sections decoded over it.
func Load(filename string) (*File, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := Default()
	dec := toml.NewDecoder(f)
	if _, err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	if err := cfg.Limits.Validate(); err != nil {
		var vErr validator.ValidationErrors
		if errors.As(err, &vErr) {
			return nil, fmt.Errorf("%w: %s", ErrConfigInvalid, vErr.Translate(network.LimitsErrTranslations))
		}
		return nil, err
	}
	if cfg.Sentiment.Threshold <= 0 {
		return nil, fmt.Errorf("%w: sentiment threshold must be positive", ErrConfigInvalid)
	}
	return cfg, nil
}
