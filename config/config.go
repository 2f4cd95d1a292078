// Copyright 2025 CineMatch Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/juju/errors"
	"github.com/spf13/viper"
)

// Config is the configuration for the recommender.
type Config struct {
	Data      DataConfig       `mapstructure:"data"`
	Recommend RecommendConfig  `mapstructure:"recommend"`
	Users     map[string]int32 `mapstructure:"users"`
}

// DataConfig locates the two source CSV files.
type DataConfig struct {
	Ratings string `mapstructure:"ratings" validate:"required"`
	Movies  string `mapstructure:"movies" validate:"required"`
}

// RecommendConfig tunes the candidate fetch and display defaults.
type RecommendConfig struct {
	// FetchSize caps the candidate set taken from the predictor before
	// display filters apply.
	FetchSize int `mapstructure:"fetch_size" validate:"gt=0"`
	// DefaultN is the number of movies shown when no limit is given.
	DefaultN int `mapstructure:"default_n" validate:"gt=0"`
}

func setDefault() {
	viper.SetDefault("recommend.fetch_size", 300)
	viper.SetDefault("recommend.default_n", 5)
}

// LoadConfig loads and validates the configuration file.
func LoadConfig(path string) (*Config, error) {
	setDefault()
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return nil, errors.Annotatef(err, "read config %s", path)
	}
	var conf Config
	if err := viper.Unmarshal(&conf); err != nil {
		return nil, errors.Trace(err)
	}
	if err := validator.New().Struct(&conf); err != nil {
		return nil, errors.Annotate(err, "validate config")
	}
	return &conf, nil
}
