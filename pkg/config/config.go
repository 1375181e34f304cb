// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"

	"github.com/luxfi/tge/pkg/constants"
	"github.com/spf13/viper"
)

type Config struct {
	MetricsEnabled bool `json:"metricsEnabled"`
}

func New() *Config {
	return &Config{}
}

func (*Config) GetConfigStringValue(key string) string {
	return viper.GetString(key)
}

func (*Config) ConfigValueIsSet(key string) bool {
	return viper.IsSet(key)
}

func (*Config) ConfigFileExists() bool {
	path := viper.ConfigFileUsed()
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func (*Config) GetConfigBoolValue(key string) bool {
	return viper.GetBool(key)
}

func (*Config) SetConfigValue(key string, value interface{}) error {
	viper.Set(key, value)
	return viper.WriteConfig()
}

// GetConfigPath returns the path to the configuration file
func (*Config) GetConfigPath() string {
	return viper.ConfigFileUsed()
}

// MetricsAddr is the listen address of `tge metrics serve`
func (c *Config) MetricsAddr() string {
	if addr := c.GetConfigStringValue(constants.ConfigMetricsAddrKey); addr != "" {
		return addr
	}
	return constants.DefaultMetricsAddr
}
