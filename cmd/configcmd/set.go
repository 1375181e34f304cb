// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package configcmd

import (
	"fmt"

	"github.com/luxfi/tge/pkg/ux"
	"github.com/spf13/cobra"
)

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value in the config file.

Keys:
  metrics-addr  - listen address of tge metrics serve
  log-level     - default log level

Example:
  tge config set metrics-addr 0.0.0.0:9464`,
		Args: cobra.ExactArgs(2),
		RunE: runSet,
	}
}

func runSet(_ *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	if err := checkKey(key); err != nil {
		return err
	}
	if err := app.Conf.SetConfigValue(key, value); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	ux.Logger.PrintToUser("Set %s = %s", key, value)
	return nil
}
