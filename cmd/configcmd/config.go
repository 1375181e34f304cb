// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package configcmd

import (
	"fmt"

	"github.com/luxfi/tge/pkg/application"
	"github.com/luxfi/tge/pkg/constants"
	"github.com/spf13/cobra"
)

var app *application.Lux

// keys accepted by config set and config get
var knownKeys = map[string]string{
	constants.ConfigMetricsAddrKey: "listen address of tge metrics serve",
	constants.ConfigLogLevelKey:    "default log level",
}

func NewCmd(injectedApp *application.Lux) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Modify configuration for the tge CLI",
		Long:  `Customize configuration for the tge CLI, stored in the base dir config file`,
		Run: func(cmd *cobra.Command, args []string) {
			err := cmd.Help()
			if err != nil {
				fmt.Println(err)
			}
		},
	}
	app = injectedApp
	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())

	return cmd
}

func checkKey(key string) error {
	if _, ok := knownKeys[key]; !ok {
		return fmt.Errorf("unknown config key %q, expected one of %s, %s",
			key, constants.ConfigMetricsAddrKey, constants.ConfigLogLevelKey)
	}
	return nil
}
