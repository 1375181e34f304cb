// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package configcmd

import (
	"github.com/luxfi/tge/pkg/ux"
	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE:  runGet,
	}
}

func runGet(_ *cobra.Command, args []string) error {
	key := args[0]
	if err := checkKey(key); err != nil {
		return err
	}
	if !app.Conf.ConfigValueIsSet(key) {
		ux.Logger.PrintToUser("%s is not set", key)
		return nil
	}
	ux.Logger.PrintToUser("%s = %s", key, app.Conf.GetConfigStringValue(key))
	return nil
}
