// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vestingcmd

import (
	"fmt"

	"github.com/luxfi/tge/pkg/application"
	"github.com/spf13/cobra"
)

var app *application.Lux

// tge vesting
func NewCmd(injectedApp *application.Lux) *cobra.Command {
	app = injectedApp

	cmd := &cobra.Command{
		Use:   "vesting",
		Short: "Release and inspect vesting escrows",
		Long: `Every vesting allocation holds ninety percent of its tokens in an escrow
that releases them linearly to the beneficiary over the vesting duration.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := cmd.Help()
			if err != nil {
				fmt.Println(err)
			}
		},
	}

	// tge vesting release
	cmd.AddCommand(newReleaseCmd())
	// tge vesting status
	cmd.AddCommand(newStatusCmd())

	return cmd
}
