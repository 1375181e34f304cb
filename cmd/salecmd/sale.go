// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package salecmd

import (
	"fmt"

	"github.com/luxfi/tge/pkg/application"
	"github.com/spf13/cobra"
)

var app *application.Lux

// tge sale
func NewCmd(injectedApp *application.Lux) *cobra.Command {
	app = injectedApp

	cmd := &cobra.Command{
		Use:   "sale",
		Short: "Interact with the public sale ledger",
		Long: `The sale command suite contributes to the public sale, changes vesting
decisions during the sale and its grace period, and runs the owner only
administration of the whitelist, blacklist and caps.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := cmd.Help()
			if err != nil {
				fmt.Println(err)
			}
		},
	}

	// tge sale whitelist
	cmd.AddCommand(newWhitelistCmd())
	// tge sale blacklist
	cmd.AddCommand(newBlacklistCmd())
	// tge sale contribute
	cmd.AddCommand(newContributeCmd())
	// tge sale vest
	cmd.AddCommand(newVestCmd())
	// tge sale set-cap
	cmd.AddCommand(newSetCapCmd())
	// tge sale reclaim
	cmd.AddCommand(newReclaimCmd())
	// tge sale status
	cmd.AddCommand(newStatusCmd())

	return cmd
}
