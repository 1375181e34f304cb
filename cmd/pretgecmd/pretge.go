// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pretgecmd

import (
	"fmt"

	"github.com/luxfi/tge/pkg/application"
	"github.com/spf13/cobra"
)

var app *application.Lux

// tge pretge
func NewCmd(injectedApp *application.Lux) *cobra.Command {
	app = injectedApp

	cmd := &cobra.Command{
		Use:   "pretge",
		Short: "Manage the pre-TGE reservation ledger",
		Long: `The pretge command suite manages the owner curated pre-TGE ledger.
Reservations can be added until the ledger is locked. Settlement of any
allocation requires the ledger to be locked.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := cmd.Help()
			if err != nil {
				fmt.Println(err)
			}
		},
	}

	// tge pretge reserve
	cmd.AddCommand(newReserveCmd())
	// tge pretge lock
	cmd.AddCommand(newLockCmd())
	// tge pretge show
	cmd.AddCommand(newShowCmd())

	return cmd
}
