// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package salecmd

import (
	"github.com/luxfi/tge/cmd/flags"
	"github.com/luxfi/tge/pkg/deployment"
	"github.com/luxfi/tge/pkg/ux"
	"github.com/spf13/cobra"
)

var (
	contributeFrom string
	contributeVest bool
	plainTransfer  bool
)

func newContributeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contribute <wei>",
		Short: "Contribute native currency to the public sale",
		Long: `Contribute sends wei from the caller to the sale treasury and records the
contribution. With --vest the whole allocation of the caller is vested at
settlement. --plain behaves like a plain transfer to the sale address, which
always records the contribution as not vesting.

Example:
  tge sale contribute --from 0xC1 10
  tge sale contribute --from 0xC1 --vest 1_000`,
		Args: cobra.ExactArgs(1),
		RunE: contribute,
	}
	flags.AddFromFlagToCmd(cmd, &contributeFrom)
	cmd.Flags().BoolVar(&contributeVest, "vest", false, "opt into vesting")
	cmd.Flags().BoolVar(&plainTransfer, "plain", false, "send as a plain transfer to the sale address")
	cmd.MarkFlagsMutuallyExclusive("vest", "plain")
	return cmd
}

func contribute(_ *cobra.Command, args []string) error {
	caller, err := flags.Caller(contributeFrom)
	if err != nil {
		return err
	}
	value, err := flags.Amount("wei", args[0])
	if err != nil {
		return err
	}
	return app.UpdateDeployment(func(d *deployment.Deployment) error {
		if plainTransfer {
			err = d.Sale.Receive(caller, value)
		} else {
			err = d.Sale.Contribute(caller, value, contributeVest)
		}
		if err != nil {
			return err
		}
		c := d.Sale.Contribution(caller)
		ux.Logger.GreenCheckmarkToUser("Contributed %s wei, total %s wei (vests: %t)",
			ux.FormatAmount(value), ux.FormatAmount(c.Wei), c.Vests)
		return nil
	})
}
