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
	adminFrom string
	reclaimTo flags.Address
)

func newSetCapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-cap <wei>",
		Short: "Change the individual contribution cap",
		Args:  cobra.ExactArgs(1),
		RunE:  setCap,
	}
	flags.AddFromFlagToCmd(cmd, &adminFrom)
	return cmd
}

func setCap(_ *cobra.Command, args []string) error {
	caller, err := flags.Caller(adminFrom)
	if err != nil {
		return err
	}
	v, err := flags.Amount("cap", args[0])
	if err != nil {
		return err
	}
	return app.UpdateDeployment(func(d *deployment.Deployment) error {
		if err := d.Sale.SetIndividualCap(caller, v); err != nil {
			return err
		}
		ux.Logger.GreenCheckmarkToUser("Individual cap set to %s wei", ux.FormatAmount(v))
		return nil
	})
}

func newReclaimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reclaim",
		Short: "Sweep native currency stuck at the sale address",
		Args:  cobra.NoArgs,
		RunE:  reclaim,
	}
	flags.AddFromFlagToCmd(cmd, &adminFrom)
	flags.AddAddressFlagToCmd(cmd, &reclaimTo, "to", "recipient of the stuck funds")
	return cmd
}

func reclaim(_ *cobra.Command, _ []string) error {
	caller, err := flags.Caller(adminFrom)
	if err != nil {
		return err
	}
	to := reclaimTo.Address
	return app.UpdateDeployment(func(d *deployment.Deployment) error {
		amount, err := d.Sale.ReclaimStuckFunds(caller, to)
		if err != nil {
			return err
		}
		ux.Logger.GreenCheckmarkToUser("Reclaimed %s wei to %s", ux.FormatAmount(amount), to.Hex())
		return nil
	})
}
