// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vestingcmd

import (
	"github.com/luxfi/tge/cmd/flags"
	"github.com/luxfi/tge/pkg/chain"
	"github.com/luxfi/tge/pkg/deployment"
	"github.com/luxfi/tge/pkg/ux"
	"github.com/spf13/cobra"
)

var releaseFrom string

func newReleaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "release [beneficiary]",
		Short: "Transfer the vested, unreleased tokens to the beneficiary",
		Long: `Release can be sent by anyone. The tokens always go to the beneficiary,
which defaults to the caller. Releases need token transfers to be open.`,
		Args: cobra.MaximumNArgs(1),
		RunE: release,
	}
	flags.AddFromFlagToCmd(cmd, &releaseFrom)
	return cmd
}

func release(_ *cobra.Command, args []string) error {
	caller, err := flags.Caller(releaseFrom)
	if err != nil {
		return err
	}
	beneficiary := caller
	if len(args) == 1 {
		if beneficiary, err = chain.ParseAddress(args[0]); err != nil {
			return err
		}
	}
	return app.UpdateDeployment(func(d *deployment.Deployment) error {
		amount, err := d.Engine.Release(caller, beneficiary)
		if err != nil {
			return err
		}
		ux.Logger.GreenCheckmarkToUser("Released %s tokens to %s", ux.FormatAmount(amount), beneficiary.Hex())
		return nil
	})
}
