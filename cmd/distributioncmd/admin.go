// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package distributioncmd

import (
	"github.com/luxfi/tge/cmd/flags"
	"github.com/luxfi/tge/pkg/deployment"
	"github.com/luxfi/tge/pkg/ux"
	"github.com/spf13/cobra"
)

var (
	adminFrom string
	mintTo    flags.Address
)

func newMintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mint <amount>",
		Short: "Mint tokens outside of settlement (owner only)",
		Long: `Mint grants tokens from the allocation engine to any address, for
allocations outside of the sale such as team or treasury grants. The token
max supply still applies.

Example:
  tge mint --from 0xOwner --to 0xTeam 1_000_000`,
		Args: cobra.ExactArgs(1),
		RunE: mint,
	}
	flags.AddFromFlagToCmd(cmd, &adminFrom)
	flags.AddAddressFlagToCmd(cmd, &mintTo, "to", "recipient of the tokens")
	return cmd
}

func mint(_ *cobra.Command, args []string) error {
	caller, err := flags.Caller(adminFrom)
	if err != nil {
		return err
	}
	to := mintTo.Address
	amount, err := flags.Amount("amount", args[0])
	if err != nil {
		return err
	}
	return app.UpdateDeployment(func(d *deployment.Deployment) error {
		if err := d.Engine.MintTokens(caller, to, amount); err != nil {
			return err
		}
		ux.Logger.GreenCheckmarkToUser("Minted %s tokens to %s, total supply %s",
			ux.FormatAmount(amount), to.Hex(), ux.FormatAmount(d.Token.TotalSupply()))
		return nil
	})
}

func newUnpauseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unpause",
		Short: "Open token transfers (owner only, irreversible)",
		Args:  cobra.NoArgs,
		RunE:  unpause,
	}
	flags.AddFromFlagToCmd(cmd, &adminFrom)
	return cmd
}

func unpause(_ *cobra.Command, _ []string) error {
	caller, err := flags.Caller(adminFrom)
	if err != nil {
		return err
	}
	return app.UpdateDeployment(func(d *deployment.Deployment) error {
		if err := d.Engine.UnpauseToken(caller); err != nil {
			return err
		}
		ux.Logger.GreenCheckmarkToUser("Token %s transfers are open", d.Token.Symbol())
		return nil
	})
}
