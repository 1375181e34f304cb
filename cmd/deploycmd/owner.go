// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package deploycmd

import (
	"fmt"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/tge/cmd/flags"
	"github.com/luxfi/tge/pkg/application"
	"github.com/luxfi/tge/pkg/chain"
	"github.com/luxfi/tge/pkg/deployment"
	"github.com/luxfi/tge/pkg/ux"
	"github.com/spf13/cobra"
)

var ownerFrom string

type owned interface {
	Owner() common.Address
	TransferOwnership(caller, newOwner common.Address) error
}

// contracts whose ownership can be handed over, by name. The token stays owned by the engine.
func ownedContracts(d *deployment.Deployment) map[string]owned {
	return map[string]owned{
		"pretge": d.PreTGE,
		"sale":   d.Sale,
		"engine": d.Engine,
	}
}

// tge owner
func NewOwnerCmd(injectedApp *application.Lux) *cobra.Command {
	app = injectedApp

	cmd := &cobra.Command{
		Use:   "owner",
		Short: "Show and transfer contract ownership",
		Args:  cobra.NoArgs,
		RunE:  showOwners,
	}
	transfer := &cobra.Command{
		Use:   "transfer <pretge|sale|engine> <new owner>",
		Short: "Hand a contract over to a new owner",
		Args:  cobra.ExactArgs(2),
		RunE:  transferOwnership,
	}
	flags.AddFromFlagToCmd(transfer, &ownerFrom)
	cmd.AddCommand(transfer)
	return cmd
}

func showOwners(_ *cobra.Command, _ []string) error {
	d, err := app.LoadDeployment()
	if err != nil {
		return err
	}
	table := ux.DefaultTable("Contract", "Owner")
	table.AppendRow("token", d.Token.Owner().Hex())
	for _, name := range []string{"pretge", "sale", "engine"} {
		table.AppendRow(name, ownedContracts(d)[name].Owner().Hex())
	}
	table.Render()
	return nil
}

func transferOwnership(_ *cobra.Command, args []string) error {
	caller, err := flags.Caller(ownerFrom)
	if err != nil {
		return err
	}
	newOwner, err := chain.ParseAddress(args[1])
	if err != nil {
		return err
	}
	return app.UpdateDeployment(func(d *deployment.Deployment) error {
		c, ok := ownedContracts(d)[args[0]]
		if !ok {
			return fmt.Errorf("unknown contract %q, expected pretge, sale or engine", args[0])
		}
		if err := c.TransferOwnership(caller, newOwner); err != nil {
			return err
		}
		ux.Logger.GreenCheckmarkToUser("%s is now owned by %s", args[0], newOwner.Hex())
		return nil
	})
}
