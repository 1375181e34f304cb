// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package distributioncmd

import (
	"fmt"
	"strconv"

	"github.com/luxfi/tge/pkg/chain"
	"github.com/luxfi/tge/pkg/ux"
	"github.com/spf13/cobra"
)

func newAllocationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "allocation [address]",
		Short: "Show settled allocations",
		Long: `Allocation shows the allocation of one address, or all settled
allocations in settlement order when no address is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: allocation,
	}
}

func allocation(_ *cobra.Command, args []string) error {
	d, err := app.LoadDeployment()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		addr, err := chain.ParseAddress(args[0])
		if err != nil {
			return err
		}
		alloc, ok := d.Engine.Allocation(addr)
		if !ok {
			return fmt.Errorf("%s has not settled", addr.Hex())
		}
		printAllocation(addr, alloc)
		return nil
	}

	settled := d.Engine.Allocations()
	ux.Logger.PrintToUser("%d settled allocations, token supply %s of %s",
		len(settled), ux.FormatAmount(d.Token.TotalSupply()), ux.FormatAmount(d.Token.MaxSupply()))
	if len(settled) == 0 {
		return nil
	}
	table := ux.DefaultTable("Address", "Wei", "Vests", "Direct", "Escrowed")
	for _, addr := range settled {
		a, _ := d.Engine.Allocation(addr)
		table.AppendRow(addr.Hex(), ux.FormatAmount(a.TotalWei), strconv.FormatBool(a.Vests),
			ux.FormatAmount(a.DirectTokens), ux.FormatAmount(a.EscrowTokens()))
	}
	table.Render()
	return nil
}
