// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pretgecmd

import (
	"strconv"

	"github.com/luxfi/tge/pkg/ux"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List the pre-TGE reservations",
		Args:  cobra.NoArgs,
		RunE:  show,
	}
}

func show(_ *cobra.Command, _ []string) error {
	d, err := app.LoadDeployment()
	if err != nil {
		return err
	}
	ledger := d.PreTGE
	ux.Logger.PrintToUser("Pre-TGE ledger %s (locked: %t)", ledger.Address().Hex(), ledger.Locked())
	table := ux.DefaultTable("Address", "Wei", "Vests")
	for _, addr := range ledger.Contributors() {
		c := ledger.Contribution(addr)
		table.AppendRow(addr.Hex(), ux.FormatAmount(c.Wei), strconv.FormatBool(c.Vests))
	}
	table.AppendRow("total", ux.FormatAmount(ledger.TotalReserved()), "")
	table.Render()
	return nil
}
