// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package salecmd

import (
	"strconv"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/tge/pkg/chain"
	"github.com/luxfi/tge/pkg/ux"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [address]",
		Short: "Show the sale window, raised amount and contributions",
		Args:  cobra.MaximumNArgs(1),
		RunE:  status,
	}
}

func status(_ *cobra.Command, args []string) error {
	d, err := app.LoadDeployment()
	if err != nil {
		return err
	}
	l := d.Sale
	cfg := l.Config()

	ux.Logger.PrintToUser("Public sale %s", l.Address().Hex())
	table := ux.DefaultTable("Field", "Value")
	table.AppendRow("phase", l.Phase().String())
	table.AppendRow("block time", strconv.FormatUint(d.BlockTime(), 10))
	table.AppendRow("start", strconv.FormatUint(cfg.StartTime, 10))
	table.AppendRow("end", strconv.FormatUint(cfg.EndTime, 10))
	table.AppendRow("grace ends", strconv.FormatUint(l.GraceEndsAt(), 10))
	table.AppendRow("treasury", cfg.Treasury.Hex())
	table.AppendRow("individual cap", ux.FormatAmount(cfg.IndividualCap))
	table.AppendRow("total cap", ux.FormatAmount(cfg.TotalCap))
	table.AppendRow("raised", ux.FormatAmount(l.WeiRaised()))
	table.Render()

	contributors := l.Contributors()
	if len(args) == 1 {
		addr, err := chain.ParseAddress(args[0])
		if err != nil {
			return err
		}
		ux.Logger.PrintToUser("whitelisted: %t, blacklisted: %t", l.IsWhitelisted(addr), l.IsBlacklisted(addr))
		contributors = []common.Address{addr}
	}
	if len(contributors) == 0 {
		return nil
	}
	ux.Logger.PrintLineSeparator()
	entries := ux.DefaultTable("Contributor", "Wei", "Vests")
	for _, addr := range contributors {
		c := l.Contribution(addr)
		entries.AppendRow(addr.Hex(), ux.FormatAmount(c.Wei), strconv.FormatBool(c.Vests))
	}
	entries.Render()
	return nil
}
