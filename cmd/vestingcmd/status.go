// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vestingcmd

import (
	"strconv"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/tge/pkg/chain"
	"github.com/luxfi/tge/pkg/ux"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [beneficiary]",
		Short: "Show vesting schedules",
		Args:  cobra.MaximumNArgs(1),
		RunE:  status,
	}
}

func status(_ *cobra.Command, args []string) error {
	d, err := app.LoadDeployment()
	if err != nil {
		return err
	}
	beneficiaries := d.Engine.Allocations()
	if len(args) == 1 {
		addr, err := chain.ParseAddress(args[0])
		if err != nil {
			return err
		}
		beneficiaries = []common.Address{addr}
	}

	now := d.BlockTime()
	ux.Logger.PrintToUser("Block time %d", now)
	table := ux.DefaultTable("Beneficiary", "Escrow", "Total", "Released", "Releasable", "Vesting ends")
	for _, addr := range beneficiaries {
		escrow, ok := d.Engine.Escrow(addr)
		if !ok {
			continue
		}
		s := escrow.Schedule()
		table.AppendRow(addr.Hex(), escrow.Address().Hex(), ux.FormatAmount(s.Total),
			ux.FormatAmount(s.Released), ux.FormatAmount(escrow.Releasable(now)), strconv.FormatUint(s.Start+s.Duration, 10))
	}
	table.Render()
	return nil
}
