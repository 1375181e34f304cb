// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package distributioncmd

import (
	"errors"
	"fmt"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/tge/cmd/flags"
	"github.com/luxfi/tge/pkg/constants"
	"github.com/luxfi/tge/pkg/contract"
	"github.com/luxfi/tge/pkg/deployment"
	"github.com/luxfi/tge/pkg/distribution"
	"github.com/luxfi/tge/pkg/ux"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const maxParallelSettlements = 8

var (
	settleFrom string
	settleAll  bool
)

var errNoneSettled = errors.New("no allocation could be settled")

func newSettleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settle",
		Short: "Convert contributions into tokens",
		Long: `Settle mints the allocation of the caller once the pre-TGE ledger is locked
and the settlement grace period has passed. Vesting allocations get the bonus
multiplier, ten percent is minted directly and the rest goes to a new vesting
escrow. Each address settles once.

--all settles every known contributor, each as its own caller.

Example:
  tge settle --from 0xC1
  tge settle --all`,
		Args: cobra.NoArgs,
		RunE: settle,
	}
	cmd.Flags().StringVar(&settleFrom, "from", "", "address of the calling account")
	cmd.Flags().BoolVar(&settleAll, "all", false, "settle every unsettled contributor")
	cmd.MarkFlagsMutuallyExclusive("from", "all")
	cmd.MarkFlagsOneRequired("from", "all")
	return cmd
}

func settle(_ *cobra.Command, _ []string) error {
	if settleAll {
		return app.UpdateDeployment(settleEveryone)
	}
	caller, err := flags.Caller(settleFrom)
	if err != nil {
		return err
	}
	return app.UpdateDeployment(func(d *deployment.Deployment) error {
		alloc, err := d.Engine.Settle(caller)
		if err != nil {
			return err
		}
		ux.Logger.GreenCheckmarkToUser("Settled %s", caller.Hex())
		printAllocation(caller, alloc)
		return nil
	})
}

// pendingContributors lists pre-TGE then public sale contributors without an allocation, once each
func pendingContributors(d *deployment.Deployment) []common.Address {
	seen := contract.NewRegistry()
	for _, addr := range d.PreTGE.Contributors() {
		seen.Add(addr)
	}
	for _, addr := range d.Sale.Contributors() {
		seen.Add(addr)
	}
	var pending []common.Address
	for _, addr := range seen.List() {
		if _, ok := d.Engine.Allocation(addr); !ok {
			pending = append(pending, addr)
		}
	}
	return pending
}

func settleEveryone(d *deployment.Deployment) error {
	pending := pendingContributors(d)
	if len(pending) == 0 {
		ux.Logger.PrintToUser("Nothing to settle")
		return nil
	}

	results := make([]error, len(pending))
	var g errgroup.Group
	g.SetLimit(maxParallelSettlements)
	for i, addr := range pending {
		g.Go(func() error {
			_, results[i] = d.Engine.Settle(addr)
			return nil
		})
	}
	_ = g.Wait()

	// settlement gates are shared, so the first refusal is the same for everyone
	settled := 0
	table := ux.DefaultTable("Address", "Result")
	for i, addr := range pending {
		if err := results[i]; err != nil {
			app.Log.Warn("settlement failed", zap.String("address", addr.Hex()), zap.Error(err))
			table.AppendRow(addr.Hex(), fmt.Sprintf("%s: %s", constants.KindOf(err), err))
			continue
		}
		settled++
		table.AppendRow(addr.Hex(), "settled")
	}
	table.Render()
	if settled == 0 {
		return fmt.Errorf("%w: %w", errNoneSettled, results[0])
	}
	ux.Logger.GreenCheckmarkToUser("Settled %d of %d contributors", settled, len(pending))
	return nil
}

func printAllocation(addr common.Address, a distribution.Allocation) {
	table := ux.DefaultTable("Field", "Value")
	table.AppendRow("address", addr.Hex())
	table.AppendRow("total wei", ux.FormatAmount(a.TotalWei))
	table.AppendRow("vests", fmt.Sprintf("%t", a.Vests))
	table.AppendRow("vested tokens", ux.FormatAmount(a.VestedTokens))
	table.AppendRow("direct tokens", ux.FormatAmount(a.DirectTokens))
	table.AppendRow("escrowed tokens", ux.FormatAmount(a.EscrowTokens()))
	if a.Escrow != (common.Address{}) {
		table.AppendRow("escrow", a.Escrow.Hex())
	}
	table.AppendRow("settled", fmt.Sprintf("%t", a.Settled))
	table.Render()
}
