// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package bankcmd manages native currency and token balances of simulated accounts
package bankcmd

import (
	"github.com/luxfi/geth/common"
	"github.com/luxfi/tge/cmd/flags"
	"github.com/luxfi/tge/pkg/application"
	"github.com/luxfi/tge/pkg/chain"
	"github.com/luxfi/tge/pkg/deployment"
	"github.com/luxfi/tge/pkg/ux"
	"github.com/spf13/cobra"
)

var app *application.Lux

// NewCmds returns fund and balance
func NewCmds(injectedApp *application.Lux) []*cobra.Command {
	app = injectedApp
	return []*cobra.Command{
		newFundCmd(),
		newBalanceCmd(),
	}
}

func newFundCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fund <address> <wei>",
		Short: "Credit native currency to an account",
		Long: `Fund credits wei to an account of the simulated chain, so it can
contribute to the sale. Sending to the sale address itself produces funds that
only the sale owner can reclaim.`,
		Args: cobra.ExactArgs(2),
		RunE: fund,
	}
}

func fund(_ *cobra.Command, args []string) error {
	addr, err := chain.ParseAddress(args[0])
	if err != nil {
		return err
	}
	wei, err := flags.Amount("wei", args[1])
	if err != nil {
		return err
	}
	return app.UpdateDeployment(func(d *deployment.Deployment) error {
		if err := d.Bank.Credit(addr, wei); err != nil {
			return err
		}
		ux.Logger.GreenCheckmarkToUser("Funded %s with %s wei, balance %s",
			addr.Hex(), ux.FormatAmount(wei), ux.FormatAmount(d.Bank.BalanceOf(addr)))
		return nil
	})
}

func newBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance [address]...",
		Short: "Show native and token balances",
		Long:  "Balance shows the given accounts, or every account holding native currency.",
		RunE:  balance,
	}
}

func balance(_ *cobra.Command, args []string) error {
	d, err := app.LoadDeployment()
	if err != nil {
		return err
	}
	addrs := d.Bank.Accounts()
	if len(args) > 0 {
		if addrs, err = chain.ParseAddresses(args); err != nil {
			return err
		}
	}
	table := ux.DefaultTable("Address", "Wei", d.Token.Symbol()).AlignRight()
	for _, addr := range addrs {
		table.AppendRow(label(d, addr), ux.FormatAmount(d.Bank.BalanceOf(addr)), ux.FormatAmount(d.Token.BalanceOf(addr)))
	}
	table.Render()
	return nil
}

func label(d *deployment.Deployment, addr common.Address) string {
	switch addr {
	case d.Sale.Address():
		return addr.Hex() + " (sale)"
	case d.Sale.Config().Treasury:
		return addr.Hex() + " (treasury)"
	case d.Owner:
		return addr.Hex() + " (owner)"
	}
	return addr.Hex()
}
