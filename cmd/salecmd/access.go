// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package salecmd

import (
	"github.com/luxfi/geth/common"
	"github.com/luxfi/tge/cmd/flags"
	"github.com/luxfi/tge/pkg/chain"
	"github.com/luxfi/tge/pkg/deployment"
	"github.com/luxfi/tge/pkg/sale"
	"github.com/luxfi/tge/pkg/ux"
	"github.com/spf13/cobra"
)

var accessFrom string

type accessUpdate func(l *sale.Ledger, caller common.Address, addrs []common.Address) error

func newWhitelistCmd() *cobra.Command {
	return newAccessCmd("whitelist", "Allow addresses to contribute", "whitelisted", (*sale.Ledger).Whitelist)
}

func newBlacklistCmd() *cobra.Command {
	return newAccessCmd("blacklist", "Bar addresses from contributing, overriding the whitelist", "blacklisted", (*sale.Ledger).Blacklist)
}

func newAccessCmd(use, short, done string, update accessUpdate) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <address>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			caller, err := flags.Caller(accessFrom)
			if err != nil {
				return err
			}
			addrs, err := chain.ParseAddresses(args)
			if err != nil {
				return err
			}
			return app.UpdateDeployment(func(d *deployment.Deployment) error {
				if err := update(d.Sale, caller, addrs); err != nil {
					return err
				}
				ux.Logger.GreenCheckmarkToUser("%d addresses %s", len(addrs), done)
				return nil
			})
		},
	}
	flags.AddFromFlagToCmd(cmd, &accessFrom)
	return cmd
}
