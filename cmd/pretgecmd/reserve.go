// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pretgecmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/tge/cmd/flags"
	"github.com/luxfi/tge/pkg/chain"
	"github.com/luxfi/tge/pkg/deployment"
	"github.com/luxfi/tge/pkg/ux"
	"github.com/spf13/cobra"
)

var reserveFrom string

func newReserveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reserve <address:wei[:vest]>...",
		Short: "Reserve pre-TGE allocations",
		Long: `Reserve records one allocation per argument. Amounts add up for an address
that is already reserved and the vesting flag is replaced. The whole batch is
rejected if any entry is invalid.

Example:
  tge pretge reserve --from 0xOwner 0xA1:5000000 0xB1:2_500_000:vest`,
		Args: cobra.MinimumNArgs(1),
		RunE: reserve,
	}
	flags.AddFromFlagToCmd(cmd, &reserveFrom)
	return cmd
}

func parseReservation(arg string) (common.Address, *uint256.Int, bool, error) {
	parts := strings.Split(arg, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return common.Address{}, nil, false, fmt.Errorf("invalid reservation %q, expected address:wei[:vest]", arg)
	}
	addr, err := chain.ParseAddress(parts[0])
	if err != nil {
		return common.Address{}, nil, false, err
	}
	wei, err := flags.Amount("wei", parts[1])
	if err != nil {
		return common.Address{}, nil, false, err
	}
	vest := false
	if len(parts) == 3 {
		if parts[2] == "vest" {
			vest = true
		} else if vest, err = strconv.ParseBool(parts[2]); err != nil {
			return common.Address{}, nil, false, fmt.Errorf("invalid vesting flag %q in %q", parts[2], arg)
		}
	}
	return addr, wei, vest, nil
}

func reserve(_ *cobra.Command, args []string) error {
	caller, err := flags.Caller(reserveFrom)
	if err != nil {
		return err
	}
	addrs := make([]common.Address, len(args))
	weis := make([]*uint256.Int, len(args))
	vests := make([]bool, len(args))
	for i, arg := range args {
		if addrs[i], weis[i], vests[i], err = parseReservation(arg); err != nil {
			return err
		}
	}
	return app.UpdateDeployment(func(d *deployment.Deployment) error {
		if err := d.PreTGE.BulkReserve(caller, addrs, weis, vests); err != nil {
			return err
		}
		ux.Logger.GreenCheckmarkToUser("Reserved %d pre-TGE allocations", len(addrs))
		return nil
	})
}
