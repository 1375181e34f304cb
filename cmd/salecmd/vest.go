// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package salecmd

import (
	"fmt"
	"strconv"

	"github.com/luxfi/tge/cmd/flags"
	"github.com/luxfi/tge/pkg/deployment"
	"github.com/luxfi/tge/pkg/ux"
	"github.com/spf13/cobra"
)

var vestFrom string

func newVestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vest <true|false>",
		Short: "Change the vesting decision of an existing contribution",
		Long: `Vest flips the vesting decision of the caller. It is accepted from the sale
start until the end of the settlement grace period.`,
		Args: cobra.ExactArgs(1),
		RunE: vest,
	}
	flags.AddFromFlagToCmd(cmd, &vestFrom)
	return cmd
}

func vest(_ *cobra.Command, args []string) error {
	caller, err := flags.Caller(vestFrom)
	if err != nil {
		return err
	}
	decision, err := strconv.ParseBool(args[0])
	if err != nil {
		return fmt.Errorf("invalid vesting decision %q: %w", args[0], err)
	}
	return app.UpdateDeployment(func(d *deployment.Deployment) error {
		if err := d.Sale.ChangeVestingDecision(caller, decision); err != nil {
			return err
		}
		ux.Logger.GreenCheckmarkToUser("Vesting decision of %s is now %t", caller.Hex(), decision)
		return nil
	})
}
