// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package timecmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/luxfi/tge/pkg/application"
	"github.com/luxfi/tge/pkg/deployment"
	"github.com/luxfi/tge/pkg/ux"
	"github.com/spf13/cobra"
)

var (
	app *application.Lux

	advanceTo string
)

// tge time
func NewCmd(injectedApp *application.Lux) *cobra.Command {
	app = injectedApp

	cmd := &cobra.Command{
		Use:   "time",
		Short: "Inspect and move the simulated block time",
		Run: func(cmd *cobra.Command, args []string) {
			err := cmd.Help()
			if err != nil {
				fmt.Println(err)
			}
		},
	}

	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newAdvanceCmd())

	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current block time",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			d, err := app.LoadDeployment()
			if err != nil {
				return err
			}
			printTime(d)
			return nil
		},
	}
}

func newAdvanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advance [duration]",
		Short: "Move the block time forward",
		Long: `Advance moves the block time forward by a duration such as 90s, 2h or 5d,
or to an absolute unix timestamp with --to. Time never moves backwards.

Example:
  tge time advance 5d
  tge time advance --to 1735689900`,
		Args: cobra.MaximumNArgs(1),
		RunE: advance,
	}
	cmd.Flags().StringVar(&advanceTo, "to", "", "unix timestamp to move to")
	return cmd
}

func advance(_ *cobra.Command, args []string) error {
	var (
		by  time.Duration
		to  uint64
		err error
	)
	switch {
	case advanceTo != "" && len(args) == 1:
		return errors.New("give either a duration or --to, not both")
	case advanceTo != "":
		if to, err = strconv.ParseUint(advanceTo, 10, 64); err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", advanceTo, err)
		}
	case len(args) == 1:
		if by, err = deployment.ParseDuration(args[0], 0); err != nil {
			return err
		}
	default:
		return errors.New("missing duration")
	}
	return app.UpdateDeployment(func(d *deployment.Deployment) error {
		if to > 0 {
			d.AdvanceTo(to)
		} else {
			d.Advance(by)
		}
		printTime(d)
		return nil
	})
}

func printTime(d *deployment.Deployment) {
	ux.Logger.PrintToUser("Block time %d (%s), sale phase %s", d.BlockTime(), d.Now().UTC().Format(time.RFC3339), d.Sale.Phase())
}
