// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package deploycmd

import (
	"time"

	"github.com/luxfi/tge/pkg/application"
	"github.com/luxfi/tge/pkg/constants"
	"github.com/luxfi/tge/pkg/deployment"
	"github.com/luxfi/tge/pkg/ux"
	"github.com/spf13/cobra"
)

var (
	app *application.Lux

	specFile string
	force    bool
)

// tge deploy
func NewCmd(injectedApp *application.Lux) *cobra.Command {
	app = injectedApp

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the token, the sale ledgers and the allocation engine",
		Long: `Deploy creates a fresh simulated chain from a deployment file: it deploys
the token, the pre-TGE ledger, the public sale and the allocation engine,
credits the genesis balances and loads the pre-TGE reservations.

Example:
  tge deploy --config tge.yaml
  tge deploy --config tge.yaml --force  # replace the existing deployment`,
		Args: cobra.NoArgs,
		RunE: deploy,
	}

	cmd.Flags().StringVar(&specFile, "config", "", "deployment file (yaml or json)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "replace an existing deployment")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func deploy(_ *cobra.Command, _ []string) error {
	if app.StateExists() && !force {
		return constants.ErrDeploymentExists
	}
	spec, err := deployment.ParseFile(specFile)
	if err != nil {
		return err
	}
	cfg, err := spec.Resolve(time.Now().UTC())
	if err != nil {
		return err
	}
	d, err := deployment.Deploy(app.Log, cfg)
	if err != nil {
		return err
	}
	if err := app.RemoveDeployment(); err != nil {
		return err
	}
	if err := app.SaveDeployment(d); err != nil {
		return err
	}
	if err := app.WriteDeploymentSpec(spec); err != nil {
		return err
	}

	ux.Logger.GreenCheckmarkToUser("Deployed at block time %d (%s)", d.BlockTime(), d.Now().UTC().Format(time.RFC3339))
	table := ux.DefaultTable("Contract", "Address")
	table.AppendRow("token", d.Token.Address().Hex())
	table.AppendRow("pre-TGE ledger", d.PreTGE.Address().Hex())
	table.AppendRow("public sale", d.Sale.Address().Hex())
	table.AppendRow("allocation engine", d.Engine.Address().Hex())
	table.Render()
	ux.Logger.PrintToUser("Sale window %d..%d, settlement opens after %d",
		cfg.Sale.StartTime, cfg.Sale.EndTime, d.Sale.GraceEndsAt())
	return nil
}
