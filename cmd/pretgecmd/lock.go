// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pretgecmd

import (
	"github.com/luxfi/tge/cmd/flags"
	"github.com/luxfi/tge/pkg/deployment"
	"github.com/luxfi/tge/pkg/ux"
	"github.com/spf13/cobra"
)

var lockFrom string

func newLockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lock",
		Short: "Permanently lock the pre-TGE ledger",
		Args:  cobra.NoArgs,
		RunE:  lock,
	}
	flags.AddFromFlagToCmd(cmd, &lockFrom)
	return cmd
}

func lock(_ *cobra.Command, _ []string) error {
	caller, err := flags.Caller(lockFrom)
	if err != nil {
		return err
	}
	return app.UpdateDeployment(func(d *deployment.Deployment) error {
		if err := d.PreTGE.Lock(caller); err != nil {
			return err
		}
		ux.Logger.GreenCheckmarkToUser("Pre-TGE ledger locked with %d contributors", len(d.PreTGE.Contributors()))
		return nil
	})
}
