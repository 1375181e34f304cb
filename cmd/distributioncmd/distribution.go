// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package distributioncmd holds the top level commands served by the allocation engine
package distributioncmd

import (
	"github.com/luxfi/tge/pkg/application"
	"github.com/spf13/cobra"
)

var app *application.Lux

// NewCmds returns settle, mint, unpause and allocation
func NewCmds(injectedApp *application.Lux) []*cobra.Command {
	app = injectedApp
	return []*cobra.Command{
		newSettleCmd(),
		newMintCmd(),
		newUnpauseCmd(),
		newAllocationCmd(),
	}
}
