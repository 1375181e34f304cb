// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package flags

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/tge/pkg/chain"
	"github.com/spf13/cobra"
)

const (
	fromFlag = "from"
)

var ErrMissingFrom = errors.New("--from is required: the address the call is sent from")

// AddFromFlagToCmd registers --from and rejects the command before it runs when the value is not an address
func AddFromFlagToCmd(cmd *cobra.Command, from *string) {
	cmd.Flags().StringVar(from, fromFlag, "", "address of the calling account")

	existingPreRunE := cmd.PreRunE
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if existingPreRunE != nil {
			if err := existingPreRunE(cmd, args); err != nil {
				return err
			}
		}
		_, err := Caller(*from)
		return err
	}
}

// Caller parses the value given to --from
func Caller(from string) (common.Address, error) {
	if from == "" {
		return common.Address{}, ErrMissingFrom
	}
	addr, err := chain.ParseAddress(from)
	if err != nil {
		return common.Address{}, fmt.Errorf("--%s: %w", fromFlag, err)
	}
	return addr, nil
}

// Amount parses a positional or flag amount, naming it in the error
func Amount(name, value string) (*uint256.Int, error) {
	v, err := chain.ParseAmount(value)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", name, value, err)
	}
	return v, nil
}
