// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package flags

import (
	"github.com/luxfi/geth/common"
	"github.com/luxfi/tge/pkg/chain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var _ pflag.Value = (*Address)(nil)

// Address is a flag value holding a non-zero account address
type Address struct {
	common.Address
	set bool
}

func (a *Address) String() string {
	if !a.set {
		return ""
	}
	return a.Hex()
}

func (a *Address) Set(s string) error {
	addr, err := chain.ParseAddress(s)
	if err != nil {
		return err
	}
	a.Address = addr
	a.set = true
	return nil
}

func (*Address) Type() string {
	return "address"
}

// AddAddressFlagToCmd registers a required address flag
func AddAddressFlagToCmd(cmd *cobra.Command, addr *Address, name, usage string) {
	*addr = Address{}
	cmd.Flags().Var(addr, name, usage)
	_ = cmd.MarkFlagRequired(name)
}
