// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/tge/pkg/constants"
)

// ParseAmount parses a decimal or 0x-prefixed hex amount. Underscores may be
// used as digit separators.
func ParseAmount(s string) (*uint256.Int, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	if s == "" {
		return nil, fmt.Errorf("%w: empty amount", constants.ErrZeroAmount)
	}
	var (
		v   *uint256.Int
		err error
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err = uint256.FromHex(s)
	} else {
		v, err = uint256.FromDecimal(s)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: invalid amount %q: %s", constants.ErrOverflow, s, err)
	}
	return v, nil
}

// ParseAddress parses a hex address and rejects the zero address
func ParseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", constants.ErrInvalidAddress, s)
	}
	addr := common.HexToAddress(s)
	if IsZero(addr) {
		return common.Address{}, fmt.Errorf("%w: zero address", constants.ErrInvalidAddress)
	}
	return addr, nil
}

func ParseAddresses(ss []string) ([]common.Address, error) {
	out := make([]common.Address, 0, len(ss))
	for _, s := range ss {
		addr, err := ParseAddress(s)
		if err != nil {
			return nil, err
		}
		out = append(out, addr)
	}
	return out, nil
}
