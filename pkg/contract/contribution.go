// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import "github.com/holiman/uint256"

// Contribution is the per-address record kept by both contribution ledgers
type Contribution struct {
	Vests bool         `json:"vests"`
	Wei   *uint256.Int `json:"wei"`
}

// ZeroContribution is returned for addresses a ledger has never seen
func ZeroContribution() Contribution {
	return Contribution{Wei: new(uint256.Int)}
}

func (c Contribution) Clone() Contribution {
	if c.Wei == nil {
		return Contribution{Vests: c.Vests, Wei: new(uint256.Int)}
	}
	return Contribution{Vests: c.Vests, Wei: c.Wei.Clone()}
}

func (c Contribution) IsZero() bool {
	return c.Wei == nil || c.Wei.IsZero()
}
