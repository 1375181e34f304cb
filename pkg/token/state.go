// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package token

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	luxlog "github.com/luxfi/log"
)

// State is the persisted form of a Ledger
type State struct {
	Address     common.Address                  `json:"address"`
	Owner       common.Address                  `json:"owner"`
	Name        string                          `json:"name"`
	Symbol      string                          `json:"symbol"`
	MaxSupply   *uint256.Int                    `json:"maxSupply"`
	TotalSupply *uint256.Int                    `json:"totalSupply"`
	Paused      bool                            `json:"paused"`
	Balances    map[common.Address]*uint256.Int `json:"balances"`
}

func (l *Ledger) Snapshot() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	balances := make(map[common.Address]*uint256.Int, len(l.balances))
	for addr, bal := range l.balances {
		if !bal.IsZero() {
			balances[addr] = bal.Clone()
		}
	}
	return State{
		Address:     l.address,
		Owner:       l.Owner(),
		Name:        l.name,
		Symbol:      l.symbol,
		MaxSupply:   l.maxSupply.Clone(),
		TotalSupply: l.totalSupply.Clone(),
		Paused:      l.paused,
		Balances:    balances,
	}
}

// Restore rebuilds a ledger from a snapshot. Receiver hooks are not persisted.
func Restore(log luxlog.Logger, s State) (*Ledger, error) {
	l, err := New(log, s.Address, s.Owner, Config{Name: s.Name, Symbol: s.Symbol, MaxSupply: s.MaxSupply})
	if err != nil {
		return nil, err
	}
	l.paused = s.Paused
	if s.TotalSupply != nil {
		l.totalSupply = s.TotalSupply.Clone()
	}
	for addr, bal := range s.Balances {
		if bal != nil {
			l.balances[addr] = bal.Clone()
		}
	}
	return l, nil
}
