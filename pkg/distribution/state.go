// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package distribution

import (
	"fmt"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/tge/pkg/vesting"
)

type Entry struct {
	Address common.Address `json:"address"`
	Allocation
}

type State struct {
	Address     common.Address  `json:"address"`
	Owner       common.Address  `json:"owner"`
	Params      Params          `json:"params"`
	Nonce       uint64          `json:"nonce"`
	Allocations []Entry         `json:"allocations"`
	Escrows     []vesting.State `json:"escrows"`
}

// Snapshot captures settled allocations in settlement order
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := State{
		Address: e.address,
		Owner:   e.Owner(),
		Params:  e.params.clone(),
		Nonce:   e.nonce,
	}
	for _, addr := range e.settled.List() {
		s.Allocations = append(s.Allocations, Entry{Address: addr, Allocation: e.allocations[addr].clone()})
		if escrow, ok := e.escrows[addr]; ok {
			s.Escrows = append(s.Escrows, escrow.Snapshot())
		}
	}
	return s
}

// Restore rebuilds an engine from a snapshot. deps.Address and deps.Owner are
// taken from the snapshot.
func Restore(deps Deps, s State) (*Engine, error) {
	deps.Address = s.Address
	deps.Owner = s.Owner
	e, err := newEngine(s.Params, deps, false)
	if err != nil {
		return nil, fmt.Errorf("restoring engine: %w", err)
	}
	if s.Nonce > e.nonce {
		e.nonce = s.Nonce
	}
	for _, entry := range s.Allocations {
		e.allocations[entry.Address] = entry.Allocation.clone()
		e.settled.Add(entry.Address)
	}
	for _, es := range s.Escrows {
		escrow, err := vesting.Restore(e.log, e.clock, e.token, es)
		if err != nil {
			return nil, fmt.Errorf("restoring escrow %s: %w", es.Address.Hex(), err)
		}
		e.escrows[escrow.Beneficiary()] = escrow
	}
	return e, nil
}
