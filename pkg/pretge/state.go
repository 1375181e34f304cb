// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pretge

import (
	"github.com/luxfi/geth/common"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/tge/pkg/contract"
)

type Entry struct {
	Address common.Address `json:"address"`
	contract.Contribution
}

// State is the persisted form of a Ledger; entries keep registry order
type State struct {
	Address common.Address `json:"address"`
	Owner   common.Address `json:"owner"`
	Locked  bool           `json:"locked"`
	Entries []Entry        `json:"entries"`
}

func (l *Ledger) Snapshot() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s := State{
		Address: l.address,
		Owner:   l.Owner(),
		Locked:  l.locked,
	}
	for _, addr := range l.contributors.List() {
		s.Entries = append(s.Entries, Entry{Address: addr, Contribution: l.contributions[addr].Clone()})
	}
	return s
}

func Restore(log luxlog.Logger, s State) (*Ledger, error) {
	l, err := New(log, s.Address, s.Owner)
	if err != nil {
		return nil, err
	}
	for _, e := range s.Entries {
		l.contributions[e.Address] = e.Contribution.Clone()
		l.contributors.Add(e.Address)
	}
	l.locked = s.Locked
	return l, nil
}
