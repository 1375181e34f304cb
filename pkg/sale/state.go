// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sale

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/jonboulle/clockwork"
	"github.com/luxfi/geth/common"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/tge/pkg/chain"
	"github.com/luxfi/tge/pkg/constants"
	"github.com/luxfi/tge/pkg/contract"
)

type Entry struct {
	Address common.Address `json:"address"`
	contract.Contribution
}

type State struct {
	Address     common.Address   `json:"address"`
	Owner       common.Address   `json:"owner"`
	Config      Config           `json:"config"`
	WeiRaised   *uint256.Int     `json:"weiRaised"`
	Entries     []Entry          `json:"entries"`
	Whitelisted []common.Address `json:"whitelisted,omitempty"`
	Blacklisted []common.Address `json:"blacklisted,omitempty"`
}

func (l *Ledger) Snapshot() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := State{
		Address:     l.address,
		Owner:       l.Owner(),
		Config:      l.cfg.clone(),
		WeiRaised:   l.weiRaised.Clone(),
		Whitelisted: l.access.Whitelisted(),
		Blacklisted: l.access.Blacklisted(),
	}
	for _, addr := range l.contributors.List() {
		s.Entries = append(s.Entries, Entry{Address: addr, Contribution: l.contributions[addr].Clone()})
	}
	return s
}

// Restore rebuilds a Ledger from a snapshot. The start time is not checked
// against the clock since a restored sale may already be running.
func Restore(log luxlog.Logger, clock clockwork.Clock, bank chain.Transferer, s State) (*Ledger, error) {
	if err := s.Config.Validate(s.Config.StartTime); err != nil {
		return nil, fmt.Errorf("restoring sale: %w", err)
	}
	if chain.IsZero(s.Address) || bank == nil {
		return nil, fmt.Errorf("%w: restoring sale", constants.ErrInvalidAddress)
	}
	ownable, err := contract.NewOwnable(s.Owner)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = luxlog.NewNoOpLogger()
	}
	l := &Ledger{
		log:           log,
		clock:         clock,
		bank:          bank,
		address:       s.Address,
		Ownable:       ownable,
		cfg:           s.Config.clone(),
		weiRaised:     new(uint256.Int),
		contributions: make(map[common.Address]contract.Contribution),
		contributors:  contract.NewRegistry(),
		access:        contract.NewAccessList(),
	}
	if s.WeiRaised != nil {
		l.weiRaised = s.WeiRaised.Clone()
	}
	for _, e := range s.Entries {
		l.contributions[e.Address] = e.Contribution.Clone()
		l.contributors.Add(e.Address)
	}
	l.access.Whitelist(s.Whitelisted...)
	l.access.Blacklist(s.Blacklisted...)
	return l, nil
}
