// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package deployment

import (
	"fmt"
	"time"

	"github.com/holiman/uint256"
	"github.com/jonboulle/clockwork"
	"github.com/luxfi/geth/common"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/tge/pkg/chain"
	"github.com/luxfi/tge/pkg/constants"
	"github.com/luxfi/tge/pkg/distribution"
	"github.com/luxfi/tge/pkg/pretge"
	"github.com/luxfi/tge/pkg/sale"
	"github.com/luxfi/tge/pkg/token"
)

// State is the persisted form of a Deployment
type State struct {
	Version  string                          `json:"version"`
	Time     time.Time                       `json:"time"`
	Owner    common.Address                  `json:"owner"`
	Balances map[common.Address]*uint256.Int `json:"balances"`
	Token    token.State                     `json:"token"`
	PreTGE   pretge.State                    `json:"preTGE"`
	Sale     sale.State                      `json:"sale"`
	Engine   distribution.State              `json:"engine"`
}

func (d *Deployment) Snapshot() State {
	return State{
		Version:  constants.StateVersion,
		Time:     d.Clock.Now().UTC(),
		Owner:    d.Owner,
		Balances: d.Bank.Snapshot(),
		Token:    d.Token.Snapshot(),
		PreTGE:   d.PreTGE.Snapshot(),
		Sale:     d.Sale.Snapshot(),
		Engine:   d.Engine.Snapshot(),
	}
}

func Restore(log luxlog.Logger, s State) (*Deployment, error) {
	if s.Version != constants.StateVersion {
		return nil, fmt.Errorf("unsupported state version %q, expected %q", s.Version, constants.StateVersion)
	}
	if log == nil {
		log = luxlog.NewNoOpLogger()
	}
	clock := clockwork.NewFakeClockAt(s.Time)
	bank := chain.RestoreBank(s.Balances)
	tok, err := token.Restore(log, s.Token)
	if err != nil {
		return nil, fmt.Errorf("restoring token: %w", err)
	}
	pre, err := pretge.Restore(log, s.PreTGE)
	if err != nil {
		return nil, fmt.Errorf("restoring pre-TGE ledger: %w", err)
	}
	sl, err := sale.Restore(log, clock, bank, s.Sale)
	if err != nil {
		return nil, err
	}
	engine, err := distribution.Restore(distribution.Deps{
		Log:    log,
		Clock:  clock,
		PreTGE: pre,
		Sale:   sl,
		Token:  tok,
	}, s.Engine)
	if err != nil {
		return nil, err
	}
	return &Deployment{
		Clock:  clock,
		Bank:   bank,
		Owner:  s.Owner,
		Token:  tok,
		PreTGE: pre,
		Sale:   sl,
		Engine: engine,
	}, nil
}
