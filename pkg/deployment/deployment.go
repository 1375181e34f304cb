// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package deployment wires the token, both contribution ledgers and the
// allocation engine onto a simulated chain.
package deployment

import (
	"fmt"
	"time"

	"github.com/holiman/uint256"
	"github.com/jonboulle/clockwork"
	"github.com/luxfi/geth/common"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/tge/pkg/chain"
	"github.com/luxfi/tge/pkg/distribution"
	"github.com/luxfi/tge/pkg/pretge"
	"github.com/luxfi/tge/pkg/sale"
	"github.com/luxfi/tge/pkg/token"
)

// Contract nonces of the owner account, in deployment order
const (
	tokenNonce uint64 = iota
	preTGENonce
	saleNonce
	engineNonce
)

type Deployment struct {
	Clock  *clockwork.FakeClock
	Bank   *chain.Bank
	Owner  common.Address
	Token  *token.Ledger
	PreTGE *pretge.Ledger
	Sale   *sale.Ledger
	Engine *distribution.Engine
}

// Deploy creates every component at the genesis time of cfg, credits the
// genesis balances and loads the pre-TGE reservations.
func Deploy(log luxlog.Logger, cfg *Config) (*Deployment, error) {
	if log == nil {
		log = luxlog.NewNoOpLogger()
	}
	clock := clockwork.NewFakeClockAt(cfg.Genesis)
	bank := chain.NewBank()
	for addr, bal := range cfg.Balances {
		if err := bank.Credit(addr, bal); err != nil {
			return nil, fmt.Errorf("crediting genesis balance: %w", err)
		}
	}

	engineAddr := chain.ContractAddress(cfg.Owner, engineNonce)
	tok, err := token.New(log, chain.ContractAddress(cfg.Owner, tokenNonce), engineAddr, cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("deploying token: %w", err)
	}
	pre, err := pretge.New(log, chain.ContractAddress(cfg.Owner, preTGENonce), cfg.Owner)
	if err != nil {
		return nil, fmt.Errorf("deploying pre-TGE ledger: %w", err)
	}
	s, err := sale.New(log, clock, bank, chain.ContractAddress(cfg.Owner, saleNonce), cfg.Owner, cfg.Sale)
	if err != nil {
		return nil, fmt.Errorf("deploying sale: %w", err)
	}
	engine, err := distribution.New(cfg.Params, distribution.Deps{
		Log:     log,
		Clock:   clock,
		Address: engineAddr,
		Owner:   cfg.Owner,
		PreTGE:  pre,
		Sale:    s,
		Token:   tok,
	})
	if err != nil {
		return nil, fmt.Errorf("deploying allocation engine: %w", err)
	}

	if len(cfg.Whitelist) > 0 {
		if err := s.Whitelist(cfg.Owner, cfg.Whitelist); err != nil {
			return nil, err
		}
	}
	if len(cfg.Reservations) > 0 {
		addrs := make([]common.Address, len(cfg.Reservations))
		weis := make([]*uint256.Int, len(cfg.Reservations))
		vests := make([]bool, len(cfg.Reservations))
		for i, r := range cfg.Reservations {
			addrs[i], weis[i], vests[i] = r.Address, r.Wei, r.Vest
		}
		if err := pre.BulkReserve(cfg.Owner, addrs, weis, vests); err != nil {
			return nil, fmt.Errorf("loading reservations: %w", err)
		}
	}
	log.Info("deployed token sale",
		"owner", cfg.Owner.Hex(),
		"token", tok.Address().Hex(),
		"sale", s.Address().Hex(),
		"engine", engineAddr.Hex(),
	)
	return &Deployment{
		Clock:  clock,
		Bank:   bank,
		Owner:  cfg.Owner,
		Token:  tok,
		PreTGE: pre,
		Sale:   s,
		Engine: engine,
	}, nil
}

func (d *Deployment) Now() time.Time {
	return d.Clock.Now()
}

func (d *Deployment) BlockTime() uint64 {
	return chain.BlockTime(d.Clock)
}

// Advance moves the simulated block time forward
func (d *Deployment) Advance(by time.Duration) {
	if by > 0 {
		d.Clock.Advance(by)
	}
}

// AdvanceTo moves the block time to ts if it is in the future
func (d *Deployment) AdvanceTo(ts uint64) {
	if now := d.BlockTime(); ts > now {
		d.Advance(time.Duration(ts-now) * time.Second)
	}
}
