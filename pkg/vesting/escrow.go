// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vesting holds tokens for a single beneficiary and releases them
// linearly between a start time and start+duration.
package vesting

import (
	"fmt"
	"sync"
	"time"

	"github.com/holiman/uint256"
	"github.com/jonboulle/clockwork"
	"github.com/luxfi/geth/common"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/tge/pkg/chain"
	"github.com/luxfi/tge/pkg/constants"
	"github.com/luxfi/tge/pkg/metrics"
)

// Token is the part of the token ledger an escrow needs
type Token interface {
	Transfer(from, to common.Address, amount *uint256.Int) error
	BalanceOf(addr common.Address) *uint256.Int
}

// Schedule is a linear release curve. Start is unix seconds, Duration is seconds.
type Schedule struct {
	Beneficiary common.Address `json:"beneficiary"`
	Total       *uint256.Int   `json:"total"`
	Start       uint64         `json:"start"`
	Duration    uint64         `json:"duration"`
	Released    *uint256.Int   `json:"released"`
}

func (s Schedule) clone() Schedule {
	out := s
	if s.Total != nil {
		out.Total = s.Total.Clone()
	}
	if s.Released != nil {
		out.Released = s.Released.Clone()
	}
	return out
}

func (s Schedule) validate() error {
	if chain.IsZero(s.Beneficiary) {
		return fmt.Errorf("%w: beneficiary", constants.ErrInvalidAddress)
	}
	if s.Duration == 0 {
		return constants.ErrZeroDuration
	}
	if s.Total == nil || s.Released == nil {
		return fmt.Errorf("%w: schedule amounts", constants.ErrZeroAmount)
	}
	if s.Released.Gt(s.Total) {
		return fmt.Errorf("%w: released %s above total %s", constants.ErrOverflow, s.Released.Dec(), s.Total.Dec())
	}
	return nil
}

// Vested is the amount unlocked at now, released or not
func (s Schedule) Vested(now uint64) *uint256.Int {
	if now <= s.Start {
		return new(uint256.Int)
	}
	elapsed := now - s.Start
	if elapsed >= s.Duration {
		return s.Total.Clone()
	}
	// elapsed < duration so the quotient always fits
	vested, _ := new(uint256.Int).MulDivOverflow(s.Total, uint256.NewInt(elapsed), uint256.NewInt(s.Duration))
	return vested
}

func (s Schedule) Releasable(now uint64) *uint256.Int {
	vested := s.Vested(now)
	if vested.Lt(s.Released) {
		return new(uint256.Int)
	}
	return vested.Sub(vested, s.Released)
}

type Escrow struct {
	log     luxlog.Logger
	clock   clockwork.Clock
	token   Token
	address common.Address

	mu       sync.Mutex
	schedule Schedule
}

// New creates an escrow at address for beneficiary. The caller is expected to
// fund the escrow address with total tokens.
func New(
	log luxlog.Logger,
	clock clockwork.Clock,
	token Token,
	address common.Address,
	beneficiary common.Address,
	total *uint256.Int,
	start uint64,
	duration time.Duration,
) (*Escrow, error) {
	if total == nil {
		return nil, fmt.Errorf("%w: escrow total", constants.ErrZeroAmount)
	}
	return newEscrow(log, clock, token, address, Schedule{
		Beneficiary: beneficiary,
		Total:       total.Clone(),
		Start:       start,
		Duration:    chain.Seconds(duration),
		Released:    new(uint256.Int),
	})
}

func newEscrow(log luxlog.Logger, clock clockwork.Clock, token Token, address common.Address, s Schedule) (*Escrow, error) {
	if chain.IsZero(address) {
		return nil, fmt.Errorf("%w: escrow address", constants.ErrInvalidAddress)
	}
	if token == nil {
		return nil, fmt.Errorf("%w: no token", constants.ErrInvalidAddress)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = luxlog.NewNoOpLogger()
	}
	return &Escrow{
		log:      log,
		clock:    clock,
		token:    token,
		address:  address,
		schedule: s,
	}, nil
}

func (e *Escrow) Address() common.Address {
	return e.address
}

func (e *Escrow) Beneficiary() common.Address {
	return e.schedule.Beneficiary
}

func (e *Escrow) Schedule() Schedule {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.schedule.clone()
}

func (e *Escrow) Vested(now uint64) *uint256.Int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.schedule.Vested(now)
}

func (e *Escrow) Releasable(now uint64) *uint256.Int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.schedule.Releasable(now)
}

// Release transfers everything releasable at the current block time to the
// beneficiary. Anyone may call it; the recipient is fixed.
func (e *Escrow) Release(caller common.Address) (*uint256.Int, error) {
	amount, err := e.release(caller)
	metrics.ObserveRelease(err)
	return amount, err
}

func (e *Escrow) release(caller common.Address) (*uint256.Int, error) {
	now := chain.BlockTime(e.clock)

	e.mu.Lock()
	amount := e.schedule.Releasable(now)
	if amount.IsZero() {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: %s at %d", constants.ErrNothingToRelease, e.schedule.Beneficiary.Hex(), now)
	}
	e.schedule.Released = new(uint256.Int).Add(e.schedule.Released, amount)
	e.mu.Unlock()

	if err := e.token.Transfer(e.address, e.schedule.Beneficiary, amount); err != nil {
		e.mu.Lock()
		e.schedule.Released = new(uint256.Int).Sub(e.schedule.Released, amount)
		e.mu.Unlock()
		return nil, fmt.Errorf("releasing %s to %s: %w", amount.Dec(), e.schedule.Beneficiary.Hex(), err)
	}
	e.log.Info("released vested tokens",
		"beneficiary", e.schedule.Beneficiary.Hex(),
		"amount", amount.Dec(),
		"caller", caller.Hex(),
	)
	return amount, nil
}
