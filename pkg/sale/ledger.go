// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package sale implements the public, capped, time-boxed contribution ledger.
// Contributions are forwarded to the treasury as they are received.
package sale

import (
	"fmt"
	"sync"

	"github.com/holiman/uint256"
	"github.com/jonboulle/clockwork"
	"github.com/luxfi/geth/common"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/tge/pkg/chain"
	"github.com/luxfi/tge/pkg/constants"
	"github.com/luxfi/tge/pkg/contract"
	"github.com/luxfi/tge/pkg/metrics"
)

type Ledger struct {
	log     luxlog.Logger
	clock   clockwork.Clock
	bank    chain.Transferer
	address common.Address
	*contract.Ownable

	mu            sync.Mutex
	cfg           Config
	weiRaised     *uint256.Int
	contributions map[common.Address]contract.Contribution
	contributors  *contract.Registry
	access        *contract.AccessList
}

func New(
	log luxlog.Logger,
	clock clockwork.Clock,
	bank chain.Transferer,
	address common.Address,
	owner common.Address,
	cfg Config,
) (*Ledger, error) {
	if chain.IsZero(address) {
		return nil, fmt.Errorf("%w: sale address", constants.ErrInvalidAddress)
	}
	if bank == nil {
		return nil, fmt.Errorf("%w: no bank", constants.ErrInvalidAddress)
	}
	if err := cfg.Validate(chain.BlockTime(clock)); err != nil {
		return nil, err
	}
	ownable, err := contract.NewOwnable(owner)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = luxlog.NewNoOpLogger()
	}
	return &Ledger{
		log:           log,
		clock:         clock,
		bank:          bank,
		address:       address,
		Ownable:       ownable,
		cfg:           cfg.clone(),
		weiRaised:     new(uint256.Int),
		contributions: make(map[common.Address]contract.Contribution),
		contributors:  contract.NewRegistry(),
		access:        contract.NewAccessList(),
	}, nil
}

func (l *Ledger) Address() common.Address {
	return l.address
}

// Contribute records value from caller with the given vesting decision and forwards
// it to the treasury. Fails without side effects if forwarding fails.
func (l *Ledger) Contribute(caller common.Address, value *uint256.Int, vest bool) error {
	err := l.contribute(caller, value, vest)
	metrics.ObserveContribution(err)
	return err
}

// Receive handles a plain transfer to the sale: a contribution without vesting
func (l *Ledger) Receive(caller common.Address, value *uint256.Int) error {
	return l.Contribute(caller, value, false)
}

func (l *Ledger) contribute(caller common.Address, value *uint256.Int, vest bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.access.Allowed(caller) {
		return fmt.Errorf("%w: %s", constants.ErrNotWhitelisted, caller.Hex())
	}
	now := chain.BlockTime(l.clock)
	if phase := l.cfg.PhaseAt(now); phase != Open {
		return fmt.Errorf("%w: sale is %s", constants.ErrOutOfWindow, phase)
	}
	if value == nil || value.IsZero() {
		return constants.ErrZeroValue
	}

	prior := l.contribution(caller)
	individual, overflow := new(uint256.Int).AddOverflow(prior.Wei, value)
	if overflow || individual.Gt(l.cfg.IndividualCap) {
		return fmt.Errorf("%w: individual cap %s, already contributed %s", constants.ErrCapExceeded, l.cfg.IndividualCap.Dec(), prior.Wei.Dec())
	}
	raised, overflow := new(uint256.Int).AddOverflow(l.weiRaised, value)
	if overflow || raised.Gt(l.cfg.TotalCap) {
		return fmt.Errorf("%w: total cap %s, already raised %s", constants.ErrCapExceeded, l.cfg.TotalCap.Dec(), l.weiRaised.Dec())
	}

	if err := l.bank.Transfer(caller, l.cfg.Treasury, value); err != nil {
		return fmt.Errorf("forwarding contribution to treasury: %w", err)
	}

	l.contributors.Add(caller)
	l.contributions[caller] = contract.Contribution{Vests: vest, Wei: individual}
	l.weiRaised = raised
	l.log.Info("accepted contribution", "address", caller.Hex(), "wei", value.Dec(), "vests", vest)
	return nil
}

// ChangeVestingDecision flips the caller's vesting flag. Allowed from the sale start
// until the grace offset after the sale end has elapsed.
func (l *Ledger) ChangeVestingDecision(caller common.Address, vest bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.access.Allowed(caller) {
		return fmt.Errorf("%w: %s", constants.ErrNotWhitelisted, caller.Hex())
	}
	now := chain.BlockTime(l.clock)
	if now < l.cfg.StartTime || now > l.cfg.GraceEndsAt() {
		return fmt.Errorf("%w: vesting decisions can change until %d", constants.ErrOutOfWindow, l.cfg.GraceEndsAt())
	}
	c, ok := l.contributions[caller]
	if !ok || c.IsZero() {
		return fmt.Errorf("%w: %s has not contributed", constants.ErrNoContribution, caller.Hex())
	}
	if c.Vests == vest {
		return fmt.Errorf("%w: already %t", constants.ErrVestingUnchanged, vest)
	}
	c.Vests = vest
	l.contributions[caller] = c
	l.log.Info("changed vesting decision", "address", caller.Hex(), "vests", vest)
	return nil
}

func (l *Ledger) Whitelist(caller common.Address, addrs []common.Address) error {
	if err := l.OnlyOwner(caller); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.access.Whitelist(addrs...)
	return nil
}

func (l *Ledger) Blacklist(caller common.Address, addrs []common.Address) error {
	if err := l.OnlyOwner(caller); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.access.Blacklist(addrs...)
	return nil
}

func (l *Ledger) SetIndividualCap(caller common.Address, v *uint256.Int) error {
	if err := l.OnlyOwner(caller); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if v == nil || v.IsZero() {
		return fmt.Errorf("%w: individual cap must be positive", constants.ErrCapMisconfigured)
	}
	if v.Gt(l.cfg.TotalCap) {
		return fmt.Errorf("%w: individual cap %s above total cap %s", constants.ErrCapMisconfigured, v.Dec(), l.cfg.TotalCap.Dec())
	}
	l.cfg.IndividualCap = v.Clone()
	return nil
}

// ReclaimStuckFunds sweeps native currency sent to the sale address outside of
// Contribute to the given address
func (l *Ledger) ReclaimStuckFunds(caller, to common.Address) (*uint256.Int, error) {
	if err := l.OnlyOwner(caller); err != nil {
		return nil, err
	}
	if chain.IsZero(to) {
		return nil, fmt.Errorf("%w: reclaim recipient", constants.ErrInvalidAddress)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	stuck := l.bank.BalanceOf(l.address)
	if stuck.IsZero() {
		return nil, constants.ErrNoStuckFunds
	}
	if err := l.bank.Transfer(l.address, to, stuck); err != nil {
		return nil, err
	}
	l.log.Info("reclaimed stuck funds", "to", to.Hex(), "wei", stuck.Dec())
	return stuck, nil
}

func (l *Ledger) Config() Config {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cfg.clone()
}

// Phase returns the phase of the sale at the current block time
func (l *Ledger) Phase() Phase {
	return l.Config().PhaseAt(chain.BlockTime(l.clock))
}

// EndTime and GraceOffset let the allocation engine gate settlement
func (l *Ledger) EndTime() uint64 {
	return l.Config().EndTime
}

func (l *Ledger) GraceEndsAt() uint64 {
	return l.Config().GraceEndsAt()
}

func (l *Ledger) WeiRaised() *uint256.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.weiRaised.Clone()
}

// Contribution returns the contribution of addr, or a zero record
func (l *Ledger) Contribution(addr common.Address) contract.Contribution {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.contribution(addr).Clone()
}

func (l *Ledger) contribution(addr common.Address) contract.Contribution {
	if c, ok := l.contributions[addr]; ok {
		return c
	}
	return contract.ZeroContribution()
}

// Contributors returns contributing addresses in first-contribution order
func (l *Ledger) Contributors() []common.Address {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.contributors.List()
}

func (l *Ledger) IsWhitelisted(addr common.Address) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.access.IsWhitelisted(addr)
}

func (l *Ledger) IsBlacklisted(addr common.Address) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.access.IsBlacklisted(addr)
}
