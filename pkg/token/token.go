// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package token implements a capped, pausable, mintable fungible token ledger.
package token

import (
	"fmt"
	"sync"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/tge/pkg/chain"
	"github.com/luxfi/tge/pkg/constants"
	"github.com/luxfi/tge/pkg/contract"
	"github.com/luxfi/tge/pkg/metrics"
)

const (
	DefaultName     = "Lux Sale Token"
	DefaultSymbol   = "LST"
	DefaultDecimals = 18
)

// Receiver is notified after tokens are credited to the address it is registered for.
// It runs outside of the ledger lock and may call back into any component.
type Receiver interface {
	OnTokensReceived(from, to common.Address, amount *uint256.Int)
}

type Config struct {
	Name      string       `json:"name" yaml:"name"`
	Symbol    string       `json:"symbol" yaml:"symbol"`
	MaxSupply *uint256.Int `json:"maxSupply" yaml:"-"`
}

type Ledger struct {
	log     luxlog.Logger
	address common.Address
	*contract.Ownable

	mu          sync.Mutex
	name        string
	symbol      string
	maxSupply   *uint256.Int
	totalSupply *uint256.Int
	paused      bool
	balances    map[common.Address]*uint256.Int
	receivers   map[common.Address]Receiver
}

// New creates a paused token owned by owner
func New(log luxlog.Logger, address, owner common.Address, cfg Config) (*Ledger, error) {
	if chain.IsZero(address) {
		return nil, fmt.Errorf("%w: token address", constants.ErrInvalidAddress)
	}
	if cfg.MaxSupply == nil || cfg.MaxSupply.IsZero() {
		return nil, fmt.Errorf("%w: max supply", constants.ErrZeroAmount)
	}
	ownable, err := contract.NewOwnable(owner)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = luxlog.NewNoOpLogger()
	}
	if cfg.Name == "" {
		cfg.Name = DefaultName
	}
	if cfg.Symbol == "" {
		cfg.Symbol = DefaultSymbol
	}
	return &Ledger{
		log:         log,
		address:     address,
		Ownable:     ownable,
		name:        cfg.Name,
		symbol:      cfg.Symbol,
		maxSupply:   cfg.MaxSupply.Clone(),
		totalSupply: new(uint256.Int),
		paused:      true,
		balances:    make(map[common.Address]*uint256.Int),
		receivers:   make(map[common.Address]Receiver),
	}, nil
}

func (l *Ledger) Address() common.Address {
	return l.address
}

func (l *Ledger) Name() string {
	return l.name
}

func (l *Ledger) Symbol() string {
	return l.symbol
}

// SetReceiver registers a hook invoked whenever addr is credited; nil removes it
func (l *Ledger) SetReceiver(addr common.Address, r Receiver) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if r == nil {
		delete(l.receivers, addr)
		return
	}
	l.receivers[addr] = r
}

// Mint creates amount new tokens for to. Minting is allowed while paused.
func (l *Ledger) Mint(caller, to common.Address, amount *uint256.Int) error {
	if err := l.OnlyOwner(caller); err != nil {
		return err
	}
	if chain.IsZero(to) {
		return fmt.Errorf("%w: mint recipient", constants.ErrInvalidAddress)
	}
	if amount == nil || amount.IsZero() {
		return constants.ErrZeroAmount
	}

	l.mu.Lock()
	supply, overflow := new(uint256.Int).AddOverflow(l.totalSupply, amount)
	if overflow || supply.Gt(l.maxSupply) {
		l.mu.Unlock()
		return fmt.Errorf("%w: minting %s on top of %s (max %s)", constants.ErrSupplyExceeded, amount.Dec(), l.totalSupply.Dec(), l.maxSupply.Dec())
	}
	l.totalSupply = supply
	// cannot overflow, balances never exceed total supply
	l.balances[to] = new(uint256.Int).Add(l.balanceOf(to), amount)
	hook := l.receivers[to]
	l.mu.Unlock()

	metrics.ObserveMint(amount)
	l.log.Debug("minted tokens", "to", to.Hex(), "amount", amount.Dec())
	if hook != nil {
		hook.OnTokensReceived(common.Address{}, to, amount)
	}
	return nil
}

// Transfer moves amount from the caller's balance to to. Fails while the token is paused.
func (l *Ledger) Transfer(from, to common.Address, amount *uint256.Int) error {
	if chain.IsZero(to) {
		return fmt.Errorf("%w: transfer recipient", constants.ErrInvalidAddress)
	}
	if amount == nil || amount.IsZero() {
		return constants.ErrZeroAmount
	}

	l.mu.Lock()
	if l.paused {
		l.mu.Unlock()
		return constants.ErrTransferBlocked
	}
	fromBalance := l.balanceOf(from)
	if fromBalance.Lt(amount) {
		l.mu.Unlock()
		return fmt.Errorf("%w: %s holds %s %s, needs %s", constants.ErrInsufficientBalance, from.Hex(), fromBalance.Dec(), l.symbol, amount.Dec())
	}
	l.balances[from] = new(uint256.Int).Sub(fromBalance, amount)
	l.balances[to] = new(uint256.Int).Add(l.balanceOf(to), amount)
	hook := l.receivers[to]
	l.mu.Unlock()

	if hook != nil {
		hook.OnTokensReceived(from, to, amount)
	}
	return nil
}

func (l *Ledger) Pause(caller common.Address) error {
	if err := l.OnlyOwner(caller); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.paused = true
	return nil
}

func (l *Ledger) Unpause(caller common.Address) error {
	if err := l.OnlyOwner(caller); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.paused {
		return constants.ErrAlreadyUnpaused
	}
	l.paused = false
	return nil
}

func (l *Ledger) Paused() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.paused
}

func (l *Ledger) BalanceOf(addr common.Address) *uint256.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balanceOf(addr).Clone()
}

func (l *Ledger) TotalSupply() *uint256.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalSupply.Clone()
}

func (l *Ledger) MaxSupply() *uint256.Int {
	return l.maxSupply.Clone()
}

func (l *Ledger) balanceOf(addr common.Address) *uint256.Int {
	if bal, ok := l.balances[addr]; ok {
		return bal
	}
	return new(uint256.Int)
}
