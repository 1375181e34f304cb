// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"
	"sort"
	"sync"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/tge/pkg/constants"
)

// Transferer moves native currency between accounts
type Transferer interface {
	Transfer(from, to common.Address, amount *uint256.Int) error
	BalanceOf(addr common.Address) *uint256.Int
}

// Bank holds native currency balances
type Bank struct {
	mu       sync.Mutex
	balances map[common.Address]*uint256.Int
}

func NewBank() *Bank {
	return &Bank{balances: make(map[common.Address]*uint256.Int)}
}

// Credit mints native currency to addr
func (b *Bank) Credit(addr common.Address, amount *uint256.Int) error {
	if IsZero(addr) {
		return constants.ErrInvalidAddress
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	sum, overflow := new(uint256.Int).AddOverflow(b.balanceOf(addr), amount)
	if overflow {
		return fmt.Errorf("%w: crediting %s", constants.ErrOverflow, addr.Hex())
	}
	b.balances[addr] = sum
	return nil
}

func (b *Bank) Transfer(from, to common.Address, amount *uint256.Int) error {
	if IsZero(to) {
		return fmt.Errorf("%w: transfer recipient", constants.ErrInvalidAddress)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	fromBalance := b.balanceOf(from)
	if fromBalance.Lt(amount) {
		return fmt.Errorf("%w: %s holds %s, needs %s", constants.ErrInsufficientBalance, from.Hex(), fromBalance.Dec(), amount.Dec())
	}
	if from == to {
		return nil
	}
	// cannot overflow: total supply of native currency fits in a uint256
	b.balances[from] = new(uint256.Int).Sub(fromBalance, amount)
	b.balances[to] = new(uint256.Int).Add(b.balanceOf(to), amount)
	return nil
}

func (b *Bank) BalanceOf(addr common.Address) *uint256.Int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balanceOf(addr).Clone()
}

func (b *Bank) balanceOf(addr common.Address) *uint256.Int {
	if bal, ok := b.balances[addr]; ok {
		return bal
	}
	return new(uint256.Int)
}

// Accounts returns every address with a non-zero balance, sorted
func (b *Bank) Accounts() []common.Address {
	b.mu.Lock()
	defer b.mu.Unlock()
	addrs := make([]common.Address, 0, len(b.balances))
	for addr, bal := range b.balances {
		if !bal.IsZero() {
			addrs = append(addrs, addr)
		}
	}
	sort.Slice(addrs, func(i, j int) bool {
		return addrs[i].Cmp(addrs[j]) < 0
	})
	return addrs
}

// Snapshot returns a copy of all non-zero balances
func (b *Bank) Snapshot() map[common.Address]*uint256.Int {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[common.Address]*uint256.Int, len(b.balances))
	for addr, bal := range b.balances {
		if !bal.IsZero() {
			out[addr] = bal.Clone()
		}
	}
	return out
}

// RestoreBank rebuilds a bank from a snapshot
func RestoreBank(balances map[common.Address]*uint256.Int) *Bank {
	b := NewBank()
	for addr, bal := range balances {
		if bal != nil {
			b.balances[addr] = bal.Clone()
		}
	}
	return b
}
