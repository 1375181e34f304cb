// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pretge implements the private pre-sale reservation ledger. The owner records
// reservations in bulk and locks the ledger once, after which it is read-only.
package pretge

import (
	"fmt"
	"sync"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/tge/pkg/chain"
	"github.com/luxfi/tge/pkg/constants"
	"github.com/luxfi/tge/pkg/contract"
)

type Ledger struct {
	log     luxlog.Logger
	address common.Address
	*contract.Ownable

	mu            sync.RWMutex
	locked        bool
	contributions map[common.Address]contract.Contribution
	contributors  *contract.Registry
}

func New(log luxlog.Logger, address, owner common.Address) (*Ledger, error) {
	if chain.IsZero(address) {
		return nil, fmt.Errorf("%w: pre-TGE ledger address", constants.ErrInvalidAddress)
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
		address:       address,
		Ownable:       ownable,
		contributions: make(map[common.Address]contract.Contribution),
		contributors:  contract.NewRegistry(),
	}, nil
}

func (l *Ledger) Address() common.Address {
	return l.address
}

// BulkReserve records reservations for addrs. Amounts accumulate per address and the
// vesting flag is overwritten with the latest value. The batch is applied entirely or not at all.
func (l *Ledger) BulkReserve(caller common.Address, addrs []common.Address, weis []*uint256.Int, vests []bool) error {
	if err := l.OnlyOwner(caller); err != nil {
		return err
	}
	if len(addrs) != len(weis) || len(addrs) != len(vests) {
		return fmt.Errorf("%w: %d addresses, %d amounts, %d vesting flags", constants.ErrArityMismatch, len(addrs), len(weis), len(vests))
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locked {
		return fmt.Errorf("%w: pre-TGE ledger is locked", constants.ErrLedgerClosed)
	}

	// stage the batch so a bad entry leaves the ledger untouched
	staged := make(map[common.Address]contract.Contribution, len(addrs))
	for i, addr := range addrs {
		if chain.IsZero(addr) {
			return fmt.Errorf("%w: entry %d", constants.ErrInvalidAddress, i)
		}
		if weis[i] == nil {
			return fmt.Errorf("%w: entry %d has no amount", constants.ErrZeroAmount, i)
		}
		current, ok := staged[addr]
		if !ok {
			current = l.contribution(addr)
		}
		sum, overflow := new(uint256.Int).AddOverflow(current.Wei, weis[i])
		if overflow {
			return fmt.Errorf("%w: reservation for %s", constants.ErrOverflow, addr.Hex())
		}
		staged[addr] = contract.Contribution{Vests: vests[i], Wei: sum}
	}

	for _, addr := range addrs {
		l.contributions[addr] = staged[addr]
		l.contributors.Add(addr)
	}
	l.log.Info("reserved pre-TGE allocations", "entries", len(addrs))
	return nil
}

// Lock permanently closes the ledger
func (l *Ledger) Lock(caller common.Address) error {
	if err := l.OnlyOwner(caller); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locked {
		return fmt.Errorf("%w: pre-TGE ledger already locked", constants.ErrLedgerClosed)
	}
	l.locked = true
	l.log.Info("locked pre-TGE ledger", "contributors", l.contributors.Len())
	return nil
}

func (l *Ledger) Locked() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.locked
}

// Contribution returns the reservation of addr, or a zero record
func (l *Ledger) Contribution(addr common.Address) contract.Contribution {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.contribution(addr).Clone()
}

func (l *Ledger) contribution(addr common.Address) contract.Contribution {
	if c, ok := l.contributions[addr]; ok {
		return c
	}
	return contract.ZeroContribution()
}

// Contributors returns every reserved address in first-reservation order
func (l *Ledger) Contributors() []common.Address {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.contributors.List()
}

// TotalReserved sums all reservations
func (l *Ledger) TotalReserved() *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	total := new(uint256.Int)
	for _, c := range l.contributions {
		total.Add(total, c.Wei)
	}
	return total
}
