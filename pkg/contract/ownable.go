// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"fmt"
	"sync"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/tge/pkg/constants"
)

// Ownable gates administrative operations behind a single owner address, following
// https://docs.openzeppelin.com/contracts/2.x/api/ownership#Ownable-owner
type Ownable struct {
	mu    sync.RWMutex
	owner common.Address
}

func NewOwnable(owner common.Address) (*Ownable, error) {
	if owner == (common.Address{}) {
		return nil, fmt.Errorf("%w: owner", constants.ErrInvalidAddress)
	}
	return &Ownable{owner: owner}, nil
}

func (o *Ownable) Owner() common.Address {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.owner
}

// OnlyOwner fails with ErrNotOwner unless caller is the current owner
func (o *Ownable) OnlyOwner(caller common.Address) error {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if caller != o.owner {
		return fmt.Errorf("%w: %s", constants.ErrNotOwner, caller.Hex())
	}
	return nil
}

func (o *Ownable) TransferOwnership(caller, newOwner common.Address) error {
	if newOwner == (common.Address{}) {
		return fmt.Errorf("%w: new owner", constants.ErrInvalidAddress)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if caller != o.owner {
		return fmt.Errorf("%w: %s", constants.ErrNotOwner, caller.Hex())
	}
	o.owner = newOwner
	return nil
}
