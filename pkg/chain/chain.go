// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package chain provides the execution environment shared by the sale components:
// block time, native currency balances and contract address derivation.
package chain

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/luxfi/crypto"
	"github.com/luxfi/geth/common"
)

// BlockTime returns the current block timestamp in unix seconds
func BlockTime(clock clockwork.Clock) uint64 {
	return Timestamp(clock.Now())
}

// Timestamp converts t to unix seconds, clamping times before the epoch to 0
func Timestamp(t time.Time) uint64 {
	now := t.Unix()
	if now < 0 {
		return 0
	}
	return uint64(now)
}

// Seconds converts a non-negative duration to whole seconds
func Seconds(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	return uint64(d / time.Second)
}

// FromUnix converts a block timestamp back to time.Time
func FromUnix(ts uint64) time.Time {
	return time.Unix(int64(ts), 0).UTC()
}

// ContractAddress derives the address of the nonce-th contract created by deployer
func ContractAddress(deployer common.Address, nonce uint64) common.Address {
	return common.Address(crypto.CreateAddress(crypto.Address(deployer), nonce))
}

// IsZero reports whether addr is the zero address
func IsZero(addr common.Address) bool {
	return addr == (common.Address{})
}
