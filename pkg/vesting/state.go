// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vesting

import (
	"github.com/jonboulle/clockwork"
	"github.com/luxfi/geth/common"
	luxlog "github.com/luxfi/log"
)

type State struct {
	Address  common.Address `json:"address"`
	Schedule Schedule       `json:"schedule"`
}

func (e *Escrow) Snapshot() State {
	return State{Address: e.address, Schedule: e.Schedule()}
}

func Restore(log luxlog.Logger, clock clockwork.Clock, token Token, s State) (*Escrow, error) {
	return newEscrow(log, clock, token, s.Address, s.Schedule.clone())
}
