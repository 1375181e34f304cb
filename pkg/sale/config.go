// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sale

import (
	"fmt"
	"math"
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/tge/pkg/chain"
	"github.com/luxfi/tge/pkg/constants"
)

// Config holds the public sale parameters. Times are unix seconds.
type Config struct {
	Treasury      common.Address `json:"treasury"`
	StartTime     uint64         `json:"startTime"`
	EndTime       uint64         `json:"endTime"`
	IndividualCap *uint256.Int   `json:"individualCapWei"`
	TotalCap      *uint256.Int   `json:"totalCapWei"`
	// GraceOffset is the buffer after EndTime during which vesting decisions may still change.
	// Settlement opens once it has elapsed.
	GraceOffset time.Duration `json:"settlementGraceOffset"`
}

// Validate checks the config against the deployment block time now
func (c Config) Validate(now uint64) error {
	if chain.IsZero(c.Treasury) {
		return fmt.Errorf("%w: treasury", constants.ErrInvalidAddress)
	}
	if c.StartTime < now {
		return fmt.Errorf("%w: sale start %d is before %d", constants.ErrStartTimeInPast, c.StartTime, now)
	}
	if c.EndTime <= c.StartTime {
		return fmt.Errorf("%w: start %d, end %d", constants.ErrInvalidWindow, c.StartTime, c.EndTime)
	}
	if c.IndividualCap == nil || c.IndividualCap.IsZero() {
		return fmt.Errorf("%w: individual cap must be positive", constants.ErrCapMisconfigured)
	}
	if c.TotalCap == nil || c.TotalCap.IsZero() {
		return fmt.Errorf("%w: total cap must be positive", constants.ErrCapMisconfigured)
	}
	if c.IndividualCap.Gt(c.TotalCap) {
		return fmt.Errorf("%w: individual cap %s above total cap %s", constants.ErrCapMisconfigured, c.IndividualCap.Dec(), c.TotalCap.Dec())
	}
	if c.GraceOffset < 0 {
		return fmt.Errorf("%w: negative grace offset", constants.ErrInvalidWindow)
	}
	if grace := chain.Seconds(c.GraceOffset); c.EndTime > math.MaxUint64-grace {
		return fmt.Errorf("%w: end %d plus grace %ds overflows", constants.ErrInvalidWindow, c.EndTime, grace)
	}
	return nil
}

// GraceEndsAt is the last second of the grace window; settlement is allowed strictly after it
func (c Config) GraceEndsAt() uint64 {
	return c.EndTime + chain.Seconds(c.GraceOffset)
}

func (c Config) clone() Config {
	out := c
	if c.IndividualCap != nil {
		out.IndividualCap = c.IndividualCap.Clone()
	}
	if c.TotalCap != nil {
		out.TotalCap = c.TotalCap.Clone()
	}
	return out
}

// Phase of the sale at a given block time
type Phase int

const (
	Pending Phase = iota
	Open
	Closed
)

func (p Phase) String() string {
	switch p {
	case Pending:
		return "Pending"
	case Open:
		return "Open"
	case Closed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// PhaseAt returns the phase of the sale at now
func (c Config) PhaseAt(now uint64) Phase {
	switch {
	case now < c.StartTime:
		return Pending
	case now <= c.EndTime:
		return Open
	default:
		return Closed
	}
}
