// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package distribution

import (
	"fmt"
	"time"

	"github.com/holiman/uint256"
	"github.com/jonboulle/clockwork"
	"github.com/luxfi/geth/common"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/tge/pkg/chain"
	"github.com/luxfi/tge/pkg/constants"
	"github.com/luxfi/tge/pkg/contract"
)

// Params are the rate constants of an engine, fixed at construction
type Params struct {
	TokensPerWei *uint256.Int `json:"tokensPerWei"`
	// VestingBonusMultiplier is scaled by constants.Precision
	VestingBonusMultiplier uint64        `json:"vestingBonusMultiplier"`
	VestingStartTime       uint64        `json:"vestingStartTime"`
	VestingDuration        time.Duration `json:"vestingDuration"`
}

func (p Params) clone() Params {
	out := p
	if p.TokensPerWei != nil {
		out.TokensPerWei = p.TokensPerWei.Clone()
	}
	return out
}

func (p Params) validate(now uint64, checkStart bool) error {
	if p.VestingBonusMultiplier < constants.MinVestingBonusMultiplier || p.VestingBonusMultiplier > constants.MaxVestingBonusMultiplier {
		return fmt.Errorf("%w: %d not in [%d, %d]", constants.ErrMultiplierOutOfRange,
			p.VestingBonusMultiplier, constants.MinVestingBonusMultiplier, constants.MaxVestingBonusMultiplier)
	}
	if chain.Seconds(p.VestingDuration) == 0 {
		return constants.ErrZeroDuration
	}
	if checkStart && p.VestingStartTime <= now {
		return fmt.Errorf("%w: vesting start %d is not after %d", constants.ErrStartTimeInPast, p.VestingStartTime, now)
	}
	if p.TokensPerWei == nil || p.TokensPerWei.IsZero() {
		return fmt.Errorf("%w: tokens per wei", constants.ErrZeroAmount)
	}
	return nil
}

// PreTGE is the read side of the private reservation ledger
type PreTGE interface {
	Address() common.Address
	Locked() bool
	Contribution(addr common.Address) contract.Contribution
}

// Sale is the read side of the public sale ledger
type Sale interface {
	Address() common.Address
	GraceEndsAt() uint64
	Contribution(addr common.Address) contract.Contribution
}

// Token is the token capability owned by the engine
type Token interface {
	Address() common.Address
	Mint(caller, to common.Address, amount *uint256.Int) error
	Transfer(from, to common.Address, amount *uint256.Int) error
	Pause(caller common.Address) error
	Unpause(caller common.Address) error
	Paused() bool
	BalanceOf(addr common.Address) *uint256.Int
	TotalSupply() *uint256.Int
	MaxSupply() *uint256.Int
}

// Deps wires an engine to its clock, ledgers and token. Address is the
// engine's own address and must own Token.
type Deps struct {
	Log     luxlog.Logger
	Clock   clockwork.Clock
	Address common.Address
	Owner   common.Address
	PreTGE  PreTGE
	Sale    Sale
	Token   Token
}

func (d Deps) validate() error {
	if chain.IsZero(d.Address) {
		return fmt.Errorf("%w: engine address", constants.ErrInvalidAddress)
	}
	if d.PreTGE == nil || chain.IsZero(d.PreTGE.Address()) {
		return fmt.Errorf("%w: pre-TGE ledger", constants.ErrInvalidAddress)
	}
	if d.Sale == nil || chain.IsZero(d.Sale.Address()) {
		return fmt.Errorf("%w: sale ledger", constants.ErrInvalidAddress)
	}
	if d.Token == nil || chain.IsZero(d.Token.Address()) {
		return fmt.Errorf("%w: token", constants.ErrInvalidAddress)
	}
	return nil
}
