// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package distribution settles pre-TGE and public sale contributions into token
// allocations, minting directly or into per-contributor vesting escrows.
package distribution

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
	"github.com/luxfi/tge/pkg/vesting"
)

type Allocation struct {
	Vests    bool         `json:"vests"`
	TotalWei *uint256.Int `json:"totalWei"`
	// VestedTokens is the bonus-adjusted amount split between DirectTokens and
	// the escrow; zero for non-vesting allocations
	VestedTokens *uint256.Int   `json:"vestedTokens"`
	DirectTokens *uint256.Int   `json:"directTokens"`
	Escrow       common.Address `json:"escrow"`
	Settled      bool           `json:"settled"`
}

func (a Allocation) clone() Allocation {
	out := a
	out.TotalWei = cloneOrZero(a.TotalWei)
	out.VestedTokens = cloneOrZero(a.VestedTokens)
	out.DirectTokens = cloneOrZero(a.DirectTokens)
	return out
}

func (a Allocation) EscrowTokens() *uint256.Int {
	if !a.Vests || a.VestedTokens == nil || a.DirectTokens == nil {
		return new(uint256.Int)
	}
	return new(uint256.Int).Sub(a.VestedTokens, a.DirectTokens)
}

func cloneOrZero(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return v.Clone()
}

type Engine struct {
	log     luxlog.Logger
	clock   clockwork.Clock
	address common.Address
	*contract.Ownable

	params Params
	pre    PreTGE
	sale   Sale
	token  Token

	mu          sync.Mutex
	nonce       uint64
	reserved    *uint256.Int
	allocations map[common.Address]Allocation
	settled     *contract.Registry
	escrows     map[common.Address]*vesting.Escrow
}

// New validates params against the current block time and pauses the token
func New(params Params, deps Deps) (*Engine, error) {
	e, err := newEngine(params, deps, true)
	if err != nil {
		return nil, err
	}
	if !e.token.Paused() {
		if err := e.token.Pause(e.address); err != nil {
			return nil, fmt.Errorf("pausing token: %w", err)
		}
	}
	return e, nil
}

func newEngine(params Params, deps Deps, checkStart bool) (*Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	if err := params.validate(chain.BlockTime(deps.Clock), checkStart); err != nil {
		return nil, err
	}
	ownable, err := contract.NewOwnable(deps.Owner)
	if err != nil {
		return nil, err
	}
	if deps.Log == nil {
		deps.Log = luxlog.NewNoOpLogger()
	}
	return &Engine{
		log:         deps.Log,
		clock:       deps.Clock,
		address:     deps.Address,
		Ownable:     ownable,
		params:      params.clone(),
		pre:         deps.PreTGE,
		sale:        deps.Sale,
		token:       deps.Token,
		nonce:       1,
		reserved:    new(uint256.Int),
		allocations: make(map[common.Address]Allocation),
		settled:     contract.NewRegistry(),
		escrows:     make(map[common.Address]*vesting.Escrow),
	}, nil
}

func (e *Engine) Address() common.Address {
	return e.address
}

func (e *Engine) Params() Params {
	return e.params.clone()
}

// Aggregate joins the two ledger records of one contributor
func Aggregate(pre, sale contract.Contribution) (*uint256.Int, bool, error) {
	total, overflow := new(uint256.Int).AddOverflow(cloneOrZero(pre.Wei), cloneOrZero(sale.Wei))
	if overflow {
		return nil, false, fmt.Errorf("%w: combining contributions", constants.ErrOverflow)
	}
	return total, pre.Vests || sale.Vests, nil
}

// Split computes the allocation of totalWei: the direct mint and, for vesting
// contributors, the bonus-adjusted total of which the escrow receives all but
// DirectReleasePercent.
func (p Params) Split(totalWei *uint256.Int, vests bool) (direct, vested, escrowed *uint256.Int, err error) {
	gross, overflow := new(uint256.Int).MulOverflow(totalWei, p.TokensPerWei)
	if overflow {
		return nil, nil, nil, fmt.Errorf("%w: %s wei at %s tokens per wei", constants.ErrOverflow, totalWei.Dec(), p.TokensPerWei.Dec())
	}
	if !vests {
		return gross, new(uint256.Int), new(uint256.Int), nil
	}
	vested, overflow = new(uint256.Int).MulDivOverflow(gross, uint256.NewInt(p.VestingBonusMultiplier), uint256.NewInt(constants.Precision))
	if overflow {
		return nil, nil, nil, fmt.Errorf("%w: applying vesting bonus", constants.ErrOverflow)
	}
	direct = new(uint256.Int).Div(vested, uint256.NewInt(100/constants.DirectReleasePercent))
	escrowed = new(uint256.Int).Sub(vested, direct)
	return direct, vested, escrowed, nil
}

// Settle converts the caller's combined contributions into tokens. Each
// address settles at most once.
func (e *Engine) Settle(caller common.Address) (Allocation, error) {
	alloc, err := e.settle(caller)
	path := metrics.PathNone
	if alloc.TotalWei != nil {
		path = metrics.PathDirect
		if alloc.Vests {
			path = metrics.PathVesting
		}
	}
	metrics.ObserveSettlement(path, err)
	return alloc, err
}

func (e *Engine) settle(caller common.Address) (Allocation, error) {
	if chain.IsZero(caller) {
		return Allocation{}, fmt.Errorf("%w: caller", constants.ErrInvalidAddress)
	}
	e.mu.Lock()
	if !e.pre.Locked() {
		e.mu.Unlock()
		return Allocation{}, constants.ErrPreTGEStillOpen
	}
	now := chain.BlockTime(e.clock)
	if opensAfter := e.sale.GraceEndsAt(); now <= opensAfter {
		e.mu.Unlock()
		return Allocation{}, fmt.Errorf("%w: settlement opens after %d, now %d", constants.ErrSaleStillOpen, opensAfter, now)
	}
	if a, ok := e.allocations[caller]; ok && a.Settled {
		e.mu.Unlock()
		return Allocation{}, fmt.Errorf("%w: %s", constants.ErrAlreadySettled, caller.Hex())
	}
	totalWei, vests, err := Aggregate(e.pre.Contribution(caller), e.sale.Contribution(caller))
	if err != nil {
		e.mu.Unlock()
		return Allocation{}, err
	}
	if totalWei.IsZero() {
		e.mu.Unlock()
		return Allocation{}, fmt.Errorf("%w: %s", constants.ErrNoContribution, caller.Hex())
	}
	direct, vested, escrowed, err := e.params.Split(totalWei, vests)
	if err != nil {
		e.mu.Unlock()
		return Allocation{}, err
	}
	need := new(uint256.Int).Add(direct, escrowed)
	if err := e.reserve(need); err != nil {
		e.mu.Unlock()
		return Allocation{}, err
	}

	alloc := Allocation{
		Vests:        vests,
		TotalWei:     totalWei,
		VestedTokens: vested,
		DirectTokens: direct,
		Settled:      true,
	}
	var escrow *vesting.Escrow
	if !escrowed.IsZero() {
		addr := chain.ContractAddress(e.address, e.nonce)
		escrow, err = vesting.New(e.log, e.clock, e.token, addr, caller, escrowed, e.params.VestingStartTime, e.params.VestingDuration)
		if err != nil {
			e.release(need)
			e.mu.Unlock()
			return Allocation{}, err
		}
		e.nonce++
		alloc.Escrow = addr
		e.escrows[caller] = escrow
	}
	e.allocations[caller] = alloc
	e.mu.Unlock()

	// the escrow address has no receiver hook, so the reentrant window opens
	// only with the final mint to the caller
	err = e.mintAll(caller, escrow, direct, escrowed)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.release(need)
	if err != nil {
		delete(e.allocations, caller)
		if escrow != nil {
			delete(e.escrows, caller)
		}
		return Allocation{}, fmt.Errorf("settling %s: %w", caller.Hex(), err)
	}
	e.settled.Add(caller)
	e.log.Info("settled allocation",
		"address", caller.Hex(),
		"totalWei", totalWei.Dec(),
		"vests", vests,
		"direct", direct.Dec(),
		"escrowed", escrowed.Dec(),
	)
	return alloc.clone(), nil
}

func (e *Engine) mintAll(caller common.Address, escrow *vesting.Escrow, direct, escrowed *uint256.Int) error {
	if escrow != nil {
		if err := e.token.Mint(e.address, escrow.Address(), escrowed); err != nil {
			return err
		}
	}
	if direct.IsZero() {
		return nil
	}
	return e.token.Mint(e.address, caller, direct)
}

// reserve claims capacity under the token's max supply for an upcoming mint.
// Only the engine mints, so reserved capacity cannot be taken by anyone else.
func (e *Engine) reserve(amount *uint256.Int) error {
	committed, overflow := new(uint256.Int).AddOverflow(e.token.TotalSupply(), e.reserved)
	if !overflow {
		committed, overflow = committed.AddOverflow(committed, amount)
	}
	if maxSupply := e.token.MaxSupply(); overflow || committed.Gt(maxSupply) {
		return fmt.Errorf("%w: need %s, max supply %s", constants.ErrSupplyExceeded, amount.Dec(), maxSupply.Dec())
	}
	e.reserved = new(uint256.Int).Add(e.reserved, amount)
	return nil
}

func (e *Engine) release(amount *uint256.Int) {
	e.reserved = new(uint256.Int).Sub(e.reserved, amount)
}

// MintTokens grants tokens outside of settlement
func (e *Engine) MintTokens(caller, to common.Address, amount *uint256.Int) error {
	if err := e.OnlyOwner(caller); err != nil {
		return err
	}
	if chain.IsZero(to) {
		return fmt.Errorf("%w: mint recipient", constants.ErrInvalidAddress)
	}
	if amount == nil || amount.IsZero() {
		return constants.ErrZeroAmount
	}
	e.mu.Lock()
	if err := e.reserve(amount); err != nil {
		e.mu.Unlock()
		return err
	}
	e.mu.Unlock()

	err := e.token.Mint(e.address, to, amount)

	e.mu.Lock()
	e.release(amount)
	e.mu.Unlock()
	if err != nil {
		return err
	}
	e.log.Info("minted tokens", "to", to.Hex(), "amount", amount.Dec())
	return nil
}

// UnpauseToken opens token transfers. It cannot be undone.
func (e *Engine) UnpauseToken(caller common.Address) error {
	if err := e.OnlyOwner(caller); err != nil {
		return err
	}
	if err := e.token.Unpause(e.address); err != nil {
		return err
	}
	e.log.Info("unpaused token", "token", e.token.Address().Hex())
	return nil
}

// Release triggers the escrow of beneficiary on behalf of caller
func (e *Engine) Release(caller, beneficiary common.Address) (*uint256.Int, error) {
	escrow, ok := e.Escrow(beneficiary)
	if !ok {
		return nil, fmt.Errorf("%w: %s", constants.ErrNotBeneficiary, beneficiary.Hex())
	}
	return escrow.Release(caller)
}

func (e *Engine) Allocation(addr common.Address) (Allocation, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	a, ok := e.allocations[addr]
	if !ok {
		return Allocation{}, false
	}
	return a.clone(), true
}

func (e *Engine) Escrow(addr common.Address) (*vesting.Escrow, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	escrow, ok := e.escrows[addr]
	return escrow, ok
}

// Allocations returns settled addresses in settlement order
func (e *Engine) Allocations() []common.Address {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settled.List()
}
