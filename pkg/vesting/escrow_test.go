// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vesting

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/jonboulle/clockwork"
	"github.com/luxfi/geth/common"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/tge/pkg/chain"
	"github.com/luxfi/tge/pkg/constants"
	"github.com/luxfi/tge/pkg/token"
	"github.com/stretchr/testify/require"
)

var (
	escrowAddr  = common.HexToAddress("0x00000000000000000000000000000000000000e5")
	tokenAddr   = common.HexToAddress("0x00000000000000000000000000000000000000f0")
	owner       = common.HexToAddress("0x0000000000000000000000000000000000000001")
	beneficiary = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	stranger    = common.HexToAddress("0x00000000000000000000000000000000000000a9")
)

type fixture struct {
	clock  *clockwork.FakeClock
	token  *token.Ledger
	escrow *Escrow
	start  uint64
}

// newFixture funds an escrow of 1000 tokens vesting over 100 seconds, starting 10 seconds from now
func newFixture(t *testing.T, unpause bool) *fixture {
	require := require.New(t)
	clock := clockwork.NewFakeClockAt(time.Unix(1_700_000_000, 0))
	tok, err := token.New(luxlog.NewNoOpLogger(), tokenAddr, owner, token.Config{MaxSupply: uint256.NewInt(1_000_000)})
	require.NoError(err)
	require.NoError(tok.Mint(owner, escrowAddr, uint256.NewInt(1000)))
	if unpause {
		require.NoError(tok.Unpause(owner))
	}
	start := chain.BlockTime(clock) + 10
	e, err := New(luxlog.NewNoOpLogger(), clock, tok, escrowAddr, beneficiary, uint256.NewInt(1000), start, 100*time.Second)
	require.NoError(err)
	return &fixture{clock: clock, token: tok, escrow: e, start: start}
}

func TestNewValidation(t *testing.T) {
	require := require.New(t)
	clock := clockwork.NewFakeClock()
	tok, err := token.New(nil, tokenAddr, owner, token.Config{MaxSupply: uint256.NewInt(1)})
	require.NoError(err)

	_, err = New(nil, clock, tok, escrowAddr, beneficiary, uint256.NewInt(1), 0, 0)
	require.ErrorIs(err, constants.ErrZeroDuration)
	_, err = New(nil, clock, tok, escrowAddr, common.Address{}, uint256.NewInt(1), 0, time.Second)
	require.ErrorIs(err, constants.ErrInvalidAddress)
	_, err = New(nil, clock, tok, common.Address{}, beneficiary, uint256.NewInt(1), 0, time.Second)
	require.ErrorIs(err, constants.ErrInvalidAddress)
	_, err = New(nil, clock, nil, escrowAddr, beneficiary, uint256.NewInt(1), 0, time.Second)
	require.ErrorIs(err, constants.ErrInvalidAddress)
}

func TestReleasableCurve(t *testing.T) {
	f := newFixture(t, true)
	tests := []struct {
		name   string
		offset int64
		want   uint64
	}{
		{name: "before start", offset: -10, want: 0},
		{name: "0%", offset: 0, want: 0},
		{name: "1%", offset: 1, want: 10},
		{name: "33% floors", offset: 33, want: 330},
		{name: "50%", offset: 50, want: 500},
		{name: "100%", offset: 100, want: 1000},
		{name: "150% clamps", offset: 150, want: 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := uint64(int64(f.start) + tt.offset)
			require.Equal(t, tt.want, f.escrow.Releasable(now).Uint64())
			require.Equal(t, tt.want, f.escrow.Vested(now).Uint64())
		})
	}
}

func TestReleaseFloor(t *testing.T) {
	require := require.New(t)
	clock := clockwork.NewFakeClockAt(time.Unix(1_700_000_000, 0))
	tok, err := token.New(nil, tokenAddr, owner, token.Config{MaxSupply: uint256.NewInt(10)})
	require.NoError(err)
	start := chain.BlockTime(clock)
	e, err := New(nil, clock, tok, escrowAddr, beneficiary, uint256.NewInt(10), start, 3*time.Second)
	require.NoError(err)
	require.Equal(uint64(3), e.Releasable(start+1).Uint64())
	require.Equal(uint64(6), e.Releasable(start+2).Uint64())
	require.Equal(uint64(10), e.Releasable(start+3).Uint64())
}

func TestRelease(t *testing.T) {
	require := require.New(t)
	f := newFixture(t, true)

	_, err := f.escrow.Release(stranger)
	require.ErrorIs(err, constants.ErrNothingToRelease)
	require.Equal(constants.StateConflictError, constants.KindOf(err))

	f.clock.Advance(60 * time.Second) // 50%
	amount, err := f.escrow.Release(stranger)
	require.NoError(err)
	require.Equal(uint64(500), amount.Uint64())
	require.Equal(uint64(500), f.token.BalanceOf(beneficiary).Uint64())
	require.True(f.token.BalanceOf(stranger).IsZero(), "tokens always go to the beneficiary")

	_, err = f.escrow.Release(beneficiary)
	require.ErrorIs(err, constants.ErrNothingToRelease, "nothing new in the same second")

	f.clock.Advance(25 * time.Second)
	amount, err = f.escrow.Release(beneficiary)
	require.NoError(err)
	require.Equal(uint64(250), amount.Uint64())

	f.clock.Advance(time.Hour)
	amount, err = f.escrow.Release(beneficiary)
	require.NoError(err)
	require.Equal(uint64(250), amount.Uint64())
	require.Equal(uint64(1000), f.token.BalanceOf(beneficiary).Uint64())
	require.True(f.token.BalanceOf(escrowAddr).IsZero())
	require.Equal(uint64(1000), f.escrow.Schedule().Released.Uint64())

	_, err = f.escrow.Release(beneficiary)
	require.ErrorIs(err, constants.ErrNothingToRelease)
}

func TestReleaseWhilePausedRollsBack(t *testing.T) {
	require := require.New(t)
	f := newFixture(t, false)
	f.clock.Advance(60 * time.Second)

	_, err := f.escrow.Release(beneficiary)
	require.ErrorIs(err, constants.ErrTransferBlocked)
	require.True(f.escrow.Schedule().Released.IsZero())

	require.NoError(f.token.Unpause(owner))
	amount, err := f.escrow.Release(beneficiary)
	require.NoError(err)
	require.Equal(uint64(500), amount.Uint64())
}

type reentrantReceiver struct {
	escrow *Escrow
	err    error
}

func (r *reentrantReceiver) OnTokensReceived(_, _ common.Address, _ *uint256.Int) {
	_, r.err = r.escrow.Release(beneficiary)
}

func TestReleaseReentrancy(t *testing.T) {
	require := require.New(t)
	f := newFixture(t, true)
	hook := &reentrantReceiver{escrow: f.escrow}
	f.token.SetReceiver(beneficiary, hook)

	f.clock.Advance(60 * time.Second)
	amount, err := f.escrow.Release(beneficiary)
	require.NoError(err)
	require.Equal(uint64(500), amount.Uint64())
	require.ErrorIs(hook.err, constants.ErrNothingToRelease)
	require.Equal(uint64(500), f.token.BalanceOf(beneficiary).Uint64())
}

func TestSnapshotRestore(t *testing.T) {
	require := require.New(t)
	f := newFixture(t, true)
	f.clock.Advance(60 * time.Second)
	_, err := f.escrow.Release(beneficiary)
	require.NoError(err)

	raw, err := json.Marshal(f.escrow.Snapshot())
	require.NoError(err)
	var s State
	require.NoError(json.Unmarshal(raw, &s))

	restored, err := Restore(nil, f.clock, f.token, s)
	require.NoError(err)
	require.Equal(f.escrow.Schedule(), restored.Schedule())
	f.clock.Advance(50 * time.Second)
	amount, err := restored.Release(beneficiary)
	require.NoError(err)
	require.Equal(uint64(500), amount.Uint64())
}
