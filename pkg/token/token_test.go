// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package token

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/tge/pkg/constants"
	"github.com/stretchr/testify/require"
)

var (
	tokenAddr = common.HexToAddress("0x00000000000000000000000000000000000000f0")
	owner     = common.HexToAddress("0x0000000000000000000000000000000000000001")
	alice     = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	bob       = common.HexToAddress("0x00000000000000000000000000000000000000b0")
)

func newTestLedger(t *testing.T, maxSupply uint64) *Ledger {
	l, err := New(luxlog.NewNoOpLogger(), tokenAddr, owner, Config{MaxSupply: uint256.NewInt(maxSupply)})
	require.NoError(t, err)
	return l
}

type recordingReceiver struct {
	calls  int
	amount *uint256.Int
}

func (r *recordingReceiver) OnTokensReceived(_, _ common.Address, amount *uint256.Int) {
	r.calls++
	r.amount = amount
}

func TestNewValidation(t *testing.T) {
	require := require.New(t)
	_, err := New(nil, common.Address{}, owner, Config{MaxSupply: uint256.NewInt(1)})
	require.ErrorIs(err, constants.ErrInvalidAddress)
	_, err = New(nil, tokenAddr, owner, Config{})
	require.ErrorIs(err, constants.ErrZeroAmount)
	_, err = New(nil, tokenAddr, common.Address{}, Config{MaxSupply: uint256.NewInt(1)})
	require.ErrorIs(err, constants.ErrInvalidAddress)

	l := newTestLedger(t, 10)
	require.True(l.Paused())
	require.Equal(DefaultSymbol, l.Symbol())
}

func TestMint(t *testing.T) {
	tests := []struct {
		name    string
		caller  common.Address
		to      common.Address
		amount  uint64
		wantErr error
	}{
		{name: "owner mints", caller: owner, to: alice, amount: 60},
		{name: "non owner", caller: alice, to: alice, amount: 1, wantErr: constants.ErrNotOwner},
		{name: "zero recipient", caller: owner, to: common.Address{}, amount: 1, wantErr: constants.ErrInvalidAddress},
		{name: "zero amount", caller: owner, to: alice, amount: 0, wantErr: constants.ErrZeroAmount},
		{name: "above max supply", caller: owner, to: alice, amount: 101, wantErr: constants.ErrSupplyExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			l := newTestLedger(t, 100)
			err := l.Mint(tt.caller, tt.to, uint256.NewInt(tt.amount))
			if tt.wantErr != nil {
				require.ErrorIs(err, tt.wantErr)
				require.True(l.TotalSupply().IsZero())
				return
			}
			require.NoError(err)
			require.Equal(tt.amount, l.BalanceOf(tt.to).Uint64())
			require.Equal(tt.amount, l.TotalSupply().Uint64())
		})
	}
}

func TestMintUpToMaxSupply(t *testing.T) {
	require := require.New(t)
	l := newTestLedger(t, 100)
	require.NoError(l.Mint(owner, alice, uint256.NewInt(99)))
	require.NoError(l.Mint(owner, bob, uint256.NewInt(1)))
	require.ErrorIs(l.Mint(owner, bob, uint256.NewInt(1)), constants.ErrSupplyExceeded)
	require.Equal(uint64(100), l.TotalSupply().Uint64())
}

func TestTransferBlockedUntilUnpaused(t *testing.T) {
	require := require.New(t)
	l := newTestLedger(t, 100)
	require.NoError(l.Mint(owner, alice, uint256.NewInt(10)))

	require.ErrorIs(l.Transfer(alice, bob, uint256.NewInt(5)), constants.ErrTransferBlocked)
	require.ErrorIs(l.Unpause(alice), constants.ErrNotOwner)
	require.NoError(l.Unpause(owner))
	require.ErrorIs(l.Unpause(owner), constants.ErrAlreadyUnpaused)

	require.NoError(l.Transfer(alice, bob, uint256.NewInt(5)))
	require.Equal(uint64(5), l.BalanceOf(alice).Uint64())
	require.Equal(uint64(5), l.BalanceOf(bob).Uint64())
	require.ErrorIs(l.Transfer(alice, bob, uint256.NewInt(6)), constants.ErrInsufficientBalance)

	require.NoError(l.Pause(owner))
	require.ErrorIs(l.Transfer(alice, bob, uint256.NewInt(1)), constants.ErrTransferBlocked)
}

func TestReceiverHook(t *testing.T) {
	require := require.New(t)
	l := newTestLedger(t, 100)
	r := &recordingReceiver{}
	l.SetReceiver(bob, r)

	require.NoError(l.Mint(owner, bob, uint256.NewInt(3)))
	require.Equal(1, r.calls)
	require.Equal(uint64(3), r.amount.Uint64())

	require.NoError(l.Mint(owner, alice, uint256.NewInt(3)))
	require.Equal(1, r.calls)

	l.SetReceiver(bob, nil)
	require.NoError(l.Mint(owner, bob, uint256.NewInt(1)))
	require.Equal(1, r.calls)
}

func TestSnapshotRestore(t *testing.T) {
	require := require.New(t)
	l := newTestLedger(t, 100)
	require.NoError(l.Mint(owner, alice, uint256.NewInt(42)))
	require.NoError(l.Unpause(owner))

	restored, err := Restore(luxlog.NewNoOpLogger(), l.Snapshot())
	require.NoError(err)
	require.False(restored.Paused())
	require.Equal(uint64(42), restored.BalanceOf(alice).Uint64())
	require.Equal(uint64(42), restored.TotalSupply().Uint64())
	require.Equal(uint64(100), restored.MaxSupply().Uint64())
	require.Equal(owner, restored.Owner())
}
