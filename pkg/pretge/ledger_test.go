// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pretge

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/tge/pkg/constants"
	"github.com/stretchr/testify/require"
)

var (
	ledgerAddr = common.HexToAddress("0x00000000000000000000000000000000000000e1")
	owner      = common.HexToAddress("0x0000000000000000000000000000000000000001")
	accounts   = []common.Address{
		common.HexToAddress("0x00000000000000000000000000000000000000a1"),
		common.HexToAddress("0x00000000000000000000000000000000000000a2"),
		common.HexToAddress("0x00000000000000000000000000000000000000a3"),
	}
)

func newTestLedger(t *testing.T) *Ledger {
	l, err := New(luxlog.NewNoOpLogger(), ledgerAddr, owner)
	require.NoError(t, err)
	return l
}

func weis(amounts ...uint64) []*uint256.Int {
	out := make([]*uint256.Int, len(amounts))
	for i, a := range amounts {
		out[i] = uint256.NewInt(a)
	}
	return out
}

func TestBulkReserve(t *testing.T) {
	require := require.New(t)
	l := newTestLedger(t)

	err := l.BulkReserve(owner, accounts, weis(50000, 500000, 5000000), []bool{true, false, true})
	require.NoError(err)

	c := l.Contribution(accounts[1])
	require.False(c.Vests)
	require.Equal(uint64(500000), c.Wei.Uint64())
	require.Equal(accounts, l.Contributors())
	require.Equal(uint64(5550000), l.TotalReserved().Uint64())

	unknown := l.Contribution(common.HexToAddress("0x0000000000000000000000000000000000000bad"))
	require.False(unknown.Vests)
	require.True(unknown.Wei.IsZero())
}

func TestBulkReserveAccumulatesAndOverwritesFlag(t *testing.T) {
	require := require.New(t)
	l := newTestLedger(t)

	require.NoError(l.BulkReserve(owner, accounts[:1], weis(10), []bool{true}))
	require.NoError(l.BulkReserve(owner, []common.Address{accounts[0], accounts[0]}, weis(5, 7), []bool{true, false}))

	c := l.Contribution(accounts[0])
	require.Equal(uint64(22), c.Wei.Uint64())
	require.False(c.Vests)
	require.Len(l.Contributors(), 1)
}

func TestBulkReserveRejections(t *testing.T) {
	tests := []struct {
		name    string
		caller  common.Address
		addrs   []common.Address
		amounts []*uint256.Int
		vests   []bool
		wantErr error
	}{
		{
			name:    "non owner",
			caller:  accounts[0],
			addrs:   accounts[:1],
			amounts: weis(1),
			vests:   []bool{false},
			wantErr: constants.ErrNotOwner,
		},
		{
			name:    "fewer amounts",
			caller:  owner,
			addrs:   accounts,
			amounts: weis(1, 2),
			vests:   []bool{false, false, false},
			wantErr: constants.ErrArityMismatch,
		},
		{
			name:    "fewer flags",
			caller:  owner,
			addrs:   accounts[:2],
			amounts: weis(1, 2),
			vests:   []bool{false},
			wantErr: constants.ErrArityMismatch,
		},
		{
			name:    "zero address in batch",
			caller:  owner,
			addrs:   []common.Address{accounts[0], {}},
			amounts: weis(1, 2),
			vests:   []bool{false, false},
			wantErr: constants.ErrInvalidAddress,
		},
		{
			name:    "overflow",
			caller:  owner,
			addrs:   []common.Address{accounts[0], accounts[0]},
			amounts: []*uint256.Int{new(uint256.Int).SetAllOne(), uint256.NewInt(1)},
			vests:   []bool{false, false},
			wantErr: constants.ErrOverflow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			l := newTestLedger(t)
			err := l.BulkReserve(tt.caller, tt.addrs, tt.amounts, tt.vests)
			require.ErrorIs(err, tt.wantErr)
			// nothing from a rejected batch is visible
			require.Empty(l.Contributors())
			require.True(l.Contribution(accounts[0]).Wei.IsZero())
		})
	}
}

func TestLock(t *testing.T) {
	require := require.New(t)
	l := newTestLedger(t)
	require.NoError(l.BulkReserve(owner, accounts[:1], weis(10), []bool{false}))

	require.ErrorIs(l.Lock(accounts[0]), constants.ErrNotOwner)
	require.False(l.Locked())
	require.NoError(l.Lock(owner))
	require.True(l.Locked())

	err := l.BulkReserve(owner, accounts[1:2], weis(10), []bool{false})
	require.ErrorIs(err, constants.ErrLedgerClosed)
	require.Equal(constants.StateConflictError, constants.KindOf(err))
	require.ErrorIs(l.Lock(owner), constants.ErrLedgerClosed)
	require.Equal(uint64(10), l.Contribution(accounts[0]).Wei.Uint64())
}

func TestSnapshotRestore(t *testing.T) {
	require := require.New(t)
	l := newTestLedger(t)
	require.NoError(l.BulkReserve(owner, accounts, weis(3, 2, 1), []bool{true, false, true}))
	require.NoError(l.Lock(owner))

	restored, err := Restore(luxlog.NewNoOpLogger(), l.Snapshot())
	require.NoError(err)
	require.True(restored.Locked())
	require.Equal(accounts, restored.Contributors())
	require.Equal(l.Contribution(accounts[2]), restored.Contribution(accounts[2]))
}
