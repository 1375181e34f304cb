// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/tge/pkg/constants"
	"github.com/stretchr/testify/require"
)

var (
	owner   = common.HexToAddress("0x0000000000000000000000000000000000000001")
	someone = common.HexToAddress("0x0000000000000000000000000000000000000002")
	third   = common.HexToAddress("0x0000000000000000000000000000000000000003")
)

func TestOwnable(t *testing.T) {
	require := require.New(t)

	_, err := NewOwnable(common.Address{})
	require.ErrorIs(err, constants.ErrInvalidAddress)

	o, err := NewOwnable(owner)
	require.NoError(err)
	require.NoError(o.OnlyOwner(owner))

	err = o.OnlyOwner(someone)
	require.ErrorIs(err, constants.ErrNotOwner)
	require.Equal(constants.AuthorizationError, constants.KindOf(err))

	require.ErrorIs(o.TransferOwnership(someone, someone), constants.ErrNotOwner)
	require.ErrorIs(o.TransferOwnership(owner, common.Address{}), constants.ErrInvalidAddress)
	require.NoError(o.TransferOwnership(owner, someone))
	require.Equal(someone, o.Owner())
	require.ErrorIs(o.OnlyOwner(owner), constants.ErrNotOwner)
}

func TestRegistryKeepsInsertionOrderWithoutDuplicates(t *testing.T) {
	require := require.New(t)
	r := NewRegistry()

	require.True(r.Add(someone))
	require.True(r.Add(owner))
	require.False(r.Add(someone))
	require.True(r.Add(third))

	require.Equal(3, r.Len())
	require.Equal([]common.Address{someone, owner, third}, r.List())
	first, ok := r.At(0)
	require.True(ok)
	require.Equal(someone, first)
	_, ok = r.At(3)
	require.False(ok)
	require.True(r.Contains(owner))

	// the returned slice is a copy
	list := r.List()
	list[0] = common.Address{}
	require.Equal(someone, r.List()[0])
}

func TestAccessList(t *testing.T) {
	require := require.New(t)
	l := NewAccessList()

	require.False(l.Allowed(someone))
	l.Whitelist(someone, third)
	require.True(l.Allowed(someone))

	l.Blacklist(third)
	require.True(l.IsWhitelisted(third))
	require.False(l.Allowed(third))

	// blacklisting wins even for addresses never whitelisted
	l.Blacklist(owner)
	require.False(l.Allowed(owner))
	require.Equal([]common.Address{someone, third}, l.Whitelisted())
	require.Equal([]common.Address{owner, third}, l.Blacklisted())
}

func TestAccessListSortsAndDeduplicates(t *testing.T) {
	require := require.New(t)
	l := NewAccessList()
	require.Empty(l.Whitelisted())

	l.Whitelist(third, owner, third, someone, owner)
	require.Equal([]common.Address{owner, someone, third}, l.Whitelisted())
	require.Empty(l.Blacklisted())
}

func TestContributionClone(t *testing.T) {
	require := require.New(t)
	c := Contribution{Vests: true, Wei: uint256.NewInt(5)}
	clone := c.Clone()
	clone.Wei.AddUint64(clone.Wei, 1)
	require.Equal(uint64(5), c.Wei.Uint64())
	require.True(ZeroContribution().IsZero())
	require.True(Contribution{}.IsZero())
	require.False(c.IsZero())
}
