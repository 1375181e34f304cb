// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"testing"

	"github.com/luxfi/tge/pkg/constants"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "5000000", want: "5000000"},
		{in: "5_000_000", want: "5000000"},
		{in: " 0x10 ", want: "16"},
		{in: "0", want: "0"},
		{in: "", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "1.5", wantErr: true},
		{in: "115792089237316195423570985008687907853269984665640564039457584007913129639936", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := ParseAmount(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				require.Equal(t, constants.ValidationError, constants.KindOf(err))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, v.Dec())
		})
	}
}

func TestParseAddress(t *testing.T) {
	require := require.New(t)
	addr, err := ParseAddress("0x00000000000000000000000000000000000000a1")
	require.NoError(err)
	require.Equal(alice, addr)

	_, err = ParseAddress("0x0000000000000000000000000000000000000000")
	require.ErrorIs(err, constants.ErrInvalidAddress)
	_, err = ParseAddress("alice")
	require.ErrorIs(err, constants.ErrInvalidAddress)

	addrs, err := ParseAddresses([]string{alice.Hex(), bob.Hex()})
	require.NoError(err)
	require.Equal(alice, addrs[0])
	require.Equal(bob, addrs[1])
}
