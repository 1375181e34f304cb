// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package deployment

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/luxfi/tge/pkg/constants"
	"github.com/stretchr/testify/require"
)

func TestParseFile(t *testing.T) {
	require := require.New(t)
	spec, err := ParseFile("testdata/tge.yaml")
	require.NoError(err)
	require.Equal(CurrentAPIVersion, spec.APIVersion)
	require.Len(spec.Reservations, 2)

	cfg, err := spec.Resolve(time.Now())
	require.NoError(err)
	genesis := uint64(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Unix())
	require.Equal(genesis+1, cfg.Sale.StartTime)
	require.Equal(genesis+301, cfg.Sale.EndTime)
	require.Equal(5*24*time.Hour, cfg.Sale.GraceOffset)
	require.Equal(cfg.Sale.GraceEndsAt()+3600, cfg.Params.VestingStartTime)
	require.Equal(30*24*time.Hour, cfg.Params.VestingDuration)
	require.Equal("1000000000000000", cfg.Token.MaxSupply.Dec())
	require.Len(cfg.Whitelist, 2)
	require.Len(cfg.Balances, 2)
	require.True(cfg.Reservations[1].Vest)
	require.Equal(uint64(5_000_000), cfg.Reservations[1].Wei.Uint64())
}

func TestParseHeader(t *testing.T) {
	require := require.New(t)
	_, err := ParseYAML([]byte("apiVersion: v0\n"))
	require.ErrorContains(err, "unsupported apiVersion")
	_, err = ParseYAML([]byte("kind: Network\n"))
	require.ErrorContains(err, "unsupported kind")
	spec, err := ParseJSON([]byte(`{"owner": "0x00000000000000000000000000000000000000aa"}`))
	require.NoError(err)
	require.Equal(KindTokenSale, spec.Kind)
}

func TestResolveRejections(t *testing.T) {
	valid := func() *Spec {
		spec, err := ParseFile("testdata/tge.yaml")
		require.NoError(t, err)
		return spec
	}
	tests := []struct {
		name    string
		mutate  func(s *Spec)
		wantErr error
	}{
		{name: "zero owner", mutate: func(s *Spec) { s.Owner = "0x0000000000000000000000000000000000000000" }, wantErr: constants.ErrInvalidAddress},
		{name: "bad treasury", mutate: func(s *Spec) { s.Sale.Treasury = "treasury" }, wantErr: constants.ErrInvalidAddress},
		{name: "bad cap", mutate: func(s *Spec) { s.Sale.TotalCapWei = "lots" }, wantErr: constants.ErrOverflow},
		{name: "bad whitelist entry", mutate: func(s *Spec) { s.Sale.Whitelist = append(s.Sale.Whitelist, "0x1") }, wantErr: constants.ErrInvalidAddress},
		{name: "bad reservation", mutate: func(s *Spec) { s.Reservations[0].Wei = "" }, wantErr: constants.ErrZeroAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(s)
			_, err := s.Resolve(time.Now())
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseDuration(t *testing.T) {
	require := require.New(t)
	d, err := ParseDuration("", time.Minute)
	require.NoError(err)
	require.Equal(time.Minute, d)
	d, err = ParseDuration("5d", 0)
	require.NoError(err)
	require.Equal(120*time.Hour, d)
	d, err = ParseDuration("90m", 0)
	require.NoError(err)
	require.Equal(90*time.Minute, d)
	_, err = ParseDuration("-1d", 0)
	require.Error(err)
	_, err = ParseDuration("soon", 0)
	require.Error(err)
}

func TestDeployRejectsInvalidConfig(t *testing.T) {
	require := require.New(t)
	spec, err := ParseFile("testdata/tge.yaml")
	require.NoError(err)
	spec.Distribution.VestingBonusMultiplier = 42
	cfg, err := spec.Resolve(time.Now())
	require.NoError(err)
	_, err = Deploy(nil, cfg)
	require.ErrorIs(err, constants.ErrMultiplierOutOfRange)
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	require := require.New(t)
	spec, err := ParseFile("testdata/tge.yaml")
	require.NoError(err)
	path := filepath.Join(t.TempDir(), "tge.yaml")
	require.NoError(WriteYAML(spec, path))
	again, err := ParseFile(path)
	require.NoError(err)
	require.Equal(spec, again)
}
