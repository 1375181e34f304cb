// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/tge/pkg/constants"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   *uint256.Int
		want string
	}{
		{in: nil, want: "0"},
		{in: uint256.NewInt(999), want: "999"},
		{in: uint256.NewInt(5_000_000), want: "5_000_000"},
		{in: new(uint256.Int).Lsh(uint256.NewInt(1), 64), want: "18_446_744_073_709_551_616"},
		{in: new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(20)), want: "100_000_000_000_000_000_000"},
		{in: new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(36)), want: "1" + strings.Repeat("_000", 12)},
		{in: new(uint256.Int).AddUint64(new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(38)), 7), want: "100" + strings.Repeat("_000", 11) + "_007"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, FormatAmount(tt.in))
	}
}

func TestErrorHint(t *testing.T) {
	require := require.New(t)
	require.Contains(ErrorHint(fmt.Errorf("%w: later", constants.ErrSaleStillOpen)), "retry later")
	require.Contains(ErrorHint(constants.ErrCapExceeded), "smaller amount")
	require.Contains(ErrorHint(constants.ErrAlreadySettled), "StateConflictError")
	require.Empty(ErrorHint(fmt.Errorf("disk full")))
}

func TestUserLog(t *testing.T) {
	require := require.New(t)
	var out bytes.Buffer
	ul := &UserLog{log: luxlog.NewNoOpLogger(), writer: &out}

	ul.GreenCheckmarkToUser("settled %s", "0xa1")
	ul.PrintError(constants.ErrOutOfWindow)
	require.Contains(out.String(), "✓ settled 0xa1")
	require.Contains(out.String(), "ERROR: outside of the allowed time window")
	require.Contains(out.String(), "retry later")
}

func TestTable(t *testing.T) {
	require := require.New(t)
	var out bytes.Buffer
	table := NewTable(&out, "Address", "Wei").AlignRight()
	table.AppendRow("0xa1", FormatAmount(uint256.NewInt(1234)))
	table.Render()
	require.Contains(out.String(), "1_234")
	require.Contains(out.String(), "0xa1")
}

func TestTerminalDetection(t *testing.T) {
	require := require.New(t)
	var out bytes.Buffer
	require.False(IsTerminal(&out))
	require.Equal(defaultWidth, TerminalWidth(&out))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(err)
	defer f.Close()
	require.False(IsTerminal(f))
	require.Equal(defaultWidth, TerminalWidth(f))
}

func TestUserLogWithoutTerminalIsPlain(t *testing.T) {
	require := require.New(t)
	var out bytes.Buffer
	NewUserLog(luxlog.NewNoOpLogger(), &out)
	Logger.GreenCheckmarkToUser("done")
	Logger.RedXToUser("failed")
	Logger.PrintLineSeparator()
	require.Equal("✓ done\n✗ failed\n"+strings.Repeat("=", defaultWidth)+"\n", out.String())
	require.NotContains(out.String(), ansiReset)
}

func TestPaint(t *testing.T) {
	require := require.New(t)
	require.Equal("✓", paint(false, ansiGreen, "✓"))
	require.Equal(ansiGreen+"✓"+ansiReset, paint(true, ansiGreen, "✓"))
}
