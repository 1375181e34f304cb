// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package migrations

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/luxfi/tge/internal/testutils"
	"github.com/luxfi/tge/pkg/constants"
	"github.com/stretchr/testify/require"
)

const legacyState = `{
	"version": "1.0.0",
	"sale": {"config": {"startTime": 10, "endTime": 20, "settlementGraceOffset": 432000}},
	"engine": {"params": {"vestingBonusMultiplier": 2000000, "vestingDuration": 3600}}
}`

func TestMigrateDurationUnits(t *testing.T) {
	require := require.New(t)
	app, buf := testutils.SetupTestInTempDir(t)
	require.NoError(app.WriteStateBytes([]byte(legacyState)))

	require.NoError(RunMigrations(app))
	require.Equal(runMessage+"\n"+endMessage+"\n", buf.String())

	raw, err := app.ReadStateBytes()
	require.NoError(err)
	var state struct {
		Version string `json:"version"`
		Sale    struct {
			Config struct {
				StartTime   uint64        `json:"startTime"`
				GraceOffset time.Duration `json:"settlementGraceOffset"`
			} `json:"config"`
		} `json:"sale"`
		Engine struct {
			Params struct {
				Multiplier uint64        `json:"vestingBonusMultiplier"`
				Duration   time.Duration `json:"vestingDuration"`
			} `json:"params"`
		} `json:"engine"`
	}
	require.NoError(json.Unmarshal(raw, &state))
	require.Equal(constants.StateVersion, state.Version)
	require.Equal(uint64(10), state.Sale.Config.StartTime)
	require.Equal(5*24*time.Hour, state.Sale.Config.GraceOffset)
	require.Equal(uint64(2_000_000), state.Engine.Params.Multiplier)
	require.Equal(time.Hour, state.Engine.Params.Duration)

	// second run is a no-op
	buf.Reset()
	require.NoError(RunMigrations(app))
	require.Empty(buf.String())
}

func TestMigrateDurationUnitsSkips(t *testing.T) {
	require := require.New(t)

	app, buf := testutils.SetupTestInTempDir(t)
	require.NoError(RunMigrations(app))
	require.Empty(buf.String())

	current := `{"version": "` + constants.StateVersion + `", "sale": {"config": {"settlementGraceOffset": 432000}}}`
	require.NoError(app.WriteStateBytes([]byte(current)))
	require.NoError(RunMigrations(app))
	require.Empty(buf.String())
	raw, err := app.ReadStateBytes()
	require.NoError(err)
	require.Equal(current, string(raw))
}

func TestMigrateDurationUnitsMalformed(t *testing.T) {
	require := require.New(t)
	app, _ := testutils.SetupTestInTempDir(t)
	require.NoError(app.WriteStateBytes([]byte(`{"version": "1.0.0", "sale": {"config": {"settlementGraceOffset": "5d"}}}`)))
	require.Error(RunMigrations(app))
}
