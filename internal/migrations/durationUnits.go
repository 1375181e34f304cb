// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package migrations

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/luxfi/tge/pkg/application"
	"github.com/luxfi/tge/pkg/constants"
)

// legacyStateVersion stored durations as whole seconds
const legacyStateVersion = "1.0.0"

func migrateDurationUnits(app *application.Lux, runner *migrationRunner) error {
	raw, err := app.ReadStateBytes()
	if errors.Is(err, constants.ErrStateNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	var state map[string]json.RawMessage
	if err := json.Unmarshal(raw, &state); err != nil {
		return err
	}
	var version string
	if v, ok := state["version"]; ok {
		if err := json.Unmarshal(v, &version); err != nil {
			return err
		}
	}
	if version != legacyStateVersion {
		return nil
	}

	runner.printMigrationMessage()
	if err := secondsToDuration(state, "sale", "config", "settlementGraceOffset"); err != nil {
		return err
	}
	if err := secondsToDuration(state, "engine", "params", "vestingDuration"); err != nil {
		return err
	}
	state["version"], err = json.Marshal(constants.StateVersion)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(state, "", "    ")
	if err != nil {
		return err
	}
	return app.WriteStateBytes(out)
}

// secondsToDuration rewrites the integer at path, in place, from seconds to a time.Duration
func secondsToDuration(obj map[string]json.RawMessage, path ...string) error {
	key := path[0]
	raw, ok := obj[key]
	if !ok {
		return nil
	}
	if len(path) == 1 {
		var seconds int64
		if err := json.Unmarshal(raw, &seconds); err != nil {
			return err
		}
		converted, err := json.Marshal(time.Duration(seconds) * time.Second)
		if err != nil {
			return err
		}
		obj[key] = converted
		return nil
	}
	var child map[string]json.RawMessage
	if err := json.Unmarshal(raw, &child); err != nil {
		return err
	}
	if err := secondsToDuration(child, path[1:]...); err != nil {
		return err
	}
	updated, err := json.Marshal(child)
	if err != nil {
		return err
	}
	obj[key] = updated
	return nil
}
