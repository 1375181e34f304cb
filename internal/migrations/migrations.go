// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package migrations

import (
	"fmt"

	"github.com/luxfi/tge/pkg/application"
	"github.com/luxfi/tge/pkg/ux"
)

type migrationFunc func(*application.Lux, *migrationRunner) error

// migrations run in key order, starting at 0
var migrations = map[int]migrationFunc{
	0: migrateDurationUnits,
}

const (
	runMessage       = "The following migrations are being executed on the saved state:"
	endMessage       = "Migrations successfully completed"
	failedEndMessage = "Migrations failed. Please check the state file in the base dir or redeploy with --force"
)

type migrationRunner struct {
	showMsg    bool
	running    bool
	migrations map[int]migrationFunc
}

// RunMigrations upgrades files in the base dir written by older versions
func RunMigrations(app *application.Lux) error {
	runner := &migrationRunner{
		showMsg:    true,
		migrations: migrations,
	}
	return runner.run(app)
}

func (m *migrationRunner) run(app *application.Lux) error {
	for i := 0; i < len(m.migrations); i++ {
		if err := m.migrations[i](app, m); err != nil {
			if m.running {
				ux.Logger.PrintToUser(failedEndMessage)
			}
			return fmt.Errorf("migration #%d failed: %w", i, err)
		}
	}
	if m.running {
		ux.Logger.PrintToUser(endMessage)
	}
	return nil
}

// printMigrationMessage is called by a migration that actually changes something
func (m *migrationRunner) printMigrationMessage() {
	if m.showMsg {
		ux.Logger.PrintToUser(runMessage)
	}
	m.showMsg = false
	m.running = true
}
