// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package testutils

import (
	"bytes"
	"io"
	"testing"

	luxlog "github.com/luxfi/log"
	"github.com/luxfi/tge/pkg/application"
	"github.com/luxfi/tge/pkg/config"
	"github.com/luxfi/tge/pkg/ux"
	"github.com/stretchr/testify/require"
)

func SetupTest(t *testing.T) *require.Assertions {
	// use io.Discard to not print anything
	ux.NewUserLog(luxlog.NewNoOpLogger(), io.Discard)
	return require.New(t)
}

// SetupTestInTempDir returns an app rooted in a fresh temp dir, with user output captured in the buffer
func SetupTestInTempDir(t *testing.T) (*application.Lux, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	app := application.New()
	app.Setup(t.TempDir(), luxlog.NewNoOpLogger(), config.New())
	ux.NewUserLog(luxlog.NewNoOpLogger(), buf)
	return app, buf
}
