// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package application

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	luxlog "github.com/luxfi/log"
	"github.com/luxfi/tge/pkg/config"
	"github.com/luxfi/tge/pkg/constants"
	"github.com/luxfi/tge/pkg/deployment"
)

const (
	DeploymentSpecFileName = "deployment.yaml"
)

type Lux struct {
	Log     luxlog.Logger
	baseDir string
	Conf    *config.Config
	Cmd     interface{} // Current command being executed (cobra.Command)
}

func New() *Lux {
	return &Lux{}
}

func (app *Lux) Setup(baseDir string, log luxlog.Logger, conf *config.Config) {
	app.baseDir = baseDir
	app.Log = log
	app.Conf = conf
}

func (app *Lux) GetBaseDir() string {
	return app.baseDir
}

func (app *Lux) GetLogDir() string {
	return filepath.Join(app.baseDir, constants.LogDir)
}

func (app *Lux) GetStatePath() string {
	return filepath.Join(app.baseDir, constants.StateFileName)
}

func (app *Lux) GetDeploymentSpecPath() string {
	return filepath.Join(app.baseDir, DeploymentSpecFileName)
}

func (app *Lux) StateExists() bool {
	_, err := os.Stat(app.GetStatePath())
	return err == nil
}

// ReadStateBytes returns the raw state file, or ErrStateNotFound
func (app *Lux) ReadStateBytes() ([]byte, error) {
	bytes, err := os.ReadFile(app.GetStatePath())
	if errors.Is(err, os.ErrNotExist) {
		return nil, constants.ErrStateNotFound
	}
	return bytes, err
}

func (app *Lux) WriteStateBytes(bytes []byte) error {
	return app.writeFile(app.GetStatePath(), bytes)
}

func (app *Lux) LoadState() (deployment.State, error) {
	jsonBytes, err := app.ReadStateBytes()
	if err != nil {
		return deployment.State{}, err
	}
	var s deployment.State
	if err := json.Unmarshal(jsonBytes, &s); err != nil {
		return deployment.State{}, fmt.Errorf("invalid state file %s: %w", app.GetStatePath(), err)
	}
	return s, nil
}

func (app *Lux) SaveState(s deployment.State) error {
	s.Version = constants.StateVersion
	jsonBytes, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return err
	}
	return app.WriteStateBytes(jsonBytes)
}

// LoadDeployment restores the simulated deployment from the base dir
func (app *Lux) LoadDeployment() (*deployment.Deployment, error) {
	s, err := app.LoadState()
	if err != nil {
		return nil, err
	}
	return deployment.Restore(app.Log, s)
}

func (app *Lux) SaveDeployment(d *deployment.Deployment) error {
	return app.SaveState(d.Snapshot())
}

// UpdateDeployment loads the deployment, applies f and saves the result when f succeeds
func (app *Lux) UpdateDeployment(f func(*deployment.Deployment) error) error {
	d, err := app.LoadDeployment()
	if err != nil {
		return err
	}
	if err := f(d); err != nil {
		return err
	}
	return app.SaveDeployment(d)
}

// WriteDeploymentSpec keeps a copy of the spec a deployment was created from
func (app *Lux) WriteDeploymentSpec(spec *deployment.Spec) error {
	if err := os.MkdirAll(app.baseDir, constants.DefaultPerms755); err != nil {
		return err
	}
	return deployment.WriteYAML(spec, app.GetDeploymentSpecPath())
}

// RemoveDeployment deletes the state and spec copy
func (app *Lux) RemoveDeployment() error {
	for _, path := range []string{app.GetStatePath(), app.GetDeploymentSpecPath()} {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

func (*Lux) writeFile(path string, bytes []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), constants.DefaultPerms755); err != nil {
		return err
	}

	return os.WriteFile(path, bytes, constants.WriteReadReadPerms)
}
