// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deployment

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/tge/pkg/chain"
	"github.com/luxfi/tge/pkg/constants"
	"github.com/luxfi/tge/pkg/distribution"
	"github.com/luxfi/tge/pkg/sale"
	"github.com/luxfi/tge/pkg/token"
	"gopkg.in/yaml.v3"
)

const (
	// CurrentAPIVersion is the current deployment file schema version
	CurrentAPIVersion = "tge.lux.network/v1"

	// KindTokenSale is the kind for deployment files
	KindTokenSale = "TokenSale"
)

// Spec is the on-disk description of a sale deployment. Amounts are decimal
// strings, durations use time.ParseDuration syntax and are relative to the
// genesis time.
type Spec struct {
	APIVersion   string            `yaml:"apiVersion" json:"apiVersion"`
	Kind         string            `yaml:"kind" json:"kind"`
	Owner        string            `yaml:"owner" json:"owner"`
	GenesisTime  string            `yaml:"genesisTime,omitempty" json:"genesisTime,omitempty"`
	Token        TokenSpec         `yaml:"token" json:"token"`
	Sale         SaleSpec          `yaml:"sale" json:"sale"`
	Distribution DistributionSpec  `yaml:"distribution" json:"distribution"`
	Accounts     []AccountSpec     `yaml:"accounts,omitempty" json:"accounts,omitempty"`
	Reservations []ReservationSpec `yaml:"reservations,omitempty" json:"reservations,omitempty"`
}

type TokenSpec struct {
	Name      string `yaml:"name,omitempty" json:"name,omitempty"`
	Symbol    string `yaml:"symbol,omitempty" json:"symbol,omitempty"`
	MaxSupply string `yaml:"maxSupply" json:"maxSupply"`
}

type SaleSpec struct {
	Treasury         string   `yaml:"treasury" json:"treasury"`
	StartDelay       string   `yaml:"startDelay,omitempty" json:"startDelay,omitempty"`
	Duration         string   `yaml:"duration" json:"duration"`
	IndividualCapWei string   `yaml:"individualCapWei" json:"individualCapWei"`
	TotalCapWei      string   `yaml:"totalCapWei" json:"totalCapWei"`
	GraceOffset      string   `yaml:"graceOffset,omitempty" json:"graceOffset,omitempty"`
	Whitelist        []string `yaml:"whitelist,omitempty" json:"whitelist,omitempty"`
}

type DistributionSpec struct {
	TokensPerWei           string `yaml:"tokensPerWei" json:"tokensPerWei"`
	VestingBonusMultiplier uint64 `yaml:"vestingBonusMultiplier" json:"vestingBonusMultiplier"`
	// VestingStartDelay is counted from the end of the grace window
	VestingStartDelay string `yaml:"vestingStartDelay,omitempty" json:"vestingStartDelay,omitempty"`
	VestingDuration   string `yaml:"vestingDuration" json:"vestingDuration"`
}

// AccountSpec credits native currency at genesis
type AccountSpec struct {
	Address string `yaml:"address" json:"address"`
	Balance string `yaml:"balance" json:"balance"`
}

// ReservationSpec is a pre-TGE reservation loaded at genesis
type ReservationSpec struct {
	Address string `yaml:"address" json:"address"`
	Wei     string `yaml:"wei" json:"wei"`
	Vest    bool   `yaml:"vest" json:"vest"`
}

// Config is a resolved Spec
type Config struct {
	Genesis      time.Time
	Owner        common.Address
	Token        token.Config
	Sale         sale.Config
	Params       distribution.Params
	Whitelist    []common.Address
	Balances     map[common.Address]*uint256.Int
	Reservations []Reservation
}

type Reservation struct {
	Address common.Address
	Wei     *uint256.Int
	Vest    bool
}

// ParseFile reads a deployment spec. Supports both YAML and JSON formats based on file extension.
func ParseFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deployment file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON(data)
	default:
		return ParseYAML(data)
	}
}

func ParseYAML(data []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validateHeader(&spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

func ParseJSON(data []byte) (*Spec, error) {
	var spec Spec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if err := validateHeader(&spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

// WriteYAML writes a deployment spec to YAML format.
func WriteYAML(spec *Spec, path string) error {
	data, err := yaml.Marshal(spec)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return os.WriteFile(path, data, constants.WriteReadReadPerms)
}

func validateHeader(spec *Spec) error {
	if spec.APIVersion == "" {
		spec.APIVersion = CurrentAPIVersion
	}
	if spec.APIVersion != CurrentAPIVersion {
		return fmt.Errorf("unsupported apiVersion %q, expected %q", spec.APIVersion, CurrentAPIVersion)
	}
	if spec.Kind == "" {
		spec.Kind = KindTokenSale
	}
	if spec.Kind != KindTokenSale {
		return fmt.Errorf("unsupported kind %q, expected %q", spec.Kind, KindTokenSale)
	}
	return nil
}

// Resolve converts the spec into component configs. now is used when no
// genesis time is set.
func (s *Spec) Resolve(now time.Time) (*Config, error) {
	genesis := now.Truncate(time.Second)
	if s.GenesisTime != "" {
		t, err := time.Parse(time.RFC3339, s.GenesisTime)
		if err != nil {
			return nil, fmt.Errorf("genesisTime: %w", err)
		}
		genesis = t
	}
	owner, err := chain.ParseAddress(s.Owner)
	if err != nil {
		return nil, fmt.Errorf("owner: %w", err)
	}
	cfg := &Config{
		Genesis:  genesis.UTC(),
		Owner:    owner,
		Balances: make(map[common.Address]*uint256.Int),
	}

	maxSupply, err := chain.ParseAmount(s.Token.MaxSupply)
	if err != nil {
		return nil, fmt.Errorf("token.maxSupply: %w", err)
	}
	cfg.Token = token.Config{Name: s.Token.Name, Symbol: s.Token.Symbol, MaxSupply: maxSupply}

	if cfg.Sale, err = s.Sale.resolve(chain.Timestamp(cfg.Genesis)); err != nil {
		return nil, err
	}
	if cfg.Whitelist, err = chain.ParseAddresses(s.Sale.Whitelist); err != nil {
		return nil, fmt.Errorf("sale.whitelist: %w", err)
	}
	if cfg.Params, err = s.Distribution.resolve(cfg.Sale.GraceEndsAt()); err != nil {
		return nil, err
	}

	for i, a := range s.Accounts {
		addr, err := chain.ParseAddress(a.Address)
		if err != nil {
			return nil, fmt.Errorf("accounts[%d].address: %w", i, err)
		}
		bal, err := chain.ParseAmount(a.Balance)
		if err != nil {
			return nil, fmt.Errorf("accounts[%d].balance: %w", i, err)
		}
		if prior, ok := cfg.Balances[addr]; ok {
			bal = new(uint256.Int).Add(prior, bal)
		}
		cfg.Balances[addr] = bal
	}
	for i, r := range s.Reservations {
		addr, err := chain.ParseAddress(r.Address)
		if err != nil {
			return nil, fmt.Errorf("reservations[%d].address: %w", i, err)
		}
		wei, err := chain.ParseAmount(r.Wei)
		if err != nil {
			return nil, fmt.Errorf("reservations[%d].wei: %w", i, err)
		}
		cfg.Reservations = append(cfg.Reservations, Reservation{Address: addr, Wei: wei, Vest: r.Vest})
	}
	return cfg, nil
}

func (s SaleSpec) resolve(genesis uint64) (sale.Config, error) {
	treasury, err := chain.ParseAddress(s.Treasury)
	if err != nil {
		return sale.Config{}, fmt.Errorf("sale.treasury: %w", err)
	}
	startDelay, err := ParseDuration(s.StartDelay, 0)
	if err != nil {
		return sale.Config{}, fmt.Errorf("sale.startDelay: %w", err)
	}
	duration, err := ParseDuration(s.Duration, 0)
	if err != nil {
		return sale.Config{}, fmt.Errorf("sale.duration: %w", err)
	}
	grace, err := ParseDuration(s.GraceOffset, constants.DefaultSettlementGraceOffset)
	if err != nil {
		return sale.Config{}, fmt.Errorf("sale.graceOffset: %w", err)
	}
	individualCap, err := chain.ParseAmount(s.IndividualCapWei)
	if err != nil {
		return sale.Config{}, fmt.Errorf("sale.individualCapWei: %w", err)
	}
	totalCap, err := chain.ParseAmount(s.TotalCapWei)
	if err != nil {
		return sale.Config{}, fmt.Errorf("sale.totalCapWei: %w", err)
	}
	start := genesis + chain.Seconds(startDelay)
	return sale.Config{
		Treasury:      treasury,
		StartTime:     start,
		EndTime:       start + chain.Seconds(duration),
		IndividualCap: individualCap,
		TotalCap:      totalCap,
		GraceOffset:   grace,
	}, nil
}

func (s DistributionSpec) resolve(graceEndsAt uint64) (distribution.Params, error) {
	rate, err := chain.ParseAmount(s.TokensPerWei)
	if err != nil {
		return distribution.Params{}, fmt.Errorf("distribution.tokensPerWei: %w", err)
	}
	delay, err := ParseDuration(s.VestingStartDelay, time.Second)
	if err != nil {
		return distribution.Params{}, fmt.Errorf("distribution.vestingStartDelay: %w", err)
	}
	duration, err := ParseDuration(s.VestingDuration, 0)
	if err != nil {
		return distribution.Params{}, fmt.Errorf("distribution.vestingDuration: %w", err)
	}
	return distribution.Params{
		TokensPerWei:           rate,
		VestingBonusMultiplier: s.VestingBonusMultiplier,
		VestingStartTime:       graceEndsAt + chain.Seconds(delay),
		VestingDuration:        duration,
	}, nil
}

// ParseDuration accepts time.ParseDuration syntax plus a "d" suffix for days.
// An empty string yields def.
func ParseDuration(s string, def time.Duration) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	var (
		d   time.Duration
		err error
	)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		d, err = time.ParseDuration(days + "h")
		d *= 24
	} else {
		d, err = time.ParseDuration(s)
	}
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", s)
	}
	return d, nil
}
