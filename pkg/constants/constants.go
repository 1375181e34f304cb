// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import (
	"time"
)

const (
	DefaultPerms755    = 0o755
	WriteReadReadPerms = 0o644

	BaseDirName = ".tge"
	LogDir      = "logs"

	StateFileName = "state.json"
	StateVersion  = "1.1.0"

	MaxLogFileSize   = 4
	MaxNumOfLogFiles = 5
	RetainOldFiles   = 0 // retain all old log files

	DefaultConfigFileName = "cli"
	DefaultConfigFileType = "json"

	// Config keys
	ConfigBaseDirKey     = "base-dir"
	ConfigLogLevelKey    = "log-level"
	ConfigMetricsAddrKey = "metrics-addr"
	EnvPrefix            = "TGE"

	DefaultMetricsAddr = "127.0.0.1:9464"

	TimeParseLayout = "2006-01-02 15:04:05"
)

// Settlement and vesting parameters
const (
	// Precision is the fixed-point denominator of the vesting bonus multiplier
	Precision = 10_000_000

	MinVestingBonusMultiplier = 1_000_000
	MaxVestingBonusMultiplier = 10_000_000

	// DirectReleasePercent of a vested allocation is minted to the contributor at settlement,
	// the rest goes to escrow
	DirectReleasePercent = 10

	// DefaultSettlementGraceOffset separates the public sale end from the opening of settlement
	DefaultSettlementGraceOffset = 5 * 24 * time.Hour
)
