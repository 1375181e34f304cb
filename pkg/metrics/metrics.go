// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/tge/pkg/constants"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StatusOK = "ok"

	// PathNone labels settlements rejected before the vesting path is known
	PathNone    = "none"
	PathDirect  = "direct"
	PathVesting = "vesting"
)

var (
	ContributionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tge_sale_contributions_total",
			Help: "Total number of public sale contribution attempts",
		},
		[]string{"status"},
	)

	SettlementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tge_distribution_settlements_total",
			Help: "Total number of settlement attempts",
		},
		[]string{"path", "status"},
	)

	ReleasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tge_vesting_releases_total",
			Help: "Total number of escrow release attempts",
		},
		[]string{"status"},
	)

	// float64 loses precision above 2^53 base units
	TokensMinted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tge_token_minted_base_units_total",
			Help: "Total token base units minted",
		},
	)
)

// Status maps an operation result to a label value
func Status(err error) string {
	if err == nil {
		return StatusOK
	}
	return constants.KindOf(err).String()
}

func ObserveContribution(err error) {
	ContributionsTotal.WithLabelValues(Status(err)).Inc()
}

func ObserveSettlement(path string, err error) {
	SettlementsTotal.WithLabelValues(path, Status(err)).Inc()
}

func ObserveRelease(err error) {
	ReleasesTotal.WithLabelValues(Status(err)).Inc()
}

func ObserveMint(amount *uint256.Int) {
	if amount == nil {
		return
	}
	TokensMinted.Add(toFloat(amount))
}
