// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
)

// Gauges is a point in time view of a deployment
type Gauges struct {
	BlockTime        uint64
	WeiRaised        *uint256.Int
	PreTGEReserved   *uint256.Int
	TotalSupply      *uint256.Int
	MaxSupply        *uint256.Int
	SaleContributors int
	Settled          int
	TokenPaused      bool
}

// StateCollector reads Gauges from its source on every scrape
type StateCollector struct {
	source func() (Gauges, error)

	blockTime    *prometheus.Desc
	weiRaised    *prometheus.Desc
	reserved     *prometheus.Desc
	totalSupply  *prometheus.Desc
	maxSupply    *prometheus.Desc
	contributors *prometheus.Desc
	settled      *prometheus.Desc
	paused       *prometheus.Desc
	up           *prometheus.Desc
}

func NewStateCollector(source func() (Gauges, error)) *StateCollector {
	return &StateCollector{
		source:       source,
		blockTime:    prometheus.NewDesc("tge_block_time_seconds", "Simulated block time", nil, nil),
		weiRaised:    prometheus.NewDesc("tge_sale_wei_raised", "Wei raised by the public sale", nil, nil),
		reserved:     prometheus.NewDesc("tge_pretge_wei_reserved", "Wei reserved in the pre-TGE ledger", nil, nil),
		totalSupply:  prometheus.NewDesc("tge_token_total_supply", "Token total supply in base units", nil, nil),
		maxSupply:    prometheus.NewDesc("tge_token_max_supply", "Token max supply in base units", nil, nil),
		contributors: prometheus.NewDesc("tge_sale_contributors", "Distinct public sale contributors", nil, nil),
		settled:      prometheus.NewDesc("tge_distribution_settled", "Settled allocations", nil, nil),
		paused:       prometheus.NewDesc("tge_token_paused", "1 while token transfers are paused", nil, nil),
		up:           prometheus.NewDesc("tge_state_up", "1 if the deployment state could be read", nil, nil),
	}
}

func (c *StateCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{
		c.blockTime, c.weiRaised, c.reserved, c.totalSupply, c.maxSupply,
		c.contributors, c.settled, c.paused, c.up,
	} {
		ch <- d
	}
}

func (c *StateCollector) Collect(ch chan<- prometheus.Metric) {
	g, err := c.source()
	if err != nil {
		ch <- prometheus.MustNewConstMetric(c.up, prometheus.GaugeValue, 0)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.up, prometheus.GaugeValue, 1)
	ch <- prometheus.MustNewConstMetric(c.blockTime, prometheus.GaugeValue, float64(g.BlockTime))
	ch <- prometheus.MustNewConstMetric(c.weiRaised, prometheus.GaugeValue, toFloat(g.WeiRaised))
	ch <- prometheus.MustNewConstMetric(c.reserved, prometheus.GaugeValue, toFloat(g.PreTGEReserved))
	ch <- prometheus.MustNewConstMetric(c.totalSupply, prometheus.GaugeValue, toFloat(g.TotalSupply))
	ch <- prometheus.MustNewConstMetric(c.maxSupply, prometheus.GaugeValue, toFloat(g.MaxSupply))
	ch <- prometheus.MustNewConstMetric(c.contributors, prometheus.GaugeValue, float64(g.SaleContributors))
	ch <- prometheus.MustNewConstMetric(c.settled, prometheus.GaugeValue, float64(g.Settled))
	paused := 0.0
	if g.TokenPaused {
		paused = 1
	}
	ch <- prometheus.MustNewConstMetric(c.paused, prometheus.GaugeValue, paused)
}

func toFloat(v *uint256.Int) float64 {
	if v == nil {
		return 0
	}
	f, _ := new(big.Float).SetInt(v.ToBig()).Float64()
	return f
}
