// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metricscmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/luxfi/tge/pkg/application"
	"github.com/luxfi/tge/pkg/metrics"
	"github.com/luxfi/tge/pkg/ux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

var (
	app *application.Lux

	listenAddr string
)

// tge metrics
func NewCmd(injectedApp *application.Lux) *cobra.Command {
	app = injectedApp

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Export deployment metrics to Prometheus",
		Run: func(cmd *cobra.Command, args []string) {
			err := cmd.Help()
			if err != nil {
				fmt.Println(err)
			}
		},
	}
	cmd.AddCommand(newServeCmd())
	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve /metrics until interrupted",
		Long: `Serve exposes the saved deployment as Prometheus gauges. The state file
is read on every scrape, so changes made by other tge commands show up
without a restart. The listen address defaults to the metrics-addr config key.`,
		Args: cobra.NoArgs,
		RunE: serve,
	}
	cmd.Flags().StringVar(&listenAddr, "addr", "", "listen address (default from config, 127.0.0.1:9464)")
	return cmd
}

// Gauges reads the saved deployment
func Gauges(app *application.Lux) (metrics.Gauges, error) {
	d, err := app.LoadDeployment()
	if err != nil {
		return metrics.Gauges{}, err
	}
	return metrics.Gauges{
		BlockTime:        d.BlockTime(),
		WeiRaised:        d.Sale.WeiRaised(),
		PreTGEReserved:   d.PreTGE.TotalReserved(),
		TotalSupply:      d.Token.TotalSupply(),
		MaxSupply:        d.Token.MaxSupply(),
		SaleContributors: len(d.Sale.Contributors()),
		Settled:          len(d.Engine.Allocations()),
		TokenPaused:      d.Token.Paused(),
	}, nil
}

func serve(_ *cobra.Command, _ []string) error {
	addr := listenAddr
	if addr == "" {
		addr = app.Conf.MetricsAddr()
	}

	collector := metrics.NewStateCollector(func() (metrics.Gauges, error) {
		g, err := Gauges(app)
		if err != nil {
			app.Log.Warn("failed reading deployment state", zap.Error(err))
		}
		return g, err
	})
	if err := prometheus.Register(collector); err != nil {
		return err
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to start prometheus metrics listener: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()
	ux.Logger.PrintToUser("Serving metrics on http://%s/metrics, press Ctrl+C to stop", listener.Addr().String())

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}
