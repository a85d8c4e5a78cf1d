// Copyright (c) 2022 Gobalsky Labs Limited
//
// Use of this software is governed by the Business Source License included
// in the LICENSE.VEGA file and at https://www.mariadb.com/bsl11.
//
// Change Date: 18 months from the later of the date of the first publicly
// available Distribution of this version of the repository, and 25 June 2022.
//
// On the date above, in accordance with the Business Source License, use
// of this software will be governed by version 3 or later of the GNU General
// Public License.

package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"code.vegaprotocol.io/marketplace/accounts"
	"code.vegaprotocol.io/marketplace/api"
	"code.vegaprotocol.io/marketplace/broker"
	"code.vegaprotocol.io/marketplace/config"
	"code.vegaprotocol.io/marketplace/events"
	"code.vegaprotocol.io/marketplace/logging"
	"code.vegaprotocol.io/marketplace/marketplace"
	"code.vegaprotocol.io/marketplace/registry"
	"code.vegaprotocol.io/marketplace/types"

	"github.com/spf13/cobra"
)

func runCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the marketplace",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Read(configPath)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "marketplace.toml", "Path of the configuration to run with")
	return cmd
}

func run(cfg *config.Config) error {
	log := logging.NewLoggerFromEnv(cfg.Environment)
	defer log.AtExit()

	bkr := broker.New(log, cfg.Broker)
	bkr.Subscribe(newEventLogger(log))

	reg := registry.New(log, cfg.Registry)
	bank := accounts.New(log, cfg.Accounts, cfg.Marketplace.EscrowParty)
	mkt := marketplace.New(log, cfg.Marketplace,
		types.FeePolicy{
			Percentage: cfg.Marketplace.FeePercentage,
			Collector:  cfg.Marketplace.FeeCollector,
		},
		reg, bank, bkr,
	)

	srv := api.New(log, cfg.API, mkt, reg, bank)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Info("shutting down", logging.String("signal", sig.String()))
		return srv.Stop()
	}
}

// eventLogger logs every event the ledger commits, it stands in for the
// downstream consumers a real deployment would attach to the broker.
type eventLogger struct {
	log *logging.Logger
	id  int
}

func newEventLogger(log *logging.Logger) *eventLogger {
	return &eventLogger{log: log.Named("events")}
}

func (e *eventLogger) Push(evts ...events.Event) {
	for _, evt := range evts {
		e.log.Info("event",
			logging.String("type", evt.Type().String()),
			logging.Uint64("sequence", evt.Sequence()),
		)
	}
}

func (e *eventLogger) Types() []events.Type {
	return []events.Type{events.All}
}

func (e *eventLogger) SetID(id int) { e.id = id }

func (e *eventLogger) ID() int { return e.id }
