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

package config

import (
	"bytes"
	"fmt"
	"os"

	"code.vegaprotocol.io/marketplace/accounts"
	"code.vegaprotocol.io/marketplace/api"
	"code.vegaprotocol.io/marketplace/broker"
	"code.vegaprotocol.io/marketplace/marketplace"
	"code.vegaprotocol.io/marketplace/registry"

	"github.com/BurntSushi/toml"
)

// Config ties together all package level configurations.
type Config struct {
	Environment string

	Marketplace marketplace.Config
	Broker      broker.Config
	Accounts    accounts.Config
	Registry    registry.Config
	API         api.Config
}

// NewDefaultConfig returns a complete configuration with sane defaults
// for every package.
func NewDefaultConfig() Config {
	return Config{
		Environment: "dev",
		Marketplace: marketplace.NewDefaultConfig(),
		Broker:      broker.NewDefaultConfig(),
		Accounts:    accounts.NewDefaultConfig(),
		Registry:    registry.NewDefaultConfig(),
		API:         api.NewDefaultConfig(),
	}
}

// Read loads a configuration from the toml file at the given path.
func Read(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read configuration: %w", err)
	}
	cfg := NewDefaultConfig()
	if _, err := toml.Decode(string(buf), &cfg); err != nil {
		return nil, fmt.Errorf("could not parse configuration: %w", err)
	}
	return &cfg, nil
}

// Write serializes the configuration as toml at the given path.
func Write(path string, cfg Config) error {
	buf := &bytes.Buffer{}
	if err := toml.NewEncoder(buf).Encode(cfg); err != nil {
		return fmt.Errorf("could not serialize configuration: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
