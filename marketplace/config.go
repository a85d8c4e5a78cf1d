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

package marketplace

import (
	"code.vegaprotocol.io/marketplace/config/encoding"
	"code.vegaprotocol.io/marketplace/logging"
)

const namedLogger = "marketplace"

const (
	defaultEscrowParty   = "marketplace-escrow"
	defaultFeeCollector  = "marketplace-treasury"
	defaultFeePercentage = 1
)

// Config represents the configuration of the marketplace engine.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`

	// EscrowParty is the identity the marketplace holds escrowed assets
	// under in the asset registry.
	EscrowParty string `long:"escrow-party"`
	// FeePercentage and FeeCollector seed the initial fee policy, the
	// policy is mutable through UpdateFeeSettings afterwards.
	FeePercentage uint64 `long:"fee-percentage"`
	FeeCollector  string `long:"fee-collector"`
}

// NewDefaultConfig creates an instance of config with default values.
func NewDefaultConfig() Config {
	return Config{
		Level:         encoding.LogLevel{Level: logging.InfoLevel},
		EscrowParty:   defaultEscrowParty,
		FeeCollector:  defaultFeeCollector,
		FeePercentage: defaultFeePercentage,
	}
}
