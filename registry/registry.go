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

package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"code.vegaprotocol.io/marketplace/logging"
	"code.vegaprotocol.io/marketplace/types/num"
)

var (
	// ErrUnknownAsset is returned when the registry has no record of
	// the asset.
	ErrUnknownAsset = errors.New("unknown asset")
	// ErrNotCustodian is returned when a custody transfer names a from
	// party that does not currently hold the asset.
	ErrNotCustodian = errors.New("party is not the asset custodian")
	// ErrInvalidParty is returned when a transfer names the null
	// identity on either side.
	ErrInvalidParty = errors.New("invalid party")
	// ErrAssetAlreadyMinted is returned when minting an asset id that
	// already exists under the contract.
	ErrAssetAlreadyMinted = errors.New("asset already minted")
)

// Engine is an in memory asset registry. It implements the custody
// interface the marketplace engine consumes and is what the standalone
// binary and the integration style tests run against in place of a real
// external registry.
type Engine struct {
	log *logging.Logger
	Config

	mu sync.RWMutex
	// owners maps contract/assetID to the current custodian.
	owners map[string]string
}

// New instantiates a new asset registry.
func New(log *logging.Logger, cfg Config) *Engine {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())

	return &Engine{
		log:    log,
		Config: cfg,
		owners: map[string]string{},
	}
}

// Mint records a new asset under the given contract with the given
// initial owner.
func (e *Engine) Mint(assetContract string, assetID *num.Uint, owner string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(owner) <= 0 {
		return ErrInvalidParty
	}
	k := key(assetContract, assetID)
	if _, ok := e.owners[k]; ok {
		return ErrAssetAlreadyMinted
	}
	e.owners[k] = owner

	if e.log.IsDebug() {
		e.log.Debug("asset minted",
			logging.String("asset", k),
			logging.String("owner", owner),
		)
	}
	return nil
}

// OwnerOf returns the current custodian of the asset.
func (e *Engine) OwnerOf(_ context.Context, assetContract string, assetID *num.Uint) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	owner, ok := e.owners[key(assetContract, assetID)]
	if !ok {
		return "", ErrUnknownAsset
	}
	return owner, nil
}

// TransferCustody moves the asset from one custodian to another, the
// from party must currently hold it.
func (e *Engine) TransferCustody(_ context.Context, assetContract string, assetID *num.Uint, from, to string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(from) <= 0 || len(to) <= 0 {
		return ErrInvalidParty
	}
	k := key(assetContract, assetID)
	owner, ok := e.owners[k]
	if !ok {
		return ErrUnknownAsset
	}
	if owner != from {
		return ErrNotCustodian
	}
	e.owners[k] = to

	if e.log.IsDebug() {
		e.log.Debug("custody transferred",
			logging.String("asset", k),
			logging.String("from", from),
			logging.String("to", to),
		)
	}
	return nil
}

func key(assetContract string, assetID *num.Uint) string {
	return fmt.Sprintf("%s/%s", assetContract, assetID.String())
}
