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
	"context"
	"fmt"
	"sync"

	"code.vegaprotocol.io/marketplace/events"
	"code.vegaprotocol.io/marketplace/logging"
	"code.vegaprotocol.io/marketplace/types"
	"code.vegaprotocol.io/marketplace/types/num"
)

// AssetRegistry is the external system of record for non-fungible asset
// ownership, addressed per asset contract identity and asset id. The
// engine calls OwnerOf once at listing creation, and TransferCustody
// once at creation and once at sale or unlisting.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/asset_registry_mock.go -package mocks code.vegaprotocol.io/marketplace/marketplace AssetRegistry
type AssetRegistry interface {
	OwnerOf(ctx context.Context, assetContract string, assetID *num.Uint) (string, error)
	TransferCustody(ctx context.Context, assetContract string, assetID *num.Uint, from, to string) error
}

// PaymentChannel moves settlement value between identities, it may
// fail. At most two transfers are attempted per sale.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/payment_channel_mock.go -package mocks code.vegaprotocol.io/marketplace/marketplace PaymentChannel
type PaymentChannel interface {
	Transfer(ctx context.Context, to string, amount *num.Uint) error
}

// Broker send events.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/broker_mock.go -package mocks code.vegaprotocol.io/marketplace/marketplace Broker
type Broker interface {
	Send(event events.Event)
}

// Engine is the marketplace ledger. It owns the append-only sequence of
// listings and their lifecycle, holds listed assets in escrow through
// the asset registry, and settles sales atomically against the payment
// channel. Operations are strictly serialized, each one either fully
// applies or leaves no observable state change.
type Engine struct {
	log *logging.Logger
	Config

	mu       sync.RWMutex
	registry AssetRegistry
	escrow   *escrow
	bank     PaymentChannel
	broker   Broker

	// listings is dense, listing id N lives at index N-1 and ids are
	// never reused, history stays queryable forever.
	listings []*types.Listing
	sales    uint64
	policy   types.FeePolicy
}

// New instantiates the marketplace engine with the given initial fee
// policy. The escrow party from the config is the identity listed
// assets are held under in the registry while their listing is active.
func New(
	log *logging.Logger,
	cfg Config,
	policy types.FeePolicy,
	registry AssetRegistry,
	bank PaymentChannel,
	broker Broker,
) *Engine {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())

	return &Engine{
		log:      log,
		Config:   cfg,
		registry: registry,
		escrow:   newEscrow(log, registry, cfg.EscrowParty),
		bank:     bank,
		broker:   broker,
		policy:   policy,
	}
}

// ReloadConf is used in order to reload the internal configuration of
// the marketplace engine.
func (e *Engine) ReloadConf(cfg Config) {
	e.log.Info("reloading configuration")
	if e.log.GetLevel() != cfg.Level.Get() {
		e.log.Info("updating log level",
			logging.String("old", e.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		e.log.SetLevel(cfg.Level.Get())
	}

	e.mu.Lock()
	e.Config = cfg
	e.mu.Unlock()
}

// SubmitListing records a new active listing for the given asset at the
// given price and pulls custody of the asset into marketplace escrow,
// as one atomic step. The party must be the current owner of the asset
// according to the registry. Returns the assigned listing id.
func (e *Engine) SubmitListing(
	ctx context.Context,
	party, assetContract string,
	assetID, price *num.Uint,
) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(assetContract) <= 0 {
		return 0, ErrInvalidAssetContract
	}
	if assetID == nil || assetID.IsZero() {
		return 0, ErrInvalidAssetID
	}
	if price == nil || price.IsZero() {
		return 0, ErrInvalidListingPrice
	}

	owner, err := e.registry.OwnerOf(ctx, assetContract, assetID)
	if err != nil {
		e.log.Debug("could not resolve asset owner",
			logging.String("asset-contract", assetContract),
			logging.BigUint("asset-id", assetID),
			logging.Error(err),
		)
		return 0, fmt.Errorf("%w: %v", ErrNotAssetOwner, err)
	}
	if owner != party {
		return 0, ErrNotAssetOwner
	}

	uow := newUnitOfWork(e.log)
	if err := uow.run(e.escrow.pull(ctx, assetContract, assetID, party)); err != nil {
		return 0, err
	}

	id := uint64(len(e.listings)) + 1
	listing := &types.Listing{
		ID:            id,
		Seller:        party,
		AssetContract: assetContract,
		AssetID:       assetID.Clone(),
		Price:         price.Clone(),
		Status:        types.ListingStatusActive,
	}
	e.listings = append(e.listings, listing)
	e.broker.Send(events.NewListedEvent(ctx, *listing))

	if e.log.IsDebug() {
		e.log.Debug("listing submitted",
			logging.Uint64("listing-id", id),
			logging.String("seller", party),
			logging.BigUint("price", price),
		)
	}
	return id, nil
}

// AmendListingPrice changes the price of an active listing, only its
// seller can do so.
func (e *Engine) AmendListingPrice(
	ctx context.Context,
	party string,
	listingID uint64,
	newPrice *num.Uint,
) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	listing, err := e.activeListing(listingID)
	if err != nil {
		return err
	}
	if listing.Seller != party {
		return ErrNotListingSeller
	}
	if newPrice == nil || newPrice.IsZero() {
		return ErrInvalidListingPrice
	}

	listing.Price = newPrice.Clone()
	e.broker.Send(events.NewPriceChangedEvent(ctx, listingID, listing.Price))
	return nil
}

// CancelListing transitions an active listing to cancelled and releases
// custody of the asset back to the seller, as one atomic step. Only the
// seller can cancel.
func (e *Engine) CancelListing(ctx context.Context, party string, listingID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	listing, err := e.activeListing(listingID)
	if err != nil {
		return err
	}
	if listing.Seller != party {
		return ErrNotListingSeller
	}

	uow := newUnitOfWork(e.log)
	if err := uow.run(
		e.escrow.release(ctx, listing.AssetContract, listing.AssetID, listing.Seller),
	); err != nil {
		return err
	}

	listing.Status = types.ListingStatusCancelled
	e.broker.Send(events.NewUnlistedEvent(ctx, listingID))

	if e.log.IsDebug() {
		e.log.Debug("listing cancelled", logging.Uint64("listing-id", listingID))
	}
	return nil
}

// GetListing returns a copy of the listing with the given id, sold and
// cancelled listings stay queryable forever.
func (e *Engine) GetListing(listingID uint64) (types.Listing, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if listingID == 0 || listingID > uint64(len(e.listings)) {
		return types.Listing{}, ErrListingNotFound
	}
	return *e.listings[listingID-1].Clone(), nil
}

// ListingsCount returns how many listings were ever created, which is
// also the highest assigned listing id.
func (e *Engine) ListingsCount() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return uint64(len(e.listings))
}

// SalesCount returns how many listings were settled.
func (e *Engine) SalesCount() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sales
}

// activeListing resolves a listing id to its active listing, callers
// must hold the engine lock.
func (e *Engine) activeListing(listingID uint64) (*types.Listing, error) {
	if listingID == 0 || listingID > uint64(len(e.listings)) {
		return nil, ErrListingNotFound
	}
	listing := e.listings[listingID-1]
	if listing.Status != types.ListingStatusActive {
		return nil, ErrListingNotActive
	}
	return listing, nil
}
