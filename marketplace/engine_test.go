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

package marketplace_test

import (
	"context"
	"errors"
	"testing"

	"code.vegaprotocol.io/marketplace/events"
	"code.vegaprotocol.io/marketplace/logging"
	"code.vegaprotocol.io/marketplace/marketplace"
	"code.vegaprotocol.io/marketplace/marketplace/mocks"
	"code.vegaprotocol.io/marketplace/types"
	"code.vegaprotocol.io/marketplace/types/num"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	seller    = "f3a174b148cb3a2aa20cb2bf9fda97a57d3a368b19a9ca375c90d3083f4803c4"
	buyer     = "2e05fd230f3c9f4eaf0bdc5bfb7ca0c9d00278afc44637aab60da76653d7ccf0"
	collector = "03ae90688632c649c4beab6040ff5bd04dbde8efbf737d8673bbda792a110301"
	contract  = "0x47bb4bbd9f1a4a0b7d9b5d3bde26c28fd1479bd4"
	escrow    = "marketplace-escrow"
)

type testEngine struct {
	*marketplace.Engine
	ctrl     *gomock.Controller
	registry *mocks.MockAssetRegistry
	bank     *mocks.MockPaymentChannel
	broker   *mocks.MockBroker
}

func getTestEngine(t *testing.T) *testEngine {
	t.Helper()
	ctrl := gomock.NewController(t)
	reg := mocks.NewMockAssetRegistry(ctrl)
	bank := mocks.NewMockPaymentChannel(ctrl)
	bkr := mocks.NewMockBroker(ctrl)

	eng := marketplace.New(
		logging.NewTestLogger(),
		marketplace.NewDefaultConfig(),
		types.FeePolicy{Percentage: 1, Collector: collector},
		reg, bank, bkr,
	)
	return &testEngine{
		Engine:   eng,
		ctrl:     ctrl,
		registry: reg,
		bank:     bank,
		broker:   bkr,
	}
}

// submit lists the given asset for the seller, with all the external
// calls a successful listing makes expected.
func (e *testEngine) submit(t *testing.T, assetID, price *num.Uint) uint64 {
	t.Helper()
	e.registry.EXPECT().OwnerOf(gomock.Any(), contract, assetID).Times(1).Return(seller, nil)
	e.registry.EXPECT().TransferCustody(gomock.Any(), contract, assetID, seller, escrow).Times(1).Return(nil)
	e.broker.EXPECT().Send(gomock.Any()).Times(1)

	id, err := e.SubmitListing(context.Background(), seller, contract, assetID, price)
	require.NoError(t, err)
	return id
}

func TestSubmitListing(t *testing.T) {
	t.Run("invalid asset contract", testSubmitInvalidAssetContract)
	t.Run("invalid asset id", testSubmitInvalidAssetID)
	t.Run("invalid price", testSubmitInvalidPrice)
	t.Run("party does not own the asset", testSubmitNotOwner)
	t.Run("owner lookup failure", testSubmitOwnerLookupFails)
	t.Run("custody pull rejected", testSubmitCustodyPullRejected)
	t.Run("valid listing", testSubmitValid)
	t.Run("listing ids are dense and monotonic", testSubmitAssignsDenseIDs)
}

func testSubmitInvalidAssetContract(t *testing.T) {
	eng := getTestEngine(t)

	id, err := eng.SubmitListing(context.Background(), seller, "", num.NewUint(1), num.NewUint(100))
	assert.ErrorIs(t, err, marketplace.ErrInvalidAssetContract)
	assert.Zero(t, id)
	assert.Zero(t, eng.ListingsCount())
}

func testSubmitInvalidAssetID(t *testing.T) {
	eng := getTestEngine(t)

	id, err := eng.SubmitListing(context.Background(), seller, contract, nil, num.NewUint(100))
	assert.ErrorIs(t, err, marketplace.ErrInvalidAssetID)
	assert.Zero(t, id)

	id, err = eng.SubmitListing(context.Background(), seller, contract, num.Zero(), num.NewUint(100))
	assert.ErrorIs(t, err, marketplace.ErrInvalidAssetID)
	assert.Zero(t, id)
}

func testSubmitInvalidPrice(t *testing.T) {
	eng := getTestEngine(t)

	id, err := eng.SubmitListing(context.Background(), seller, contract, num.NewUint(1), nil)
	assert.ErrorIs(t, err, marketplace.ErrInvalidListingPrice)
	assert.Zero(t, id)

	id, err = eng.SubmitListing(context.Background(), seller, contract, num.NewUint(1), num.Zero())
	assert.ErrorIs(t, err, marketplace.ErrInvalidListingPrice)
	assert.Zero(t, id)
}

func testSubmitNotOwner(t *testing.T) {
	eng := getTestEngine(t)
	assetID := num.NewUint(42)

	eng.registry.EXPECT().OwnerOf(gomock.Any(), contract, assetID).Times(1).Return(buyer, nil)

	id, err := eng.SubmitListing(context.Background(), seller, contract, assetID, num.NewUint(100))
	assert.ErrorIs(t, err, marketplace.ErrNotAssetOwner)
	assert.Zero(t, id)
	assert.Zero(t, eng.ListingsCount())
}

func testSubmitOwnerLookupFails(t *testing.T) {
	eng := getTestEngine(t)
	assetID := num.NewUint(42)

	eng.registry.EXPECT().OwnerOf(gomock.Any(), contract, assetID).
		Times(1).Return("", errors.New("unknown asset"))

	id, err := eng.SubmitListing(context.Background(), seller, contract, assetID, num.NewUint(100))
	assert.ErrorIs(t, err, marketplace.ErrNotAssetOwner)
	assert.Zero(t, id)
}

func testSubmitCustodyPullRejected(t *testing.T) {
	eng := getTestEngine(t)
	assetID := num.NewUint(42)

	eng.registry.EXPECT().OwnerOf(gomock.Any(), contract, assetID).Times(1).Return(seller, nil)
	eng.registry.EXPECT().TransferCustody(gomock.Any(), contract, assetID, seller, escrow).
		Times(1).Return(errors.New("receiver rejected"))

	// no listing is recorded and no event emitted
	id, err := eng.SubmitListing(context.Background(), seller, contract, assetID, num.NewUint(100))
	assert.ErrorIs(t, err, marketplace.ErrCustodyTransferFailed)
	assert.Zero(t, id)
	assert.Zero(t, eng.ListingsCount())

	_, err = eng.GetListing(1)
	assert.ErrorIs(t, err, marketplace.ErrListingNotFound)
}

func testSubmitValid(t *testing.T) {
	eng := getTestEngine(t)
	assetID, price := num.NewUint(42), num.NewUint(100)

	eng.registry.EXPECT().OwnerOf(gomock.Any(), contract, assetID).Times(1).Return(seller, nil)
	eng.registry.EXPECT().TransferCustody(gomock.Any(), contract, assetID, seller, escrow).Times(1).Return(nil)
	eng.broker.EXPECT().Send(gomock.Any()).Times(1).Do(func(evt events.Event) {
		listed, ok := evt.(*events.Listed)
		require.True(t, ok)
		assert.Equal(t, uint64(1), listed.ListingID())
		assert.Equal(t, seller, listed.Seller())
	})

	id, err := eng.SubmitListing(context.Background(), seller, contract, assetID, price)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)
	assert.Equal(t, uint64(1), eng.ListingsCount())

	listing, err := eng.GetListing(id)
	require.NoError(t, err)
	assert.Equal(t, seller, listing.Seller)
	assert.Equal(t, contract, listing.AssetContract)
	assert.True(t, listing.AssetID.EQ(assetID))
	assert.True(t, listing.Price.EQ(price))
	assert.Equal(t, types.ListingStatusActive, listing.Status)
}

func testSubmitAssignsDenseIDs(t *testing.T) {
	eng := getTestEngine(t)

	for i := uint64(1); i <= 3; i++ {
		// the next id is always the current count + 1
		assert.Equal(t, i-1, eng.ListingsCount())
		id := eng.submit(t, num.NewUint(i), num.NewUint(100*i))
		assert.Equal(t, i, id)
	}
	assert.Equal(t, uint64(3), eng.ListingsCount())
}

func TestAmendListingPrice(t *testing.T) {
	t.Run("unknown listing", testAmendUnknownListing)
	t.Run("not the seller", testAmendNotSeller)
	t.Run("invalid price", testAmendInvalidPrice)
	t.Run("not active", testAmendNotActive)
	t.Run("valid amendment", testAmendValid)
}

func testAmendUnknownListing(t *testing.T) {
	eng := getTestEngine(t)

	err := eng.AmendListingPrice(context.Background(), seller, 1, num.NewUint(10))
	assert.ErrorIs(t, err, marketplace.ErrListingNotFound)

	err = eng.AmendListingPrice(context.Background(), seller, 0, num.NewUint(10))
	assert.ErrorIs(t, err, marketplace.ErrListingNotFound)
}

func testAmendNotSeller(t *testing.T) {
	eng := getTestEngine(t)
	id := eng.submit(t, num.NewUint(42), num.NewUint(100))

	err := eng.AmendListingPrice(context.Background(), buyer, id, num.NewUint(10))
	assert.ErrorIs(t, err, marketplace.ErrNotListingSeller)

	// price is untouched
	listing, _ := eng.GetListing(id)
	assert.True(t, listing.Price.EQ(num.NewUint(100)))
}

func testAmendInvalidPrice(t *testing.T) {
	eng := getTestEngine(t)
	id := eng.submit(t, num.NewUint(42), num.NewUint(100))

	err := eng.AmendListingPrice(context.Background(), seller, id, num.Zero())
	assert.ErrorIs(t, err, marketplace.ErrInvalidListingPrice)

	err = eng.AmendListingPrice(context.Background(), seller, id, nil)
	assert.ErrorIs(t, err, marketplace.ErrInvalidListingPrice)
}

func testAmendNotActive(t *testing.T) {
	eng := getTestEngine(t)
	id := eng.submit(t, num.NewUint(42), num.NewUint(100))

	eng.registry.EXPECT().TransferCustody(gomock.Any(), contract, num.NewUint(42), escrow, seller).Times(1).Return(nil)
	eng.broker.EXPECT().Send(gomock.Any()).Times(1)
	require.NoError(t, eng.CancelListing(context.Background(), seller, id))

	// the status guard fires before the authorization one
	err := eng.AmendListingPrice(context.Background(), buyer, id, num.NewUint(10))
	assert.ErrorIs(t, err, marketplace.ErrListingNotActive)

	err = eng.AmendListingPrice(context.Background(), seller, id, num.NewUint(10))
	assert.ErrorIs(t, err, marketplace.ErrListingNotActive)
}

func testAmendValid(t *testing.T) {
	eng := getTestEngine(t)
	id := eng.submit(t, num.NewUint(42), num.NewUint(100))

	eng.broker.EXPECT().Send(gomock.Any()).Times(1).Do(func(evt events.Event) {
		pc, ok := evt.(*events.PriceChanged)
		require.True(t, ok)
		assert.Equal(t, id, pc.ListingID())
		assert.True(t, pc.Price().EQ(num.NewUint(250)))
	})

	require.NoError(t, eng.AmendListingPrice(context.Background(), seller, id, num.NewUint(250)))

	listing, err := eng.GetListing(id)
	require.NoError(t, err)
	assert.True(t, listing.Price.EQ(num.NewUint(250)))
	assert.Equal(t, types.ListingStatusActive, listing.Status)
}

func TestCancelListing(t *testing.T) {
	t.Run("unknown listing", testCancelUnknownListing)
	t.Run("not the seller", testCancelNotSeller)
	t.Run("custody release rejected", testCancelCustodyReleaseRejected)
	t.Run("valid cancellation", testCancelValid)
	t.Run("cancel twice fails", testCancelTwice)
}

func testCancelUnknownListing(t *testing.T) {
	eng := getTestEngine(t)

	err := eng.CancelListing(context.Background(), seller, 1)
	assert.ErrorIs(t, err, marketplace.ErrListingNotFound)
}

func testCancelNotSeller(t *testing.T) {
	eng := getTestEngine(t)
	id := eng.submit(t, num.NewUint(42), num.NewUint(100))

	err := eng.CancelListing(context.Background(), buyer, id)
	assert.ErrorIs(t, err, marketplace.ErrNotListingSeller)

	listing, _ := eng.GetListing(id)
	assert.Equal(t, types.ListingStatusActive, listing.Status)
}

func testCancelCustodyReleaseRejected(t *testing.T) {
	eng := getTestEngine(t)
	assetID := num.NewUint(42)
	id := eng.submit(t, assetID, num.NewUint(100))

	eng.registry.EXPECT().TransferCustody(gomock.Any(), contract, assetID, escrow, seller).
		Times(1).Return(errors.New("registry unavailable"))

	err := eng.CancelListing(context.Background(), seller, id)
	assert.ErrorIs(t, err, marketplace.ErrCustodyTransferFailed)

	// the listing stays active
	listing, _ := eng.GetListing(id)
	assert.Equal(t, types.ListingStatusActive, listing.Status)
}

func testCancelValid(t *testing.T) {
	eng := getTestEngine(t)
	assetID := num.NewUint(42)
	id := eng.submit(t, assetID, num.NewUint(100))

	eng.registry.EXPECT().TransferCustody(gomock.Any(), contract, assetID, escrow, seller).Times(1).Return(nil)
	eng.broker.EXPECT().Send(gomock.Any()).Times(1).Do(func(evt events.Event) {
		unlisted, ok := evt.(*events.Unlisted)
		require.True(t, ok)
		assert.Equal(t, id, unlisted.ListingID())
	})

	require.NoError(t, eng.CancelListing(context.Background(), seller, id))

	listing, err := eng.GetListing(id)
	require.NoError(t, err)
	assert.Equal(t, types.ListingStatusCancelled, listing.Status)
}

func testCancelTwice(t *testing.T) {
	eng := getTestEngine(t)
	assetID := num.NewUint(42)
	id := eng.submit(t, assetID, num.NewUint(100))

	eng.registry.EXPECT().TransferCustody(gomock.Any(), contract, assetID, escrow, seller).Times(1).Return(nil)
	eng.broker.EXPECT().Send(gomock.Any()).Times(1)
	require.NoError(t, eng.CancelListing(context.Background(), seller, id))

	err := eng.CancelListing(context.Background(), seller, id)
	assert.ErrorIs(t, err, marketplace.ErrListingNotActive)
}
