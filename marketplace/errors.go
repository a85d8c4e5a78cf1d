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

import "errors"

var (
	// ErrInvalidAssetContract is returned when a listing names the null
	// asset contract identity.
	ErrInvalidAssetContract = errors.New("invalid asset contract")
	// ErrInvalidAssetID is returned when a listing names a nil or zero
	// asset identifier.
	ErrInvalidAssetID = errors.New("invalid asset id")
	// ErrInvalidListingPrice is returned when a listing price is nil or
	// zero, on creation or on amendment.
	ErrInvalidListingPrice = errors.New("invalid listing price")
	// ErrInvalidFeeCollector is returned when a fee settings update
	// names the null collector identity.
	ErrInvalidFeeCollector = errors.New("invalid fee collector")
	// ErrListingNotFound is returned when a listing id is out of the
	// range the ledger has assigned.
	ErrListingNotFound = errors.New("listing not found")
	// ErrListingNotActive is returned when an operation requires an
	// active listing and the listing has already been sold or cancelled.
	ErrListingNotActive = errors.New("listing is not active")
	// ErrNotListingSeller is returned when a party tries to amend or
	// cancel a listing they did not create.
	ErrNotListingSeller = errors.New("party is not the listing seller")
	// ErrNotFeeCollector is returned when a party other than the current
	// fee collector tries to update the fee settings.
	ErrNotFeeCollector = errors.New("party is not the fee collector")
	// ErrNotAssetOwner is returned when the asset registry does not
	// attest the party owns the asset they are trying to list.
	ErrNotAssetOwner = errors.New("party is not the asset owner")
	// ErrInsufficientPayment is returned when the value attached to a
	// buy does not cover the listing price.
	ErrInsufficientPayment = errors.New("insufficient payment attached")
	// ErrCustodyTransferFailed is returned when the asset registry
	// rejects a custody transfer into or out of escrow.
	ErrCustodyTransferFailed = errors.New("custody transfer failed")
	// ErrValueTransferFailed is returned when the payment channel
	// rejects one of the settlement transfers.
	ErrValueTransferFailed = errors.New("value transfer failed")
)
