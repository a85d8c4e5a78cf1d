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

package types

import (
	"fmt"

	"code.vegaprotocol.io/marketplace/types/num"
)

// ListingStatus is the lifecycle state of a listing. The status is
// monotonic, once a listing leaves StatusActive it never returns to it.
type ListingStatus int

const (
	// ListingStatusActive the listing is open, the asset is held in
	// escrow by the marketplace.
	ListingStatusActive ListingStatus = iota
	// ListingStatusSold the listing was settled, custody went to the
	// buyer.
	ListingStatusSold
	// ListingStatusCancelled the listing was unlisted by its seller,
	// custody went back to them.
	ListingStatusCancelled
)

var listingStatusNames = map[ListingStatus]string{
	ListingStatusActive:    "STATUS_ACTIVE",
	ListingStatusSold:      "STATUS_SOLD",
	ListingStatusCancelled: "STATUS_CANCELLED",
}

func (s ListingStatus) String() string {
	if name, ok := listingStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STATUS_UNKNOWN(%d)", int(s))
}

// Listing is a seller's offer to sell one specific asset at a fixed
// price. All fields other than Price and Status are immutable once the
// listing has been created.
type Listing struct {
	// ID is assigned by the ledger, dense and strictly increasing from 1.
	ID            uint64
	Seller        string
	AssetContract string
	AssetID       *num.Uint
	Price         *num.Uint
	Status        ListingStatus
}

// Clone returns a deep copy of the listing so callers can hold on to it
// without sharing the ledger's mutable state.
func (l Listing) Clone() *Listing {
	cpy := l
	cpy.AssetID = l.AssetID.Clone()
	cpy.Price = l.Price.Clone()
	return &cpy
}

// FeePolicy is the singleton fee configuration applied at settlement
// time. The percentage is deliberately unbounded above, see the fee
// engine for how settlement deals with values over 100.
type FeePolicy struct {
	Percentage uint64
	Collector  string
}

func (p FeePolicy) String() string {
	return fmt.Sprintf("%d%% -> %s", p.Percentage, p.Collector)
}
