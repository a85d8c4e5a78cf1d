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

package events

import (
	"context"

	"code.vegaprotocol.io/marketplace/types/num"
)

// PriceChanged is emitted when the seller of an active listing amends
// its price.
type PriceChanged struct {
	*Base
	listingID uint64
	price     *num.Uint
}

func NewPriceChangedEvent(ctx context.Context, listingID uint64, price *num.Uint) *PriceChanged {
	return &PriceChanged{
		Base:      newBase(ctx, PriceChangedEvent),
		listingID: listingID,
		price:     price.Clone(),
	}
}

func (e *PriceChanged) ListingID() uint64 {
	return e.listingID
}

func (e *PriceChanged) Price() *num.Uint {
	return e.price.Clone()
}
