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

	"code.vegaprotocol.io/marketplace/types"
)

// Sold is emitted once for every settled listing. The listing copy it
// carries already has the Sold status, the buyer is the party the asset
// custody went to.
type Sold struct {
	*Base
	l     types.Listing
	buyer string
}

func NewSoldEvent(ctx context.Context, l types.Listing, buyer string) *Sold {
	return &Sold{
		Base:  newBase(ctx, SoldEvent),
		l:     *l.Clone(),
		buyer: buyer,
	}
}

func (e *Sold) Listing() types.Listing {
	return *e.l.Clone()
}

func (e *Sold) ListingID() uint64 {
	return e.l.ID
}

func (e *Sold) Buyer() string {
	return e.buyer
}
