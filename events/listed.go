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

// Listed is emitted once for every listing successfully recorded on the
// ledger, it carries a copy of the listing as it was created.
type Listed struct {
	*Base
	l types.Listing
}

func NewListedEvent(ctx context.Context, l types.Listing) *Listed {
	return &Listed{
		Base: newBase(ctx, ListedEvent),
		l:    *l.Clone(),
	}
}

func (e *Listed) Listing() types.Listing {
	return *e.l.Clone()
}

func (e *Listed) ListingID() uint64 {
	return e.l.ID
}

func (e *Listed) Seller() string {
	return e.l.Seller
}
