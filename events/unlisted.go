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
)

// Unlisted is emitted when a seller cancels one of their active
// listings and the asset custody is released back to them.
type Unlisted struct {
	*Base
	listingID uint64
}

func NewUnlistedEvent(ctx context.Context, listingID uint64) *Unlisted {
	return &Unlisted{
		Base:      newBase(ctx, UnlistedEvent),
		listingID: listingID,
	}
}

func (e *Unlisted) ListingID() uint64 {
	return e.listingID
}
