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

	"code.vegaprotocol.io/marketplace/logging"
	"code.vegaprotocol.io/marketplace/types/num"
)

// escrow is a thin coordinator over the asset registry's custody
// transfer primitive. Both operations produce unit of work effects so
// the enclosing ledger operation aborts as a whole when the registry
// rejects a transfer.
type escrow struct {
	log      *logging.Logger
	registry AssetRegistry
	// party is the identity escrowed assets are held under in the
	// registry for the lifetime of their active listing.
	party string
}

func newEscrow(log *logging.Logger, registry AssetRegistry, party string) *escrow {
	return &escrow{
		log:      log,
		registry: registry,
		party:    party,
	}
}

// pull moves custody of the asset from the given party into marketplace
// escrow. Reverting hands custody back to them.
func (es *escrow) pull(ctx context.Context, assetContract string, assetID *num.Uint, from string) *effect {
	return &effect{
		name: "custody pull",
		apply: func() error {
			if err := es.registry.TransferCustody(ctx, assetContract, assetID, from, es.party); err != nil {
				return fmt.Errorf("%w: %v", ErrCustodyTransferFailed, err)
			}
			return nil
		},
		revert: func() error {
			return es.registry.TransferCustody(ctx, assetContract, assetID, es.party, from)
		},
	}
}

// release moves custody of the asset out of marketplace escrow to the
// given party, the buyer on a sale or the seller on an unlisting.
// Reverting pulls custody back into escrow.
func (es *escrow) release(ctx context.Context, assetContract string, assetID *num.Uint, to string) *effect {
	return &effect{
		name: "custody release",
		apply: func() error {
			if err := es.registry.TransferCustody(ctx, assetContract, assetID, es.party, to); err != nil {
				return fmt.Errorf("%w: %v", ErrCustodyTransferFailed, err)
			}
			return nil
		},
		revert: func() error {
			return es.registry.TransferCustody(ctx, assetContract, assetID, to, es.party)
		},
	}
}
