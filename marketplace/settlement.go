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

	"code.vegaprotocol.io/marketplace/events"
	"code.vegaprotocol.io/marketplace/logging"
	"code.vegaprotocol.io/marketplace/types"
	"code.vegaprotocol.io/marketplace/types/num"
)

// Buy settles an active listing: custody of the asset goes to the
// buyer, the price less the current fee goes to the seller and the fee
// to the fee collector, all as one atomic step. The attached value must
// cover the listing price, any excess is kept by the marketplace and
// not refunded.
func (e *Engine) Buy(
	ctx context.Context,
	party string,
	listingID uint64,
	attachedValue *num.Uint,
) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	listing, err := e.activeListing(listingID)
	if err != nil {
		return err
	}
	if attachedValue == nil || attachedValue.LT(listing.Price) {
		return ErrInsufficientPayment
	}

	sellerShare, feeAmount := e.splitPrice(listing.Price)

	effects := make([]*effect, 0, 3)
	effects = append(effects,
		e.escrow.release(ctx, listing.AssetContract, listing.AssetID, party))
	// zero valued legs are not put on the channel
	if !sellerShare.IsZero() {
		effects = append(effects, e.payment(ctx, listing.Seller, sellerShare))
	}
	if !feeAmount.IsZero() {
		effects = append(effects, e.payment(ctx, e.policy.Collector, feeAmount))
	}

	uow := newUnitOfWork(e.log)
	if err := uow.run(effects...); err != nil {
		return err
	}

	listing.Status = types.ListingStatusSold
	e.sales++
	e.broker.Send(events.NewSoldEvent(ctx, *listing, party))

	if e.log.IsDebug() {
		e.log.Debug("listing settled",
			logging.Uint64("listing-id", listingID),
			logging.String("buyer", party),
			logging.BigUint("seller-share", sellerShare),
			logging.BigUint("fee-amount", feeAmount),
		)
	}
	return nil
}

// payment wraps a single value transfer leg as a unit of work effect.
// The payment channel offers no inverse, so the effect carries no
// revert, see the unit of work for how an unwind past it is surfaced.
func (e *Engine) payment(ctx context.Context, to string, amount *num.Uint) *effect {
	return &effect{
		name: "value transfer",
		apply: func() error {
			if err := e.bank.Transfer(ctx, to, amount); err != nil {
				return fmt.Errorf("%w: %v", ErrValueTransferFailed, err)
			}
			return nil
		},
	}
}
