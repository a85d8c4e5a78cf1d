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

	"code.vegaprotocol.io/marketplace/logging"
	"code.vegaprotocol.io/marketplace/types"
	"code.vegaprotocol.io/marketplace/types/num"
)

// UpdateFeeSettings replaces the fee policy, only the current fee
// collector can do so and the new collector cannot be the null
// identity. The new policy applies to every settlement from here on,
// including listings created under the old one.
func (e *Engine) UpdateFeeSettings(
	ctx context.Context,
	party string,
	newPercentage uint64,
	newCollector string,
) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if party != e.policy.Collector {
		return ErrNotFeeCollector
	}
	if len(newCollector) <= 0 {
		return ErrInvalidFeeCollector
	}

	e.policy = types.FeePolicy{
		Percentage: newPercentage,
		Collector:  newCollector,
	}
	e.log.Info("fee settings updated",
		logging.Uint64("fee-percentage", newPercentage),
		logging.String("fee-collector", newCollector),
	)
	return nil
}

// FeePercentage returns the current fee percentage.
func (e *Engine) FeePercentage() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.policy.Percentage
}

// FeeCollector returns the identity currently collecting fees.
func (e *Engine) FeeCollector() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.policy.Collector
}

// FeeFraction returns the current fee as a decimal fraction of the
// price, e.g. a 1% fee yields 0.01.
func (e *Engine) FeeFraction() num.Decimal {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return num.NewDecimalFromInt64(int64(e.policy.Percentage)).
		Div(num.NewDecimalFromInt64(100))
}

// splitPrice computes the fee split for a sale at the given price with
// the current policy: the fee is floor(price * percentage / 100), the
// seller gets the rest. The two always sum to the price exactly. A
// percentage over 100 is clamped so the seller share cannot underflow,
// the policy store deliberately accepts such values. Callers must hold
// the engine lock.
func (e *Engine) splitPrice(price *num.Uint) (sellerShare, feeAmount *num.Uint) {
	feeAmount = num.Zero().Div(
		num.Zero().Mul(price, num.NewUint(e.policy.Percentage)),
		num.NewUint(100),
	)
	if feeAmount.GT(price) {
		feeAmount = price.Clone()
	}
	sellerShare = num.Zero().Sub(price, feeAmount)
	return sellerShare, feeAmount
}
