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

package num

import (
	"github.com/shopspring/decimal"
)

type Decimal = decimal.Decimal

func NewDecimalFromFloat(f float64) Decimal {
	return decimal.NewFromFloat(f)
}

func NewDecimalFromInt64(i int64) Decimal {
	return decimal.NewFromInt(i)
}

func DecimalZero() Decimal {
	return decimal.Zero
}

func DecimalFromUint(u *Uint) Decimal {
	return decimal.NewFromBigInt(u.BigInt(), 0)
}

func DecimalFromString(s string) (Decimal, error) {
	return decimal.NewFromString(s)
}
