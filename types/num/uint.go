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
	"math/big"

	"github.com/holiman/uint256"
)

// Uint a wrapper for a big unsigned int
type Uint struct {
	u uint256.Int
}

// NewUint creates a new Uint with the value of the
// uint64 passed as a parameter.
func NewUint(val uint64) *Uint {
	return &Uint{*uint256.NewInt(val)}
}

// Zero returns a new Uint set to 0.
func Zero() *Uint {
	return NewUint(0)
}

// UintFromBig constructs a new Uint from a big.Int,
// returns true if an overflow happened.
func UintFromBig(b *big.Int) (*Uint, bool) {
	u, overflow := uint256.FromBig(b)
	if overflow {
		return Zero(), true
	}
	return &Uint{*u}, false
}

// UintFromString creates a new Uint from a string
// interpreted using the given base. A big.Int is used to
// read the string, so all errors related to big.Int
// parsing apply here. Returns true if an error or an
// overflow happened.
func UintFromString(str string, base int) (*Uint, bool) {
	b, ok := big.NewInt(0).SetString(str, base)
	if !ok {
		return Zero(), true
	}
	return UintFromBig(b)
}

// UintFromDecimal returns a new Uint from a Decimal,
// returns true if an overflow happened.
func UintFromDecimal(d Decimal) (*Uint, bool) {
	return UintFromBig(d.BigInt())
}

// Min returns the smallest of the 2 numbers.
func Min(a, b *Uint) *Uint {
	if a.LT(b) {
		return a.Clone()
	}
	return b.Clone()
}

// Max returns the largest of the 2 numbers.
func Max(a, b *Uint) *Uint {
	if a.GT(b) {
		return a.Clone()
	}
	return b.Clone()
}

// Sum just removes the need to write num.Zero().AddSum(x, y, z)
// so you can write num.Sum(x, y, z) instead, equivalent to x + y + z.
func Sum(vals ...*Uint) *Uint {
	return Zero().AddSum(vals...)
}

func (z *Uint) Set(oth *Uint) *Uint {
	z.u.Set(&oth.u)
	return z
}

func (z *Uint) SetUint64(val uint64) *Uint {
	z.u.SetUint64(val)
	return z
}

func (z Uint) Uint64() uint64 {
	return z.u.Uint64()
}

func (z Uint) BigInt() *big.Int {
	return z.u.ToBig()
}

// Add will add x and y then store the result into z, this is
// equivalent to `z = x + y`. z is returned for convenience, no
// new variable is created.
func (z *Uint) Add(x, y *Uint) *Uint {
	z.u.Add(&x.u, &y.u)
	return z
}

// AddSum adds multiple values at the same time to a given uint
// so x.AddSum(y, z) is equivalent to x + y + z.
func (z *Uint) AddSum(vals ...*Uint) *Uint {
	for _, x := range vals {
		z.u.Add(&z.u, &x.u)
	}
	return z
}

// Sub will subtract y from x then store the result into z, this
// is equivalent to `z = x - y`.
func (z *Uint) Sub(x, y *Uint) *Uint {
	z.u.Sub(&x.u, &y.u)
	return z
}

// Mul will multiply x and y then store the result into z, this
// is equivalent to `z = x * y`.
func (z *Uint) Mul(x, y *Uint) *Uint {
	z.u.Mul(&x.u, &y.u)
	return z
}

// Div will divide x by y then store the result into z, this is
// equivalent to `z = x / y`, integer (floor) division.
func (z *Uint) Div(x, y *Uint) *Uint {
	z.u.Div(&x.u, &y.u)
	return z
}

// EQ returns true if z == x.
func (z Uint) EQ(x *Uint) bool {
	return z.u.Eq(&x.u)
}

// NEQ returns true if z != x.
func (z Uint) NEQ(x *Uint) bool {
	return !z.u.Eq(&x.u)
}

// GT returns true if z > x.
func (z Uint) GT(x *Uint) bool {
	return z.u.Gt(&x.u)
}

// GTE returns true if z >= x.
func (z Uint) GTE(x *Uint) bool {
	return !z.u.Lt(&x.u)
}

// LT returns true if z < x.
func (z Uint) LT(x *Uint) bool {
	return z.u.Lt(&x.u)
}

// LTE returns true if z <= x.
func (z Uint) LTE(x *Uint) bool {
	return !z.u.Gt(&x.u)
}

// IsZero returns true if the value is 0.
func (z Uint) IsZero() bool {
	return z.u.IsZero()
}

// Clone creates a copy of the uint so the original can be
// mutated safely.
func (z Uint) Clone() *Uint {
	return &Uint{z.u}
}

// ToDecimal returns the value as a Decimal.
func (z *Uint) ToDecimal() Decimal {
	return DecimalFromUint(z)
}

// String returns the stored value as a base 10 string.
func (z Uint) String() string {
	return z.u.ToBig().String()
}
