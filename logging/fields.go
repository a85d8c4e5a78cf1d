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

package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// String constructs a field with the given key and value.
func String(key, val string) zap.Field {
	return zap.String(key, val)
}

// Int constructs a field with the given key and value.
func Int(key string, val int) zap.Field {
	return zap.Int(key, val)
}

// Uint64 constructs a field with the given key and value.
func Uint64(key string, val uint64) zap.Field {
	return zap.Uint64(key, val)
}

// Bool constructs a field with the given key and value.
func Bool(key string, val bool) zap.Field {
	return zap.Bool(key, val)
}

// Error constructs a field that carries an error.
func Error(err error) zap.Field {
	return zap.Error(err)
}

// BigUint constructs a field from any type with a String method, used
// for num.Uint values without forcing the dependency here.
func BigUint(key string, val fmt.Stringer) zap.Field {
	return zap.Stringer(key, val)
}
