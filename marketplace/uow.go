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
	"code.vegaprotocol.io/marketplace/logging"
)

// effect is one external side effect of a ledger operation. revert may
// be nil when the external collaborator offers no inverse, a completed
// value transfer being the one case.
type effect struct {
	name   string
	apply  func() error
	revert func() error
}

// unitOfWork runs the external effects of a single ledger operation.
// The engine only mutates its own state once run returned nil, so a
// failed operation leaves the ledger untouched.
type unitOfWork struct {
	log     *logging.Logger
	applied []*effect
}

func newUnitOfWork(log *logging.Logger) *unitOfWork {
	return &unitOfWork{log: log}
}

// run applies the effects in order. On the first failure every effect
// already applied is reverted in reverse order and the failure is
// returned to the caller.
func (u *unitOfWork) run(effects ...*effect) error {
	for _, ef := range effects {
		if err := ef.apply(); err != nil {
			u.unwind()
			return err
		}
		u.applied = append(u.applied, ef)
	}
	u.applied = nil
	return nil
}

func (u *unitOfWork) unwind() {
	for i := len(u.applied) - 1; i >= 0; i-- {
		ef := u.applied[i]
		if ef.revert == nil {
			// the channel offers no inverse for this effect, the host
			// environment has to roll the whole operation back
			u.log.Error("cannot revert applied effect, host rollback required",
				logging.String("effect", ef.name))
			continue
		}
		if err := ef.revert(); err != nil {
			u.log.Error("failed to revert applied effect",
				logging.String("effect", ef.name),
				logging.Error(err),
			)
		}
	}
	u.applied = nil
}
