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

package accounts

import (
	"context"
	"errors"
	"sync"

	"code.vegaprotocol.io/marketplace/logging"
	"code.vegaprotocol.io/marketplace/types/num"
)

var (
	// ErrInsufficientFunds is returned when the source account cannot
	// cover a transfer.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInvalidParty is returned on a transfer or deposit to the null
	// identity.
	ErrInvalidParty = errors.New("invalid party")
	// ErrZeroAmount is returned on a zero valued deposit or transfer.
	ErrZeroAmount = errors.New("amount must be greater than zero")
)

// Engine is an in memory balance ledger. It implements the payment
// channel the marketplace engine settles through: outgoing transfers
// are paid from the configured source party, the pool buyers attach
// their payment value to.
type Engine struct {
	log *logging.Logger
	Config

	mu sync.RWMutex
	// source is the party outgoing transfers are debited from.
	source   string
	balances map[string]*num.Uint
}

// New instantiates a new balance ledger paying out of the given source
// party.
func New(log *logging.Logger, cfg Config, source string) *Engine {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())

	return &Engine{
		log:      log,
		Config:   cfg,
		source:   source,
		balances: map[string]*num.Uint{},
	}
}

// Deposit credits the given party, this is how attached payment value
// enters the source pool before a settlement.
func (e *Engine) Deposit(party string, amount *num.Uint) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(party) <= 0 {
		return ErrInvalidParty
	}
	if amount == nil || amount.IsZero() {
		return ErrZeroAmount
	}
	e.credit(party, amount)
	return nil
}

// Attach moves the amount from the given party into the source pool,
// this is the value a buyer attaches to a purchase before settlement
// runs. It fails when the party cannot cover it.
func (e *Engine) Attach(party string, amount *num.Uint) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(party) <= 0 {
		return ErrInvalidParty
	}
	if amount == nil || amount.IsZero() {
		return ErrZeroAmount
	}

	balance, ok := e.balances[party]
	if !ok || balance.LT(amount) {
		return ErrInsufficientFunds
	}
	balance.Sub(balance, amount)
	e.credit(e.source, amount)
	return nil
}

// Transfer moves the amount from the source party to the given party,
// it fails when the source cannot cover it.
func (e *Engine) Transfer(_ context.Context, to string, amount *num.Uint) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(to) <= 0 {
		return ErrInvalidParty
	}
	if amount == nil || amount.IsZero() {
		return ErrZeroAmount
	}

	balance, ok := e.balances[e.source]
	if !ok || balance.LT(amount) {
		return ErrInsufficientFunds
	}
	balance.Sub(balance, amount)
	e.credit(to, amount)

	if e.log.IsDebug() {
		e.log.Debug("transfer",
			logging.String("from", e.source),
			logging.String("to", to),
			logging.BigUint("amount", amount),
		)
	}
	return nil
}

// Balance returns the balance of the given party, zero for parties the
// ledger has never seen.
func (e *Engine) Balance(party string) *num.Uint {
	e.mu.RLock()
	defer e.mu.RUnlock()

	balance, ok := e.balances[party]
	if !ok {
		return num.Zero()
	}
	return balance.Clone()
}

// credit adds to a party balance, callers must hold the engine lock.
func (e *Engine) credit(party string, amount *num.Uint) {
	balance, ok := e.balances[party]
	if !ok {
		balance = num.Zero()
		e.balances[party] = balance
	}
	balance.Add(balance, amount)
}
