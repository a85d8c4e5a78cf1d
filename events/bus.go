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

	"github.com/pkg/errors"
)

var (
	ErrUnsupportedEvent = errors.New("unknown payload for event")
)

type Type int

// Base common denominator all event-bus events share.
type Base struct {
	ctx context.Context
	seq uint64
	et  Type
}

type Event interface {
	Type() Type
	Context() context.Context
	Sequence() uint64
}

const (
	// All event type -> used by subscribers to just receive all events,
	// has no actual corresponding event payload.
	All Type = iota
	// ListedEvent a new listing was recorded on the ledger.
	ListedEvent
	// SoldEvent a listing was settled.
	SoldEvent
	// PriceChangedEvent a seller amended the price of an active listing.
	PriceChangedEvent
	// UnlistedEvent a seller cancelled an active listing.
	UnlistedEvent
)

var eventStrings = map[Type]string{
	All:               "ALL",
	ListedEvent:       "Listed",
	SoldEvent:         "Sold",
	PriceChangedEvent: "PriceChanged",
	UnlistedEvent:     "Unlisted",
}

func (t Type) String() string {
	s, ok := eventStrings[t]
	if !ok {
		return "UNKNOWN EVENT"
	}
	return s
}

// New is a generic constructor - based on the type of v, the specific
// event will be returned.
func New(ctx context.Context, v interface{}) (Event, error) {
	switch tv := v.(type) {
	case *types.Listing:
		return NewListedEvent(ctx, *tv), nil
	case types.Listing:
		return NewListedEvent(ctx, tv), nil
	}
	return nil, ErrUnsupportedEvent
}

// A base event holds no data, so the constructor will not be called directly.
func newBase(ctx context.Context, t Type) *Base {
	return &Base{
		ctx: ctx,
		et:  t,
	}
}

// Sequence returns the event sequence number.
func (b Base) Sequence() uint64 {
	return b.seq
}

// SetSequence is used by the broker to stamp events in send order.
func (b *Base) SetSequence(s uint64) {
	b.seq = s
}

// Context returns the context the event was emitted with.
func (b Base) Context() context.Context {
	return b.ctx
}

// Type returns the event type.
func (b Base) Type() Type {
	return b.et
}
