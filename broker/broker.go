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

package broker

import (
	"sync"

	"code.vegaprotocol.io/marketplace/events"
	"code.vegaprotocol.io/marketplace/logging"
)

// Subscriber interface allows pushing values to subscribers.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/subscriber_mock.go -package mocks code.vegaprotocol.io/marketplace/broker Subscriber
type Subscriber interface {
	Push(evts ...events.Event)
	Types() []events.Type
	SetID(id int)
	ID() int
}

// Interface is the event broker as the engines see it, events are sent
// once an operation has fully committed, never on an aborted one.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/broker_mock.go -package mocks code.vegaprotocol.io/marketplace/broker Interface
type Interface interface {
	Send(event events.Event)
	SendBatch(events []events.Event)
	Subscribe(s Subscriber) int
	Unsubscribe(k int)
}

type sequencer interface {
	SetSequence(s uint64)
}

// Broker - the base broker type, dispatches events to subscribers by
// event type, in the order the operations committed them.
type Broker struct {
	log *logging.Logger

	mu    sync.Mutex
	tSubs map[events.Type]map[int]Subscriber
	// subs ensures a unique ID for all subscribers, regardless of what
	// event types they subscribe to.
	subs   map[int]Subscriber
	lastID int
	seq    uint64
}

// New creates a new base broker.
func New(log *logging.Logger, config Config) *Broker {
	log = log.Named(namedLogger)
	log.SetLevel(config.Level.Get())

	return &Broker{
		log:   log,
		tSubs: map[events.Type]map[int]Subscriber{},
		subs:  map[int]Subscriber{},
	}
}

// Send a single event to all subscribers registered for its type.
func (b *Broker) Send(event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.push(event)
}

// SendBatch sends a slice of events, all stamped with consecutive
// sequence numbers under the same lock.
func (b *Broker) SendBatch(evts []events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range evts {
		b.push(e)
	}
}

func (b *Broker) push(event events.Event) {
	b.seq++
	if es, ok := event.(sequencer); ok {
		es.SetSequence(b.seq)
	}
	if b.log.IsDebug() {
		b.log.Debug("sending event",
			logging.String("type", event.Type().String()),
			logging.Uint64("sequence", b.seq),
		)
	}
	for _, sub := range b.tSubs[events.All] {
		sub.Push(event)
	}
	for _, sub := range b.tSubs[event.Type()] {
		sub.Push(event)
	}
}

// Subscribe registers a new subscriber, returning the key used to
// unsubscribe it.
func (b *Broker) Subscribe(s Subscriber) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastID++
	k := b.lastID
	s.SetID(k)
	b.subs[k] = s
	for _, t := range s.Types() {
		if _, ok := b.tSubs[t]; !ok {
			b.tSubs[t] = map[int]Subscriber{}
		}
		b.tSubs[t][k] = s
	}
	return k
}

// Unsubscribe removes the subscriber registered with the given key, it
// is safe to call with an unknown key.
func (b *Broker) Unsubscribe(k int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.subs[k]
	if !ok {
		return
	}
	for _, t := range s.Types() {
		delete(b.tSubs[t], k)
	}
	delete(b.subs, k)
}
