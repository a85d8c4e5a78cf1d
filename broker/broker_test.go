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

package broker_test

import (
	"context"
	"testing"

	"code.vegaprotocol.io/marketplace/broker"
	"code.vegaprotocol.io/marketplace/broker/mocks"
	"code.vegaprotocol.io/marketplace/events"
	"code.vegaprotocol.io/marketplace/logging"
	"code.vegaprotocol.io/marketplace/types"
	"code.vegaprotocol.io/marketplace/types/num"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokerTst struct {
	*broker.Broker
	ctrl *gomock.Controller
}

func getBroker(t *testing.T) *brokerTst {
	t.Helper()
	ctrl := gomock.NewController(t)
	return &brokerTst{
		Broker: broker.New(logging.NewTestLogger(), broker.NewDefaultConfig()),
		ctrl:   ctrl,
	}
}

func (b *brokerTst) randomEvt() *events.Listed {
	return events.NewListedEvent(context.Background(), types.Listing{
		ID:            1,
		Seller:        "seller-party",
		AssetContract: "0xdeadbeef",
		AssetID:       num.NewUint(7),
		Price:         num.NewUint(100),
		Status:        types.ListingStatusActive,
	})
}

func TestBroker(t *testing.T) {
	t.Run("typed subscriber only gets its type", testSubscriberGetsItsType)
	t.Run("subscriber to all types gets everything", testSubscriberToAll)
	t.Run("unsubscribed subscriber gets nothing", testUnsubscribe)
	t.Run("events are stamped with increasing sequences", testSequenceStamping)
	t.Run("send batch pushes all events", testSendBatch)
}

func testSubscriberGetsItsType(t *testing.T) {
	tst := getBroker(t)
	sub := mocks.NewMockSubscriber(tst.ctrl)
	sub.EXPECT().Types().Times(1).Return([]events.Type{events.ListedEvent})
	sub.EXPECT().SetID(gomock.Any()).Times(1)
	tst.Subscribe(sub)

	// only the listed event is pushed
	sub.EXPECT().Push(gomock.Any()).Times(1)
	tst.Send(tst.randomEvt())
	tst.Send(events.NewUnlistedEvent(context.Background(), 1))
}

func testSubscriberToAll(t *testing.T) {
	tst := getBroker(t)
	sub := mocks.NewMockSubscriber(tst.ctrl)
	sub.EXPECT().Types().Times(1).Return([]events.Type{events.All})
	sub.EXPECT().SetID(gomock.Any()).Times(1)
	tst.Subscribe(sub)

	sub.EXPECT().Push(gomock.Any()).Times(3)
	tst.Send(tst.randomEvt())
	tst.Send(events.NewUnlistedEvent(context.Background(), 1))
	tst.Send(events.NewPriceChangedEvent(context.Background(), 1, num.NewUint(5)))
}

func testUnsubscribe(t *testing.T) {
	tst := getBroker(t)
	sub := mocks.NewMockSubscriber(tst.ctrl)
	sub.EXPECT().Types().Times(2).Return([]events.Type{events.All})
	sub.EXPECT().SetID(gomock.Any()).Times(1)
	k := tst.Subscribe(sub)
	require.NotZero(t, k)

	tst.Unsubscribe(k)
	tst.Send(tst.randomEvt())

	// unsubscribing an unknown key is a no-op
	tst.Unsubscribe(k)
}

func testSequenceStamping(t *testing.T) {
	tst := getBroker(t)
	sub := mocks.NewMockSubscriber(tst.ctrl)
	sub.EXPECT().Types().Times(1).Return([]events.Type{events.All})
	sub.EXPECT().SetID(gomock.Any()).Times(1)
	tst.Subscribe(sub)

	seqs := []uint64{}
	sub.EXPECT().Push(gomock.Any()).Times(2).Do(func(evts ...events.Event) {
		for _, e := range evts {
			seqs = append(seqs, e.Sequence())
		}
	})
	tst.Send(tst.randomEvt())
	tst.Send(tst.randomEvt())

	require.Len(t, seqs, 2)
	assert.Greater(t, seqs[1], seqs[0])
}

func testSendBatch(t *testing.T) {
	tst := getBroker(t)
	sub := mocks.NewMockSubscriber(tst.ctrl)
	sub.EXPECT().Types().Times(1).Return([]events.Type{events.ListedEvent})
	sub.EXPECT().SetID(gomock.Any()).Times(1)
	tst.Subscribe(sub)

	sub.EXPECT().Push(gomock.Any()).Times(3)
	tst.SendBatch([]events.Event{
		tst.randomEvt(), tst.randomEvt(), tst.randomEvt(),
	})
}
