package go_aditum

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stremovskyy/go-aditum/consts"
	sdklog "github.com/stremovskyy/go-aditum/log"
	"github.com/stremovskyy/go-aditum/payment"
)

func TestSubscribeKeepsEveryHandle(t *testing.T) {
	bus := newEventBus(sdklog.NopLogger{})

	var calls []string
	first, err := bus.subscribe(consts.EventPaymentStarted, func(payment.Event) { calls = append(calls, "first") })
	require.NoError(t, err)
	second, err := bus.subscribe(consts.EventPaymentStarted, func(payment.Event) { calls = append(calls, "second") })
	require.NoError(t, err)
	assert.NotEqual(t, first.ID(), second.ID())
	assert.Equal(t, consts.EventPaymentStarted, first.Event())

	bus.emit(payment.Event{Name: consts.EventPaymentStarted})
	assert.Equal(t, []string{"first", "second"}, calls)

	first.Unsubscribe()
	first.Unsubscribe()
	assert.Equal(t, 1, bus.count(consts.EventPaymentStarted))

	calls = nil
	bus.emit(payment.Event{Name: consts.EventPaymentStarted})
	assert.Equal(t, []string{"second"}, calls)

	second.Unsubscribe()
	assert.Zero(t, bus.count(consts.EventPaymentStarted))
}

func TestSubscribeRejectsUnknownEvents(t *testing.T) {
	bus := newEventBus(sdklog.NopLogger{})

	_, err := bus.subscribe("onSomethingElse", func(payment.Event) {})
	assert.Error(t, err)

	_, err = bus.subscribe(consts.EventPaymentError, nil)
	assert.Error(t, err)

	var nilSub *Subscription
	assert.NotPanics(t, nilSub.Unsubscribe)
}

func TestPanickingHandlerDoesNotStopDelivery(t *testing.T) {
	logger := &testLogger{level: sdklog.LevelDebug}
	bus := newEventBus(logger)

	_, err := bus.subscribe(consts.EventPaymentSuccess, func(payment.Event) { panic("boom") })
	require.NoError(t, err)
	var delivered bool
	_, err = bus.subscribe(consts.EventPaymentSuccess, func(payment.Event) { delivered = true })
	require.NoError(t, err)

	assert.NotPanics(t, func() { bus.emit(payment.Event{Name: consts.EventPaymentSuccess}) })
	assert.True(t, delivered)
	assert.Equal(t, 1, logger.errCount)
}

func TestUnsubscribeFromHandler(t *testing.T) {
	p := &fakeProcessor{payResult: &payment.PaymentResult{TransactionID: "tx"}}
	c, _ := newTestClient(t, p)
	initialize(t, c)

	var count int
	var sub *Subscription
	sub, err := c.Subscribe(consts.EventPaymentProcessing, func(payment.Event) {
		count++
		sub.Unsubscribe()
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := c.ProcessPayment(context.Background(), &payment.PaymentRequest{Amount: 1, OrderID: "A"})
		require.NoError(t, err)
	}
	assert.Equal(t, 1, count)
}
