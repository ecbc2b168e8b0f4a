package eventbus

import (
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestPublishDeliversToSubscribers(t *testing.T) {
	b := New(quietLogger())
	defer b.Close()

	got := make(chan SearchCompletedEvent, 2)
	b.Subscribe(EventSearchCompleted, func(e DomainEvent) {
		got <- e.(SearchCompletedEvent)
	})
	b.Subscribe(EventSearchCompleted, func(e DomainEvent) {
		got <- e.(SearchCompletedEvent)
	})

	b.Publish(SearchCompletedEvent{Seq: 3, Query: "nolan"})

	for i := 0; i < 2; i++ {
		select {
		case e := <-got:
			assert.Equal(t, uint64(3), e.Seq)
			assert.Equal(t, "nolan", e.Query)
		case <-time.After(time.Second):
			t.Fatal("event not delivered")
		}
	}
}

func TestSubscribeFiltersByType(t *testing.T) {
	b := New(quietLogger())
	defer b.Close()

	var calls atomic.Int32
	b.Subscribe(EventSearchFailed, func(DomainEvent) { calls.Add(1) })

	done := make(chan struct{})
	b.Subscribe(EventSearchCompleted, func(DomainEvent) { close(done) })

	b.Publish(SearchCompletedEvent{Seq: 1})
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
	assert.Equal(t, int32(0), calls.Load())
}

func TestUnsubscribe(t *testing.T) {
	b := New(quietLogger())
	defer b.Close()

	var removed atomic.Int32
	unsubscribe := b.Subscribe(EventSearchRequested, func(DomainEvent) { removed.Add(1) })
	unsubscribe()

	kept := make(chan struct{}, 1)
	b.Subscribe(EventSearchRequested, func(DomainEvent) { kept <- struct{}{} })

	b.Publish(SearchRequestedEvent{Seq: 1, Query: "x"})
	select {
	case <-kept:
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
	assert.Equal(t, int32(0), removed.Load())
}

func TestHandlerPanicIsRecovered(t *testing.T) {
	b := New(quietLogger())
	defer b.Close()

	b.Subscribe(EventError, func(DomainEvent) { panic("boom") })

	ok := make(chan struct{}, 1)
	b.Subscribe(EventError, func(DomainEvent) { ok <- struct{}{} })

	b.Publish(ErrorEvent{Message: "x"})
	select {
	case <-ok:
	case <-time.After(time.Second):
		t.Fatal("healthy handler not called")
	}

	// The dispatcher must still be alive after a panicking handler
	again := make(chan struct{}, 1)
	b.Subscribe(EventConfigSaved, func(DomainEvent) { again <- struct{}{} })
	b.Publish(ConfigSavedEvent{})
	require.Eventually(t, func() bool { return len(again) == 1 }, time.Second, 10*time.Millisecond)
}

func TestCloseIsIdempotent(t *testing.T) {
	b := New(quietLogger())
	b.Close()
	b.Close()
}
