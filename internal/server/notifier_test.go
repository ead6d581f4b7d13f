package server

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_SubscribeUnsubscribe(t *testing.T) {
	n := NewNotifier()

	ch := n.Subscribe()
	require.NotNil(t, ch)
	assert.Equal(t, 1, n.Subscribers())

	n.Unsubscribe(ch)
	assert.Equal(t, 0, n.Subscribers())

	_, ok := <-ch
	assert.False(t, ok, "channel should be closed after unsubscribe")
}

func TestNotifier_Broadcast(t *testing.T) {
	n := NewNotifier()
	a := n.Subscribe()
	b := n.Subscribe()
	defer n.Unsubscribe(a)
	defer n.Unsubscribe(b)

	n.Broadcast(Event{Kind: EventMoleculeSaved, Formula: "H2O"})

	for _, ch := range []chan Event{a, b} {
		select {
		case ev := <-ch:
			assert.Equal(t, "H2O", ev.Formula)
		case <-time.After(time.Second):
			t.Fatal("event not delivered")
		}
	}
}

func TestNotifier_BroadcastNeverBlocks(t *testing.T) {
	n := NewNotifier()
	ch := n.Subscribe()
	defer n.Unsubscribe(ch)

	// Overfill the buffer; extra events are dropped.
	for i := 0; i < 100; i++ {
		n.Broadcast(Event{Kind: EventElementsChanged, Count: i})
	}
	assert.Len(t, ch, cap(ch))
}

func TestNotifier_Concurrent(t *testing.T) {
	n := NewNotifier()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch := n.Subscribe()
			n.Broadcast(Event{Kind: EventMoleculeSaved})
			n.Unsubscribe(ch)
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, n.Subscribers())
}
