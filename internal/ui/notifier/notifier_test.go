package notifier

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeUnsubscribe(t *testing.T) {
	n := New()

	ch := n.Subscribe()
	require.NotNil(t, ch)

	n.mu.RLock()
	assert.Len(t, n.listeners, 1)
	n.mu.RUnlock()

	n.Unsubscribe(ch)

	n.mu.RLock()
	assert.Empty(t, n.listeners)
	n.mu.RUnlock()
}

func TestBroadcast_ReachesEveryPage(t *testing.T) {
	n := New()

	// Two report pages holding /updates streams open.
	first := n.Subscribe()
	second := n.Subscribe()
	defer n.Unsubscribe(first)
	defer n.Unsubscribe(second)

	n.Broadcast()

	for name, ch := range map[string]chan struct{}{"first": first, "second": second} {
		select {
		case <-ch:
		case <-time.After(100 * time.Millisecond):
			t.Errorf("%s page missed the reload ping", name)
		}
	}
}

func TestBroadcast_SkipsSaturatedListener(t *testing.T) {
	n := New()

	ch := n.Subscribe()
	defer n.Unsubscribe(ch)

	// A page that has not drained its previous ping.
	ch <- struct{}{}

	done := make(chan struct{})
	go func() {
		n.Broadcast()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Error("broadcast blocked on a full listener")
	}
}

func TestConcurrentChurn(t *testing.T) {
	n := New()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch := n.Subscribe()
			n.Broadcast()
			n.Unsubscribe(ch)
		}()
	}
	wg.Wait()

	n.mu.RLock()
	assert.Empty(t, n.listeners)
	n.mu.RUnlock()
}
