//go:build unit

package notify_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"nest/internal/infra/notify"
	"nest/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errConnLost = errors.New("connection lost")

type fakeListener struct {
	notes chan notify.Notification
	fail  chan error

	mu       sync.Mutex
	listened map[string]bool
	closed   bool
}

func newFakeListener() *fakeListener {
	return &fakeListener{
		notes:    make(chan notify.Notification, 16),
		fail:     make(chan error, 1),
		listened: map[string]bool{},
	}
}

func (l *fakeListener) Listen(_ context.Context, ch string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.listened[ch] = true
	return nil
}

func (l *fakeListener) Unlisten(_ context.Context, ch string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.listened, ch)
	return nil
}

func (l *fakeListener) WaitForNotification(ctx context.Context) (notify.Notification, error) {
	select {
	case <-ctx.Done():
		return notify.Notification{}, ctx.Err()
	case err := <-l.fail:
		return notify.Notification{}, err
	case n := <-l.notes:
		l.mu.Lock()
		ok := l.listened[n.Channel]
		l.mu.Unlock()
		if !ok {
			return notify.Notification{}, errors.New("notification on unlistened channel " + n.Channel)
		}
		return n, nil
	}
}

func (l *fakeListener) Close(context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	return nil
}

func (l *fakeListener) isListening(ch string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.listened[ch]
}

// fakeConnector hands out listeners in order.
type fakeConnector struct {
	listeners chan *fakeListener
}

func newFakeConnector(ls ...*fakeListener) *fakeConnector {
	c := &fakeConnector{listeners: make(chan *fakeListener, len(ls))}
	for _, l := range ls {
		c.listeners <- l
	}
	return c
}

func (c *fakeConnector) Connect(ctx context.Context) (notify.Listener, error) {
	select {
	case l := <-c.listeners:
		return l, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type recorder struct {
	mu  sync.Mutex
	got []notify.Notification
}

func (r *recorder) handle(_ context.Context, n notify.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
}

func (r *recorder) snapshot() []notify.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Notification(nil), r.got...)
}

func bridgeConfig() config.BridgeConfig {
	return config.BridgeConfig{ReconnectDelay: time.Millisecond, ReconnectMax: 5 * time.Millisecond}
}

func newBridge(c notify.Connector) *notify.Bridge {
	return notify.NewBridge(c, bridgeConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func runBridge(t *testing.T, b *notify.Bridge) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Error("bridge did not stop")
		}
	})
}

const wait = time.Second
const tick = 5 * time.Millisecond

func TestBridge_Subscribe(t *testing.T) {
	b := newBridge(newFakeConnector())

	_, err := b.Subscribe("", func(context.Context, notify.Notification) {})
	assert.ErrorIs(t, err, notify.ErrEmptyChannel)

	_, err = b.Subscribe("entitlement_changed", nil)
	assert.ErrorIs(t, err, notify.ErrNilHandler)
}

func TestBridge_Dispatch(t *testing.T) {
	l := newFakeListener()
	b := newBridge(newFakeConnector(l))

	var first, second recorder
	_, err := b.Subscribe("entitlement_changed", first.handle)
	require.NoError(t, err)
	sub2, err := b.Subscribe("entitlement_changed", second.handle)
	require.NoError(t, err)
	runBridge(t, b)

	require.Eventually(t, func() bool { return l.isListening("entitlement_changed") }, wait, tick)
	l.notes <- notify.Notification{Channel: "entitlement_changed", Payload: `{"id":"1"}`}
	require.Eventually(t, func() bool { return len(second.snapshot()) == 1 }, wait, tick)

	sub2.Unsubscribe()
	sub2.Unsubscribe()
	l.notes <- notify.Notification{Channel: "entitlement_changed", Payload: `{"id":"2"}`}
	require.Eventually(t, func() bool { return len(first.snapshot()) == 2 }, wait, tick)

	assert.Len(t, second.snapshot(), 1)
	assert.Equal(t, `{"id":"2"}`, first.snapshot()[1].Payload)
	assert.False(t, first.snapshot()[1].Redelivered)
}

func TestBridge_SubscribeWhileRunning(t *testing.T) {
	l := newFakeListener()
	b := newBridge(newFakeConnector(l))
	var rec recorder
	first, err := b.Subscribe("entitlement_changed", rec.handle)
	require.NoError(t, err)
	runBridge(t, b)
	require.Eventually(t, func() bool { return l.isListening("entitlement_changed") }, wait, tick)

	_, err = b.Subscribe("catalog_changed", rec.handle)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return l.isListening("catalog_changed") }, wait, tick)

	l.notes <- notify.Notification{Channel: "catalog_changed", Payload: "p"}
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, wait, tick)

	first.Unsubscribe()
	require.Eventually(t, func() bool { return !l.isListening("entitlement_changed") }, wait, tick)
}

func TestBridge_ReconnectRedeliversLast(t *testing.T) {
	first, second := newFakeListener(), newFakeListener()
	b := newBridge(newFakeConnector(first, second))

	var rec recorder
	_, err := b.Subscribe("entitlement_changed", rec.handle)
	require.NoError(t, err)
	runBridge(t, b)

	require.Eventually(t, func() bool { return first.isListening("entitlement_changed") }, wait, tick)
	first.notes <- notify.Notification{Channel: "entitlement_changed", Payload: "a"}
	first.notes <- notify.Notification{Channel: "entitlement_changed", Payload: "b"}
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 2 }, wait, tick)

	first.fail <- errConnLost
	require.Eventually(t, func() bool { return second.isListening("entitlement_changed") }, wait, tick)
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 3 }, wait, tick)

	got := rec.snapshot()[2]
	assert.Equal(t, "b", got.Payload)
	assert.True(t, got.Redelivered)

	first.mu.Lock()
	assert.True(t, first.closed)
	first.mu.Unlock()
}

func TestBridge_HandlerPanicIsContained(t *testing.T) {
	l := newFakeListener()
	b := newBridge(newFakeConnector(l))

	var rec recorder
	_, err := b.Subscribe("entitlement_changed", func(context.Context, notify.Notification) { panic("boom") })
	require.NoError(t, err)
	_, err = b.Subscribe("entitlement_changed", rec.handle)
	require.NoError(t, err)
	runBridge(t, b)

	require.Eventually(t, func() bool { return l.isListening("entitlement_changed") }, wait, tick)
	l.notes <- notify.Notification{Channel: "entitlement_changed", Payload: "1"}
	l.notes <- notify.Notification{Channel: "entitlement_changed", Payload: "2"}

	require.Eventually(t, func() bool { return len(rec.snapshot()) == 2 }, wait, tick)
}
