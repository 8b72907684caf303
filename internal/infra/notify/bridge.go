package notify

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"nest/internal/pkg/backoff"
	"nest/internal/pkg/config"
	"nest/internal/pkg/errs"
)

var (
	ErrEmptyChannel = errs.New("channel name is required")
	ErrNilHandler   = errs.New("handler is required")
)

type Notification struct {
	Channel string
	Payload string
	// Redelivered is set when the notification is replayed after a reconnect.
	Redelivered bool
}

type Handler func(ctx context.Context, n Notification)

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	id      uint64
	channel string
	handler Handler
	bridge  *Bridge
}

func (s *Subscription) Channel() string { return s.channel }

// Unsubscribe is idempotent.
func (s *Subscription) Unsubscribe() {
	s.bridge.Unsubscribe(s)
}

// Bridge fans database notifications out to in-process subscribers.
//
// Delivery is at-least-once: after a lost connection the last notification
// seen on each channel is redelivered, because anything sent while
// disconnected is gone.
type Bridge struct {
	connector Connector
	cfg       config.BridgeConfig
	logger    *slog.Logger

	mu     sync.Mutex
	subs   map[string]map[uint64]*Subscription
	last   map[string]Notification
	nextID uint64
	wake   chan struct{}
}

func NewBridge(connector Connector, cfg config.BridgeConfig, logger *slog.Logger) *Bridge {
	return &Bridge{
		connector: connector,
		cfg:       cfg,
		logger:    logger,
		subs:      make(map[string]map[uint64]*Subscription),
		last:      make(map[string]Notification),
		wake:      make(chan struct{}, 1),
	}
}

func (b *Bridge) Subscribe(channel string, handler Handler) (*Subscription, error) {
	if channel == "" {
		return nil, ErrEmptyChannel
	}
	if handler == nil {
		return nil, ErrNilHandler
	}

	b.mu.Lock()
	b.nextID++
	sub := &Subscription{id: b.nextID, channel: channel, handler: handler, bridge: b}
	subs, ok := b.subs[channel]
	if !ok {
		subs = make(map[uint64]*Subscription)
		b.subs[channel] = subs
	}
	subs[sub.id] = sub
	b.mu.Unlock()

	if !ok {
		b.signal()
	}
	return sub, nil
}

func (b *Bridge) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	b.mu.Lock()
	subs := b.subs[sub.channel]
	if _, ok := subs[sub.id]; !ok {
		b.mu.Unlock()
		return
	}
	delete(subs, sub.id)
	emptied := len(subs) == 0
	if emptied {
		delete(b.subs, sub.channel)
	}
	b.mu.Unlock()

	if emptied {
		b.signal()
	}
}

func (b *Bridge) signal() {
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

func (b *Bridge) channels() map[string]bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string]bool, len(b.subs))
	for ch := range b.subs {
		out[ch] = true
	}
	return out
}

func (b *Bridge) subscribers(channel string) []*Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*Subscription, 0, len(b.subs[channel]))
	for _, s := range b.subs[channel] {
		out = append(out, s)
	}
	return out
}

// Run holds the listening connection until ctx is done.
func (b *Bridge) Run(ctx context.Context) error {
	reconnects := 0
	for {
		if ctx.Err() != nil {
			return nil
		}

		l, err := b.connector.Connect(ctx)
		if err != nil {
			if !b.pause(ctx, reconnects) {
				return nil
			}
			b.logger.Warn("notification bridge connect failed", "attempt", reconnects+1, "error", err.Error())
			reconnects++
			continue
		}

		redeliver := reconnects > 0
		err = b.serve(ctx, l, redeliver)

		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		_ = l.Close(closeCtx)
		cancel()

		if ctx.Err() != nil {
			return nil
		}
		b.logger.Warn("notification bridge connection lost", "error", err.Error())
		reconnects = 1
		if !b.pause(ctx, 0) {
			return nil
		}
	}
}

func (b *Bridge) pause(ctx context.Context, attempt int) bool {
	return backoff.Sleep(ctx.Done(), backoff.Delay(attempt, b.cfg.ReconnectDelay, b.cfg.ReconnectMax))
}

func (b *Bridge) serve(ctx context.Context, l Listener, redeliver bool) error {
	listened := make(map[string]bool)
	if err := b.syncChannels(ctx, l, listened); err != nil {
		return err
	}
	if redeliver {
		b.redeliver(ctx, listened)
	}

	for {
		waitCtx, cancel := context.WithCancel(ctx)
		woke := make(chan bool, 1)
		go func() {
			select {
			case <-b.wake:
				woke <- true
				cancel()
			case <-waitCtx.Done():
				woke <- false
			}
		}()
		n, err := l.WaitForNotification(waitCtx)
		cancel()
		woken := <-woke

		switch {
		case ctx.Err() != nil:
			return ctx.Err()
		case err != nil && !woken:
			return err
		case err == nil:
			b.dispatch(ctx, n)
		}
		if woken {
			if err := b.syncChannels(ctx, l, listened); err != nil {
				return err
			}
		}
	}
}

func (b *Bridge) syncChannels(ctx context.Context, l Listener, listened map[string]bool) error {
	want := b.channels()
	for ch := range want {
		if listened[ch] {
			continue
		}
		if err := l.Listen(ctx, ch); err != nil {
			return errs.Wrapf(err, "listen %s", ch)
		}
		listened[ch] = true
	}
	for ch := range listened {
		if want[ch] {
			continue
		}
		if err := l.Unlisten(ctx, ch); err != nil {
			return errs.Wrapf(err, "unlisten %s", ch)
		}
		delete(listened, ch)
	}
	return nil
}

func (b *Bridge) redeliver(ctx context.Context, listened map[string]bool) {
	b.mu.Lock()
	pending := make([]Notification, 0, len(b.last))
	for ch, n := range b.last {
		if listened[ch] {
			n.Redelivered = true
			pending = append(pending, n)
		}
	}
	b.mu.Unlock()

	for _, n := range pending {
		b.dispatch(ctx, n)
	}
}

func (b *Bridge) dispatch(ctx context.Context, n Notification) {
	if !n.Redelivered {
		b.mu.Lock()
		b.last[n.Channel] = n
		b.mu.Unlock()
	}
	for _, sub := range b.subscribers(n.Channel) {
		b.deliver(ctx, sub, n)
	}
}

func (b *Bridge) deliver(ctx context.Context, sub *Subscription, n Notification) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("notification handler panicked",
				"channel", n.Channel,
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()))
		}
	}()
	sub.handler(ctx, n)
}
