package ipc

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/Maia-Everett/ghetto-skype/internal/apperr"
	"github.com/Maia-Everett/ghetto-skype/internal/logger"
)

// DefaultQueueSize is the number of messages buffered before Send blocks
const DefaultQueueSize = 64

// ErrStopped is returned by Invoke once the dispatch loop has exited
var ErrStopped = errors.New("message bus stopped")

// Handler consumes a fire-and-forget message
type Handler func(payload any)

// InvokeHandler answers a synchronous request
type InvokeHandler func(payload any) (any, error)

type reply struct {
	value any
	err   error
}

type message struct {
	channel string
	payload any
	reply   chan reply // nil for fire-and-forget
}

// Bus routes messages from windows to host handlers
type Bus struct {
	log   logger.Logger
	queue chan message

	mu       sync.RWMutex
	handlers map[string]Handler
	invokers map[string]InvokeHandler

	stopped  chan struct{}
	stopOnce sync.Once
}

// NewBus creates a bus; nothing is dispatched until Run is called
func NewBus(log logger.Logger) *Bus {
	return &Bus{
		log:      log.With(logger.String("component", "ipc")),
		queue:    make(chan message, DefaultQueueSize),
		handlers: make(map[string]Handler),
		invokers: make(map[string]InvokeHandler),
		stopped:  make(chan struct{}),
	}
}

// On binds a fire-and-forget handler to channel, replacing any previous one
func (b *Bus) On(channel string, fn Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[channel] = fn
}

// Handle binds a synchronous handler to channel, replacing any previous one
func (b *Bus) Handle(channel string, fn InvokeHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.invokers[channel] = fn
}

// Send queues a fire-and-forget message. Messages sent after the loop has
// stopped are dropped.
func (b *Bus) Send(channel string, payload any) {
	select {
	case b.queue <- message{channel: channel, payload: payload}:
	case <-b.stopped:
		b.log.Warn("Dropping message on %s: bus stopped", channel)
	}
}

// Invoke sends a request on channel and blocks until the handler has
// answered or ctx is done.
func (b *Bus) Invoke(ctx context.Context, channel string, payload any) (any, error) {
	msg := message{channel: channel, payload: payload, reply: make(chan reply, 1)}

	select {
	case b.queue <- msg:
	case <-b.stopped:
		return nil, ErrStopped
	case <-ctx.Done():
		return nil, errors.Wrapf(ctx.Err(), "invoke %s", channel)
	}

	select {
	case r := <-msg.reply:
		return r.value, r.err
	case <-b.stopped:
		return nil, ErrStopped
	case <-ctx.Done():
		return nil, errors.Wrapf(ctx.Err(), "invoke %s", channel)
	}
}

// Run dispatches queued messages until ctx is done
func (b *Bus) Run(ctx context.Context) error {
	defer b.stopOnce.Do(func() { close(b.stopped) })

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-b.queue:
			b.dispatch(msg)
		}
	}
}

// Done is closed when Run returns
func (b *Bus) Done() <-chan struct{} {
	return b.stopped
}

func (b *Bus) dispatch(msg message) {
	if msg.reply != nil {
		value, err := b.invoke(msg)
		msg.reply <- reply{value: value, err: err}
		return
	}

	b.mu.RLock()
	fn, ok := b.handlers[msg.channel]
	b.mu.RUnlock()
	if !ok {
		b.log.Warn("No handler for channel %s", msg.channel)
		return
	}

	defer b.recoverHandler(msg.channel)
	fn(msg.payload)
}

func (b *Bus) invoke(msg message) (value any, err error) {
	b.mu.RLock()
	fn, ok := b.invokers[msg.channel]
	b.mu.RUnlock()
	if !ok {
		return nil, apperr.New(apperr.KindUnknownChannel, msg.channel, nil)
	}

	defer func() {
		if r := recover(); r != nil {
			b.log.Error("Handler for %s panicked: %v", msg.channel, r)
			err = fmt.Errorf("handler for %s panicked: %v", msg.channel, r)
		}
	}()
	return fn(msg.payload)
}

func (b *Bus) recoverHandler(channel string) {
	if r := recover(); r != nil {
		b.log.Error("Handler for %s panicked: %v", channel, r)
	}
}
