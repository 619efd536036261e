package pubsub

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// DefaultBuffer is the per-subscription channel capacity.
const DefaultBuffer = 100

// ErrShutdown is returned by Subscribe after Shutdown.
var ErrShutdown = errors.New("pubsub: shut down")

// PubSub fans messages of type M out to topic subscribers. Publishing never
// blocks: a subscriber whose buffer is full misses the message.
type PubSub[M any] struct {
	subscribers map[string]map[*Subscription[M]]bool
	mu          sync.RWMutex
	buffer      int
	shutdown    chan struct{}
	isShutdown  bool
	dropped     atomic.Uint64
}

// Subscription represents a subscription to a topic
type Subscription[M any] struct {
	topic     string
	channel   chan M
	ps        *PubSub[M]
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewPubSub creates a broker whose subscriptions buffer up to buffer
// messages. A non-positive buffer uses DefaultBuffer.
func NewPubSub[M any](buffer int) *PubSub[M] {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &PubSub[M]{
		subscribers: make(map[string]map[*Subscription[M]]bool),
		buffer:      buffer,
		shutdown:    make(chan struct{}),
	}
}

// Subscribe creates a new subscription to a topic. The subscription ends
// when ctx is cancelled, Unsubscribe is called or the broker shuts down;
// its channel is closed in every case.
func (ps *PubSub[M]) Subscribe(ctx context.Context, topic string) (*Subscription[M], error) {
	subCtx, cancel := context.WithCancel(ctx)
	sub := &Subscription[M]{
		topic:   topic,
		channel: make(chan M, ps.buffer),
		ps:      ps,
		cancel:  cancel,
	}

	ps.mu.Lock()
	if ps.isShutdown {
		ps.mu.Unlock()
		cancel()
		return nil, ErrShutdown
	}
	if ps.subscribers[topic] == nil {
		ps.subscribers[topic] = make(map[*Subscription[M]]bool)
	}
	ps.subscribers[topic][sub] = true
	ps.mu.Unlock()

	go func() {
		select {
		case <-subCtx.Done():
			sub.Unsubscribe()
		case <-ps.shutdown:
		}
	}()

	return sub, nil
}

// Publish delivers message to every subscriber of topic with buffer room
// and returns how many received it. Sends happen under the read lock so a
// concurrent Unsubscribe cannot close a channel mid-send.
func (ps *PubSub[M]) Publish(topic string, message M) int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	if ps.isShutdown {
		return 0
	}

	delivered := 0
	for sub := range ps.subscribers[topic] {
		select {
		case sub.channel <- message:
			delivered++
		default:
			ps.dropped.Add(1)
		}
	}
	return delivered
}

// Dropped returns how many deliveries were skipped because a buffer was full.
func (ps *PubSub[M]) Dropped() uint64 {
	return ps.dropped.Load()
}

// GetSubscriberCount returns the number of subscribers for a topic
func (ps *PubSub[M]) GetSubscriberCount(topic string) int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return len(ps.subscribers[topic])
}

// Shutdown closes all subscriptions and shuts down the PubSub
func (ps *PubSub[M]) Shutdown() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.isShutdown {
		return
	}
	ps.isShutdown = true
	close(ps.shutdown)

	for topic, subs := range ps.subscribers {
		for sub := range subs {
			sub.cancel()
			sub.close()
		}
		delete(ps.subscribers, topic)
	}
}

// Channel returns the subscription's message channel
func (s *Subscription[M]) Channel() <-chan M {
	return s.channel
}

// Topic returns the subscribed topic.
func (s *Subscription[M]) Topic() string {
	return s.topic
}

// Unsubscribe removes the subscription and closes its channel.
func (s *Subscription[M]) Unsubscribe() {
	s.cancel()

	s.ps.mu.Lock()
	defer s.ps.mu.Unlock()

	if subs := s.ps.subscribers[s.topic]; subs != nil {
		delete(subs, s)
		if len(subs) == 0 {
			delete(s.ps.subscribers, s.topic)
		}
	}
	s.close()
}

// close is idempotent. Caller holds ps.mu.
func (s *Subscription[M]) close() {
	s.closeOnce.Do(func() {
		close(s.channel)
	})
}
