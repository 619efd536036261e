package pubsub

import (
	"context"
	"sync"
	"testing"
	"time"
)

// TestBasicPubSub tests basic publish/subscribe functionality
func TestBasicPubSub(t *testing.T) {
	ps := NewPubSub[string](0)
	defer ps.Shutdown()

	sub, err := ps.Subscribe(context.Background(), "test-topic")
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}
	if sub.Topic() != "test-topic" {
		t.Errorf("Topic() = %q", sub.Topic())
	}

	if n := ps.Publish("test-topic", "Hello, World!"); n != 1 {
		t.Errorf("Publish delivered to %d subscribers, want 1", n)
	}

	select {
	case msg := <-sub.Channel():
		if msg != "Hello, World!" {
			t.Errorf("Expected 'Hello, World!', got %v", msg)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("Timeout waiting for message")
	}

	sub.Unsubscribe()
}

// TestMultipleSubscribers tests multiple subscribers to the same topic
func TestMultipleSubscribers(t *testing.T) {
	ps := NewPubSub[int](0)
	defer ps.Shutdown()

	const numSubscribers = 5
	subs := make([]*Subscription[int], numSubscribers)
	for i := range subs {
		sub, err := ps.Subscribe(context.Background(), "broadcast-topic")
		if err != nil {
			t.Fatalf("Failed to subscribe %d: %v", i, err)
		}
		subs[i] = sub
	}

	if n := ps.Publish("broadcast-topic", 42); n != numSubscribers {
		t.Errorf("delivered = %d, want %d", n, numSubscribers)
	}

	for i, sub := range subs {
		select {
		case msg := <-sub.Channel():
			if msg != 42 {
				t.Errorf("Subscriber %d: got %v", i, msg)
			}
		case <-time.After(1 * time.Second):
			t.Errorf("Subscriber %d: timeout", i)
		}
	}
}

// TestTopicIsolation tests that messages only go to the right topic
func TestTopicIsolation(t *testing.T) {
	ps := NewPubSub[string](0)
	defer ps.Shutdown()

	ctx := context.Background()
	a, _ := ps.Subscribe(ctx, "a")
	b, _ := ps.Subscribe(ctx, "b")

	ps.Publish("a", "for-a")

	select {
	case msg := <-a.Channel():
		if msg != "for-a" {
			t.Errorf("got %q", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for message on a")
	}

	select {
	case msg := <-b.Channel():
		t.Errorf("topic b received %q", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

// TestUnsubscribe tests that unsubscribing closes the channel
func TestUnsubscribe(t *testing.T) {
	ps := NewPubSub[string](0)
	defer ps.Shutdown()

	sub, _ := ps.Subscribe(context.Background(), "topic")
	sub.Unsubscribe()
	sub.Unsubscribe()

	if _, ok := <-sub.Channel(); ok {
		t.Error("channel should be closed after Unsubscribe")
	}
	if n := ps.Publish("topic", "late"); n != 0 {
		t.Errorf("delivered = %d after unsubscribe", n)
	}
	if c := ps.GetSubscriberCount("topic"); c != 0 {
		t.Errorf("subscriber count = %d, want 0", c)
	}
}

// TestContextCancellation tests that cancelling the context unsubscribes
func TestContextCancellation(t *testing.T) {
	ps := NewPubSub[string](0)
	defer ps.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	sub, _ := ps.Subscribe(ctx, "topic")
	cancel()

	select {
	case _, ok := <-sub.Channel():
		if ok {
			t.Error("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("subscription not closed after cancel")
	}

	deadline := time.Now().Add(time.Second)
	for ps.GetSubscriberCount("topic") != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if c := ps.GetSubscriberCount("topic"); c != 0 {
		t.Errorf("subscriber count = %d, want 0", c)
	}
}

// TestConcurrentPublish publishes and unsubscribes concurrently
func TestConcurrentPublish(t *testing.T) {
	ps := NewPubSub[int](1000)
	defer ps.Shutdown()

	ctx := context.Background()
	var subs []*Subscription[int]
	for i := 0; i < 10; i++ {
		sub, _ := ps.Subscribe(ctx, "load")
		subs = append(subs, sub)
	}

	var wg sync.WaitGroup
	for p := 0; p < 8; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				ps.Publish("load", p*100+i)
			}
		}(p)
	}
	for _, sub := range subs[:5] {
		wg.Add(1)
		go func(s *Subscription[int]) {
			defer wg.Done()
			s.Unsubscribe()
		}(sub)
	}
	wg.Wait()

	if c := ps.GetSubscriberCount("load"); c != 5 {
		t.Errorf("subscriber count = %d, want 5", c)
	}
	for _, sub := range subs[5:] {
		if got := len(sub.Channel()); got != 800 {
			t.Errorf("buffered %d messages, want 800", got)
		}
	}
}

// TestBufferedSubscription checks overflow is dropped, not blocked
func TestBufferedSubscription(t *testing.T) {
	ps := NewPubSub[int](3)
	defer ps.Shutdown()

	sub, _ := ps.Subscribe(context.Background(), "small")
	for i := 0; i < 5; i++ {
		ps.Publish("small", i)
	}

	if got := len(sub.Channel()); got != 3 {
		t.Errorf("buffered = %d, want 3", got)
	}
	if d := ps.Dropped(); d != 2 {
		t.Errorf("Dropped() = %d, want 2", d)
	}
	if first := <-sub.Channel(); first != 0 {
		t.Errorf("first message = %d, want 0", first)
	}
}

func TestGetSubscriberCount(t *testing.T) {
	ps := NewPubSub[string](0)
	defer ps.Shutdown()

	if c := ps.GetSubscriberCount("none"); c != 0 {
		t.Errorf("count = %d, want 0", c)
	}
	ctx := context.Background()
	s1, _ := ps.Subscribe(ctx, "t")
	ps.Subscribe(ctx, "t")
	if c := ps.GetSubscriberCount("t"); c != 2 {
		t.Errorf("count = %d, want 2", c)
	}
	s1.Unsubscribe()
	if c := ps.GetSubscriberCount("t"); c != 1 {
		t.Errorf("count = %d, want 1", c)
	}
}

// TestShutdown closes every subscription and rejects new ones
func TestShutdown(t *testing.T) {
	ps := NewPubSub[string](0)

	sub, _ := ps.Subscribe(context.Background(), "t")
	ps.Shutdown()
	ps.Shutdown()

	if _, ok := <-sub.Channel(); ok {
		t.Error("channel should be closed after Shutdown")
	}
	if _, err := ps.Subscribe(context.Background(), "t"); err != ErrShutdown {
		t.Errorf("Subscribe after Shutdown: err = %v, want ErrShutdown", err)
	}
	if n := ps.Publish("t", "x"); n != 0 {
		t.Errorf("Publish after Shutdown delivered %d", n)
	}
	sub.Unsubscribe()
}
