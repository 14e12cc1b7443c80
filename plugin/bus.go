package plugin

import (
	"fmt"
	"sync"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
)

// Wildcard subscribes to every topic.
const Wildcard = "*"

// Event is one published message.
type Event struct {
	Topic   string
	Payload any
}

type Handler func(ev Event)

// Subscription identifies one handler registration.
type Subscription struct {
	ID    uuid.UUID
	Topic string
}

type subscriber struct {
	id uuid.UUID
	fn Handler
}

// Bus is a synchronous publish/subscribe hub. Handlers run on the
// publisher's goroutine, topic subscribers first, then wildcard ones, each
// group in subscription order.
type Bus struct {
	Log logr.Logger

	mu     sync.RWMutex
	topics map[string][]subscriber
}

func NewBus(log logr.Logger) *Bus {
	return &Bus{Log: log, topics: make(map[string][]subscriber)}
}

func (b *Bus) Subscribe(topic string, fn Handler) Subscription {
	s := subscriber{id: uuid.New(), fn: fn}
	b.mu.Lock()
	b.topics[topic] = append(b.topics[topic], s)
	b.mu.Unlock()
	return Subscription{ID: s.id, Topic: topic}
}

// Unsubscribe removes a handler. It reports whether it was still present.
func (b *Bus) Unsubscribe(sub Subscription) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.topics[sub.Topic]
	for i, s := range subs {
		if s.id == sub.ID {
			b.topics[sub.Topic] = append(subs[:i:i], subs[i+1:]...)
			if len(b.topics[sub.Topic]) == 0 {
				delete(b.topics, sub.Topic)
			}
			return true
		}
	}
	return false
}

// Publish delivers payload to every matching handler and returns how many
// were called. A panicking handler is logged and counted; delivery goes on.
func (b *Bus) Publish(topic string, payload any) int {
	b.mu.RLock()
	targets := append([]subscriber(nil), b.topics[topic]...)
	if topic != Wildcard {
		targets = append(targets, b.topics[Wildcard]...)
	}
	b.mu.RUnlock()

	ev := Event{Topic: topic, Payload: payload}
	for _, s := range targets {
		b.deliver(s, ev)
	}
	return len(targets)
}

func (b *Bus) deliver(s subscriber, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.Log.Error(fmt.Errorf("panic: %v", r), "Bus handler failed", "topic", ev.Topic, "subscription", s.id.String())
		}
	}()
	s.fn(ev)
}

// Count returns the number of handlers subscribed to exactly topic.
func (b *Bus) Count(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[topic])
}
