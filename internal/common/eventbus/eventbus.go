// Package eventbus is an in-process publish/subscribe bus. Topics are dot
// separated; a subscription pattern may use "*" for one segment, or be "*"
// alone to receive everything.
package eventbus

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type Event struct {
	Topic string
	Data  any
}

type subscriber struct {
	id      string
	pattern string
	ch      chan Event

	mu     sync.Mutex
	closed bool
}

// send delivers e, waiting at most timeout for buffer space. A zero timeout
// drops the event when the buffer is full.
func (s *subscriber) send(e Event, timeout time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	if timeout <= 0 {
		select {
		case s.ch <- e:
			return true
		default:
			return false
		}
	}
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case s.ch <- e:
		return true
	case <-t.C:
		return false
	}
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}

type Bus struct {
	mu          sync.RWMutex
	subscribers map[string]*subscriber
	counter     uint64
	dropped     atomic.Uint64
}

func New() *Bus {
	return &Bus{
		subscribers: make(map[string]*subscriber),
	}
}

// Subscribe returns a channel receiving the events whose topic matches
// pattern, and a function that cancels the subscription and closes the
// channel.
func (bus *Bus) Subscribe(pattern string, bufferSize int) (<-chan Event, func()) {
	id := fmt.Sprintf("sub-%d", atomic.AddUint64(&bus.counter, 1))
	sub := &subscriber{
		id:      id,
		pattern: pattern,
		ch:      make(chan Event, bufferSize),
	}

	bus.mu.Lock()
	bus.subscribers[id] = sub
	bus.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			bus.mu.Lock()
			delete(bus.subscribers, id)
			bus.mu.Unlock()
			sub.close()
		})
	}
	return sub.ch, unsubscribe
}

// Publish sends an event to every matching subscriber and returns the
// number that received it. Slow subscribers lose the event.
func (bus *Bus) Publish(topic string, data any, timeout time.Duration) int {
	e := Event{Topic: topic, Data: data}
	bus.mu.RLock()
	defer bus.mu.RUnlock()
	delivered := 0
	for _, sub := range bus.subscribers {
		if !MatchTopic(sub.pattern, topic) {
			continue
		}
		if sub.send(e, timeout) {
			delivered++
		} else {
			bus.dropped.Add(1)
		}
	}
	return delivered
}

// Dropped is the number of deliveries lost to full or closed subscribers.
func (bus *Bus) Dropped() uint64 {
	return bus.dropped.Load()
}

func (bus *Bus) Len() int {
	bus.mu.RLock()
	defer bus.mu.RUnlock()
	return len(bus.subscribers)
}

// Shutdown closes every subscription.
func (bus *Bus) Shutdown() {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for _, sub := range bus.subscribers {
		sub.close()
	}
	bus.subscribers = make(map[string]*subscriber)
}

func MatchTopic(pattern, topic string) bool {
	if pattern == "" || topic == "" {
		return false
	}
	if pattern == "*" || pattern == topic {
		return true
	}
	patternParts := strings.Split(pattern, ".")
	topicParts := strings.Split(topic, ".")
	if len(patternParts) != len(topicParts) {
		return false
	}
	for i := range patternParts {
		if patternParts[i] != "*" && patternParts[i] != topicParts[i] {
			return false
		}
	}
	return true
}
