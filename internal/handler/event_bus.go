// internal/handler/event_bus.go
package handler

import (
	"context"
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"sik-configurator/internal/radio"
)

const subscriberBufferSize = 100

// EventBus fans radio events out to subscribers. It implements
// radio.EventSink and never blocks the radio session: events are dropped
// when the queue or a subscriber is full.
type EventBus struct {
	subscribers []*subscription
	events      chan radio.Event
	mutex       sync.RWMutex
	logger      *zap.Logger

	published atomic.Int64
	dropped   atomic.Int64
}

type subscription struct {
	types map[radio.EventType]bool
	ch    chan radio.Event
}

// EventBusStats represents event bus counters
type EventBusStats struct {
	Published   int64 `json:"published"`
	Dropped     int64 `json:"dropped"`
	Queued      int   `json:"queued"`
	Subscribers int   `json:"subscribers"`
}

// NewEventBus creates a new event bus holding up to bufferSize pending events
func NewEventBus(bufferSize int, logger *zap.Logger) *EventBus {
	if bufferSize <= 0 {
		bufferSize = 1000
	}
	return &EventBus{
		events: make(chan radio.Event, bufferSize),
		logger: logger.With(zap.String("component", "event_bus")),
	}
}

// Start distributes events until ctx is done, then closes every
// subscriber channel.
func (eb *EventBus) Start(ctx context.Context) {
	defer eb.closeSubscribers()

	for {
		select {
		case <-ctx.Done():
			return
		case event := <-eb.events:
			eb.distributeEvent(event)
		}
	}
}

// RadioEvent queues an event for distribution
func (eb *EventBus) RadioEvent(event radio.Event) {
	select {
	case eb.events <- event:
		eb.published.Inc()
	default:
		eb.dropped.Inc()
		eb.logger.Warn("Event bus full, dropping event",
			zap.String("event_type", string(event.Type)),
		)
	}
}

// Subscribe returns a channel receiving events of the given types, or of
// every type when none are given.
func (eb *EventBus) Subscribe(types ...radio.EventType) <-chan radio.Event {
	eb.mutex.Lock()
	defer eb.mutex.Unlock()

	sub := &subscription{
		types: make(map[radio.EventType]bool, len(types)),
		ch:    make(chan radio.Event, subscriberBufferSize),
	}
	for _, t := range types {
		sub.types[t] = true
	}
	eb.subscribers = append(eb.subscribers, sub)
	return sub.ch
}

// Stats returns event bus counters
func (eb *EventBus) Stats() EventBusStats {
	eb.mutex.RLock()
	defer eb.mutex.RUnlock()

	return EventBusStats{
		Published:   eb.published.Load(),
		Dropped:     eb.dropped.Load(),
		Queued:      len(eb.events),
		Subscribers: len(eb.subscribers),
	}
}

// distributeEvent distributes an event to subscribers
func (eb *EventBus) distributeEvent(event radio.Event) {
	eb.mutex.RLock()
	defer eb.mutex.RUnlock()

	for _, sub := range eb.subscribers {
		if len(sub.types) > 0 && !sub.types[event.Type] {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			// Subscriber is slow, skip
			eb.dropped.Inc()
		}
	}
}

func (eb *EventBus) closeSubscribers() {
	eb.mutex.Lock()
	defer eb.mutex.Unlock()

	for _, sub := range eb.subscribers {
		close(sub.ch)
	}
	eb.subscribers = nil
}
