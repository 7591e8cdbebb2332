// Package events defines the playback/playlist event vocabulary shared
// between the playback daemon and the UI, and a small generic bus to
// carry it (or a subsystem's own event type, such as the podcast
// package's) across a goroutine boundary.
package events

import "log"

// Bus is a multi-producer/single-consumer event queue. Sends never
// block: a full buffer or a closed receiver causes the event to be
// logged and dropped, which for a closed receiver doubles as the
// shutdown signal producers observe when they next attempt a send.
type Bus[T any] struct {
	ch chan T
}

// NewBus creates a bus with the given buffer size.
func NewBus[T any](buffer int) *Bus[T] {
	return &Bus[T]{ch: make(chan T, buffer)}
}

// Send enqueues e without blocking. If the buffer is full, or the bus
// has been closed, the event is dropped and logged.
func (b *Bus[T]) Send(e T) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("events: send on closed bus dropped %T", e)
		}
	}()
	select {
	case b.ch <- e:
	default:
		log.Printf("events: buffer full, dropping %T", e)
	}
}

// Events returns the receive side of the bus for the single consumer.
func (b *Bus[T]) Events() <-chan T {
	return b.ch
}

// Close shuts the bus down. Further sends are dropped rather than
// panicking the caller.
func (b *Bus[T]) Close() {
	close(b.ch)
}
