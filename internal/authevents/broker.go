package authevents

import (
	"context"
	"sync"
)

// Handler receives auth events.
type Handler func(ctx context.Context, e Event) error

// Broker fans events out to in-process subscribers in subscription order.
type Broker struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]Handler
	order    []int
}

func NewBroker() *Broker {
	return &Broker{handlers: make(map[int]Handler)}
}

// Subscribe registers h and returns a function that removes it.
func (b *Broker) Subscribe(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[id] = h
	b.order = append(b.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.handlers, id)
			for i, v := range b.order {
				if v == id {
					b.order = append(b.order[:i], b.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Publish delivers e to every subscriber and returns the first error.
// All subscribers are called even if one fails.
func (b *Broker) Publish(ctx context.Context, e Event) error {
	b.mu.Lock()
	hs := make([]Handler, 0, len(b.order))
	for _, id := range b.order {
		hs = append(hs, b.handlers[id])
	}
	b.mu.Unlock()

	var first error
	for _, h := range hs {
		if err := h(ctx, e); err != nil && first == nil {
			first = err
		}
	}
	return first
}
