package server

import (
	"encoding/json"
	"sync"
)

// StateEvent tells a session's SSE subscribers that the game state moved to
// a new version; they re-fetch the state rather than receive it inline.
type StateEvent struct {
	Type    string `json:"type"`
	Version uint64 `json:"version"`
}

// Broker is an in-process pub/sub for SSE events, keyed by session token.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded events for the
// given session.
func (b *Broker) Subscribe(token string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[token] == nil {
		b.subs[token] = make(map[chan []byte]struct{})
	}
	b.subs[token][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the session's subscribers.
func (b *Broker) Unsubscribe(token string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[token], ch)
	if len(b.subs[token]) == 0 {
		delete(b.subs, token)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of the given session.
func (b *Broker) Publish(token string, event StateEvent) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs[token] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}
