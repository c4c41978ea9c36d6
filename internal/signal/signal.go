// Package signal implements the signal bus: one per-subscriber,
// per-signal-kind buffered queue with Ready/NotReady flow control and FIFO
// delivery, modeled on a buffered outbound writer that holds bytes until
// the underlying connection reports it can accept more.
package signal

import (
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"
)

// Kind identifies a class of signal a client can subscribe to.
type Kind string

// Envelope wraps a signal payload with the wall-clock time it was
// published, using the well-known protobuf Timestamp type since this is
// exactly the shape the RPC wire format would carry it in.
type Envelope struct {
	Kind      Kind
	Payload   any
	Published *timestamppb.Timestamp
}

func newEnvelope(kind Kind, payload any) Envelope {
	return Envelope{Kind: kind, Payload: payload, Published: timestamppb.New(time.Now())}
}

// Subscriber is one client's buffered view of one signal Kind. It starts
// Ready; SetReady(false) models the client's outbound stream reporting
// backpressure, after which published signals accumulate in queue until
// SetReady(true) is called again, at which point Drain returns them in
// the exact order they were published.
type Subscriber struct {
	ID    int
	Kind  Kind
	ready bool
	queue []Envelope
}

// Enqueue buffers payload regardless of readiness; Drain decides whether
// it is actually handed back yet.
func (s *Subscriber) Enqueue(e Envelope) {
	s.queue = append(s.queue, e)
}

// SetReady updates the subscriber's flow-control state.
func (s *Subscriber) SetReady(ready bool) {
	s.ready = ready
}

// Ready reports the subscriber's current flow-control state.
func (s *Subscriber) Ready() bool { return s.ready }

// Drain returns and clears every buffered envelope, in FIFO order, if and
// only if the subscriber is currently Ready; otherwise it returns nil and
// leaves the queue untouched.
func (s *Subscriber) Drain() []Envelope {
	if !s.ready || len(s.queue) == 0 {
		return nil
	}
	out := s.queue
	s.queue = nil
	return out
}

// Pending reports how many envelopes are buffered, for diagnostics.
func (s *Subscriber) Pending() int { return len(s.queue) }

// Bus fans published signals out to every subscriber of their kind.
type Bus struct {
	subs map[Kind]map[int]*Subscriber
	next int
}

// NewBus returns an empty signal bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Kind]map[int]*Subscriber)}
}

// Subscribe registers a new subscriber for kind, starting Ready, and
// returns it so the caller can drive SetReady/Drain from its transport.
func (b *Bus) Subscribe(kind Kind) *Subscriber {
	b.next++
	sub := &Subscriber{ID: b.next, Kind: kind, ready: true}
	if b.subs[kind] == nil {
		b.subs[kind] = make(map[int]*Subscriber)
	}
	b.subs[kind][sub.ID] = sub
	return sub
}

// Disconnect removes a subscriber. Its queue is simply discarded — it can
// no longer observe signals published after this call.
func (b *Bus) Disconnect(kind Kind, id int) {
	delete(b.subs[kind], id)
}

// Publish enqueues payload for every current subscriber of kind.
func (b *Bus) Publish(kind Kind, payload any) {
	if len(b.subs[kind]) == 0 {
		return
	}
	e := newEnvelope(kind, payload)
	for _, sub := range b.subs[kind] {
		sub.Enqueue(e)
	}
}

// SubscriberIDs returns the IDs currently subscribed to kind, used by the
// unmapped-window gate to know which subscribers must each reply Finished
// before a new window maps.
func (b *Bus) SubscriberIDs(kind Kind) []int {
	ids := make([]int, 0, len(b.subs[kind]))
	for id := range b.subs[kind] {
		ids = append(ids, id)
	}
	return ids
}
