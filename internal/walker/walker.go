// Package walker implements the recursive traversal of a target's object
// graph via format() accessor strings. It is the direct translation of
// formatic's AbstractInjectionWalker hierarchy (walkers/*.py): Python's
// dynamic __subclasses__() dispatch becomes the explicit Kind enum and
// Classify function in classify.go, and each walker subclass becomes one of
// the concrete types below, all satisfying the sealed Walker interface.
//
// Traversal is exposed as a pull-based Stream rather than goroutines and
// channels: exactly one send_injection call may be in flight at a time, in a
// fixed order, so there is nothing for concurrency to buy here and a
// channel-based fan-out would actively violate that ordering guarantee.
package walker

import "context"

// Walker is a node produced during traversal: a progress marker, a
// recovered leaf value, or a composite (class/function/module) that spawned
// further injections. isWalker is unexported so the set of concrete types is
// sealed to this package.
type Walker interface {
	isWalker()
	String() string
}

// Event is a single value pulled from a Stream.
type Event struct {
	Walker Walker
}

// Stream is a lazily-advanced sequence of Events, the Go analogue of a
// Python generator. Next performs whatever oracle call is needed to produce
// the next Event, or reports false once the stream is exhausted. A cancelled
// ctx causes Next to return false without sending further injections.
type Stream interface {
	Next(ctx context.Context) (Event, bool)
}

// emptyStream never yields anything.
type emptyStream struct{}

func (emptyStream) Next(context.Context) (Event, bool) { return Event{}, false }

// Empty returns a Stream with no events.
func Empty() Stream { return emptyStream{} }

// sliceStream yields a fixed, already-known sequence of events.
type sliceStream struct {
	events []Event
	pos    int
}

// FromEvents returns a Stream yielding exactly the given events, in order.
func FromEvents(events ...Event) Stream {
	return &sliceStream{events: events}
}

// Of wraps a single walker as a one-event Stream.
func Of(w Walker) Stream {
	return FromEvents(Event{Walker: w})
}

func (s *sliceStream) Next(ctx context.Context) (Event, bool) {
	if ctx.Err() != nil {
		return Event{}, false
	}
	if s.pos >= len(s.events) {
		return Event{}, false
	}
	ev := s.events[s.pos]
	s.pos++
	return ev, true
}

// thunk lazily produces the next Stream segment. It is only invoked once
// traversal actually reaches that point, which is what lets a "yield from
// next_walker.walk()" style continuation defer its oracle calls until the
// preceding segment is fully drained.
type thunk func(ctx context.Context) Stream

// chainStream runs a sequence of thunks one after another, flattening their
// produced streams into one, exactly like Python's "yield from" chaining.
type chainStream struct {
	pending []thunk
	cur     Stream
}

// Chain builds a Stream out of lazily-constructed segments. Each thunk is
// only called once every event from the previous segments has been pulled.
func Chain(thunks ...thunk) Stream {
	return &chainStream{pending: thunks}
}

func (s *chainStream) Next(ctx context.Context) (Event, bool) {
	for {
		if ctx.Err() != nil {
			return Event{}, false
		}
		if s.cur != nil {
			ev, ok := s.cur.Next(ctx)
			if ok {
				return ev, true
			}
			s.cur = nil
		}
		if len(s.pending) == 0 {
			return Event{}, false
		}
		next := s.pending[0]
		s.pending = s.pending[1:]
		s.cur = next(ctx)
	}
}

// Drain pulls every event out of a Stream into a slice. The engine uses this
// to build a report after traversal completes. The walk* thunks send all of
// their injections, nested walkers included, when invoked and return an
// already-filled Stream, so pulling one event at a time does not interleave
// output with oracle calls.
func Drain(ctx context.Context, s Stream) []Event {
	var out []Event
	for {
		ev, ok := s.Next(ctx)
		if !ok {
			return out
		}
		out = append(out, ev)
	}
}
