package shaper

// span is a run ending at byte offset end.
type span[T any] struct {
	end   int
	value T
}

// spanIterator walks precomputed runs.
type spanIterator[T any] struct {
	spans []span[T]
	cur   int
}

func newSpanIterator[T any](spans []span[T]) spanIterator[T] {
	return spanIterator[T]{spans: spans, cur: -1}
}

func (s *spanIterator[T]) Consume() {
	if s.AtEnd() {
		panic(ErrIteratorExhausted)
	}
	s.cur++
}

func (s *spanIterator[T]) EndOfCurrentRun() int {
	if s.cur < 0 {
		return 0
	}
	return s.spans[s.cur].end
}

func (s *spanIterator[T]) AtEnd() bool { return s.cur+1 >= len(s.spans) }

func (s *spanIterator[T]) current() T {
	if s.cur < 0 {
		var zero T
		return zero
	}
	return s.spans[s.cur].value
}
