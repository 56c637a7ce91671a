package entangle

import "github.com/AnatoleLucet/entangle/internal"

// Store is a minimal ref-keyed reactive value store implementing the
// Graph and Node contracts. It is the node graph this package's own
// tests run against; any graph with equivalent semantics works.
type Store struct {
	store *internal.Store
}

func NewStore() *Store {
	return &Store{internal.NewStore()}
}

// Define registers a node under ref holding initial. Re-defining a ref
// returns the existing node untouched.
func (s *Store) Define(ref string, initial any) Node {
	return s.store.Define(ref, initial)
}

// Node resolves a ref. Store satisfies Graph.
func (s *Store) Node(ref string) (Node, bool) {
	n, ok := s.store.Node(ref)
	if !ok {
		return nil, false
	}

	return n, true
}

// Get reads a node's current value.
func (s *Store) Get(ref string) (any, bool) {
	n, ok := s.store.Node(ref)
	if !ok {
		return nil, false
	}

	return n.Get(), true
}

// Set writes a node's value, notifying watchers synchronously. It
// reports whether the ref exists.
func (s *Store) Set(ref string, v any) bool {
	n, ok := s.store.Node(ref)
	if !ok {
		return false
	}

	n.Set(v)
	return true
}

// Batch opens a coalescing window on the calling goroutine: link
// flushes requested inside fn run once when the outermost batch
// completes, carrying only the latest values.
func Batch(fn func()) {
	internal.GetRuntime().Batch(fn)
}
