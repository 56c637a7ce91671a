package internal

import "slices"

// Store is a ref-keyed reactive value store: the reference node graph
// behind the public Graph/Node contracts.
type Store struct {
	nodes map[string]*StoreNode
}

func NewStore() *Store {
	return &Store{nodes: make(map[string]*StoreNode)}
}

// Define registers a node under ref with an initial value. Defining an
// existing ref returns the existing node untouched.
func (s *Store) Define(ref string, initial any) *StoreNode {
	if n, ok := s.nodes[ref]; ok {
		return n
	}

	n := &StoreNode{value: initial}
	s.nodes[ref] = n
	return n
}

func (s *Store) Node(ref string) (*StoreNode, bool) {
	n, ok := s.nodes[ref]
	return n, ok
}

type StoreNode struct {
	value    any
	watchers []*watcher
}

type watcher struct {
	fn func()
}

func (n *StoreNode) Get() any { return n.value }

// Set assigns the value and synchronously notifies every watcher that
// was registered when the notification started.
func (n *StoreNode) Set(v any) {
	n.value = v

	// clonning to avoid mutation during iteration
	for _, w := range slices.Clone(n.watchers) {
		w.fn()
	}
}

// Watch subscribes fn to every write. The returned stop function
// removes the subscription; calling it more than once is a no-op.
func (n *StoreNode) Watch(fn func()) (stop func()) {
	w := &watcher{fn: fn}
	n.watchers = append(n.watchers, w)

	return func() {
		if i := slices.Index(n.watchers, w); i >= 0 {
			n.watchers = slices.Delete(n.watchers, i, i+1)
		}
	}
}
