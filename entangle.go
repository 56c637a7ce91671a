// Package entangle keeps two independently-owned reactive values
// consistent: changes on either side flow to the other through per-side
// transforms and hook pipelines, with equality-based write suppression,
// loop prevention, and coalesced flushes. A link and the nodes it binds
// belong to the goroutine that created them; scheduling is cooperative.
//
// Reconciliation (at creation and resume) reads both nodes live and
// syncs a to b before b to a, so when both sides changed while a link
// was paused, a's value wins.
package entangle

import (
	"errors"
	"fmt"

	"github.com/AnatoleLucet/entangle/internal"
)

// ErrNodeNotFound is returned when a node reference cannot be resolved
// at construction time.
var ErrNodeNotFound = errors.New("entangle: node not found")

// Node is an addressable reactive value: read, write with synchronous
// notification, and change subscription.
type Node interface {
	Get() any
	Set(v any)
	Watch(fn func()) (stop func())
}

// Graph resolves node references. Store satisfies it; so does any
// external node graph with equivalent semantics.
type Graph interface {
	Node(ref string) (Node, bool)
}

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

// Options configures an entanglement. The zero value is a bidirectional
// link with pass-through transforms, == equality, initial
// reconciliation enabled, and hook panics swallowed.
type Options[A, B any] struct {
	// Direction restricts propagation to one way; Bidirectional is the
	// default.
	Direction Direction

	// SkipInitialSync disables the reconciliation staged at creation
	// and on Resume.
	SkipInitialSync bool

	// RethrowHookErrors lets a hook panic unwind to whoever triggered
	// the propagation instead of being swallowed.
	RethrowHookErrors bool

	// MapAToB and MapBToA transform one side's value into the other's.
	// nil passes the value through unchanged.
	MapAToB func(A) B
	MapBToA func(B) A

	// EqualsA and EqualsB decide write suppression per side. nil
	// compares with ==; value types that aren't comparable need an
	// explicit predicate.
	EqualsA func(A, A) bool
	EqualsB func(B, B) bool

	// A and B are the destination-side hook pipelines: A's hooks run
	// when a propagation writes node A, B's when it writes node B.
	A Hooks[A]
	B Hooks[B]

	// Meta is passed opaquely to every hook invocation.
	Meta any
}

// Link is a live entanglement between two nodes.
type Link[A, B any] struct {
	link *internal.Link
}

// Entangle resolves both refs in g and entangles them. It fails when
// either ref cannot be resolved.
func Entangle[A, B any](g Graph, refA, refB string, opts Options[A, B]) (*Link[A, B], error) {
	a, ok := g.Node(refA)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, refA)
	}

	b, ok := g.Node(refB)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, refB)
	}

	return EntangleNodes(a, b, opts)
}

// EntangleNodes entangles two already-resolved nodes. Unless disabled,
// one reconciliation is staged immediately, so both sides agree before
// the constructor returns.
func EntangleNodes[A, B any](a, b Node, opts Options[A, B]) (*Link[A, B], error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: nil node", ErrNodeNotFound)
	}

	if opts.Direction < Bidirectional || opts.Direction > BToA {
		return nil, fmt.Errorf("entangle: invalid direction %d", opts.Direction)
	}

	link := internal.NewLink(internal.Config{
		Direction:       opts.Direction,
		SkipInitialSync: opts.SkipInitialSync,
		Rethrow:         opts.RethrowHookErrors,
		Meta:            opts.Meta,
		A: internal.EndpointConfig{
			Node:      a,
			Transform: wrapTransform(opts.MapAToB),
			Equals:    wrapEquals(opts.EqualsA),
			Before:    wrapHooks(opts.A.Before),
			Set:       wrapHooks(opts.A.Set),
			After:     wrapAfter(opts.A.After),
		},
		B: internal.EndpointConfig{
			Node:      b,
			Transform: wrapTransform(opts.MapBToA),
			Equals:    wrapEquals(opts.EqualsB),
			Before:    wrapHooks(opts.B.Before),
			Set:       wrapHooks(opts.B.Set),
			After:     wrapAfter(opts.B.After),
		},
	})

	return &Link[A, B]{link}, nil
}

// Pause suspends propagation and drops anything already staged.
func (l *Link[A, B]) Pause() { l.link.Pause() }

// Resume lifts a pause. Unless initial sync is disabled, both sides are
// reconciled from their live values; nothing staged before the pause is
// replayed.
func (l *Link[A, B]) Resume() { l.link.Resume() }

// Dispose tears the link down permanently. Further external mutation
// never propagates; hook registration stays harmless but inert.
func (l *Link[A, B]) Dispose() { l.link.Dispose() }

func (l *Link[A, B]) IsPaused() bool { return l.link.IsPaused() }

// OnA appends hooks to side A's pipelines, after any registered at
// construction. Only future propagations are affected.
func (l *Link[A, B]) OnA(hooks Hooks[A]) {
	l.link.Register(internal.SideA, wrapHooks(hooks.Before), wrapHooks(hooks.Set), wrapAfter(hooks.After))
}

// OnB appends hooks to side B's pipelines.
func (l *Link[A, B]) OnB(hooks Hooks[B]) {
	l.link.Register(internal.SideB, wrapHooks(hooks.Before), wrapHooks(hooks.Set), wrapAfter(hooks.After))
}

// PushA propagates v toward B as if it were A's current value,
// immediately and outside any coalescing window. Destination hooks
// observe SourceLocal. Node A itself is not written.
func (l *Link[A, B]) PushA(v A) {
	l.link.Propagate(internal.AToB, v, internal.SourceLocal)
}

// PushB propagates v toward A as if it were B's current value.
func (l *Link[A, B]) PushB(v B) {
	l.link.Propagate(internal.BToA, v, internal.SourceLocal)
}

func wrapTransform[From, To any](fn func(From) To) func(any) any {
	if fn == nil {
		return nil
	}

	return func(v any) any { return fn(as[From](v)) }
}

func wrapEquals[T any](fn func(T, T) bool) func(any, any) bool {
	if fn == nil {
		return nil
	}

	return func(a, b any) bool { return fn(as[T](a), as[T](b)) }
}

func wrapHooks[T any](hooks []Hook[T]) []internal.HookFunc {
	out := make([]internal.HookFunc, 0, len(hooks))
	for _, hook := range hooks {
		hook := hook
		out = append(out, func(value, current any, info Info) HookResult {
			return hook(as[T](value), as[T](current), info)
		})
	}

	return out
}

func wrapAfter[T any](hooks []AfterHook[T]) []internal.AfterFunc {
	out := make([]internal.AfterFunc, 0, len(hooks))
	for _, hook := range hooks {
		hook := hook
		out = append(out, func(value any, info Info) {
			hook(as[T](value), info)
		})
	}

	return out
}
