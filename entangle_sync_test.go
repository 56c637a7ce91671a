package entangle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSync(t *testing.T) {
	t.Run("one external write lands exactly one write on the other side", func(t *testing.T) {
		store := NewStore()
		aLog, bLog := []any{}, []any{}
		a := &recordingNode{store.Define("a", 0), &aLog}
		b := &recordingNode{store.Define("b", 0), &bLog}

		link, err := EntangleNodes(a, b, Options[int, int]{SkipInitialSync: true})
		assert.NoError(t, err)
		defer link.Dispose()

		a.Set(5)

		assert.Equal(t, []any{5}, aLog)
		assert.Equal(t, []any{5}, bLog)
	})

	t.Run("equal values suppress the write and after hooks", func(t *testing.T) {
		store := NewStore()
		log := []string{}
		bLog := []any{}
		a := store.Define("a", 5)
		b := &recordingNode{store.Define("b", 5), &bLog}

		link, err := EntangleNodes(a, b, Options[int, int]{
			SkipInitialSync: true,
			B: Hooks[int]{
				Before: []Hook[int]{func(v, cur int, info Info) HookResult {
					log = append(log, "before")
					return HookResult{}
				}},
				Set: []Hook[int]{func(v, cur int, info Info) HookResult {
					log = append(log, "set")
					return HookResult{}
				}},
				After: []AfterHook[int]{func(v int, info Info) {
					log = append(log, "after")
				}},
			},
		})
		assert.NoError(t, err)
		defer link.Dispose()

		a.Set(5)

		assert.Equal(t, []string{"before", "set"}, log)
		assert.Equal(t, []any{}, bLog)
	})

	t.Run("transforms apply per direction", func(t *testing.T) {
		store := NewStore()
		store.Define("a", 0)
		store.Define("b", 0)

		link, err := Entangle(store, "a", "b", Options[int, int]{
			MapAToB: func(v int) int { return v * 2 },
			MapBToA: func(v int) int { return v / 2 },
		})
		assert.NoError(t, err)
		defer link.Dispose()

		store.Set("a", 3)
		b, _ := store.Get("b")
		assert.Equal(t, 6, b)

		store.Set("b", 10)
		a, _ := store.Get("a")
		assert.Equal(t, 5, a)
	})

	t.Run("custom equality widens write suppression", func(t *testing.T) {
		store := NewStore()
		bLog := []any{}
		a := store.Define("a", "hello")
		b := &recordingNode{store.Define("b", "HELLO"), &bLog}

		link, err := EntangleNodes(a, b, Options[string, string]{
			SkipInitialSync: true,
			EqualsB: func(x, y string) bool {
				return len(x) == len(y)
			},
		})
		assert.NoError(t, err)
		defer link.Dispose()

		a.Set("howdy") // same length, suppressed
		assert.Equal(t, []any{}, bLog)

		a.Set("hi")
		assert.Equal(t, []any{"hi"}, bLog)
	})

	t.Run("one-way links ignore the reverse direction", func(t *testing.T) {
		store := NewStore()
		store.Define("a", 0)
		store.Define("b", 0)

		link, err := Entangle(store, "a", "b", Options[int, int]{Direction: AToB})
		assert.NoError(t, err)
		defer link.Dispose()

		store.Set("b", 9)
		a, _ := store.Get("a")
		assert.Equal(t, 0, a)

		store.Set("a", 4)
		b, _ := store.Get("b")
		assert.Equal(t, 4, b)
	})

	t.Run("push propagates immediately with a local source", func(t *testing.T) {
		store := NewStore()
		sources := []Source{}
		store.Define("a", 1)
		store.Define("b", 0)

		link, err := Entangle(store, "a", "b", Options[int, int]{
			SkipInitialSync: true,
			B: Hooks[int]{
				Before: []Hook[int]{func(v, cur int, info Info) HookResult {
					sources = append(sources, info.Source)
					return HookResult{}
				}},
			},
		})
		assert.NoError(t, err)
		defer link.Dispose()

		link.PushA(7)

		a, _ := store.Get("a")
		b, _ := store.Get("b")
		assert.Equal(t, 1, a) // the source node itself is untouched
		assert.Equal(t, 7, b)
		assert.Equal(t, []Source{SourceLocal}, sources)
	})

	t.Run("pushes against a one-way direction are dropped", func(t *testing.T) {
		store := NewStore()
		store.Define("a", 0)
		store.Define("b", 0)

		link, err := Entangle(store, "a", "b", Options[int, int]{
			Direction:       BToA,
			SkipInitialSync: true,
		})
		assert.NoError(t, err)
		defer link.Dispose()

		link.PushA(7)
		b, _ := store.Get("b")
		assert.Equal(t, 0, b)

		link.PushB(7)
		a, _ := store.Get("a")
		assert.Equal(t, 7, a)
	})

	t.Run("reentrant pushes during a write are dropped", func(t *testing.T) {
		store := NewStore()
		var link *Link[int, int]

		a := store.Define("a", 0)
		b := &pushyNode{store.Define("b", 0), func() { link.PushB(99) }}

		link, err := EntangleNodes(a, b, Options[int, int]{SkipInitialSync: true})
		assert.NoError(t, err)
		defer link.Dispose()

		a.Set(5)

		av, bv := a.Get(), b.Get()
		assert.Equal(t, 5, av)
		assert.Equal(t, 5, bv)
	})
}

// pushyNode tries to push through its link on every write.
type pushyNode struct {
	Node
	push func()
}

func (n *pushyNode) Set(v any) {
	n.Node.Set(v)
	n.push()
}
