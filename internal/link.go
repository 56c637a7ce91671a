package internal

// Endpoint is one side of a link: its node, its transform toward the
// other side, its write-suppression predicate, and its hook pipelines.
type Endpoint struct {
	node      Node
	transform func(any) any
	equals    func(any, any) bool

	before []HookFunc
	set    []HookFunc
	after  []AfterFunc
}

type EndpointConfig struct {
	Node      Node
	Transform func(any) any       // nil = pass-through
	Equals    func(any, any) bool // nil = ==
	Before    []HookFunc
	Set       []HookFunc
	After     []AfterFunc
}

type Config struct {
	A, B            EndpointConfig
	Direction       Direction
	SkipInitialSync bool
	Rethrow         bool
	Meta            any
}

// Link keeps two nodes entangled. All state is confined to the
// goroutine that created the link; coordination is cooperative.
type Link struct {
	runtime *Runtime

	a, b      Endpoint
	direction Direction
	meta      any
	rethrow   bool
	initSync  bool

	phase    Phase
	paused   bool
	disposed bool

	// dirty flags per direction; the value itself is re-read from the
	// node at flush time, a staged copy can go stale mid-flush
	pendingA bool
	pendingB bool

	// guards against requesting more than one deferred flush per burst
	scheduled bool

	unwatchA func()
	unwatchB func()
}

func NewLink(cfg Config) *Link {
	l := &Link{
		runtime:   GetRuntime(),
		a:         newEndpoint(cfg.A),
		b:         newEndpoint(cfg.B),
		direction: cfg.Direction,
		meta:      cfg.Meta,
		rethrow:   cfg.Rethrow,
		initSync:  !cfg.SkipInitialSync,
	}

	l.unwatchA = l.a.node.Watch(l.adapter(AToB, &l.pendingA))
	l.unwatchB = l.b.node.Watch(l.adapter(BToA, &l.pendingB))

	if l.initSync {
		l.stageBoth()
	}

	return l
}

func newEndpoint(cfg EndpointConfig) Endpoint {
	transform := cfg.Transform
	if transform == nil {
		transform = func(v any) any { return v }
	}

	equals := cfg.Equals
	if equals == nil {
		equals = isEqual
	}

	return Endpoint{
		node:      cfg.Node,
		transform: transform,
		equals:    equals,
		before:    cfg.Before,
		set:       cfg.Set,
		after:     cfg.After,
	}
}

// adapter builds the watch callback for one direction. It ignores the
// engine's own writes (phase check), observes but never stages while
// paused, and carries no value: the flush re-reads the node at use
// time rather than trusting anything captured at notification time.
func (l *Link) adapter(dir Direction, pending *bool) func() {
	return func() {
		if l.disposed {
			return
		}
		if l.phase == selfPhase(dir) {
			return
		}
		if l.paused {
			return
		}
		if !l.allows(dir) {
			return
		}

		*pending = true
		l.requestFlush()
	}
}

// selfPhase is the phase during which a notification for dir's source
// node was caused by the engine's own reverse write.
func selfPhase(dir Direction) Phase {
	if dir == AToB {
		return PhasePushBA
	}
	return PhasePushAB
}

func (l *Link) allows(dir Direction) bool {
	return l.direction == Bidirectional || l.direction == dir
}

func (l *Link) requestFlush() {
	if l.scheduled {
		return
	}

	l.scheduled = true
	l.runtime.Schedule(l)
}

func (l *Link) stageBoth() {
	l.pendingA = true
	l.pendingB = true
	l.requestFlush()
}

// Flush consumes both pending slots, A before B. The order is the fixed
// tie-break for when both directions are pending at once.
func (l *Link) Flush() {
	l.scheduled = false

	if l.paused || l.disposed {
		l.pendingA = false
		l.pendingB = false
		return
	}

	if l.pendingA {
		l.pendingA = false
		if l.allows(AToB) {
			l.propagate(AToB, l.a.node.Get(), SourcePropagation, false)
		}
	}

	if l.pendingB {
		l.pendingB = false
		if l.allows(BToA) {
			l.propagate(BToA, l.b.node.Get(), SourcePropagation, false)
		}
	}
}

// Pause suspends propagation. Anything already staged is dropped, not
// queued.
func (l *Link) Pause() {
	if l.disposed {
		return
	}

	l.paused = true
	l.pendingA = false
	l.pendingB = false
}

// Resume lifts a pause. With initial sync enabled both directions are
// re-staged from the nodes' live values, so resume reconciles current
// state instead of replaying anything pre-pause.
func (l *Link) Resume() {
	if l.disposed || !l.paused {
		return
	}

	l.paused = false

	if l.initSync {
		l.stageBoth()
	}
}

func (l *Link) IsPaused() bool { return l.paused }

// Dispose is terminal: both subscriptions are dropped and every future
// propagation attempt becomes a no-op.
func (l *Link) Dispose() {
	if l.disposed {
		return
	}

	l.Pause()
	l.disposed = true

	l.unwatchA()
	l.unwatchB()
}

// Register appends hooks to one side's pipelines. Mutations only affect
// future propagations; after dispose they are accepted but inert.
func (l *Link) Register(side Side, before, set []HookFunc, after []AfterFunc) {
	e := l.endpoint(side)
	e.before = append(e.before, before...)
	e.set = append(e.set, set...)
	e.after = append(e.after, after...)
}

func (l *Link) endpoint(side Side) *Endpoint {
	if side == SideA {
		return &l.a
	}
	return &l.b
}
