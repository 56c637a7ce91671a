package internal

import "time"

// Propagate runs one immediate directional step with a caller-supplied
// value, outside any coalescing window. Used by the facade's direct
// push operations. A push against a one-way link's direction is a no-op.
func (l *Link) Propagate(dir Direction, value any, src Source) {
	if !l.allows(dir) {
		return
	}

	l.propagate(dir, value, src, false)
}

// propagate performs one directional synchronization step: transform,
// before/set pipelines, equality suppression, guarded write, after
// pipeline. redirected marks a propagation spawned by a redirect hook;
// at most one redirect is honored per logical propagation.
func (l *Link) propagate(dir Direction, value any, src Source, redirected bool) {
	if l.paused || l.disposed || l.phase != PhaseIdle {
		return
	}

	from, to := l.ends(dir)
	info := Info{Source: src, Meta: l.meta}

	value = from.transform(value)

	res, value := l.runPipeline(to.before, value, to.node.Get(), info)
	switch res.kind {
	case outcomeSkip:
		return
	case outcomeRedirect:
		l.redirect(res, redirected)
		return
	}

	res, value = l.runPipeline(to.set, value, to.node.Get(), info)
	switch res.kind {
	case outcomeSkip:
		return
	case outcomeRedirect:
		l.redirect(res, redirected)
		return
	}

	// already holding this value: no write, no after hooks, no phase
	// transition
	if to.equals(value, to.node.Get()) {
		return
	}

	l.phase = pushPhase(dir)
	start := time.Now()

	defer func() {
		l.phase = PhaseIdle
		info.Elapsed = time.Since(start)
		l.runAfter(to.after, value, info)
	}()

	to.node.Set(value)
}

func (l *Link) redirect(res HookResult, redirected bool) {
	// a redirect spawned by a redirect is dropped to keep chains bounded
	if redirected {
		return
	}

	l.propagate(dirToward(res.side), res.value, SourcePropagation, true)
}

func (l *Link) ends(dir Direction) (from, to *Endpoint) {
	if dir == AToB {
		return &l.a, &l.b
	}
	return &l.b, &l.a
}

func pushPhase(dir Direction) Phase {
	if dir == AToB {
		return PhasePushAB
	}
	return PhasePushBA
}

// dirToward is the direction whose destination is the given side.
func dirToward(side Side) Direction {
	if side == SideA {
		return BToA
	}
	return AToB
}
