package internal

import "time"

// Source tags where a propagated value originated.
type Source int

const (
	// SourceLocal marks a value pushed directly by the caller.
	SourceLocal Source = iota
	// SourcePropagation marks a value flowing in from the other side.
	SourcePropagation
)

// Side names one endpoint of a link.
type Side int

const (
	SideA Side = iota
	SideB
)

// Info is handed to every hook invocation.
type Info struct {
	Source Source
	Meta   any

	// Elapsed is only set for after hooks: time spent writing the
	// destination node.
	Elapsed time.Duration
}

type outcome int

const (
	outcomeNone outcome = iota
	outcomeProceed
	outcomeSkip
	outcomeRedirect
)

// HookResult is a hook's verdict on a propagation. The zero value means
// "no opinion": keep the accumulated value and continue the pipeline.
type HookResult struct {
	kind  outcome
	value any
	side  Side
}

func ProceedWith(v any) HookResult { return HookResult{kind: outcomeProceed, value: v} }

func SkipResult() HookResult { return HookResult{kind: outcomeSkip} }

func RedirectTo(side Side, v any) HookResult {
	return HookResult{kind: outcomeRedirect, value: v, side: side}
}

type HookFunc func(value, current any, info Info) HookResult

type AfterFunc func(value any, info Info)

// runPipeline threads value through hooks in registration order. The
// first skip or redirect short-circuits and is returned; proceed
// replaces the running value; no opinion keeps it.
func (l *Link) runPipeline(hooks []HookFunc, value, current any, info Info) (HookResult, any) {
	for _, hook := range hooks {
		res := l.callHook(hook, value, current, info)

		switch res.kind {
		case outcomeProceed:
			value = res.value
		case outcomeSkip, outcomeRedirect:
			return res, value
		}
	}

	return HookResult{}, value
}

func (l *Link) callHook(hook HookFunc, value, current any, info Info) (res HookResult) {
	if !l.rethrow {
		defer func() {
			if r := recover(); r != nil {
				res = HookResult{} // a failed hook has no opinion
			}
		}()
	}

	return hook(value, current, info)
}

func (l *Link) runAfter(hooks []AfterFunc, value any, info Info) {
	for _, hook := range hooks {
		l.callAfter(hook, value, info)
	}
}

func (l *Link) callAfter(hook AfterFunc, value any, info Info) {
	if !l.rethrow {
		defer func() { _ = recover() }()
	}

	hook(value, info)
}
