package entangle

import "github.com/AnatoleLucet/entangle/internal"

type (
	// Source tags where a propagated value originated: SourceLocal for
	// values pushed directly by the caller, SourcePropagation for
	// values flowing in from the other side.
	Source = internal.Source

	// Side names one endpoint of a link.
	Side = internal.Side

	// Info is handed to every hook invocation. It carries the source
	// tag, the link's Meta, and (for after hooks) the write duration.
	Info = internal.Info

	// HookResult is a hook's verdict on a propagation. The zero value
	// means "no opinion": keep the accumulated value and continue.
	HookResult = internal.HookResult

	// Direction selects which way a link propagates.
	Direction = internal.Direction
)

const (
	SourceLocal       = internal.SourceLocal
	SourcePropagation = internal.SourcePropagation

	SideA = internal.SideA
	SideB = internal.SideB

	Bidirectional = internal.Bidirectional
	AToB          = internal.AToB
	BToA          = internal.BToA
)

// Hook runs in a before or set pipeline with the incoming value and the
// destination's current value. Returning the zero HookResult keeps the
// accumulated value and continues the pipeline.
type Hook[T any] func(value, current T, info Info) HookResult

// AfterHook runs once the destination has been written (or the write
// failed); info.Elapsed covers the write.
type AfterHook[T any] func(value T, info Info)

// Hooks bundles one side's pipelines. Within each list, registration
// order is execution order.
type Hooks[T any] struct {
	Before []Hook[T]
	Set    []Hook[T]
	After  []AfterHook[T]
}

// Proceed continues the propagation with v in place of the accumulated
// value.
func Proceed[T any](v T) HookResult {
	return internal.ProceedWith(v)
}

// Skip aborts the current propagation silently: no write, no after
// hooks.
func Skip() HookResult {
	return internal.SkipResult()
}

// Redirect aborts the current propagation and instead pushes v toward
// the named side. v is taken as the opposite side's source value and
// runs through that direction's transform. At most one redirect is
// honored per propagation; a redirect issued from an already-redirected
// propagation is dropped.
func Redirect[T any](side Side, v T) HookResult {
	return internal.RedirectTo(side, v)
}
