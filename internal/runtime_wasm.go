//go:build wasm

package internal

import "sync"

// single-threaded target: one shared runtime instead of a per-goroutine
// registry
var globalRuntime = sync.OnceValue(NewRuntime)

func GetRuntime() *Runtime {
	return globalRuntime()
}
