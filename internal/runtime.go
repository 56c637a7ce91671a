package internal

// Runtime ties a goroutine's links to one scheduler and batcher. All
// coordination is cooperative: flushes run synchronously at the end of
// the mutation (or batch) that requested them.
type Runtime struct {
	scheduler *Scheduler
	batcher   *Batcher
}

func NewRuntime() *Runtime {
	return &Runtime{
		scheduler: NewScheduler(),
		batcher:   NewBatcher(),
	}
}

// Schedule enqueues a link for flushing and drains immediately unless a
// batch is open or a drain is already running.
func (r *Runtime) Schedule(l *Link) {
	r.scheduler.Enqueue(l)

	if !r.batcher.IsBatching() {
		r.scheduler.Drain()
	}
}

// Batch runs fn inside a coalescing window, flushing once when the
// outermost batch completes.
func (r *Runtime) Batch(fn func()) {
	r.batcher.Batch(fn, r.scheduler.Drain)
}
