package internal

// Batcher tracks nested coalescing windows. While a batch is open,
// scheduled flushes are held until the outermost batch completes.
type Batcher struct {
	// each nested batch increases the depth by 1
	depth int
}

func NewBatcher() *Batcher {
	return &Batcher{}
}

func (b *Batcher) IsBatching() bool {
	return b.depth > 0
}

func (b *Batcher) Batch(fn, onComplete func()) {
	b.depth++
	defer func() {
		b.depth--
		if b.depth == 0 && onComplete != nil {
			onComplete()
		}
	}()

	fn()
}
