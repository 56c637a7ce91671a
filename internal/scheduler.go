package internal

// Scheduler owns the deferred flush queue. Links enqueue themselves at
// most once per burst; Drain runs flushes until the queue settles and
// refuses to re-enter itself.
type Scheduler struct {
	queue   []*Link
	running bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) Enqueue(l *Link) {
	s.queue = append(s.queue, l)
}

func (s *Scheduler) Drain() {
	if s.running {
		return
	}

	s.running = true
	defer func() { s.running = false }()

	for len(s.queue) > 0 {
		l := s.queue[0]
		s.queue = s.queue[1:]

		l.Flush()
	}
}
