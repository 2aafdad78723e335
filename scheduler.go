package soundpool

import "sync"

// scheduler is the bounded per-pool control domain. Worker count is fixed at
// creation and never grows. Shutdown drops queued tasks; in-flight tasks run
// to completion.
type scheduler struct {
	tasks chan func()
	done  chan struct{}
	once  sync.Once
}

func newScheduler(workers int) *scheduler {
	if workers < 1 {
		workers = 1
	}
	s := &scheduler{
		tasks: make(chan func(), 256),
		done:  make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		go s.worker()
	}
	return s
}

func (s *scheduler) worker() {
	for {
		select {
		case <-s.done:
			return
		default:
		}
		select {
		case <-s.done:
			return
		case fn := <-s.tasks:
			// the select above picks at random when both channels are
			// ready; a task dequeued alongside shutdown is still dropped
			select {
			case <-s.done:
				return
			default:
			}
			fn()
		}
	}
}

// submit queues fn on the pool's control domain. It reports false once the
// scheduler has shut down.
func (s *scheduler) submit(fn func()) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.tasks <- fn:
		return true
	case <-s.done:
		return false
	}
}

func (s *scheduler) shutdown() {
	s.once.Do(func() { close(s.done) })
}
