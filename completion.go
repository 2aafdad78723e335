package soundpool

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// completionLoop marshals every asynchronous result onto one goroutine, so
// callers observe a single-threaded view of completions no matter which
// internal worker produced them. Blocking work never runs here.
type completionLoop struct {
	tasks chan func()
	done  chan struct{}
	once  sync.Once
}

func newCompletionLoop() *completionLoop {
	cl := &completionLoop{
		tasks: make(chan func(), 64),
		done:  make(chan struct{}),
	}
	go cl.run()
	return cl
}

func (cl *completionLoop) run() {
	for {
		select {
		case fn := <-cl.tasks:
			fn()
		case <-cl.done:
			return
		}
	}
}

// post schedules fn for delivery. Posts after stop are dropped.
func (cl *completionLoop) post(fn func()) {
	if fn == nil {
		return
	}
	select {
	case cl.tasks <- fn:
	case <-cl.done:
		logrus.Debugf("completion dropped after teardown")
	}
}

func (cl *completionLoop) stop() {
	cl.once.Do(func() { close(cl.done) })
}
