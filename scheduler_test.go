package soundpool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerBoundsConcurrency(t *testing.T) {
	s := newScheduler(2)
	defer s.shutdown()

	var running, peak int32
	gate := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		ok := s.submit(func() {
			defer wg.Done()
			cur := atomic.AddInt32(&running, 1)
			for {
				old := atomic.LoadInt32(&peak)
				if cur <= old || atomic.CompareAndSwapInt32(&peak, old, cur) {
					break
				}
			}
			<-gate
			atomic.AddInt32(&running, -1)
		})
		assert.True(t, ok)
	}

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(2), atomic.LoadInt32(&running))

	close(gate)
	wg.Wait()
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestSchedulerMinimumOneWorker(t *testing.T) {
	s := newScheduler(0)
	defer s.shutdown()

	done := make(chan struct{})
	assert.True(t, s.submit(func() { close(done) }))
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("task never ran")
	}
}

func TestSchedulerShutdownDropsQueued(t *testing.T) {
	s := newScheduler(1)

	gate := make(chan struct{})
	started := make(chan struct{})
	inFlight := make(chan struct{})
	s.submit(func() {
		close(started)
		<-gate
		close(inFlight)
	})
	<-started

	var ran int32
	s.submit(func() { atomic.AddInt32(&ran, 1) })

	s.shutdown()
	close(gate)

	// the in-flight task runs to completion, the queued one is dropped
	select {
	case <-inFlight:
	case <-time.After(2 * time.Second):
		t.Fatalf("in-flight task did not finish")
	}
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&ran))

	assert.False(t, s.submit(func() {}))
}

func TestSchedulerDropsTasksQueuedAtShutdown(t *testing.T) {
	for i := 0; i < 50; i++ {
		s := newScheduler(4)
		time.Sleep(time.Millisecond)
		s.shutdown()

		// tasks racing the closed done channel into idle workers
		var ran int32
		for j := 0; j < 8; j++ {
			s.tasks <- func() { atomic.AddInt32(&ran, 1) }
		}
		time.Sleep(time.Millisecond)
		assert.Equal(t, int32(0), atomic.LoadInt32(&ran), "iteration %d", i)
	}
}
