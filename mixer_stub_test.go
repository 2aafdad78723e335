package soundpool

import (
	"io"
	"sync"
	"testing"

	"github.com/Baxi19/soundpool/mixer"
)

type playCall struct {
	soundID     int32
	left, right float32
	loop        int
	rate        float32
}

// fakeMixer records every call and lets tests fire load completions by hand.
type fakeMixer struct {
	opts   mixer.Options
	loaded chan int32

	mu             sync.Mutex
	listener       mixer.LoadCompleteFunc
	nextSound      int32
	nextStream     int32
	released       bool
	rejectLoads    bool
	completeInline bool
	paths       []string
	descriptors []int64
	plays       []playCall
	paused      []int32
	resumed     []int32
	stopped     []int32
	rates       map[int32]float32
	volumes     map[int32][2]float32
}

func newFakeMixer(opts mixer.Options) *fakeMixer {
	return &fakeMixer{
		opts:       opts,
		loaded:     make(chan int32, 16),
		nextStream: 1,
		rates:      make(map[int32]float32),
		volumes:    make(map[int32][2]float32),
	}
}

func (f *fakeMixer) SetLoadCompleteListener(fn mixer.LoadCompleteFunc) {
	f.mu.Lock()
	f.listener = fn
	f.mu.Unlock()
}

func (f *fakeMixer) LoadPath(path string, priority int) int32 {
	f.mu.Lock()
	f.paths = append(f.paths, path)
	f.mu.Unlock()
	return f.accept()
}

func (f *fakeMixer) LoadDescriptor(r io.ReaderAt, offset, length int64, priority int) int32 {
	f.mu.Lock()
	f.descriptors = append(f.descriptors, length)
	f.mu.Unlock()
	return f.accept()
}

func (f *fakeMixer) accept() int32 {
	f.mu.Lock()
	if f.released || f.rejectLoads {
		f.mu.Unlock()
		return -2
	}
	id := f.nextSound
	f.nextSound++
	inline := f.completeInline
	fn := f.listener
	f.mu.Unlock()
	if inline && fn != nil {
		// the notification beats the load call's return
		fn(id, 0)
	}
	f.loaded <- id
	return id
}

// complete fires the load listener the way the real mixer does, off the
// goroutine that submitted the load.
func (f *fakeMixer) complete(soundID, status int32) {
	f.mu.Lock()
	fn := f.listener
	f.mu.Unlock()
	if fn != nil {
		fn(soundID, status)
	}
}

func (f *fakeMixer) Play(soundID int32, left, right float32, loop int, rate float32) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.released {
		return 0
	}
	id := f.nextStream
	f.nextStream++
	f.plays = append(f.plays, playCall{soundID, left, right, loop, rate})
	return id
}

func (f *fakeMixer) Pause(streamID int32) {
	f.mu.Lock()
	f.paused = append(f.paused, streamID)
	f.mu.Unlock()
}

func (f *fakeMixer) Resume(streamID int32) {
	f.mu.Lock()
	f.resumed = append(f.resumed, streamID)
	f.mu.Unlock()
}

func (f *fakeMixer) Stop(streamID int32) {
	f.mu.Lock()
	f.stopped = append(f.stopped, streamID)
	f.mu.Unlock()
}

func (f *fakeMixer) SetVolume(streamID int32, left, right float32) {
	f.mu.Lock()
	f.volumes[streamID] = [2]float32{left, right}
	f.mu.Unlock()
}

func (f *fakeMixer) SetRate(streamID int32, rate float32) {
	f.mu.Lock()
	f.rates[streamID] = rate
	f.mu.Unlock()
}

func (f *fakeMixer) Release() {
	f.mu.Lock()
	f.released = true
	f.mu.Unlock()
}

func (f *fakeMixer) playCalls() []playCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]playCall, len(f.plays))
	copy(out, f.plays)
	return out
}

func (f *fakeMixer) isReleased() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.released
}

type fakeFactory struct {
	mu     sync.Mutex
	mixers []*fakeMixer
}

func (ff *fakeFactory) build(opts mixer.Options) mixer.Mixer {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	m := newFakeMixer(opts)
	ff.mixers = append(ff.mixers, m)
	return m
}

func (ff *fakeFactory) latest() *fakeMixer {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	return ff.mixers[len(ff.mixers)-1]
}

func (ff *fakeFactory) count() int {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	return len(ff.mixers)
}

func newTestRegistry(t *testing.T) (*Registry, *fakeFactory) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.TempDir = t.TempDir()
	ff := &fakeFactory{}
	r := NewRegistry(cfg)
	r.buildMixer = ff.build
	t.Cleanup(r.TeardownAll)
	return r, ff
}

func newTestPool(t *testing.T, r *Registry, ff *fakeFactory, maxStreams int) (*Pool, *fakeMixer) {
	t.Helper()
	handle := r.CreatePool(StreamTypeMusic, maxStreams)
	if handle < 0 {
		t.Fatalf("pool creation rejected")
	}
	p, err := r.Pool(handle)
	if err != nil {
		t.Fatalf("error addressing pool [%d] (%v)", handle, err)
	}
	return p, ff.latest()
}
