package mixer

import (
	"io"
	"os"
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	"github.com/sirupsen/logrus"
)

// StatusDecodeFailed is reported through the load-complete listener when a
// clip could not be decoded.
const StatusDecodeFailed int32 = 1

// Options configures a new Engine.
type Options struct {
	// MaxStreams bounds the number of concurrently playing streams. When the
	// bound is reached, the oldest stream is evicted. Clamped to >= 1.
	MaxStreams int

	// SampleRate of the mix output. Defaults to 44100.
	SampleRate int

	// Sink consumes the mixed output. Defaults to the null sink.
	Sink Sink
}

type loadResult struct {
	soundID int32
	status  int32
}

// Engine is an in-process Mixer. Sounds are decoded off the caller's
// goroutine into interleaved stereo float32 at the engine sample rate; live
// streams are mixed additively into the sink's pull buffer.
type Engine struct {
	opts Options
	sink Sink

	mu       sync.Mutex
	sounds   map[int32][]float32
	loading  map[int32]struct{}
	streams  *treemap.Map // stream id -> *stream, ordered so Min() is the oldest
	released bool

	// notifyMu is held across every listener invocation, so detaching the
	// listener (or Release) blocks until an in-flight delivery has finished
	notifyMu sync.Mutex
	listener LoadCompleteFunc

	soundSeq *sequence
	strmSeq  *sequence
	notify   chan loadResult
	done     chan struct{}
}

var _ Mixer = (*Engine)(nil)

// New creates and starts an Engine.
func New(opts Options) *Engine {
	if opts.MaxStreams < 1 {
		opts.MaxStreams = 1
	}
	if opts.SampleRate <= 0 {
		opts.SampleRate = 44100
	}
	sink := opts.Sink
	if sink == nil {
		sink = NewNullSink()
	}
	e := &Engine{
		opts:     opts,
		sink:     sink,
		sounds:   make(map[int32][]float32),
		loading:  make(map[int32]struct{}),
		streams:  treemap.NewWith(utils.Int32Comparator),
		soundSeq: newSequence(0),
		strmSeq:  newSequence(1),
		notify:   make(chan loadResult, 16),
		done:     make(chan struct{}),
	}
	go e.notifyLoop()
	sink.Start(e, opts.SampleRate, 2)
	return e
}

func (e *Engine) SetLoadCompleteListener(fn LoadCompleteFunc) {
	e.notifyMu.Lock()
	e.listener = fn
	e.notifyMu.Unlock()
}

func (e *Engine) LoadPath(path string, priority int) int32 {
	raw, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("error reading clip [%s] (%v)", path, err)
		return -1
	}
	return e.load(raw)
}

func (e *Engine) LoadDescriptor(r io.ReaderAt, offset, length int64, priority int) int32 {
	if length <= 0 {
		return -1
	}
	raw, err := io.ReadAll(io.NewSectionReader(r, offset, length))
	if err != nil {
		logrus.Errorf("error reading descriptor (%v)", err)
		return -1
	}
	return e.load(raw)
}

func (e *Engine) load(raw []byte) int32 {
	e.mu.Lock()
	if e.released {
		e.mu.Unlock()
		return -1
	}
	id := e.soundSeq.Next()
	e.loading[id] = struct{}{}
	e.mu.Unlock()

	go e.decode(id, raw)
	return id
}

func (e *Engine) decode(id int32, raw []byte) {
	status := int32(0)
	var data []float32
	clip, err := decodeClip(raw)
	if err == nil {
		data, err = clip.Stereo(e.opts.SampleRate)
	}
	if err != nil {
		logrus.Debugf("error decoding sound [%d] (%v)", id, err)
		status = StatusDecodeFailed
	}

	e.mu.Lock()
	if _, ok := e.loading[id]; !ok {
		// released while decoding
		e.mu.Unlock()
		return
	}
	delete(e.loading, id)
	if status == 0 {
		e.sounds[id] = data
	}
	e.mu.Unlock()

	select {
	case e.notify <- loadResult{soundID: id, status: status}:
	case <-e.done:
	}
}

// notifyLoop is the single goroutine the load-complete listener fires on.
func (e *Engine) notifyLoop() {
	for {
		select {
		case r := <-e.notify:
			e.notifyMu.Lock()
			if fn := e.listener; fn != nil {
				fn(r.soundID, r.status)
			}
			e.notifyMu.Unlock()
		case <-e.done:
			return
		}
	}
}

func (e *Engine) Play(soundID int32, leftVolume, rightVolume float32, loop int, rate float32) int32 {
	rate = clampRate(rate)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.released {
		return 0
	}
	data, ok := e.sounds[soundID]
	if !ok {
		// unknown or still decoding
		return 0
	}
	if e.streams.Size() >= e.opts.MaxStreams {
		// steal the oldest stream
		if k, _ := e.streams.Min(); k != nil {
			e.streams.Remove(k)
		}
	}
	id := e.strmSeq.Next()
	e.streams.Put(id, &stream{
		id:    id,
		data:  data,
		left:  leftVolume,
		right: rightVolume,
		rate:  rate,
		loop:  loop,
	})
	return id
}

func (e *Engine) Pause(streamID int32) {
	e.withStream(streamID, func(s *stream) { s.paused = true })
}

func (e *Engine) Resume(streamID int32) {
	e.withStream(streamID, func(s *stream) { s.paused = false })
}

func (e *Engine) Stop(streamID int32) {
	e.mu.Lock()
	e.streams.Remove(streamID)
	e.mu.Unlock()
}

func (e *Engine) SetVolume(streamID int32, left, right float32) {
	e.withStream(streamID, func(s *stream) {
		s.left = left
		s.right = right
	})
}

func (e *Engine) SetRate(streamID int32, rate float32) {
	e.withStream(streamID, func(s *stream) { s.rate = clampRate(rate) })
}

func (e *Engine) withStream(streamID int32, fn func(*stream)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if v, ok := e.streams.Get(streamID); ok {
		fn(v.(*stream))
	}
}

// ReadFloat32s fills buf with the mixed data of all live streams.
func (e *Engine) ReadFloat32s(buf []float32) {
	for i := range buf {
		buf[i] = 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	var finished []int32
	e.streams.Each(func(k, v interface{}) {
		if v.(*stream).mix(buf) {
			finished = append(finished, k.(int32))
		}
	})
	for _, k := range finished {
		e.streams.Remove(k)
	}
}

func (e *Engine) Release() {
	e.mu.Lock()
	if e.released {
		e.mu.Unlock()
		return
	}
	e.released = true
	e.sounds = make(map[int32][]float32)
	e.loading = make(map[int32]struct{})
	e.streams.Clear()
	e.mu.Unlock()

	e.notifyMu.Lock()
	e.listener = nil
	e.notifyMu.Unlock()

	close(e.done)
	e.sink.Close()
}

func clampRate(rate float32) float32 {
	if rate <= 0 {
		return 1
	}
	if rate < 0.5 {
		return 0.5
	}
	if rate > 2 {
		return 2
	}
	return rate
}
