package soundpool

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Baxi19/soundpool/mixer"
)

// StreamType is the audio category a pool is created for.
type StreamType int

const (
	StreamTypeRing StreamType = iota
	StreamTypeAlarm
	StreamTypeMusic
	StreamTypeNotification
)

func (t StreamType) valid() bool {
	return t >= StreamTypeRing && t <= StreamTypeNotification
}

func (t StreamType) String() string {
	switch t {
	case StreamTypeRing:
		return "ring"
	case StreamTypeAlarm:
		return "alarm"
	case StreamTypeMusic:
		return "music"
	case StreamTypeNotification:
		return "notification"
	}
	return "unknown"
}

// Volume is a stereo gain pair. The zero value is not the default gain; an
// absent cache entry means (1, 1).
type Volume struct {
	Left  float32
	Right float32
}

var defaultVolume = Volume{Left: 1, Right: 1}

// LoadCallback receives the sound id of a finished load (or a negative
// mixer-rejection code) and any load error. All callbacks of a Registry fire
// sequentially on its completion loop.
type LoadCallback func(soundID int32, err error)

// StreamCallback receives the stream id a control operation resolved to.
type StreamCallback func(streamID int32)

// DoneCallback signals completion of an operation with no result value.
type DoneCallback func()

// Pool is one independently configured mixing context. It owns its mixer
// exclusively and serializes control operations on a bounded scheduler, so
// operations on different pools never contend.
type Pool struct {
	handle     int
	streamType StreamType
	maxStreams int

	reg   *Registry
	sched *scheduler

	mu       sync.Mutex
	mixer    mixer.Mixer
	pending  map[int32]LoadCallback
	early    map[int32]int32 // completions that arrived before their load was registered
	volumes  map[int32]Volume
	disposed bool
}

func newPool(r *Registry, handle int, streamType StreamType, maxStreams int) *Pool {
	p := &Pool{
		handle:     handle,
		streamType: streamType,
		maxStreams: maxStreams,
		reg:        r,
		sched:      newScheduler(maxStreams),
		pending:    make(map[int32]LoadCallback),
		early:      make(map[int32]int32),
		volumes:    make(map[int32]Volume),
	}
	p.mixer = p.newMixer()
	return p
}

// newMixer builds a mixer wired to a listener closure that carries the
// instance it was registered on, so results from a replaced mixer are
// recognizable.
func (p *Pool) newMixer() mixer.Mixer {
	m := p.reg.buildMixer(mixer.Options{
		MaxStreams: p.maxStreams,
		SampleRate: p.reg.cfg.SampleRate,
	})
	m.SetLoadCompleteListener(func(soundID, status int32) {
		p.onLoadComplete(m, soundID, status)
	})
	return m
}

// Handle is the pool's stable registry index.
func (p *Pool) Handle() int {
	return p.handle
}

// Play starts a stream for soundID with the cached gain, loop count and
// playback rate. The callback receives the stream id; 0 means the mixer
// could not start the stream and is not treated as an error.
func (p *Pool) Play(soundID int32, loop int, rate float32, cb StreamCallback) {
	p.submit(func() {
		vol := p.volume(soundID)
		id := p.currentMixer().Play(soundID, vol.Left, vol.Right, loop, rate)
		p.completeStream(cb, id)
	})
}

// Pause pauses a live stream and echoes the stream id. Unknown stream ids
// no-op at the mixer.
func (p *Pool) Pause(streamID int32, cb StreamCallback) {
	p.submit(func() {
		p.currentMixer().Pause(streamID)
		p.completeStream(cb, streamID)
	})
}

// Resume resumes a paused stream and echoes the stream id.
func (p *Pool) Resume(streamID int32, cb StreamCallback) {
	p.submit(func() {
		p.currentMixer().Resume(streamID)
		p.completeStream(cb, streamID)
	})
}

// Stop stops a live stream and echoes the stream id.
func (p *Pool) Stop(streamID int32, cb StreamCallback) {
	p.submit(func() {
		p.currentMixer().Stop(streamID)
		p.completeStream(cb, streamID)
	})
}

// SetVolume applies stereo gain. A nonzero streamID targets the live stream
// immediately; a non-negative soundID updates the cache consulted by future
// plays. Both effects are independent and may be combined.
func (p *Pool) SetVolume(streamID, soundID int32, left, right float32, cb DoneCallback) {
	p.submit(func() {
		if streamID != 0 {
			p.currentMixer().SetVolume(streamID, left, right)
		}
		if soundID >= 0 {
			p.mu.Lock()
			p.volumes[soundID] = Volume{Left: left, Right: right}
			p.mu.Unlock()
		}
		p.completeDone(cb)
	})
}

// SetRate changes the playback rate of a live stream.
func (p *Pool) SetRate(streamID int32, rate float32, cb DoneCallback) {
	p.submit(func() {
		p.currentMixer().SetRate(streamID, rate)
		p.completeDone(cb)
	})
}

// Release replaces the pool's mixer with a fresh one of identical
// configuration. Pending loads are abandoned; the volume cache survives.
// Release runs on the pool's scheduler like any other control operation, so
// the mixer is never recreated mid-operation.
func (p *Pool) Release(cb DoneCallback) {
	p.submit(func() {
		p.recreateMixer()
		p.completeDone(cb)
	})
}

func (p *Pool) recreateMixer() {
	m := p.newMixer()

	p.mu.Lock()
	old := p.mixer
	abandoned := len(p.pending)
	p.pending = make(map[int32]LoadCallback)
	p.early = make(map[int32]int32)
	p.mixer = m
	p.mu.Unlock()

	// detach outside the lock: the old mixer blocks the detach until an
	// in-flight delivery has finished, and onLoadComplete drops anything
	// arriving from a mixer the pool no longer owns
	old.SetLoadCompleteListener(nil)
	old.Release()
	if abandoned > 0 {
		logrus.Debugf("pool [%d] released, abandoned %d pending loads", p.handle, abandoned)
	}
}

// dispose releases the mixer permanently and shuts the scheduler down.
// Queued control tasks are dropped without resolving their callers.
func (p *Pool) dispose() {
	p.sched.shutdown()

	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		return
	}
	p.disposed = true
	m := p.mixer
	dropped := len(p.pending)
	p.pending = make(map[int32]LoadCallback)
	p.early = make(map[int32]int32)
	p.mu.Unlock()

	m.SetLoadCompleteListener(nil)
	m.Release()
	if dropped > 0 {
		logrus.Debugf("pool [%d] disposed, dropped %d pending loads", p.handle, dropped)
	}
}

// onLoadComplete fires on the notification goroutine of the mixer that
// produced the result. Results from a mixer the pool no longer owns are
// dropped; a completion that arrives before its load was registered parks in
// the early map and resolves at registration.
func (p *Pool) onLoadComplete(m mixer.Mixer, soundID, status int32) {
	p.mu.Lock()
	if p.disposed || p.mixer != m {
		p.mu.Unlock()
		logrus.Debugf("pool [%d] stale notification for sound [%d], dropping", p.handle, soundID)
		return
	}
	cb, ok := p.pending[soundID]
	if ok {
		delete(p.pending, soundID)
	} else {
		p.early[soundID] = status
	}
	p.mu.Unlock()
	if ok {
		p.resolveLoad(cb, soundID, status)
	}
}

func (p *Pool) resolveLoad(cb LoadCallback, soundID, status int32) {
	if status == 0 {
		p.completeLoad(cb, soundID, nil)
	} else {
		p.completeLoad(cb, 0, &LoadError{Status: status})
	}
}

func (p *Pool) submit(fn func()) {
	ok := p.sched.submit(func() {
		if p.isDisposed() {
			return
		}
		fn()
	})
	if !ok {
		logrus.Debugf("pool [%d] disposed, control task dropped", p.handle)
	}
}

func (p *Pool) isDisposed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.disposed
}

func (p *Pool) currentMixer() mixer.Mixer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mixer
}

func (p *Pool) volume(soundID int32) Volume {
	p.mu.Lock()
	defer p.mu.Unlock()
	if v, ok := p.volumes[soundID]; ok {
		return v
	}
	return defaultVolume
}

func (p *Pool) completeLoad(cb LoadCallback, soundID int32, err error) {
	if cb == nil {
		return
	}
	p.reg.completions.post(func() { cb(soundID, err) })
}

func (p *Pool) completeStream(cb StreamCallback, streamID int32) {
	if cb == nil {
		return
	}
	p.reg.completions.post(func() { cb(streamID) })
}

func (p *Pool) completeDone(cb DoneCallback) {
	if cb == nil {
		return
	}
	p.reg.completions.post(func() { cb() })
}
