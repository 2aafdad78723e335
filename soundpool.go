// Package soundpool manages a set of independent, concurrently usable
// sound-mixing pools. Each pool asynchronously decodes short audio clips
// into playable sound handles and plays them back with per-stream volume and
// rate control. Every asynchronous result, whether produced by the shared
// load domain or a pool's control scheduler, is delivered through one
// single-consumer completion loop.
package soundpool

import (
	"net/http"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Baxi19/soundpool/mixer"
)

// Registry owns the pool instances. Handles are stable indices into an
// append-only arena: disposing a pool retires its slot in place, so handles
// are never reused for the lifetime of the registry.
type Registry struct {
	cfg         *Config
	completions *completionLoop
	httpClient  *http.Client
	buildMixer  func(opts mixer.Options) mixer.Mixer

	mu    sync.Mutex
	pools []*Pool
}

func NewRegistry(cfg *Config) *Registry {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.setDefaults()
	return &Registry{
		cfg:         cfg,
		completions: newCompletionLoop(),
		httpClient:  &http.Client{Timeout: cfg.httpTimeout()},
		buildMixer:  func(opts mixer.Options) mixer.Mixer { return mixer.New(opts) },
	}
}

// CreatePool allocates a pool for the given category and returns its handle.
// An unrecognized stream type yields the -1 sentinel and creates nothing;
// callers check for it instead of an error.
func (r *Registry) CreatePool(streamType StreamType, maxStreams int) int {
	if !streamType.valid() {
		logrus.Warnf("unrecognized stream type [%d]", streamType)
		return -1
	}
	if maxStreams < 1 {
		maxStreams = 1
	}
	r.mu.Lock()
	handle := len(r.pools)
	p := newPool(r, handle, streamType, maxStreams)
	r.pools = append(r.pools, p)
	r.mu.Unlock()
	logrus.Infof("created pool [%d] (%s, %d streams)", handle, streamType, maxStreams)
	return handle
}

// Pool routes to the addressed instance. An invalid or retired handle is a
// contract violation.
func (r *Registry) Pool(handle int) (*Pool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if handle < 0 || handle >= len(r.pools) || r.pools[handle] == nil {
		return nil, errors.Wrapf(ErrInvalidHandle, "handle [%d]", handle)
	}
	return r.pools[handle], nil
}

// Dispose tears the addressed pool down and retires its slot.
func (r *Registry) Dispose(handle int) error {
	r.mu.Lock()
	if handle < 0 || handle >= len(r.pools) || r.pools[handle] == nil {
		r.mu.Unlock()
		return errors.Wrapf(ErrInvalidHandle, "handle [%d]", handle)
	}
	p := r.pools[handle]
	r.pools[handle] = nil
	r.mu.Unlock()

	p.dispose()
	logrus.Infof("disposed pool [%d]", handle)
	return nil
}

// TeardownAll disposes every live pool and stops the completion loop. Called
// once when the embedding engine detaches.
func (r *Registry) TeardownAll() {
	r.mu.Lock()
	pools := r.pools
	r.pools = nil
	r.mu.Unlock()

	for _, p := range pools {
		if p != nil {
			p.dispose()
		}
	}
	r.completions.stop()
	logrus.Infof("registry torn down (%d pools)", len(pools))
}
