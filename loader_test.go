package soundpool

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Baxi19/soundpool/internal/audiotest"
)

func TestLoadMaterializesTempFile(t *testing.T) {
	r, ff := newTestRegistry(t)
	p, fm := newTestPool(t, r, ff, 2)

	data := audiotest.ConstWAV(44100, 8, 1000)
	ch := make(chan loadResult, 1)
	p.Load(data, 1, func(soundID int32, err error) { ch <- loadResult{soundID, err} })
	id := <-fm.loaded
	fm.complete(id, 0)
	res := awaitLoad(t, ch)
	require.NoError(t, res.err)

	fm.mu.Lock()
	require.Len(t, fm.paths, 1)
	path := fm.paths[0]
	fm.mu.Unlock()

	assert.True(t, strings.HasPrefix(filepath.Base(path), "soundpool-"))
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, written)
}

func TestLoadMaterializeFailure(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TempDir = filepath.Join(t.TempDir(), "does", "not", "exist")
	ff := &fakeFactory{}
	r := NewRegistry(cfg)
	r.buildMixer = ff.build
	t.Cleanup(r.TeardownAll)
	p, _ := newTestPool(t, r, ff, 2)

	ch := make(chan loadResult, 1)
	p.Load([]byte("clip"), 1, func(soundID int32, err error) { ch <- loadResult{soundID, err} })
	res := awaitLoad(t, ch)
	var le *LoadError
	require.ErrorAs(t, res.err, &le)
}

func TestLoadURIOpensDescriptor(t *testing.T) {
	r, ff := newTestRegistry(t)
	p, fm := newTestPool(t, r, ff, 2)

	data := audiotest.ConstWAV(44100, 8, 1000)
	path := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	ch := make(chan loadResult, 1)
	p.LoadURI("file://"+path, 1, func(soundID int32, err error) { ch <- loadResult{soundID, err} })
	id := <-fm.loaded
	fm.complete(id, 0)
	res := awaitLoad(t, ch)
	require.NoError(t, res.err)

	fm.mu.Lock()
	defer fm.mu.Unlock()
	require.Len(t, fm.descriptors, 1)
	assert.Equal(t, int64(len(data)), fm.descriptors[0])
	assert.Empty(t, fm.paths)
}

func TestLoadURIPlainPath(t *testing.T) {
	r, ff := newTestRegistry(t)
	p, fm := newTestPool(t, r, ff, 2)

	path := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, os.WriteFile(path, audiotest.ConstWAV(44100, 8, 1000), 0o644))

	ch := make(chan loadResult, 1)
	p.LoadURI(path, 1, func(soundID int32, err error) { ch <- loadResult{soundID, err} })
	id := <-fm.loaded
	fm.complete(id, 0)
	require.NoError(t, awaitLoad(t, ch).err)
}

func TestLoadURIMissingFile(t *testing.T) {
	r, ff := newTestRegistry(t)
	p, _ := newTestPool(t, r, ff, 2)

	ch := make(chan loadResult, 1)
	p.LoadURI(filepath.Join(t.TempDir(), "missing.wav"), 1, func(soundID int32, err error) {
		ch <- loadResult{soundID, err}
	})
	res := awaitLoad(t, ch)
	var ule *URILoadError
	require.ErrorAs(t, res.err, &ule)
}

func TestLoadURIUnsupportedScheme(t *testing.T) {
	r, ff := newTestRegistry(t)
	p, _ := newTestPool(t, r, ff, 2)

	ch := make(chan loadResult, 1)
	p.LoadURI("ftp://example.com/clip.wav", 1, func(soundID int32, err error) {
		ch <- loadResult{soundID, err}
	})
	res := awaitLoad(t, ch)
	var ule *URILoadError
	require.ErrorAs(t, res.err, &ule)
}

func TestLoadURIFetchesRemoteClip(t *testing.T) {
	r, ff := newTestRegistry(t)
	p, fm := newTestPool(t, r, ff, 2)

	data := audiotest.ConstWAV(44100, 8, 1000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	ch := make(chan loadResult, 1)
	p.LoadURI(srv.URL, 1, func(soundID int32, err error) { ch <- loadResult{soundID, err} })
	id := <-fm.loaded
	fm.complete(id, 0)
	require.NoError(t, awaitLoad(t, ch).err)

	// fetched into a temp file, then loaded like a byte buffer
	fm.mu.Lock()
	defer fm.mu.Unlock()
	require.Len(t, fm.paths, 1)
	written, err := os.ReadFile(fm.paths[0])
	require.NoError(t, err)
	assert.Equal(t, data, written)
}

func TestLoadURIRemoteFailure(t *testing.T) {
	r, ff := newTestRegistry(t)
	p, _ := newTestPool(t, r, ff, 2)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	ch := make(chan loadResult, 1)
	p.LoadURI(srv.URL, 1, func(soundID int32, err error) { ch <- loadResult{soundID, err} })
	res := awaitLoad(t, ch)
	var ule *URILoadError
	require.ErrorAs(t, res.err, &ule)
}

func TestLoadAfterDisposeDiscarded(t *testing.T) {
	r, ff := newTestRegistry(t)
	p, _ := newTestPool(t, r, ff, 2)
	require.NoError(t, r.Dispose(p.Handle()))

	var calls int32
	p.Load([]byte("clip"), 1, func(int32, error) { atomic.AddInt32(&calls, 1) })

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}
