package soundpool

import (
	"io"
	"net/url"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Baxi19/soundpool/mixer"
)

// Load decodes a raw byte buffer into a playable sound. The buffer is
// materialized to a durable temporary file and submitted to the pool's
// mixer. Loads run on the shared unbounded load domain: one slow decode
// never delays another, and there is no ordering guarantee between
// concurrent loads.
func (p *Pool) Load(data []byte, priority int, cb LoadCallback) {
	go p.loadBytes(data, priority, cb)
}

// LoadURI decodes the clip a URI points at. file:// URIs (and plain paths)
// are opened and passed to the mixer as a descriptor; http(s) URIs are
// fetched into a durable temporary file first and then behave like Load.
func (p *Pool) LoadURI(uri string, priority int, cb LoadCallback) {
	go p.loadURI(uri, priority, cb)
}

func (p *Pool) loadBytes(data []byte, priority int, cb LoadCallback) {
	path, err := p.materialize(data)
	if err != nil {
		p.failLoad(cb, &LoadError{cause: err})
		return
	}
	p.submitLoad(cb, func(m mixer.Mixer) int32 {
		return m.LoadPath(path, priority)
	})
}

func (p *Pool) loadURI(uri string, priority int, cb LoadCallback) {
	u, err := url.Parse(uri)
	if err != nil {
		p.failLoad(cb, &URILoadError{URI: uri, cause: err})
		return
	}
	switch u.Scheme {
	case "", "file":
		path := u.Path
		if u.Scheme == "" {
			path = uri
		}
		p.loadDescriptor(path, uri, priority, cb)
	case "http", "https":
		data, err := p.fetch(uri)
		if err != nil {
			p.failLoad(cb, &URILoadError{URI: uri, cause: err})
			return
		}
		p.loadBytes(data, priority, cb)
	default:
		p.failLoad(cb, &URILoadError{URI: uri, cause: errors.Errorf("unsupported scheme [%s]", u.Scheme)})
	}
}

func (p *Pool) loadDescriptor(path, uri string, priority int, cb LoadCallback) {
	f, err := os.Open(path)
	if err != nil {
		p.failLoad(cb, &URILoadError{URI: uri, cause: err})
		return
	}
	defer func() { _ = f.Close() }()
	fi, err := f.Stat()
	if err != nil {
		p.failLoad(cb, &URILoadError{URI: uri, cause: err})
		return
	}
	p.submitLoad(cb, func(m mixer.Mixer) int32 {
		return m.LoadDescriptor(f, 0, fi.Size(), priority)
	})
}

func (p *Pool) fetch(uri string) ([]byte, error) {
	resp, err := p.reg.httpClient.Get(uri)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != 200 {
		return nil, errors.Errorf("unexpected status [%s]", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// submitLoad issues the native load outside the pool lock, since the mixer
// reads the clip synchronously, then registers the pending entry. A
// completion that outran the registration was parked in the early map by
// onLoadComplete and resolves here.
func (p *Pool) submitLoad(cb LoadCallback, load func(mixer.Mixer) int32) {
	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		logrus.Debugf("pool [%d] disposed, load discarded", p.handle)
		return
	}
	m := p.mixer
	p.mu.Unlock()

	id := load(m)
	if id < 0 {
		// rejected synchronously by the mixer, not an in-flight load
		p.completeLoad(cb, id, nil)
		return
	}

	p.mu.Lock()
	if p.disposed || p.mixer != m {
		p.mu.Unlock()
		logrus.Debugf("pool [%d] mixer replaced during load of sound [%d], result discarded", p.handle, id)
		return
	}
	if status, ok := p.early[id]; ok {
		delete(p.early, id)
		p.mu.Unlock()
		p.resolveLoad(cb, id, status)
		return
	}
	p.pending[id] = cb
	p.mu.Unlock()
}

func (p *Pool) materialize(data []byte) (string, error) {
	f, err := os.CreateTemp(p.reg.cfg.TempDir, "soundpool-*.clip")
	if err != nil {
		return "", errors.Wrap(err, "error creating temp clip")
	}
	_, werr := f.Write(data)
	cerr := f.Close()
	if werr != nil {
		return "", errors.Wrapf(werr, "error writing temp clip [%s]", f.Name())
	}
	if cerr != nil {
		return "", errors.Wrapf(cerr, "error closing temp clip [%s]", f.Name())
	}
	return f.Name(), nil
}

func (p *Pool) failLoad(cb LoadCallback, err error) {
	if p.isDisposed() {
		logrus.Debugf("pool [%d] disposed, load error discarded (%v)", p.handle, err)
		return
	}
	logrus.Debugf("pool [%d] load failed (%v)", p.handle, err)
	p.completeLoad(cb, 0, err)
}
