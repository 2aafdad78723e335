// Package bank preloads named collections of clips into a pool. A bank is a
// JSON manifest at the root of a (virtual) filesystem referencing the clip
// files to load.
package bank

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/tools/godoc/vfs"

	"github.com/Baxi19/soundpool"
)

const DefaultManifest = "bank.json"

// Entry names one clip of a bank.
type Entry struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Priority int    `json:"priority"`
}

// LoadFolder loads a bank from a regular folder. See Load.
func LoadFolder(folder string, pool *soundpool.Pool) (map[string]int32, error) {
	return Load(vfs.OS(folder), DefaultManifest, pool)
}

// Load reads the manifest from the filesystem and loads every referenced
// clip through the pool's load pipeline, blocking until all loads complete.
// It returns entry name -> sound id. Clips that fail to read or decode are
// logged and skipped.
func Load(fileSystem vfs.Opener, manifest string, pool *soundpool.Pool) (map[string]int32, error) {
	start := time.Now()
	entries, err := loadManifest(fileSystem, manifest)
	if err != nil {
		return nil, err
	}

	sounds := make(map[string]int32, len(entries))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, e := range entries {
		raw, err := readFile(fileSystem, e.Path)
		if err != nil {
			logrus.Errorf("error reading clip [%s] (%v)", e.Path, err)
			continue
		}
		wg.Add(1)
		entry := e
		pool.Load(raw, entry.Priority, func(soundID int32, err error) {
			defer wg.Done()
			if err != nil {
				logrus.Errorf("error loading clip [%s] (%v)", entry.Path, err)
				return
			}
			if soundID < 0 {
				logrus.Errorf("clip [%s] rejected by mixer (%d)", entry.Path, soundID)
				return
			}
			mu.Lock()
			sounds[entry.Name] = soundID
			mu.Unlock()
		})
	}
	wg.Wait()

	logrus.Infof("loaded %d of %d clips in %.2fs", len(sounds), len(entries), time.Since(start).Seconds())
	return sounds, nil
}

func readFile(fileSystem vfs.Opener, path string) ([]byte, error) {
	file, err := fileSystem.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()
	return io.ReadAll(file)
}

func loadManifest(fileSystem vfs.Opener, path string) ([]Entry, error) {
	data, err := readFile(fileSystem, path)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening manifest [%s]", path)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrapf(err, "error parsing manifest [%s]", path)
	}
	return entries, nil
}
