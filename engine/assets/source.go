package assets

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/singleflight"

	"github.com/spaghettifunk/aurora/engine/jobs"
	"github.com/spaghettifunk/aurora/engine/resource"
)

// Source fetches the raw bytes behind a logical asset name. Fetch
// returns immediately with a handle that settles once the bytes are
// available or the fetch failed.
type Source interface {
	Fetch(name string) *resource.Resource[[]byte]
}

// DirSource serves assets from a directory tree, reading files on the
// worker pool. Concurrent fetches of the same name share one read.
type DirSource struct {
	root  string
	pool  *jobs.Pool
	group singleflight.Group
}

func NewDirSource(root string, pool *jobs.Pool) *DirSource {
	return &DirSource{
		root: root,
		pool: pool,
	}
}

func (s *DirSource) Fetch(name string) *resource.Resource[[]byte] {
	out := resource.New[[]byte]()
	s.pool.Submit(jobs.Task{
		Run: func() error {
			data, err, _ := s.group.Do(name, func() (interface{}, error) {
				return os.ReadFile(filepath.Join(s.root, filepath.FromSlash(name)))
			})
			if err != nil {
				return fmt.Errorf("fetch %s: %w", name, err)
			}
			out.Complete(data.([]byte))
			return nil
		},
		OnFailure: func(err error) {
			out.Fail(err)
		},
	})
	return out
}

// MapSource serves assets from memory. Used by tests and embedded
// defaults; fetches settle synchronously.
type MapSource struct {
	Files map[string][]byte
}

func NewMapSource(files map[string][]byte) *MapSource {
	return &MapSource{Files: files}
}

func (s *MapSource) Fetch(name string) *resource.Resource[[]byte] {
	data, ok := s.Files[name]
	if !ok {
		return resource.Fault[[]byte](fmt.Errorf("fetch %s: %w", name, os.ErrNotExist))
	}
	return resource.Of(data)
}
