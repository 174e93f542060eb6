package assets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/spaghettifunk/aurora/engine/assets/loaders"
	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/jobs"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
	"github.com/spaghettifunk/aurora/engine/resource"
)

type AssetInfo struct {
	Path       string
	Type       metadata.AssetType
	Checksum   uint64
	LastLoaded time.Time
}

// AssetManager indexes an asset directory, loads assets synchronously
// through registered loaders and streams image data asynchronously
// through a worker pool. The directory is watched for changes so the
// index and content checksums stay current while the engine runs.
type AssetManager struct {
	root    string
	assets  map[string]AssetInfo
	loaders map[metadata.AssetType]Loader

	source Source
	pool   *jobs.Pool

	mutex sync.RWMutex

	initialized  bool
	shuttingDown bool

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	events   chan fsnotify.Event
	errors   chan error
}

const defaultFetchQueueSize = 64

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[metadata.AssetType]Loader),
		fsnotify: fsWatch,
		events:   make(chan fsnotify.Event, 16),
		errors:   make(chan error, 1),
		done:     make(chan struct{}),
	}, nil
}

func (am *AssetManager) Initialize(assetsDir string, workers int) error {
	pool, err := jobs.NewPool(workers, defaultFetchQueueSize)
	if err != nil {
		return err
	}

	am.mutex.Lock()
	am.root = assetsDir
	am.pool = pool
	am.source = NewDirSource(assetsDir, pool)
	am.initialized = true
	am.mutex.Unlock()

	go am.start()

	if _, statErr := os.Stat(assetsDir); statErr == nil {
		if err := am.addRecursive(assetsDir); err != nil {
			return err
		}
	} else {
		core.LogDebug("assets directory %s not found, watch disabled", assetsDir)
	}

	// Register loaders
	am.registerLoader(metadata.AssetTypeImage, &loaders.ImageLoader{})
	am.registerLoader(metadata.AssetTypeBitmapFont, &loaders.BitmapFontLoader{})
	am.registerLoader(metadata.AssetTypeSystemFont, &loaders.SystemFontLoader{})
	am.registerLoader(metadata.AssetTypeBinary, &loaders.BinaryLoader{})

	return nil
}

// SetSource swaps the backing source. Used by tests and embedded
// asset packs.
func (am *AssetManager) SetSource(source Source) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.source = source
}

// Add starts watching the named file or directory (non-recursively).
func (am *AssetManager) add(name string) error {
	if am.isClosed {
		return errors.New("watcher instance already closed")
	}
	return am.fsnotify.Add(name)
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return errors.New("watcher instance already closed")
	}
	return am.watchRecursive(name, false)
}

// RemoveRecursive stops watching the named directory and all sub-directories.
func (am *AssetManager) removeRecursive(name string) error {
	return am.watchRecursive(name, true)
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.AssetType, loader Loader) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.loaders[assetType] = loader
}

func (am *AssetManager) guard() error {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	if am.shuttingDown {
		return core.ErrShuttingDown
	}
	if !am.initialized {
		return core.ErrNotInitialized
	}
	return nil
}

// LoadAsset loads the named asset synchronously using the loader
// registered for its file type.
func (am *AssetManager) LoadAsset(name string, params interface{}) (*metadata.Asset, error) {
	if err := am.guard(); err != nil {
		return nil, err
	}

	assetType := determineAssetType(name)
	if assetType == metadata.AssetTypeNone {
		return nil, fmt.Errorf("unknown asset type for %s", name)
	}

	am.mutex.RLock()
	loader, loaderExists := am.loaders[assetType]
	am.mutex.RUnlock()
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %d", assetType)
	}

	path := filepath.Join(am.root, filepath.FromSlash(name))
	asset, err := loader.Load(path, params)
	if err != nil {
		return nil, err
	}
	asset.Name = name

	am.mutex.Lock()
	if info, exists := am.assets[name]; exists {
		info.LastLoaded = time.Now()
		am.assets[name] = info
	}
	am.mutex.Unlock()

	return asset, nil
}

func (am *AssetManager) UnloadAsset(asset *metadata.Asset) error {
	assetType := determineAssetType(asset.Name)
	am.mutex.RLock()
	loader, ok := am.loaders[assetType]
	am.mutex.RUnlock()
	if !ok {
		return nil
	}
	return loader.Unload(asset)
}

// LoadImage fetches and decodes the named image off the main thread.
// The returned handle settles once the pixels are ready.
func (am *AssetManager) LoadImage(name string, flipY bool) *resource.Resource[*metadata.ImageResourceData] {
	if err := am.guard(); err != nil {
		return resource.Fault[*metadata.ImageResourceData](err)
	}
	raw := am.source.Fetch(name)
	return resource.Map(raw, func(data []byte) (*metadata.ImageResourceData, error) {
		return loaders.DecodeImage(data, flipY)
	})
}

// LoadImageSet fetches and decodes several images, one handle each.
// Faces fail independently; see Gather for how cube-map names expand.
func (am *AssetManager) LoadImageSet(names []string, flipY bool) []*resource.Resource[*metadata.ImageResourceData] {
	handles := make([]*resource.Resource[*metadata.ImageResourceData], len(names))
	for i, name := range names {
		handles[i] = am.LoadImage(name, flipY)
	}
	return handles
}

// Preload blocks until every named image has been fetched and decoded,
// failing fast on the first error.
func (am *AssetManager) Preload(ctx context.Context, names ...string) error {
	var g errgroup.Group
	for _, name := range names {
		paths, _ := Gather(name)
		for _, p := range paths {
			handle := am.LoadImage(p, false)
			g.Go(func() error {
				_, err := handle.Wait(ctx)
				return err
			})
		}
	}
	return g.Wait()
}

// Checksum returns the indexed content hash for a logical asset name.
func (am *AssetManager) Checksum(name string) (uint64, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[name]
	return info.Checksum, ok
}

// Events exposes filesystem change notifications for the asset tree.
func (am *AssetManager) Events() <-chan fsnotify.Event {
	return am.events
}

func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	if am.shuttingDown {
		am.mutex.Unlock()
		return nil
	}
	am.shuttingDown = true
	pool := am.pool
	am.mutex.Unlock()

	close(am.done)
	if pool != nil {
		return pool.Shutdown()
	}
	// Never initialized, so the watch loop is not running to close the
	// watcher for us.
	return am.fsnotify.Close()
}

func (am *AssetManager) start() {
	for {
		select {

		case e := <-am.fsnotify.Events:
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					am.watchRecursive(e.Name, false)
				}
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name)
			}
			// Can't stat a deleted directory, so just try to remove it
			// from the watch list either way.
			if e.Op&fsnotify.Remove != 0 {
				am.removeAsset(e.Name)
				am.fsnotify.Remove(e.Name)
			}
			select {
			case am.events <- e:
			default:
			}

		case e := <-am.fsnotify.Errors:
			core.LogError(e.Error())
			select {
			case am.errors <- e:
			default:
			}

		case <-am.done:
			am.fsnotify.Close()
			am.isClosed = true
			close(am.events)
			close(am.errors)
			return
		}
	}
}

// watchRecursive adds all directories under the given one to the watch
// list and indexes the files it passes over.
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if unWatch {
				if err = am.fsnotify.Remove(walkPath); err != nil {
					return err
				}
			} else {
				if err = am.fsnotify.Add(walkPath); err != nil {
					return err
				}
			}
		} else {
			am.handleFileEvent(walkPath)
		}
		return nil
	})
}

// Handle the creation or modification of a file. Spurious writes that
// leave the content hash unchanged are dropped.
func (am *AssetManager) handleFileEvent(path string) {
	assetType := determineAssetType(path)
	if assetType == metadata.AssetTypeNone {
		return
	}

	name := am.logicalName(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	sum := xxhash.Sum64(data)

	am.mutex.Lock()
	defer am.mutex.Unlock()

	if info, exists := am.assets[name]; exists && info.Checksum == sum {
		return
	}
	am.assets[name] = AssetInfo{
		Path:       path,
		Type:       assetType,
		Checksum:   sum,
		LastLoaded: time.Now(),
	}
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	name := am.logicalName(path)

	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, name)
}

// logicalName maps an on-disk path back to the forward-slash name
// assets are requested by.
func (am *AssetManager) logicalName(path string) string {
	am.mutex.RLock()
	root := am.root
	am.mutex.RUnlock()

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func determineAssetType(path string) metadata.AssetType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff":
		return metadata.AssetTypeImage
	case ".fnt":
		return metadata.AssetTypeBitmapFont
	case ".fontcfg":
		return metadata.AssetTypeSystemFont
	case ".bin", ".dat", ".spv":
		return metadata.AssetTypeBinary
	default:
		return metadata.AssetTypeNone
	}
}
