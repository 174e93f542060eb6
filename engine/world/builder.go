package world

import (
	"github.com/spaghettifunk/aurora/engine/assets"
	"github.com/spaghettifunk/aurora/engine/renderer"
	"github.com/spaghettifunk/aurora/engine/scene"
)

const (
	defaultWidth   = 800
	defaultHeight  = 600
	defaultWorkers = 4
	defaultAppName = "aurora"
)

// Builder assembles a World with its scene tree, renderer and asset
// manager. Zero-config Build gives a headless 800x600 world with
// stats off, suitable for tests and tools; applications swap in their
// device and asset directory.
type Builder struct {
	appName   string
	width     uint32
	height    uint32
	showStats bool
	device    renderer.Device
	assetsDir string
	workers   int
	source    assets.Source
}

func NewBuilder() *Builder {
	return &Builder{
		appName:   defaultAppName,
		width:     defaultWidth,
		height:    defaultHeight,
		device:    renderer.NewNullDevice(),
		assetsDir: "assets",
		workers:   defaultWorkers,
	}
}

func (b *Builder) WithAppName(name string) *Builder {
	b.appName = name
	return b
}

func (b *Builder) WithSize(width, height uint32) *Builder {
	b.width = width
	b.height = height
	return b
}

func (b *Builder) WithStats(show bool) *Builder {
	b.showStats = show
	return b
}

func (b *Builder) WithDevice(device renderer.Device) *Builder {
	b.device = device
	return b
}

func (b *Builder) WithAssetsDir(dir string) *Builder {
	b.assetsDir = dir
	return b
}

func (b *Builder) WithWorkers(workers int) *Builder {
	b.workers = workers
	return b
}

// WithSource overrides the asset byte source after initialization,
// bypassing the directory watcher. Tests feed in-memory files this
// way.
func (b *Builder) WithSource(source assets.Source) *Builder {
	b.source = source
	return b
}

func (b *Builder) Build() (*World, error) {
	assetManager, err := assets.NewAssetManager()
	if err != nil {
		return nil, err
	}
	if err := assetManager.Initialize(b.assetsDir, b.workers); err != nil {
		return nil, err
	}
	if b.source != nil {
		assetManager.SetSource(b.source)
	}

	r := renderer.New(b.device, assetManager, b.width, b.height)
	if err := r.Initialize(b.appName); err != nil {
		return nil, err
	}

	tree := scene.NewTree()
	return newWorld(tree, r, assetManager, b.showStats), nil
}
