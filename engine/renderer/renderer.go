package renderer

import (
	"errors"

	"github.com/spaghettifunk/aurora/engine/assets"
	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/renderer/components"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
	"github.com/spaghettifunk/aurora/engine/resource"
)

type RenderPacket struct {
	DeltaTime float64
}

// Renderer is the policy layer between the engine and the graphics
// device. It owns the texture cache, the main camera and the stat
// overlay. Textures are acquired by logical asset name and compile
// lazily as their backing images stream in.
type Renderer struct {
	device       Device
	assetManager *assets.AssetManager

	textures map[string]*Texture
	overlay  *Overlay

	mainCamera *components.Camera

	width       uint32
	height      uint32
	frameNumber uint64
}

func New(device Device, assetManager *assets.AssetManager, width, height uint32) *Renderer {
	return &Renderer{
		device:       device,
		assetManager: assetManager,
		textures:     make(map[string]*Texture),
		mainCamera:   components.NewCamera(),
		width:        width,
		height:       height,
	}
}

func (r *Renderer) Initialize(appName string) error {
	return r.device.Initialize(appName, r.width, r.height)
}

func (r *Renderer) Device() Device {
	return r.device
}

func (r *Renderer) MainCamera() *components.Camera {
	return r.mainCamera
}

// AcquireTexture returns the cached texture for the logical name,
// starting the asset fetches on first request. Cube-map names expand
// per the gather rules; everything else loads as a single 2D texture.
func (r *Renderer) AcquireTexture(name string) *Texture {
	if t, ok := r.textures[name]; ok {
		return t
	}

	paths, cube := assets.Gather(name)
	kind := TextureKind2D
	if cube {
		kind = TextureKindCubeMap
	}
	handles := r.assetManager.LoadImageSet(paths, false)
	t := NewTexture(name, kind, handles)
	r.textures[name] = t
	return t
}

// AcquireRenderTarget builds and caches an offscreen color target
// under the given name.
func (r *Renderer) AcquireRenderTarget(name string, width, height uint32) *Texture {
	if t, ok := r.textures[name]; ok {
		return t
	}
	t := NewRenderTarget(width, height)
	r.textures[name] = t
	return t
}

func (r *Renderer) ReleaseTexture(name string) {
	if t, ok := r.textures[name]; ok {
		t.Release(r.device)
		delete(r.textures, name)
	}
}

func (r *Renderer) TextureCount() int {
	return len(r.textures)
}

// SetOverlayFont installs the stat overlay, acquiring the font's page
// image through the regular texture pipeline.
func (r *Renderer) SetOverlayFont(font *metadata.FontData, pageName string) {
	r.overlay = NewOverlay(font, r.AcquireTexture(pageName))
}

func (r *Renderer) SetOverlayText(text string) {
	if r.overlay == nil {
		return
	}
	r.overlay.SetText(text)
}

func (r *Renderer) Overlay() *Overlay {
	return r.overlay
}

func (r *Renderer) BeginFrame(deltaTime float64) error {
	return r.device.BeginFrame(deltaTime)
}

func (r *Renderer) EndFrame(deltaTime float64) error {
	return r.device.EndFrame(deltaTime)
}

func (r *Renderer) OnResize(width, height uint16) error {
	r.width = uint32(width)
	r.height = uint32(height)
	return r.device.Resized(width, height)
}

// DrawFrame runs one frame: begin, poll the texture cache so pending
// textures compile the moment their images settle, draw the overlay,
// end. Textures that are not ready are skipped and retried next frame.
func (r *Renderer) DrawFrame(renderPacket *RenderPacket) error {
	if err := r.BeginFrame(renderPacket.DeltaTime); err != nil {
		core.LogError(err.Error())
		return err
	}

	r.prepareTextures()

	if r.overlay != nil {
		if err := r.overlay.Draw(r.device, 0); err != nil && !errors.Is(err, resource.ErrNotReady) {
			core.LogDebug("overlay draw: %s", err.Error())
		}
	}

	if err := r.EndFrame(renderPacket.DeltaTime); err != nil {
		core.LogError("end frame failed. Application shutting down...")
		return err
	}

	r.frameNumber++
	return nil
}

func (r *Renderer) prepareTextures() {
	for _, t := range r.textures {
		if err := t.Prepare(r.device); err != nil {
			if errors.Is(err, resource.ErrNotReady) {
				continue
			}
			core.LogDebug("texture %s: %s", t.Name(), err.Error())
		}
	}
}

// Reset releases every cached texture. The next acquire starts over
// from the asset source.
func (r *Renderer) Reset() {
	for name, t := range r.textures {
		t.Release(r.device)
		delete(r.textures, name)
	}
}

func (r *Renderer) Shutdown() error {
	r.Reset()
	return r.device.Shutdown()
}
