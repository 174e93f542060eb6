package renderer

import (
	"fmt"

	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
	"github.com/spaghettifunk/aurora/engine/resource"
)

type TextureKind uint8

const (
	TextureKind2D TextureKind = iota
	TextureKindCubeMap
	TextureKindRenderTarget
)

func (k TextureKind) String() string {
	switch k {
	case TextureKind2D:
		return "2d"
	case TextureKindCubeMap:
		return "cubemap"
	case TextureKindRenderTarget:
		return "render_target"
	}
	return "unknown"
}

// bindTarget picks the binding point for the kind. Render targets are
// plain 2D textures on the device side.
func (k TextureKind) bindTarget() BindTarget {
	if k == TextureKindCubeMap {
		return TargetCubeMap
	}
	return Target2D
}

// cubeFaceUploads lists the per-face upload targets in the fixed face
// order right, left, top, bottom, front, back.
var cubeFaceUploads = [6]UploadTarget{
	UploadCubePositiveX,
	UploadCubeNegativeX,
	UploadCubePositiveY,
	UploadCubeNegativeY,
	UploadCubePositiveZ,
	UploadCubeNegativeZ,
}

// Texture is a lazily compiled GPU texture. Construction is cheap and
// never touches the device; Prepare compiles on first use once every
// backing image has settled. A texture whose backing images are still
// streaming in reports not-ready and can be retried every frame.
type Texture struct {
	id        core.Identity
	name      string
	kind      TextureKind
	filtering Filtering
	width     uint32
	height    uint32

	faces []*resource.Resource[*metadata.ImageResourceData]

	compiled    bool
	handle      TextureID
	framebuffer FramebufferID
}

// NewTexture wraps pending image data in a texture of the given kind.
// 2D textures take one backing handle, cube maps take six in face
// order. Filtering defaults to Linear.
func NewTexture(name string, kind TextureKind, faces []*resource.Resource[*metadata.ImageResourceData]) *Texture {
	return &Texture{
		id:        core.NewIdentity(),
		name:      name,
		kind:      kind,
		filtering: FilterLinear,
		faces:     faces,
	}
}

// NewRenderTarget builds an offscreen color target of the given size.
// It has no backing images; Prepare allocates storage and attaches the
// texture to a fresh framebuffer.
func NewRenderTarget(width, height uint32) *Texture {
	return &Texture{
		id:        core.NewIdentity(),
		name:      fmt.Sprintf("render_target_%dx%d", width, height),
		kind:      TextureKindRenderTarget,
		filtering: FilterLinear,
		width:     width,
		height:    height,
	}
}

func (t *Texture) ID() core.Identity     { return t.id }
func (t *Texture) Name() string          { return t.name }
func (t *Texture) Kind() TextureKind     { return t.kind }
func (t *Texture) Filtering() Filtering  { return t.filtering }
func (t *Texture) Compiled() bool        { return t.compiled }
func (t *Texture) Handle() TextureID     { return t.handle }
func (t *Texture) Size() (uint32, uint32) { return t.width, t.height }

func (t *Texture) SetFiltering(f Filtering) {
	t.filtering = f
}

// Framebuffer returns the framebuffer handle of a compiled render
// target, or InvalidID for other kinds.
func (t *Texture) Framebuffer() FramebufferID {
	return t.framebuffer
}

// Prepare compiles the texture on the device if it has not been
// compiled yet. The readiness check is fail-fast: if any backing image
// is still pending or has failed, Prepare returns that error before a
// single device call is made, and the next call retries from scratch.
// Errors from resource.ErrNotReady are the retry-next-frame case.
func (t *Texture) Prepare(device Device) error {
	if t.compiled {
		return nil
	}

	images, err := t.collect()
	if err != nil {
		return err
	}

	handle, err := device.CreateTexture()
	if err != nil {
		return fmt.Errorf("texture %s: %w", t.name, err)
	}

	target := t.kind.bindTarget()
	device.BindTexture(target, handle)

	switch t.kind {
	case TextureKind2D:
		img := images[0]
		t.width, t.height = img.Width, img.Height
		device.UploadTexture(Upload2D, img.Width, img.Height, img.Pixels)

	case TextureKindCubeMap:
		for i, img := range images {
			device.UploadTexture(cubeFaceUploads[i], img.Width, img.Height, img.Pixels)
		}
		t.width, t.height = images[0].Width, images[0].Height

	case TextureKindRenderTarget:
		// Storage only, nothing to upload.
		device.UploadTexture(Upload2D, t.width, t.height, nil)

		framebuffer, err := device.CreateFramebuffer()
		if err != nil {
			device.UnbindTexture(target)
			device.DeleteTexture(handle)
			return fmt.Errorf("render target %s: %w", t.name, err)
		}
		device.BindFramebuffer(framebuffer)
		device.AttachTexture(handle)
		device.UnbindFramebuffer()
		t.framebuffer = framebuffer
	}

	device.SetTextureFiltering(target, t.filtering, t.filtering)
	device.SetTextureWrap(target, WrapAxisS, WrapClampToEdge)
	device.SetTextureWrap(target, WrapAxisT, WrapClampToEdge)
	if t.kind == TextureKindCubeMap {
		device.SetTextureWrap(target, WrapAxisR, WrapClampToEdge)
	}

	device.UnbindTexture(target)

	t.handle = handle
	t.compiled = true
	return nil
}

// Bind prepares the texture if needed, then binds it to the given
// texture unit. Not-ready and load errors propagate to the caller,
// which may retry next frame.
func (t *Texture) Bind(device Device, unit uint8) error {
	if err := t.Prepare(device); err != nil {
		return err
	}
	device.ActiveTexture(unit)
	device.BindTexture(t.kind.bindTarget(), t.handle)
	return nil
}

// Release destroys the compiled device objects. The texture returns
// to the uncompiled state and may be prepared again.
func (t *Texture) Release(device Device) {
	if !t.compiled {
		return
	}
	if t.kind == TextureKindRenderTarget && t.framebuffer != InvalidID {
		device.DeleteFramebuffer(t.framebuffer)
		t.framebuffer = InvalidID
	}
	device.DeleteTexture(t.handle)
	t.handle = InvalidID
	t.compiled = false
}

// collect performs the fail-fast readiness check over the backing
// images in face order.
func (t *Texture) collect() ([]*metadata.ImageResourceData, error) {
	switch t.kind {
	case TextureKind2D:
		if len(t.faces) != 1 {
			return nil, fmt.Errorf("texture %s: expected 1 backing image, have %d", t.name, len(t.faces))
		}
	case TextureKindCubeMap:
		if len(t.faces) != 6 {
			return nil, fmt.Errorf("texture %s: expected 6 backing images, have %d", t.name, len(t.faces))
		}
	case TextureKindRenderTarget:
		return nil, nil
	}

	images := make([]*metadata.ImageResourceData, len(t.faces))
	for i, face := range t.faces {
		img, err := face.TryGet()
		if err != nil {
			return nil, fmt.Errorf("texture %s: %w", t.name, err)
		}
		images[i] = img
	}
	return images, nil
}
