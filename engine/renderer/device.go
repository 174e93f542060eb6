package renderer

// TextureID is a backend texture object handle.
type TextureID uint32

// FramebufferID is a backend framebuffer object handle.
type FramebufferID uint32

// InvalidID marks an unassigned backend handle.
const InvalidID = 0

// BindTarget selects which binding point a texture operation applies
// to. Render targets bind through the 2D target.
type BindTarget uint8

const (
	Target2D BindTarget = iota
	TargetCubeMap
)

// UploadTarget selects where a pixel upload lands. Cube maps receive
// six uploads, one per face, in the order +X, -X, +Y, -Y, +Z, -Z.
type UploadTarget uint8

const (
	Upload2D UploadTarget = iota
	UploadCubePositiveX
	UploadCubeNegativeX
	UploadCubePositiveY
	UploadCubeNegativeY
	UploadCubePositiveZ
	UploadCubeNegativeZ
)

type Filtering uint8

const (
	FilterNearest Filtering = iota
	FilterLinear
)

type Wrap uint8

const (
	WrapClampToEdge Wrap = iota
	WrapRepeat
)

type WrapAxis uint8

const (
	WrapAxisS WrapAxis = iota
	WrapAxisT
	WrapAxisR
)

// Device is the graphics backend contract. Operations are assumed
// synchronous and immediately effective; errors are reported only by
// the calls that can allocate. Texture parameter calls apply to the
// texture currently bound to the given target.
type Device interface {
	Initialize(appName string, appWidth, appHeight uint32) error
	Shutdown() error
	Resized(width, height uint16) error
	BeginFrame(deltaTime float64) error
	EndFrame(deltaTime float64) error

	CreateTexture() (TextureID, error)
	DeleteTexture(id TextureID)
	ActiveTexture(unit uint8)
	BindTexture(target BindTarget, id TextureID)
	UnbindTexture(target BindTarget)
	UploadTexture(target UploadTarget, width, height uint32, pixels []uint8)
	SetTextureFiltering(target BindTarget, min, mag Filtering)
	SetTextureWrap(target BindTarget, axis WrapAxis, wrap Wrap)

	CreateFramebuffer() (FramebufferID, error)
	DeleteFramebuffer(id FramebufferID)
	BindFramebuffer(id FramebufferID)
	UnbindFramebuffer()
	// AttachTexture attaches the texture as color attachment 0 of the
	// currently bound framebuffer.
	AttachTexture(id TextureID)
}

// NullDevice satisfies Device without touching any GPU. It hands out
// sequential handles so the policy layer above behaves exactly as it
// would against a real backend. Used for headless runs.
type NullDevice struct {
	nextTexture     TextureID
	nextFramebuffer FramebufferID
}

func NewNullDevice() *NullDevice {
	return &NullDevice{}
}

func (d *NullDevice) Initialize(appName string, appWidth, appHeight uint32) error { return nil }
func (d *NullDevice) Shutdown() error                                            { return nil }
func (d *NullDevice) Resized(width, height uint16) error                         { return nil }
func (d *NullDevice) BeginFrame(deltaTime float64) error                         { return nil }
func (d *NullDevice) EndFrame(deltaTime float64) error                           { return nil }

func (d *NullDevice) CreateTexture() (TextureID, error) {
	d.nextTexture++
	return d.nextTexture, nil
}

func (d *NullDevice) DeleteTexture(id TextureID)                                        {}
func (d *NullDevice) ActiveTexture(unit uint8)                                          {}
func (d *NullDevice) BindTexture(target BindTarget, id TextureID)                       {}
func (d *NullDevice) UnbindTexture(target BindTarget)                                   {}
func (d *NullDevice) UploadTexture(target UploadTarget, width, height uint32, p []uint8) {}
func (d *NullDevice) SetTextureFiltering(target BindTarget, min, mag Filtering)         {}
func (d *NullDevice) SetTextureWrap(target BindTarget, axis WrapAxis, wrap Wrap)        {}

func (d *NullDevice) CreateFramebuffer() (FramebufferID, error) {
	d.nextFramebuffer++
	return d.nextFramebuffer, nil
}

func (d *NullDevice) DeleteFramebuffer(id FramebufferID) {}
func (d *NullDevice) BindFramebuffer(id FramebufferID)   {}
func (d *NullDevice) UnbindFramebuffer()                 {}
func (d *NullDevice) AttachTexture(id TextureID)         {}
