package renderer_test

import (
	"bytes"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/aurora/engine/assets"
	"github.com/spaghettifunk/aurora/engine/renderer"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestRenderer(t *testing.T, device renderer.Device, files map[string][]byte) *renderer.Renderer {
	t.Helper()
	am, err := assets.NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(t.TempDir(), 1))
	am.SetSource(assets.NewMapSource(files))
	t.Cleanup(func() { am.Shutdown() })
	return renderer.New(device, am, 800, 600)
}

func drawUntil(t *testing.T, r *renderer.Renderer, cond func() bool) {
	t.Helper()
	require.Eventually(t, func() bool {
		require.NoError(t, r.DrawFrame(&renderer.RenderPacket{DeltaTime: 0.016}))
		return cond()
	}, time.Second, 5*time.Millisecond)
}

func TestAcquireTextureCaches(t *testing.T) {
	r := newTestRenderer(t, renderer.NewNullDevice(), map[string][]byte{
		"rock.png": pngBytes(t, 2, 2),
	})

	first := r.AcquireTexture("rock.png")
	second := r.AcquireTexture("rock.png")

	assert.Same(t, first, second)
	assert.Equal(t, 1, r.TextureCount())
	assert.Equal(t, renderer.TextureKind2D, first.Kind())
	assert.Equal(t, "rock.png", first.Name())
}

func TestAcquireTextureExpandsCubeMapNames(t *testing.T) {
	r := newTestRenderer(t, renderer.NewNullDevice(), nil)

	texture := r.AcquireTexture("sky_cubemap.png")

	assert.Equal(t, renderer.TextureKindCubeMap, texture.Kind())
	assert.Equal(t, "sky_cubemap.png", texture.Name())
	assert.Equal(t, 1, r.TextureCount())
}

func TestTextureCompilesDuringDrawFrame(t *testing.T) {
	r := newTestRenderer(t, renderer.NewNullDevice(), map[string][]byte{
		"rock.png": pngBytes(t, 2, 2),
	})

	texture := r.AcquireTexture("rock.png")
	assert.False(t, texture.Compiled(), "acquire alone must not compile")

	// The frame loop retries until the decode settles.
	drawUntil(t, r, texture.Compiled)

	width, height := texture.Size()
	assert.Equal(t, uint32(2), width)
	assert.Equal(t, uint32(2), height)
}

func TestMissingTextureNeverFailsTheFrame(t *testing.T) {
	r := newTestRenderer(t, renderer.NewNullDevice(), map[string][]byte{})

	texture := r.AcquireTexture("nope.png")
	for i := 0; i < 5; i++ {
		require.NoError(t, r.DrawFrame(&renderer.RenderPacket{DeltaTime: 0.016}))
		assert.False(t, texture.Compiled())
	}
}

func TestReleaseTextureEvicts(t *testing.T) {
	r := newTestRenderer(t, renderer.NewNullDevice(), map[string][]byte{
		"rock.png": pngBytes(t, 2, 2),
	})

	first := r.AcquireTexture("rock.png")
	drawUntil(t, r, first.Compiled)

	r.ReleaseTexture("rock.png")
	assert.Equal(t, 0, r.TextureCount())
	assert.False(t, first.Compiled())

	// The next acquire starts fresh.
	second := r.AcquireTexture("rock.png")
	assert.NotSame(t, first, second)
}

func TestAcquireRenderTarget(t *testing.T) {
	r := newTestRenderer(t, renderer.NewNullDevice(), nil)

	target := r.AcquireRenderTarget("offscreen", 256, 128)
	assert.Same(t, target, r.AcquireRenderTarget("offscreen", 256, 128))
	assert.Equal(t, renderer.TextureKindRenderTarget, target.Kind())

	// No backing images, so the first frame compiles it.
	require.NoError(t, r.DrawFrame(&renderer.RenderPacket{DeltaTime: 0.016}))
	assert.True(t, target.Compiled())
	assert.NotEqual(t, renderer.FramebufferID(renderer.InvalidID), target.Framebuffer())

	width, height := target.Size()
	assert.Equal(t, uint32(256), width)
	assert.Equal(t, uint32(128), height)
}

func TestRendererReset(t *testing.T) {
	r := newTestRenderer(t, renderer.NewNullDevice(), map[string][]byte{
		"rock.png": pngBytes(t, 2, 2),
	})

	r.AcquireTexture("rock.png")
	r.AcquireTexture("dirt.png")
	r.AcquireRenderTarget("offscreen", 64, 64)
	require.Equal(t, 3, r.TextureCount())

	r.Reset()
	assert.Equal(t, 0, r.TextureCount())
}

func TestOverlayTextNeedsFont(t *testing.T) {
	r := newTestRenderer(t, renderer.NewNullDevice(), map[string][]byte{
		"font_page.png": pngBytes(t, 4, 4),
	})

	// Without a font installed the overlay text is dropped.
	r.SetOverlayText("fps: 60")
	require.Nil(t, r.Overlay())

	r.SetOverlayFont(overlayFont(), "font_page.png")
	require.NotNil(t, r.Overlay())
	assert.Equal(t, 1, r.TextureCount(), "the page loads through the texture cache")

	r.SetOverlayText("fps: 60")
	assert.Equal(t, "fps: 60", r.Overlay().Text())
}

func TestDrawFrameToleratesStreamingOverlay(t *testing.T) {
	// The page image never arrives; the overlay stays silent instead
	// of failing the frame.
	r := newTestRenderer(t, renderer.NewNullDevice(), map[string][]byte{})
	r.SetOverlayFont(overlayFont(), "font_page.png")
	r.SetOverlayText("fps: 60")

	for i := 0; i < 3; i++ {
		require.NoError(t, r.DrawFrame(&renderer.RenderPacket{DeltaTime: 0.016}))
	}
}
