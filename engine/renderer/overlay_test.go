package renderer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/aurora/engine/math"
	"github.com/spaghettifunk/aurora/engine/renderer"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
	"github.com/spaghettifunk/aurora/engine/resource"
)

// overlayFont is a two-glyph font on a 64x64 atlas with one kerning
// pair, small enough to verify the layout math by hand.
func overlayFont() *metadata.FontData {
	return &metadata.FontData{
		FontType:   metadata.FONT_TYPE_BITMAP,
		Face:       "test",
		Size:       16,
		LineHeight: 20,
		Baseline:   4,
		AtlasSizeX: 64,
		AtlasSizeY: 64,
		Glyphs: []*metadata.FontGlyph{
			{Codepoint: 'A', X: 0, Y: 0, Width: 8, Height: 16, XOffset: 1, YOffset: 2, XAdvance: 10},
			{Codepoint: 'B', X: 8, Y: 0, Width: 8, Height: 16, XOffset: 0, YOffset: 2, XAdvance: 9},
		},
		Kernings: []*metadata.FontKerning{
			{Codepoint0: 'A', Codepoint1: 'B', Amount: -2},
		},
	}
}

func overlayPage() *renderer.Texture {
	return renderer.NewTexture("font_page.png", renderer.TextureKind2D, readyFaces(testImage(64, 64)))
}

func TestOverlayLayoutSingleGlyph(t *testing.T) {
	overlay := renderer.NewOverlay(overlayFont(), overlayPage())
	overlay.SetText("A")

	vertices := overlay.Layout()
	require.Len(t, vertices, 6, "one glyph is two triangles")

	// Quad corners from the glyph offsets: x0=1, y0=2, x1=9, y1=18.
	// Atlas coords normalized over 64: u1=0.125, v1=0.25.
	topLeft := math.Vertex2D{Position: math.Vec2{X: 1, Y: 2}, Texcoord: math.Vec2{X: 0, Y: 0}}
	bottomLeft := math.Vertex2D{Position: math.Vec2{X: 1, Y: 18}, Texcoord: math.Vec2{X: 0, Y: 0.25}}
	bottomRight := math.Vertex2D{Position: math.Vec2{X: 9, Y: 18}, Texcoord: math.Vec2{X: 0.125, Y: 0.25}}
	topRight := math.Vertex2D{Position: math.Vec2{X: 9, Y: 2}, Texcoord: math.Vec2{X: 0.125, Y: 0}}

	assert.Equal(t, topLeft, vertices[0])
	assert.Equal(t, bottomLeft, vertices[1])
	assert.Equal(t, bottomRight, vertices[2])
	assert.Equal(t, topLeft, vertices[3])
	assert.Equal(t, bottomRight, vertices[4])
	assert.Equal(t, topRight, vertices[5])
}

func TestOverlayLayoutAppliesKerning(t *testing.T) {
	overlay := renderer.NewOverlay(overlayFont(), overlayPage())
	overlay.SetText("AB")

	vertices := overlay.Layout()
	require.Len(t, vertices, 12)

	// B starts at A's advance (10) pulled back by the kerning pair (-2).
	assert.Equal(t, float32(8), vertices[6].Position.X)
	assert.Equal(t, float32(2), vertices[6].Position.Y)
}

func TestOverlayLayoutNewline(t *testing.T) {
	overlay := renderer.NewOverlay(overlayFont(), overlayPage())
	overlay.SetText("A\nB")

	vertices := overlay.Layout()
	require.Len(t, vertices, 12)

	// The pen returns to the left edge and drops one line. The A-B
	// kerning pair must not apply across the break.
	assert.Equal(t, float32(0), vertices[6].Position.X)
	assert.Equal(t, float32(22), vertices[6].Position.Y)
}

func TestOverlayLayoutSkipsMissingGlyphs(t *testing.T) {
	overlay := renderer.NewOverlay(overlayFont(), overlayPage())
	overlay.SetText("A?B")

	vertices := overlay.Layout()
	require.Len(t, vertices, 12, "unknown rune produces no quad")

	// The pen still advanced past A, but the kerning chain is broken,
	// so B sits at plain x=10 instead of the kerned 8.
	assert.Equal(t, float32(10), vertices[6].Position.X)
}

func TestOverlayLayoutFollowsText(t *testing.T) {
	overlay := renderer.NewOverlay(overlayFont(), overlayPage())

	assert.Empty(t, overlay.Layout())

	overlay.SetText("A")
	assert.Equal(t, "A", overlay.Text())
	assert.Len(t, overlay.Layout(), 6)

	// Unchanged text returns the cached layout.
	assert.Len(t, overlay.Layout(), 6)

	overlay.SetText("AB")
	assert.Len(t, overlay.Layout(), 12)

	overlay.SetText("")
	assert.Empty(t, overlay.Layout())
}

func TestOverlayDrawBindsPage(t *testing.T) {
	device := newRecordingDevice()
	overlay := renderer.NewOverlay(overlayFont(), overlayPage())
	overlay.SetText("A")

	require.NoError(t, overlay.Draw(device, 2))

	n := len(device.calls)
	require.GreaterOrEqual(t, n, 2)
	assert.Equal(t, "active_texture:2", device.calls[n-2])
	assert.Equal(t, "bind_texture:2d:1", device.calls[n-1])
}

func TestOverlayDrawWhilePageStreaming(t *testing.T) {
	device := newRecordingDevice()
	pending := resource.New[*metadata.ImageResourceData]()
	page := renderer.NewTexture("font_page.png", renderer.TextureKind2D,
		[]*resource.Resource[*metadata.ImageResourceData]{pending})
	overlay := renderer.NewOverlay(overlayFont(), page)

	assert.ErrorIs(t, overlay.Draw(device, 0), resource.ErrNotReady)
	assert.Empty(t, device.calls)
}
