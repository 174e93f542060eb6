package renderer

import (
	"github.com/spaghettifunk/aurora/engine/math"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
)

type kerningPair struct {
	first  int32
	second int32
}

// Overlay lays out a line of screen-space text from a bitmap font
// atlas. The glyph quads index into the font's page texture, which
// streams in like any other texture; Draw reports not-ready until the
// page has compiled.
type Overlay struct {
	font    *metadata.FontData
	page    *Texture
	glyphs  map[int32]*metadata.FontGlyph
	kerning map[kerningPair]int16

	text     string
	dirty    bool
	vertices []math.Vertex2D
}

func NewOverlay(font *metadata.FontData, page *Texture) *Overlay {
	o := &Overlay{
		font:    font,
		page:    page,
		glyphs:  make(map[int32]*metadata.FontGlyph, len(font.Glyphs)),
		kerning: make(map[kerningPair]int16, len(font.Kernings)),
	}
	for _, g := range font.Glyphs {
		o.glyphs[g.Codepoint] = g
	}
	for _, k := range font.Kernings {
		o.kerning[kerningPair{k.Codepoint0, k.Codepoint1}] = k.Amount
	}
	return o
}

func (o *Overlay) SetText(text string) {
	if o.text == text {
		return
	}
	o.text = text
	o.dirty = true
}

func (o *Overlay) Text() string {
	return o.text
}

// Layout returns two triangles per glyph, positions in pixels from
// the top-left, texcoords normalized into the atlas. The result is
// cached until the text changes. Glyphs missing from the font are
// skipped.
func (o *Overlay) Layout() []math.Vertex2D {
	if !o.dirty {
		return o.vertices
	}

	o.vertices = o.vertices[:0]
	atlasW := float32(o.font.AtlasSizeX)
	atlasH := float32(o.font.AtlasSizeY)

	var penX, penY float32
	var prev int32 = -1
	for _, r := range o.text {
		if r == '\n' {
			penX = 0
			penY += float32(o.font.LineHeight)
			prev = -1
			continue
		}

		glyph, ok := o.glyphs[int32(r)]
		if !ok {
			prev = -1
			continue
		}

		if prev >= 0 {
			penX += float32(o.kerning[kerningPair{prev, int32(r)}])
		}

		x0 := penX + float32(glyph.XOffset)
		y0 := penY + float32(glyph.YOffset)
		x1 := x0 + float32(glyph.Width)
		y1 := y0 + float32(glyph.Height)

		u0 := float32(glyph.X) / atlasW
		v0 := float32(glyph.Y) / atlasH
		u1 := (float32(glyph.X) + float32(glyph.Width)) / atlasW
		v1 := (float32(glyph.Y) + float32(glyph.Height)) / atlasH

		o.vertices = append(o.vertices,
			math.Vertex2D{Position: math.Vec2{X: x0, Y: y0}, Texcoord: math.Vec2{X: u0, Y: v0}},
			math.Vertex2D{Position: math.Vec2{X: x0, Y: y1}, Texcoord: math.Vec2{X: u0, Y: v1}},
			math.Vertex2D{Position: math.Vec2{X: x1, Y: y1}, Texcoord: math.Vec2{X: u1, Y: v1}},
			math.Vertex2D{Position: math.Vec2{X: x0, Y: y0}, Texcoord: math.Vec2{X: u0, Y: v0}},
			math.Vertex2D{Position: math.Vec2{X: x1, Y: y1}, Texcoord: math.Vec2{X: u1, Y: v1}},
			math.Vertex2D{Position: math.Vec2{X: x1, Y: y0}, Texcoord: math.Vec2{X: u1, Y: v0}},
		)

		penX += float32(glyph.XAdvance)
		prev = int32(r)
	}

	o.dirty = false
	return o.vertices
}

// Draw binds the atlas page to the given unit so a backend pass can
// consume the layout. Not-ready errors mean the page texture is still
// streaming; retry next frame.
func (o *Overlay) Draw(device Device, unit uint8) error {
	return o.page.Bind(device, unit)
}
