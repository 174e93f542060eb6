// Package metadata holds the data structures exchanged between asset
// loaders and the renderer. Loaders produce them, the renderer and
// overlay consume them; neither side imports the other.
package metadata

import (
	"golang.org/x/image/font/opentype"

	"github.com/spaghettifunk/aurora/engine/core"
)

type AssetType int

/** @brief Pre-defined asset types. */
const (
	AssetTypeNone AssetType = iota
	/** @brief Image asset type. */
	AssetTypeImage
	/** @brief Bitmap font asset type. */
	AssetTypeBitmapFont
	/** @brief System font asset type. */
	AssetTypeSystemFont
	/** @brief Binary asset type. */
	AssetTypeBinary
)

/**
 * @brief A generic structure for a loaded asset. All asset loaders
 * load data into these.
 */
type Asset struct {
	/** @brief The unique identifier of the asset. */
	ID core.Identity
	/** @brief The name of the asset. */
	Name string
	/** @brief The full file path of the asset. */
	FullPath string
	/** @brief The size of the asset data in bytes. */
	DataSize uint64
	/** @brief The asset data. */
	Data interface{}
}

/**
 * @brief A structure to hold image resource data.
 */
type ImageResourceData struct {
	/** @brief The number of channels. */
	ChannelCount uint8
	/** @brief The width of the image. */
	Width uint32
	/** @brief The height of the image. */
	Height uint32
	/** @brief The pixel data of the image, tightly packed RGBA. */
	Pixels []uint8
}

/** @brief Parameters used when loading an image. */
type ImageResourceParams struct {
	/** @brief Indicates if the image should be flipped on the y-axis when loaded. */
	FlipY bool
}

type FontGlyph struct {
	Codepoint int32
	X         uint16
	Y         uint16
	Width     uint16
	Height    uint16
	XOffset   int16
	YOffset   int16
	XAdvance  int16
	PageID    uint8
}

type FontKerning struct {
	Codepoint0 int32
	Codepoint1 int32
	Amount     int16
}

type FontType int

const (
	FONT_TYPE_BITMAP FontType = iota
	FONT_TYPE_SYSTEM
)

/**
 * @brief Layout data for a font face: glyph metrics, kerning pairs and
 * the dimensions of the pre-rendered atlas the glyphs index into.
 */
type FontData struct {
	FontType   FontType
	Face       string
	Size       uint32
	LineHeight int32
	Baseline   int32
	AtlasSizeX int32
	AtlasSizeY int32
	Glyphs     []*FontGlyph
	Kernings   []*FontKerning
}

type BitmapFontPage struct {
	ID   int8
	File string
}

type BitmapFontResourceData struct {
	Data  *FontData
	Pages []*BitmapFontPage
}

type SystemFontFace struct {
	Name string
}

type SystemFontResourceData struct {
	Fonts      []*SystemFontFace
	FontBinary *opentype.Collection
	BinarySize uint64
}
