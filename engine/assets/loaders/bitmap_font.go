package loaders

import (
	"fmt"
	"os"

	"github.com/fzipp/bmfont"

	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
)

// BitmapFontLoader imports AngelCode .fnt descriptors. The page
// images referenced by the descriptor are loaded separately through
// the texture pipeline.
type BitmapFontLoader struct{}

func (fl *BitmapFontLoader) Load(path string, params interface{}) (*metadata.Asset, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("bitmap font %s: %w", path, err)
	}

	resourceData, err := fl.importFNTFile(path)
	if err != nil {
		return nil, err
	}

	return &metadata.Asset{
		ID:       core.NewIdentity(),
		Name:     resourceData.Data.Face,
		FullPath: path,
		Data:     resourceData,
	}, nil
}

func (fl *BitmapFontLoader) Unload(asset *metadata.Asset) error {
	if asset.Data != nil {
		data := asset.Data.(*metadata.BitmapFontResourceData)
		data.Data.Glyphs = nil
		data.Data.Kernings = nil
		data.Pages = nil
		asset.Data = nil
		asset.DataSize = 0
		asset.FullPath = ""
	}
	return nil
}

func (fl *BitmapFontLoader) importFNTFile(fntFileName string) (*metadata.BitmapFontResourceData, error) {
	desc, err := bmfont.LoadDescriptor(fntFileName)
	if err != nil {
		return nil, err
	}

	outData := &metadata.BitmapFontResourceData{
		Data: &metadata.FontData{
			FontType:   metadata.FONT_TYPE_BITMAP,
			Face:       desc.Info.Face,
			Size:       uint32(desc.Info.Size),
			LineHeight: int32(desc.Common.LineHeight),
			Baseline:   int32(desc.Common.Base),
			AtlasSizeX: int32(desc.Common.ScaleW),
			AtlasSizeY: int32(desc.Common.ScaleH),
			Glyphs:     make([]*metadata.FontGlyph, 0, len(desc.Chars)),
			Kernings:   make([]*metadata.FontKerning, 0, len(desc.Kerning)),
		},
		Pages: make([]*metadata.BitmapFontPage, 0, len(desc.Pages)),
	}

	for _, p := range desc.Pages {
		outData.Pages = append(outData.Pages, &metadata.BitmapFontPage{
			ID:   int8(p.ID),
			File: p.File,
		})
	}

	for _, g := range desc.Chars {
		outData.Data.Glyphs = append(outData.Data.Glyphs, &metadata.FontGlyph{
			Codepoint: int32(g.ID),
			X:         uint16(g.X),
			Y:         uint16(g.Y),
			Width:     uint16(g.Width),
			Height:    uint16(g.Height),
			XOffset:   int16(g.XOffset),
			YOffset:   int16(g.YOffset),
			XAdvance:  int16(g.XAdvance),
			PageID:    uint8(g.Page),
		})
	}

	for pair, k := range desc.Kerning {
		outData.Data.Kernings = append(outData.Data.Kernings, &metadata.FontKerning{
			Codepoint0: int32(pair.First),
			Codepoint1: int32(pair.Second),
			Amount:     int16(k.Amount),
		})
	}

	return outData, nil
}
