package loaders

import (
	"bytes"
	"fmt"
	"image"
	"os"

	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
)

type ImageLoader struct{}

// DecodeImage decodes raw image bytes in any registered format and
// normalizes the pixels to tightly packed RGBA.
func DecodeImage(data []byte, flipY bool) (*metadata.ImageResourceData, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	if flipY {
		flipVertically(rgba)
	}

	core.LogDebug("decoded %s image %dx%d", format, bounds.Dx(), bounds.Dy())

	return &metadata.ImageResourceData{
		ChannelCount: 4,
		Width:        uint32(bounds.Dx()),
		Height:       uint32(bounds.Dy()),
		Pixels:       rgba.Pix,
	}, nil
}

func flipVertically(img *image.RGBA) {
	height := img.Bounds().Dy()
	row := make([]byte, img.Stride)
	for y := 0; y < height/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(height-1-y)*img.Stride : (height-y)*img.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}

func (il *ImageLoader) Load(path string, params interface{}) (*metadata.Asset, error) {
	flipY := false
	if typedParams, ok := params.(*metadata.ImageResourceParams); ok {
		flipY = typedParams.FlipY
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	imageData, err := DecodeImage(data, flipY)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	return &metadata.Asset{
		ID:       core.NewIdentity(),
		Name:     "image",
		FullPath: path,
		DataSize: uint64(len(imageData.Pixels)),
		Data:     imageData,
	}, nil
}

func (il *ImageLoader) Unload(*metadata.Asset) error {
	return nil
}
