package loaders

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font/opentype"

	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
)

// SystemFontLoader reads a font config file listing an OpenType
// collection and the face names to expose from it:
//
//	file=NotoSans.ttc
//	face=NotoSans-Regular
//
// The file= path is resolved relative to the config file.
type SystemFontLoader struct{}

func (fl *SystemFontLoader) Load(path string, params interface{}) (*metadata.Asset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rd := &metadata.SystemFontResourceData{
		Fonts: []*metadata.SystemFontFace{},
	}
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse the file and face keys
		if strings.HasPrefix(line, "file=") {
			filename := strings.TrimPrefix(line, "file=")
			fullPath := filepath.Join(filepath.Dir(path), filename)
			// Read the font data.
			fontBytes, err := os.ReadFile(fullPath)
			if err != nil {
				return nil, err
			}
			f, err := opentype.ParseCollection(fontBytes)
			if err != nil {
				return nil, err
			}
			rd.FontBinary = f
			rd.BinarySize = uint64(len(fontBytes))
		} else if strings.HasPrefix(line, "face=") {
			face := strings.TrimPrefix(line, "face=")
			rd.Fonts = append(rd.Fonts, &metadata.SystemFontFace{
				Name: face,
			})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &metadata.Asset{
		ID:       core.NewIdentity(),
		FullPath: path,
		Data:     rd,
		DataSize: rd.BinarySize,
	}, nil
}

func (fl *SystemFontLoader) Unload(*metadata.Asset) error {
	return nil
}
