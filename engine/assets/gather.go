package assets

import (
	"path"
	"strings"
)

const cubemapSuffix = "_cubemap"

// Gather decides, purely from a logical asset name, which raw files
// back it. Names whose stem ends in "_cubemap" (case-insensitive)
// expand to six face files; the suffix is stripped and the face name
// appended, keeping the extension and parent directory. The face order
// is fixed and maps to +X, -X, +Y, -Y, +Z, -Z.
//
// "sky_cubemap.png" expands to sky_right.png, sky_left.png,
// sky_top.png, sky_bottom.png, sky_front.png, sky_back.png.
// Any other name, including one without an extension to carry over to
// the faces, passes through as a single file.
func Gather(name string) (paths []string, cube bool) {
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	if ext == "" || !strings.HasSuffix(strings.ToLower(stem), cubemapSuffix) {
		return []string{name}, false
	}

	base := stem[:len(stem)-len(cubemapSuffix)]
	faces := []string{"right", "left", "top", "bottom", "front", "back"}
	paths = make([]string, len(faces))
	for i, face := range faces {
		paths[i] = base + "_" + face + ext
	}
	return paths, true
}
