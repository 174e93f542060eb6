package assets_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/aurora/engine/assets"
	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
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

func newManager(t *testing.T, dir string) *assets.AssetManager {
	t.Helper()
	am, err := assets.NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(dir, 2))
	t.Cleanup(func() { am.Shutdown() })
	return am
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestLoadImageDecodes(t *testing.T) {
	am := newManager(t, t.TempDir())
	am.SetSource(assets.NewMapSource(map[string][]byte{
		"rock.png": pngBytes(t, 2, 3),
	}))

	img, err := am.LoadImage("rock.png", false).Wait(waitCtx(t))
	require.NoError(t, err)

	assert.Equal(t, uint32(2), img.Width)
	assert.Equal(t, uint32(3), img.Height)
	assert.Equal(t, uint8(4), img.ChannelCount)
	assert.Len(t, img.Pixels, 2*3*4)
}

func TestLoadImageMissing(t *testing.T) {
	am := newManager(t, t.TempDir())
	am.SetSource(assets.NewMapSource(nil))

	_, err := am.LoadImage("nope.png", false).Wait(waitCtx(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorContains(t, err, "nope.png")
}

func TestLoadImageSetFacesFailIndependently(t *testing.T) {
	am := newManager(t, t.TempDir())
	am.SetSource(assets.NewMapSource(map[string][]byte{
		"a.png": pngBytes(t, 1, 1),
	}))

	handles := am.LoadImageSet([]string{"a.png", "b.png"}, false)
	require.Len(t, handles, 2)

	_, err := handles[0].Wait(waitCtx(t))
	assert.NoError(t, err)

	_, err = handles[1].Wait(waitCtx(t))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPreloadExpandsCubeMapNames(t *testing.T) {
	files := map[string][]byte{
		"rock.png": pngBytes(t, 1, 1),
	}
	for _, face := range []string{"right", "left", "top", "bottom", "front", "back"} {
		files["sky_"+face+".png"] = pngBytes(t, 1, 1)
	}

	am := newManager(t, t.TempDir())
	am.SetSource(assets.NewMapSource(files))

	assert.NoError(t, am.Preload(waitCtx(t), "rock.png", "sky_cubemap.png"))
}

func TestPreloadFailsOnMissingFace(t *testing.T) {
	files := map[string][]byte{}
	for _, face := range []string{"right", "left", "top", "bottom", "front"} {
		files["sky_"+face+".png"] = pngBytes(t, 1, 1)
	}

	am := newManager(t, t.TempDir())
	am.SetSource(assets.NewMapSource(files))

	err := am.Preload(waitCtx(t), "sky_cubemap.png")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorContains(t, err, "sky_back.png")
}

func TestLoadAssetImageFromDisk(t *testing.T) {
	dir := t.TempDir()
	am := newManager(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "img.png"), pngBytes(t, 4, 4), 0o644))

	asset, err := am.LoadAsset("img.png", nil)
	require.NoError(t, err)

	assert.Equal(t, "img.png", asset.Name)
	data, ok := asset.Data.(*metadata.ImageResourceData)
	require.True(t, ok)
	assert.Equal(t, uint32(4), data.Width)
	assert.Equal(t, uint32(4), data.Height)

	assert.NoError(t, am.UnloadAsset(asset))
}

func TestLoadAssetUnknownType(t *testing.T) {
	am := newManager(t, t.TempDir())

	_, err := am.LoadAsset("notes.txt", nil)
	assert.ErrorContains(t, err, "unknown asset type")
}

const testFNT = `info face="test" size=16 bold=0 italic=0 charset="" unicode=1 stretchH=100 smooth=1 aa=1 padding=0,0,0,0 spacing=1,1 outline=0
common lineHeight=20 base=16 scaleW=64 scaleH=64 pages=1 packed=0 alphaChnl=1 redChnl=0 greenChnl=0 blueChnl=0
page id=0 file="test_0.png"
chars count=2
char id=65 x=0 y=0 width=8 height=16 xoffset=1 yoffset=2 xadvance=10 page=0 chnl=15
char id=66 x=8 y=0 width=8 height=16 xoffset=0 yoffset=2 xadvance=9 page=0 chnl=15
kernings count=1
kerning first=65 second=66 amount=-2
`

func TestLoadAssetBitmapFont(t *testing.T) {
	dir := t.TempDir()
	am := newManager(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "font.fnt"), []byte(testFNT), 0o644))

	asset, err := am.LoadAsset("font.fnt", nil)
	require.NoError(t, err)

	data, ok := asset.Data.(*metadata.BitmapFontResourceData)
	require.True(t, ok)
	assert.Equal(t, "test", data.Data.Face)
	assert.Equal(t, uint32(16), data.Data.Size)
	assert.Equal(t, int32(20), data.Data.LineHeight)
	assert.Equal(t, int32(64), data.Data.AtlasSizeX)
	assert.Len(t, data.Data.Glyphs, 2)
	assert.Len(t, data.Data.Kernings, 1)
	require.Len(t, data.Pages, 1)
	assert.Equal(t, "test_0.png", data.Pages[0].File)

	kerning := data.Data.Kernings[0]
	assert.Equal(t, int32('A'), kerning.Codepoint0)
	assert.Equal(t, int32('B'), kerning.Codepoint1)
	assert.Equal(t, int16(-2), kerning.Amount)

	require.NoError(t, am.UnloadAsset(asset))
	assert.Nil(t, asset.Data)
}

func TestLoadAssetBinary(t *testing.T) {
	dir := t.TempDir()
	am := newManager(t, dir)
	blob := []byte{0xde, 0xad, 0xbe, 0xef}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "table.dat"), blob, 0o644))

	asset, err := am.LoadAsset("table.dat", nil)
	require.NoError(t, err)

	assert.Equal(t, blob, asset.Data)
	assert.Equal(t, uint64(len(blob)), asset.DataSize)
}

func TestLoadAssetSystemFontFaces(t *testing.T) {
	dir := t.TempDir()
	am := newManager(t, dir)
	cfg := "# system font faces\nface=NotoSans-Regular\nface=NotoSans-Bold\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "noto.fontcfg"), []byte(cfg), 0o644))

	asset, err := am.LoadAsset("noto.fontcfg", nil)
	require.NoError(t, err)

	data, ok := asset.Data.(*metadata.SystemFontResourceData)
	require.True(t, ok)
	require.Len(t, data.Fonts, 2)
	assert.Equal(t, "NotoSans-Regular", data.Fonts[0].Name)
	assert.Equal(t, "NotoSans-Bold", data.Fonts[1].Name)
}

func TestChecksumIndexesExistingFiles(t *testing.T) {
	dir := t.TempDir()
	data := pngBytes(t, 2, 2)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "img.png"), data, 0o644))

	am := newManager(t, dir)

	sum, ok := am.Checksum("img.png")
	require.True(t, ok, "files present at startup are indexed")
	assert.Equal(t, xxhash.Sum64(data), sum)

	_, ok = am.Checksum("ghost.png")
	assert.False(t, ok)
}

func TestWatcherPicksUpNewFiles(t *testing.T) {
	dir := t.TempDir()
	am := newManager(t, dir)

	data := pngBytes(t, 1, 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hot.png"), data, 0o644))

	require.Eventually(t, func() bool {
		sum, ok := am.Checksum("hot.png")
		return ok && sum == xxhash.Sum64(data)
	}, 2*time.Second, 10*time.Millisecond)

	// The change is also re-emitted for engine-side listeners.
	select {
	case e := <-am.Events():
		assert.Contains(t, e.Name, "hot.png")
	case <-time.After(2 * time.Second):
		t.Fatal("no change event emitted")
	}
}

func TestGuardBeforeInitialize(t *testing.T) {
	am, err := assets.NewAssetManager()
	require.NoError(t, err)
	t.Cleanup(func() { am.Shutdown() })

	_, err = am.LoadImage("rock.png", false).Wait(waitCtx(t))
	assert.ErrorIs(t, err, core.ErrNotInitialized)

	_, err = am.LoadAsset("rock.png", nil)
	assert.ErrorIs(t, err, core.ErrNotInitialized)
}

func TestGuardAfterShutdown(t *testing.T) {
	am, err := assets.NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(t.TempDir(), 1))

	require.NoError(t, am.Shutdown())

	_, err = am.LoadImage("rock.png", false).Wait(waitCtx(t))
	assert.ErrorIs(t, err, core.ErrShuttingDown)

	_, err = am.LoadAsset("rock.png", nil)
	assert.ErrorIs(t, err, core.ErrShuttingDown)

	// Shutdown is idempotent.
	assert.NoError(t, am.Shutdown())
}
