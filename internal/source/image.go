// Package source reads tileset image headers. Only the header is parsed;
// pixel data is never decoded.
package source

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

type configDecoder struct {
	format string
	decode func(io.Reader) (image.Config, error)
}

// The tga package registers an empty magic string, which matches any
// header, so image.DecodeConfig cannot be trusted while it is linked in.
// Decoders are picked by extension instead.
var decoders = map[string]configDecoder{
	".png":  {"png", png.DecodeConfig},
	".jpg":  {"jpeg", jpeg.DecodeConfig},
	".jpeg": {"jpeg", jpeg.DecodeConfig},
	".gif":  {"gif", gif.DecodeConfig},
	".bmp":  {"bmp", bmp.DecodeConfig},
	".tif":  {"tiff", tiff.DecodeConfig},
	".tiff": {"tiff", tiff.DecodeConfig},
	".webp": {"webp", webp.DecodeConfig},
	".tga":  {"tga", tga.DecodeConfig},
}

// Extensions lists the tileset image formats Dimensions understands.
var Extensions = func() []string {
	exts := make([]string, 0, len(decoders))
	for ext := range decoders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}()

// Supported reports whether path has a known image extension.
func Supported(path string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Dimensions returns the pixel width and height of the image at path.
func Dimensions(path string) (width, height int, format string, err error) {
	d, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return 0, 0, "", fmt.Errorf("unsupported image format %q", filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, 0, "", err
	}
	defer f.Close()

	cfg, err := d.decode(f)
	if err != nil {
		return 0, 0, "", fmt.Errorf("read image header %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, d.format, nil
}
