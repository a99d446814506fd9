// Package images prepares pictures referenced by Image objects so drawing
// surfaces can embed them: everything is normalized to PNG, JPEG or GIF with
// known pixel dimensions.
package images

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"mime"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"rpw/config"
)

// Image is ready to be embedded.
type Image struct {
	// ID is stable for the same source, surfaces use it to embed image data
	// once per document.
	ID       string
	Data     []byte
	MimeType string
	Dim      struct {
		Width  int
		Height int
	}
}

// Format returns short image type name: png, jpg or gif.
func (i *Image) Format() string {
	switch strings.ToLower(i.MimeType) {
	case "image/jpeg":
		return "jpg"
	case "image/gif":
		return "gif"
	}
	return "png"
}

// ErrUnsupported is returned for data which is not a known image.
var ErrUnsupported = errors.New("unsupported image format")

func imageID(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:8])
}

func isSVG(data []byte) bool {
	if bytes.Contains(data[:min(len(data), 1024)], []byte("<svg")) {
		return true
	}
	// prolog and comments may push root element further
	return bytes.HasPrefix(bytes.TrimSpace(data), []byte("<?xml")) && bytes.Contains(data, []byte("<svg"))
}

// Prepare normalizes raw image data. SVG is rasterized, formats PDF can not
// embed are converted to PNG.
func Prepare(data []byte, cfg *config.ImagesConfig, log *zap.Logger) (*Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image: %w", ErrUnsupported)
	}
	if cfg == nil {
		cfg = &config.ImagesConfig{}
	}

	img := &Image{ID: imageID(data), Data: data}

	if isSVG(data) {
		raster, err := RasterizeSVG(data, cfg.SVGScale, cfg.SVGStrokeFactor)
		if err != nil {
			return nil, fmt.Errorf("unable to rasterize svg: %w", err)
		}
		log.Debug("SVG rasterized", zap.String("id", img.ID), zap.Stringer("bounds", raster.Bounds()))
		return encode(img, raster, "png", cfg, log)
	}

	kind, err := filetype.Image(data)
	if err != nil || kind == filetype.Unknown {
		return nil, ErrUnsupported
	}
	img.MimeType = kind.MIME.Value

	decoded, imgType, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unable to decode %s: %w", kind.Extension, err)
	}
	img.Dim.Width = decoded.Bounds().Dx()
	img.Dim.Height = decoded.Bounds().Dy()

	changed := false
	switch imgType {
	case "jpeg", "gif":
	case "png":
		// png is always reencoded, PDF writers do not accept interlaced
		// or 16 bit images
		changed = true
	default:
		log.Debug("Converting image to png", zap.String("id", img.ID), zap.String("type", imgType))
		imgType = "png"
		changed = true
	}

	if imgType == "jpeg" && cfg.Optimize {
		changed = true
	}
	if cfg.Grayscale && !isGray(decoded) {
		decoded = imaging.Grayscale(decoded)
		changed = true
	}
	if !changed {
		return img, nil
	}

	prepared, err := encode(img, decoded, imgType, cfg, log)
	if err != nil {
		return nil, err
	}
	if imgType == "jpeg" && cfg.Optimize && !cfg.Grayscale && len(prepared.Data) >= len(data) {
		log.Debug("Reencoded JPEG is not smaller, keeping original", zap.String("id", img.ID))
		prepared.Data = data
	}
	return prepared, nil
}

func encode(bi *Image, img image.Image, imgType string, cfg *config.ImagesConfig, log *zap.Logger) (*Image, error) {
	if cfg.RemovePNGTransparency && imgType == "png" && !opaque(img) {
		log.Debug("Removing PNG transparency", zap.String("id", bi.ID))
		flat := image.NewRGBA(img.Bounds())
		draw.Draw(flat, flat.Bounds(), &image.Uniform{color.RGBA{255, 255, 255, 255}}, image.Point{}, draw.Src)
		draw.Draw(flat, flat.Bounds(), img, img.Bounds().Min, draw.Over)
		img = flat
	}

	bi.Dim.Width = img.Bounds().Dx()
	bi.Dim.Height = img.Bounds().Dy()

	var buf bytes.Buffer
	switch imgType {
	case "png":
		if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
			return nil, fmt.Errorf("unable to encode png, ID - %s: %w", bi.ID, err)
		}
		bi.Data = buf.Bytes()
	case "jpeg":
		quality := cfg.JPEGQuality
		if quality <= 0 {
			quality = 75
		}
		data, err := encodeJPEG(img, quality, printDensity)
		if err != nil {
			return nil, fmt.Errorf("unable to encode jpeg, ID - %s: %w", bi.ID, err)
		}
		bi.Data = data
	case "gif":
		if err := imaging.Encode(&buf, img, imaging.GIF); err != nil {
			return nil, fmt.Errorf("unable to encode gif, ID - %s: %w", bi.ID, err)
		}
		bi.Data = buf.Bytes()
	default:
		return nil, fmt.Errorf("%s: %w", imgType, ErrUnsupported)
	}
	bi.MimeType = mime.TypeByExtension("." + imgType)
	if bi.MimeType == "" {
		bi.MimeType = "image/" + imgType
	}
	return bi, nil
}

func opaque(img image.Image) bool {
	if oimg, ok := img.(interface{ Opaque() bool }); ok {
		return oimg.Opaque()
	}
	return true
}
