package images

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"math"
	"regexp"
	"strconv"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// used when SVG has no usable viewBox
const defaultSVGSize = 512

// maxRasterDim limits either side of rasterized SVG so enormous viewBox
// values can not exhaust memory.
var maxRasterDim = 8192

var strokeWidthRe = regexp.MustCompile(`(stroke-width\s*[=:]\s*["']?)(\d+(?:\.\d+)?)(["']?)`)

// ScaleSVGStrokeWidth multiplies all stroke-width values in SVG data by
// factor. Data is returned unchanged when factor is <= 0 or 1.
func ScaleSVGStrokeWidth(svgData []byte, factor float64) []byte {
	if factor <= 0 || factor == 1.0 {
		return svgData
	}

	return strokeWidthRe.ReplaceAllFunc(svgData, func(match []byte) []byte {
		sub := strokeWidthRe.FindSubmatch(match)
		if len(sub) < 4 {
			return match
		}
		value, err := strconv.ParseFloat(string(sub[2]), 64)
		if err != nil {
			return match
		}
		scaled := strconv.FormatFloat(value*factor, 'f', -1, 64)
		out := append([]byte{}, sub[1]...)
		out = append(out, scaled...)
		return append(out, sub[3]...)
	})
}

// RasterizeSVG renders SVG on white background. Intrinsic size taken from
// viewBox is multiplied by scale (1 when scale <= 0), strokes are widened by
// strokeFactor.
func RasterizeSVG(svgData []byte, scale, strokeFactor float64) (image.Image, error) {
	svgData = ScaleSVGStrokeWidth(svgData, strokeFactor)

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, err
	}

	if scale <= 0 {
		scale = 1
	}
	intrW, intrH := icon.ViewBox.W, icon.ViewBox.H
	if intrW <= 0 {
		intrW = defaultSVGSize
	}
	if intrH <= 0 {
		intrH = defaultSVGSize
	}

	w := max(int(math.Round(intrW*scale)), 1)
	h := max(int(math.Round(intrH*scale)), 1)
	if w > maxRasterDim || h > maxRasterDim {
		s := min(float64(maxRasterDim)/float64(w), float64(maxRasterDim)/float64(h))
		w = max(int(math.Round(float64(w)*s)), 1)
		h = max(int(math.Round(float64(h)*s)), 1)
	}

	icon.SetTarget(0, 0, float64(w), float64(h))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.RGBA{255, 255, 255, 255}}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)
	return dst, nil
}
