package images

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
)

// density is JFIF pixel density, PDF viewers use it when image is extracted.
type density struct {
	units byte // 1 - dots per inch
	x, y  uint16
}

var printDensity = density{units: 1, x: 300, y: 300}

var (
	soi  = []byte{0xFF, 0xD8}
	app0 = []byte{0xFF, 0xE0}
)

// withJFIF makes sure jpeg stream starts with APP0 segment carrying density.
// Stream is returned unchanged when segment is already there.
func withJFIF(data []byte, d density) ([]byte, bool, error) {
	switch {
	case len(data) < 4:
		return nil, false, errors.New("jpeg stream is too short")
	case !bytes.HasPrefix(data, soi):
		return nil, false, errors.New("missing jpeg SOI marker")
	case bytes.Equal(data[2:4], app0):
		return data, false, nil
	}

	seg := make([]byte, 0, 18)
	seg = append(seg, app0...)
	seg = binary.BigEndian.AppendUint16(seg, 16)
	seg = append(seg, "JFIF\x00"...)
	seg = append(seg, 1, 2, d.units)
	seg = binary.BigEndian.AppendUint16(seg, d.x)
	seg = binary.BigEndian.AppendUint16(seg, d.y)
	seg = append(seg, 0, 0) // no thumbnail

	out := make([]byte, 0, len(data)+len(seg))
	out = append(out, soi...)
	out = append(out, seg...)
	return append(out, data[2:]...), true, nil
}

func encodeJPEG(img image.Image, quality int, d density) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	out, _, err := withJFIF(buf.Bytes(), d)
	return out, err
}

// isGray reports whether all pixels have equal color components, so
// converting img would not change it.
func isGray(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.R != c.G || c.G != c.B {
				return false
			}
		}
	}
	return true
}
