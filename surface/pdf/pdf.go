// Package pdf implements drawing surface producing PDF documents.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"

	"rpw/config"
	"rpw/images"
	"rpw/surface"
)

type font struct {
	family string
	style  string
	size   float64
	utf8   bool
}

type level struct {
	font  font
	clips int
}

// Surface draws through gofpdf. gofpdf uses top-left origin so every
// coordinate is flipped against the current page height.
type Surface struct {
	pdf    *gofpdf.Fpdf
	log    *zap.Logger
	enc    *encoding.Encoder
	fonts  map[string]string // lowercased name -> registered family
	images map[string]bool

	height float64
	open   bool
	cur    level
	stack  []level
}

var _ surface.Surface = (*Surface)(nil)

// New creates empty document. TrueType fonts listed in configuration are
// registered under their configured names.
func New(cfg *config.PDFConfig, log *zap.Logger) (*Surface, error) {
	if cfg == nil {
		cfg = &config.PDFConfig{Encoding: "windows-1252"}
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: 595.28, Ht: 841.89},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCompression(cfg.Compress)

	if cfg.Protection.Enable {
		var flags byte
		if cfg.Protection.AllowPrint {
			flags |= gofpdf.CnProtectPrint
		}
		if cfg.Protection.AllowCopy {
			flags |= gofpdf.CnProtectCopy
		}
		pdf.SetProtection(flags, string(cfg.Protection.UserPassword), string(cfg.Protection.OwnerPassword))
	}

	s := &Surface{
		pdf:    pdf,
		log:    log.Named("pdf"),
		fonts:  make(map[string]string),
		images: make(map[string]bool),
	}

	enc, err := ianaindex.IANA.Encoding(cfg.Encoding)
	if err != nil || enc == nil {
		s.log.Warn("Unknown text encoding, using windows-1252", zap.String("encoding", cfg.Encoding), zap.Error(err))
		enc = charmap.Windows1252
	}
	s.enc = encoding.ReplaceUnsupported(enc.NewEncoder())

	for _, f := range cfg.Fonts {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, fmt.Errorf("unable to read font %q: %w", f.Name, err)
		}
		family := strings.ToLower(strings.ReplaceAll(f.Name, " ", ""))
		pdf.AddUTF8FontFromBytes(family, "", data)
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("unable to register font %q: %w", f.Name, err)
		}
		s.fonts[strings.ToLower(f.Name)] = family
		s.log.Debug("Font registered", zap.String("name", f.Name), zap.String("path", f.Path))
	}
	return s, nil
}

func (s *Surface) resolve(name string, size float64) (font, bool) {
	if family, style, ok := surface.CoreFont(name); ok {
		return font{family: family, style: style, size: size}, true
	}
	if family, ok := s.fonts[strings.ToLower(strings.TrimSpace(name))]; ok {
		return font{family: family, size: size, utf8: true}, true
	}
	return font{family: "Helvetica", size: size}, false
}

func (s *Surface) encode(f font, text string) string {
	if f.utf8 {
		return text
	}
	out, err := s.enc.String(text)
	if err != nil {
		return text
	}
	return out
}

func (s *Surface) StringWidth(text, name string, size float64) float64 {
	f, _ := s.resolve(name, size)
	s.pdf.SetFont(f.family, f.style, f.size)
	return s.pdf.GetStringWidth(s.encode(f, text))
}

func (s *Surface) SetInfo(info surface.Info) {
	s.pdf.SetTitle(info.Title, true)
	s.pdf.SetSubject(info.Subject, true)
	s.pdf.SetAuthor(info.Author, true)
	s.pdf.SetKeywords(strings.Join(info.Keywords, " "), true)
	s.pdf.SetCreator(info.Creator, true)
}

func (s *Surface) BeginPage(width, height float64) error {
	if s.open {
		if err := s.EndPage(); err != nil {
			return err
		}
	}
	s.pdf.AddPageFormat("P", gofpdf.SizeType{Wd: width, Ht: height})
	// transformations are only accepted inside a transform block
	s.pdf.TransformBegin()
	s.height, s.open = height, true
	s.cur, s.stack = level{font: font{family: "Helvetica", size: 12}}, nil
	return s.pdf.Error()
}

func (s *Surface) EndPage() error {
	if !s.open {
		return errors.New("no page to end")
	}
	if len(s.stack) != 0 {
		return fmt.Errorf("page ended with %d unrestored graphics states", len(s.stack))
	}
	for range s.cur.clips {
		s.pdf.ClipEnd()
	}
	s.pdf.TransformEnd()
	s.open = false
	return s.pdf.Error()
}

func (s *Surface) Save() {
	s.stack = append(s.stack, s.cur)
	s.cur.clips = 0
	s.pdf.TransformBegin()
}

func (s *Surface) Restore() {
	if len(s.stack) == 0 {
		s.log.Warn("Restore without matching Save ignored")
		return
	}
	for range s.cur.clips {
		s.pdf.ClipEnd()
	}
	s.pdf.TransformEnd()
	s.cur = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *Surface) Translate(dx, dy float64) {
	s.pdf.TransformTranslate(dx, -dy)
}

func (s *Surface) Rotate(degrees float64) {
	s.pdf.TransformRotate(degrees, 0, s.height)
}

func (s *Surface) Scale(sx, sy float64) {
	if sx == 0 || sy == 0 {
		return
	}
	s.pdf.TransformScale(sx*100, sy*100, 0, s.height)
}

func (s *Surface) ClipRect(x, y, w, h float64) {
	s.pdf.ClipRect(x, s.height-y-h, w, h, false)
	s.cur.clips++
}

func rgb(c surface.Color) (int, int, int) {
	conv := func(v float64) int {
		return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return conv(c.R), conv(c.G), conv(c.B)
}

func (s *Surface) stroke(st surface.Stroke) {
	s.pdf.SetLineWidth(st.Width)
	s.pdf.SetDrawColor(rgb(st.Color))
	s.pdf.SetDashPattern(st.Dash, 0)
}

func (s *Surface) Rect(x, y, w, h float64, stroke *surface.Stroke, fill *surface.Color) {
	style := ""
	if fill != nil {
		s.pdf.SetFillColor(rgb(*fill))
		style += "F"
	}
	if stroke != nil {
		s.stroke(*stroke)
		style += "D"
	}
	if style == "" {
		return
	}
	s.pdf.Rect(x, s.height-y-h, w, h, style)
}

func (s *Surface) Line(x1, y1, x2, y2 float64, stroke surface.Stroke) {
	s.stroke(stroke)
	s.pdf.Line(x1, s.height-y1, x2, s.height-y2)
}

func (s *Surface) SetFont(name string, size float64) error {
	f, ok := s.resolve(name, size)
	if !ok {
		return fmt.Errorf("unknown font %q", name)
	}
	s.cur.font = f
	return nil
}

func (s *Surface) Text(x, y float64, text string, color surface.Color) {
	f := s.cur.font
	// font and fill color may have been undone by restore, set both again
	s.pdf.SetFont(f.family, f.style, f.size)
	s.pdf.SetTextColor(rgb(color))
	s.pdf.SetFillColor(rgb(color))
	s.pdf.Text(x, s.height-y, s.encode(f, text))
}

func (s *Surface) Image(img *images.Image, x, y, w, h float64) error {
	opts := gofpdf.ImageOptions{ImageType: strings.ToUpper(img.Format()), AllowNegativePosition: true}
	if !s.images[img.ID] {
		s.pdf.RegisterImageOptionsReader(img.ID, opts, bytes.NewReader(img.Data))
		if s.pdf.Err() {
			err := s.pdf.Error()
			s.pdf.ClearError()
			return fmt.Errorf("unable to embed image: %w", err)
		}
		s.images[img.ID] = true
	}
	s.pdf.ImageOptions(img.ID, x, s.height-y-h, w, h, false, opts, 0, "")
	if s.pdf.Err() {
		err := s.pdf.Error()
		s.pdf.ClearError()
		return fmt.Errorf("unable to draw image: %w", err)
	}
	return nil
}

func (s *Surface) Finish(w io.Writer) error {
	if s.open {
		if err := s.EndPage(); err != nil {
			return err
		}
	}
	if err := s.pdf.Output(w); err != nil {
		return fmt.Errorf("unable to produce PDF: %w", err)
	}
	return nil
}
