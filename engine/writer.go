// Package engine lays out banded reports page by page and renders them
// through a drawing surface.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"go.uber.org/zap"

	"rpw/common"
	"rpw/config"
	"rpw/datasource"
	"rpw/images"
	"rpw/props"
	"rpw/report"
	"rpw/surface"
	"rpw/units"
)

const epsilon = 1e-6

// Options control single render.
type Options struct {
	// ShowBandOutlines draws dotted frame and caption around every band.
	ShowBandOutlines bool
	// UseTestCursor renders records embedded in the form instead of the
	// supplied cursor.
	UseTestCursor bool
	// LeaveOpen does not finish the surface, so more reports can be
	// appended to the same document.
	LeaveOpen bool
	// Output receives finished document, nil discards it.
	Output io.Writer
	// Resources is used to look up images with relative paths, nil means
	// local file system.
	Resources fs.FS
	Images    *config.ImagesConfig
	Creator   string
}

// writer keeps state of a single render.
type writer struct {
	ctx  context.Context
	rpt  *report.Report
	s    surface.Surface
	res  *props.Resolver
	env  *props.Context
	log  *zap.Logger
	opts Options

	draw    *drawer
	tracker *tracker
	spans   *spans

	page                     units.Size
	ml, mr, mt, mb           float64
	columns, column          int
	headerHeight, footHeight float64

	// y is the top of free space in the current column.
	y float64
}

// Write renders report for every record of cur onto s.
func Write(ctx context.Context, rpt *report.Report, cur datasource.Cursor, s surface.Surface, opts Options, log *zap.Logger) error {
	if err := report.Validate(rpt); err != nil {
		return err
	}
	w, err := newWriter(ctx, rpt, s, opts, log)
	if err != nil {
		return err
	}
	if opts.UseTestCursor {
		if cur, err = w.testCursor(); err != nil {
			return err
		}
	}

	w.log.Debug("Rendering report", zap.Int("records", len(cur)), zap.Int("columns", w.columns),
		zap.Float64("width", w.page.Width), zap.Float64("height", w.page.Height))
	if err := w.run(cur); err != nil {
		return err
	}
	w.log.Debug("Report rendered", zap.Int("pages", w.env.PageNumber), zap.Int("records", w.env.RecordNumber))

	if opts.LeaveOpen {
		return nil
	}
	out := opts.Output
	if out == nil {
		out = io.Discard
	}
	return s.Finish(out)
}

func newWriter(ctx context.Context, rpt *report.Report, s surface.Surface, opts Options, log *zap.Logger) (*writer, error) {
	log = log.Named("engine")
	env := props.NewContext()
	res := props.NewResolver(env, log)

	w := &writer{
		ctx:   ctx,
		rpt:   rpt,
		s:     s,
		res:   res,
		env:   env,
		log:   log,
		opts:  opts,
		spans: newSpans(),
	}

	page := rpt.Page
	if page == nil {
		page = &report.Page{}
	}
	orient, err := common.ParsePageOrientation(res.String(page, "Orientation"))
	if err != nil {
		return nil, &report.ConfigError{Where: "Page", Prop: "Orientation", Err: err}
	}
	if w.page, err = units.PageSize(res.Value(page, "Size"), orient); err != nil {
		return nil, &report.ConfigError{Where: "Page", Prop: "Size", Err: err}
	}
	w.ml = res.Points(page, "MarginLeft")
	w.mr = res.Points(page, "MarginRight")
	w.mt = res.Points(page, "MarginTop")
	w.mb = res.Points(page, "MarginBottom")
	w.columns = max(res.Int(rpt, "ColumnCount"), 1)

	if pf := rpt.Band(report.BandKindPageFooter); pf != nil && Dynamic(res, pf) {
		return nil, &report.ConfigError{Where: "PageFooter", Prop: "Height", Err: errors.New("page footer height must be fixed")}
	}

	s.SetInfo(surface.Info{
		Title:    res.String(rpt, "Title"),
		Subject:  res.String(rpt, "Subject"),
		Author:   res.String(rpt, "Author"),
		Keywords: res.Strings(rpt, "Keywords"),
		Creator:  opts.Creator,
	})

	w.draw = newDrawer(s, res, images.NewLoader(rpt.HomeDir, opts.Resources, opts.Images, log), log)
	w.tracker = newTracker(rpt, res, log)
	return w, nil
}

// testCursor evaluates fixture records embedded in the form.
func (w *writer) testCursor() (datasource.Cursor, error) {
	cur := make(datasource.Cursor, 0, len(w.rpt.TestCursor))
	for i, tr := range w.rpt.TestCursor {
		rec := make(datasource.Record, len(tr.Fields))
		for _, f := range tr.Fields {
			v, err := w.res.Eval(f.Expr)
			if err != nil {
				return nil, &report.ConfigError{Where: fmt.Sprintf("TestCursor/Record[%d]", i), Prop: f.Name, Err: err}
			}
			rec[f.Name] = v
		}
		cur = append(cur, rec)
	}
	return cur, nil
}

func (w *writer) run(cur datasource.Cursor) error {
	groups := w.rpt.Groups

	// page header may refer to the first record
	if len(cur) > 0 {
		w.env.Record = cur[0]
	}
	// static bands may refer to variables
	w.tracker.Refresh(false)
	if err := w.beginPage(); err != nil {
		return err
	}
	if err := w.printReportBand(report.BandKindReportBegin); err != nil {
		return err
	}

	for idx, rec := range cur {
		prev := w.env.Record
		w.env.Record = rec

		if idx > 0 {
			changed := w.tracker.DetectChanges()
			// footers show values of the record which closed the group
			w.env.Record = prev
			for i := len(groups) - 1; i >= 0; i-- {
				if changed[i] {
					if err := w.printBand(groups[i].Footer, report.BandKindGroupFooter, groups[i]); err != nil {
						return err
					}
				}
			}
			w.env.Record = rec
			w.tracker.Refresh(false)
		}

		newPage := false
		for i, g := range groups {
			if !w.tracker.Pending(i) {
				continue
			}
			if w.res.Bool(g, "ResetPageNumber") {
				if w.env.RecordNumber == 0 {
					w.env.PageNumber = 1
				} else {
					w.env.PageNumber = 0
				}
			}
			w.tracker.Enter(i)
			if w.res.Bool(g, "StartOnNewPage") && w.env.RecordNumber > 0 && !newPage {
				if err := w.endPage(); err != nil {
					return err
				}
				if err := w.beginPage(); err != nil {
					return err
				}
				newPage = true
			}
			if err := w.printBand(g.Header, report.BandKindGroupHeader, g); err != nil {
				return err
			}
		}

		if err := w.printBand(w.rpt.Band(report.BandKindDetail), report.BandKindDetail, nil); err != nil {
			return err
		}
		w.env.RecordNumber++
	}

	if len(cur) > 0 {
		for i := len(groups) - 1; i >= 0; i-- {
			if err := w.printBand(groups[i].Footer, report.BandKindGroupFooter, groups[i]); err != nil {
				return err
			}
		}
	}
	if err := w.printReportBand(report.BandKindReportEnd); err != nil {
		return err
	}
	return w.endPage()
}

// printReportBand prints ReportBegin or ReportEnd honoring their page break
// properties.
func (w *writer) printReportBand(kind report.BandKind) error {
	band := w.rpt.Band(kind)
	if band == nil {
		return nil
	}
	if kind == report.BandKindReportEnd && w.res.Bool(band, "PageBreakBefore") {
		if err := w.newPage(); err != nil {
			return err
		}
	}
	if err := w.printBand(band, kind, nil); err != nil {
		return err
	}
	if kind == report.BandKindReportBegin && w.res.Bool(band, "PageBreakAfter") {
		return w.newPage()
	}
	return nil
}

func (w *writer) newPage() error {
	if err := w.endPage(); err != nil {
		return err
	}
	return w.beginPage()
}
