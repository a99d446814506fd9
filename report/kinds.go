package report

//go:generate go tool go-enum --marshal --nocase

// Kind of a band. Report level bands live in Report.Bands, group bands belong
// to their Group.
// ENUM(PageBackground, PageHeader, Detail, GroupHeader, GroupFooter, PageFooter, PageForeground, ReportBegin, ReportEnd)
type BandKind int

// Static reports whether band is positioned by page geometry rather than
// flowed with the records.
func (k BandKind) Static() bool {
	switch k {
	case BandKindPageBackground, BandKindPageHeader, BandKindPageFooter, BandKindPageForeground:
		return true
	}
	return false
}

// Kind of a drawable object.
// ENUM(Rectangle, Line, SpanningLine, String, Paragraph, Image, BarGraph, Frameset)
type ObjectKind int
