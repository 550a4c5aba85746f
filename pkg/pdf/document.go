package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Layout constants (A4 portrait, millimetres)
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	lineHeight   = 6.0
)

// Document builds a paginated A4 PDF for print runs. The API is fluent so
// callers can chain layout calls the same way receipts are composed.
type Document struct {
	pdf       *gofpdf.Fpdf
	contentW  float64
	colWidths []float64
}

// NewDocument creates a new A4 portrait document. The creation date is pinned
// so regenerating the same content yields byte-identical output.
func NewDocument() *Document {
	p := gofpdf.New("P", "mm", "A4", "")
	p.SetMargins(marginLeft, marginTop, marginLeft)
	p.SetAutoPageBreak(false, marginBottom)
	p.SetCreationDate(time.Unix(0, 0).UTC())
	p.SetFont("Helvetica", "", 10)

	return &Document{
		pdf:      p,
		contentW: pageWidth - 2*marginLeft,
	}
}

// AddPage starts a new page.
func (d *Document) AddPage() *Document {
	d.pdf.AddPage()
	return d
}

// RemainingLines returns how many text lines still fit on the current page.
func (d *Document) RemainingLines() int {
	remaining := (pageHeight - marginBottom) - d.pdf.GetY()
	if remaining < 0 {
		return 0
	}
	return int(remaining / lineHeight)
}

// Title writes a bold document title.
func (d *Document) Title(text string) *Document {
	d.pdf.SetFont("Helvetica", "B", 14)
	d.pdf.CellFormat(d.contentW, lineHeight+2, text, "", 1, "L", false, 0, "")
	d.pdf.SetFont("Helvetica", "", 10)
	return d
}

// Heading writes a bold section heading.
func (d *Document) Heading(text string) *Document {
	d.pdf.SetFont("Helvetica", "B", 11)
	d.pdf.CellFormat(d.contentW, lineHeight, text, "", 1, "L", false, 0, "")
	d.pdf.SetFont("Helvetica", "", 10)
	return d
}

// KeyValue writes a "Key: value" line with the key in bold.
func (d *Document) KeyValue(key, value string) *Document {
	d.pdf.SetFont("Helvetica", "B", 10)
	d.pdf.CellFormat(35, lineHeight, key, "", 0, "L", false, 0, "")
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.CellFormat(d.contentW-35, lineHeight, value, "", 1, "L", false, 0, "")
	return d
}

// Text writes a plain line.
func (d *Document) Text(text string) *Document {
	d.pdf.CellFormat(d.contentW, lineHeight, text, "", 1, "L", false, 0, "")
	return d
}

// Separator draws a horizontal rule.
func (d *Document) Separator() *Document {
	y := d.pdf.GetY() + lineHeight/2
	d.pdf.Line(marginLeft, y, pageWidth-marginLeft, y)
	d.pdf.SetY(y + lineHeight/2)
	return d
}

// Space advances the cursor by n blank lines.
func (d *Document) Space(n int) *Document {
	d.pdf.SetY(d.pdf.GetY() + float64(n)*lineHeight)
	return d
}

// TableHeader starts a table: column titles in bold over a rule. Widths are
// fractions of the content width and are reused by subsequent Row calls.
func (d *Document) TableHeader(titles []string, widths []float64) *Document {
	d.colWidths = make([]float64, len(widths))
	for i, w := range widths {
		d.colWidths[i] = w * d.contentW
	}

	d.pdf.SetFont("Helvetica", "B", 10)
	for i, t := range titles {
		align := "L"
		if i > 0 {
			align = "R"
		}
		d.pdf.CellFormat(d.colWidths[i], lineHeight, t, "B", 0, align, false, 0, "")
	}
	d.pdf.Ln(lineHeight)
	d.pdf.SetFont("Helvetica", "", 10)
	return d
}

// Row writes one table row using the widths from the last TableHeader.
func (d *Document) Row(cells ...string) *Document {
	for i, c := range cells {
		if i >= len(d.colWidths) {
			break
		}
		align := "L"
		if i > 0 {
			align = "R"
		}
		d.pdf.CellFormat(d.colWidths[i], lineHeight, c, "", 0, align, false, 0, "")
	}
	d.pdf.Ln(lineHeight)
	return d
}

// PageCount returns the number of pages added so far.
func (d *Document) PageCount() int {
	return d.pdf.PageCount()
}

// Output finalises the document and returns the PDF bytes.
func (d *Document) Output() ([]byte, error) {
	if d.pdf.Err() {
		return nil, fmt.Errorf("pdf: build failed: %w", d.pdf.Error())
	}
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: output failed: %w", err)
	}
	return buf.Bytes(), nil
}
