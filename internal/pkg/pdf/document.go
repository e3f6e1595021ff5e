// Package pdf renders the allotment reports.
//
// Layout code positions text in PostScript coordinates: points measured from the
// bottom-left corner of a US Letter page. Document adapts those coordinates to
// fpdf, whose origin is the top-left corner.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"
	"github.com/yigit/tcasystem/internal/pkg/logger"
	"golang.org/x/text/encoding/charmap"
)

// Page geometry in points
const (
	PageWidth  = 612.0
	PageHeight = 792.0
)

// Canvas is the drawing surface the report layouts write to
type Canvas interface {
	AddPage()
	SetFont(family, style string, size float64)
	// DrawString writes text with its baseline at (x, y), y measured from the page bottom.
	DrawString(x, y float64, text string)
}

// Document is a Canvas backed by fpdf. Text is written with the core fonts,
// which cover Windows-1252 only; other characters print as '.'.
type Document struct {
	pdf         *fpdf.Fpdf
	translate   func(string) string
	logger      zerolog.Logger
	substituted int
}

// NewDocument creates a document with its first page already added
func NewDocument(title string) *Document {
	p := fpdf.New("P", "pt", "Letter", "")
	p.SetAutoPageBreak(false, 0)
	p.SetCreator("tcasystem", true)
	p.SetTitle(title, true)
	p.AddPage()

	return &Document{
		pdf:       p,
		translate: p.UnicodeTranslatorFromDescriptor("cp1252"),
		logger:    logger.WithComponent("pdf"),
	}
}

// SetLogger replaces the logger that reports substituted characters
func (d *Document) SetLogger(l zerolog.Logger) {
	d.logger = l
}

// AddPage starts a new page
func (d *Document) AddPage() {
	d.pdf.AddPage()
}

// SetFont selects one of the core fonts; style is "" or "B"
func (d *Document) SetFont(family, style string, size float64) {
	d.pdf.SetFont(family, style, size)
}

// DrawString writes text at PostScript coordinates
func (d *Document) DrawString(x, y float64, text string) {
	if missing := Unencodable(text); len(missing) > 0 {
		d.substituted += len(missing)
		d.logger.Warn().
			Str("text", text).
			Str("characters", string(missing)).
			Msg("Characters outside Windows-1252 replaced in PDF")
	}
	d.pdf.Text(x, PageHeight-y, d.translate(text))
}

// Substitutions returns how many characters could not be encoded so far
func (d *Document) Substitutions() int {
	return d.substituted
}

// Unencodable returns the runes of text the core fonts cannot render
func Unencodable(text string) []rune {
	var missing []rune
	for _, r := range text {
		if _, ok := charmap.Windows1252.EncodeRune(r); !ok {
			missing = append(missing, r)
		}
	}
	return missing
}

// PageCount returns the number of pages added so far
func (d *Document) PageCount() int {
	return d.pdf.PageCount()
}

// Bytes finalizes the document and returns the encoded PDF
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
