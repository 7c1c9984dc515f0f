package voucher

import (
	"bytes"

	"github.com/go-pdf/fpdf"
)

// PDFRenderer renders drawing instructions into a PDF document. It is the
// default backend; the builder only knows the Renderer interface.
type PDFRenderer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// NewPDFRenderer creates a renderer with a single A4 portrait page open.
func NewPDFRenderer() *PDFRenderer {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	return &PDFRenderer{
		pdf: pdf,
		// Core fonts are cp1252; translate the Spanish labels.
		tr: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// DrawText places text at (x, y) honoring the style's alignment anchor.
func (p *PDFRenderer) DrawText(x, y float64, text string, style TextStyle) {
	fontStyle := ""
	if style.Bold {
		fontStyle = "B"
	}
	size := style.Size
	if size == 0 {
		size = 10
	}
	p.pdf.SetFont("Helvetica", fontStyle, size)

	encoded := p.tr(text)
	switch style.Align {
	case "C":
		p.pdf.Text(x-p.pdf.GetStringWidth(encoded)/2, y, encoded)
	case "R":
		p.pdf.Text(x-p.pdf.GetStringWidth(encoded), y, encoded)
	default:
		p.pdf.Text(x, y, encoded)
	}
}

// DrawRect draws a rectangle, optionally filled with a light gray band.
func (p *PDFRenderer) DrawRect(x, y, w, h float64, fill bool) {
	if fill {
		p.pdf.SetFillColor(235, 235, 235)
		p.pdf.Rect(x, y, w, h, "FD")
		return
	}
	p.pdf.Rect(x, y, w, h, "D")
}

// DrawLine draws a straight line.
func (p *PDFRenderer) DrawLine(x1, y1, x2, y2 float64) {
	p.pdf.SetDrawColor(120, 120, 120)
	p.pdf.Line(x1, y1, x2, y2)
	p.pdf.SetDrawColor(0, 0, 0)
}

// NewPage starts a fresh page.
func (p *PDFRenderer) NewPage() {
	p.pdf.AddPage()
}

// Bytes finalizes the PDF and returns its binary form.
func (p *PDFRenderer) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Renderer conformance.
var _ Renderer = (*PDFRenderer)(nil)
