package shopping

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"foodgram/domain"

	"github.com/go-pdf/fpdf"
)

// Renderer turns an aggregated shopping list into a downloadable document.
type Renderer interface {
	Render(items []domain.ShoppingListItem) ([]byte, error)
	ContentType() string
	Extension() string
}

// Lines returns the shopping list as text lines, header first.
func Lines(items []domain.ShoppingListItem) []string {
	lines := make([]string, 0, len(items)+2)
	lines = append(lines, domain.ShoppingListHeader, "")
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s (%s) - %d", item.Name, item.MeasurementUnit, item.TotalAmount))
	}
	return lines
}

type TextRenderer struct{}

func (TextRenderer) Render(items []domain.ShoppingListItem) ([]byte, error) {
	return []byte(strings.Join(Lines(items), "\n") + "\n"), nil
}

func (TextRenderer) ContentType() string { return "text/plain; charset=utf-8" }

func (TextRenderer) Extension() string { return domain.FormatText }

type PDFRenderer struct{}

const (
	pdfFont       = "DejaVu"
	pdfFontSize   = 12
	pdfLineHeight = 7
)

// Core PDF fonts only cover cp1252; names and units may be in any script.
//
//go:embed fonts/DejaVuSansCondensed.ttf
var dejaVuSans []byte

func (PDFRenderer) Render(items []domain.ShoppingListItem) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(domain.ShoppingListHeader, true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddUTF8FontFromBytes(pdfFont, "", dejaVuSans)
	pdf.AddPage()

	for i, line := range Lines(items) {
		size := float64(pdfFontSize)
		if i == 0 {
			size += 4
		}
		pdf.SetFont(pdfFont, "", size)
		pdf.CellFormat(0, pdfLineHeight, line, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (PDFRenderer) ContentType() string { return "application/pdf" }

func (PDFRenderer) Extension() string { return domain.FormatPDF }

// RendererFor picks the renderer for an export format; empty means PDF.
func RendererFor(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", domain.FormatPDF:
		return PDFRenderer{}, nil
	case domain.FormatText:
		return TextRenderer{}, nil
	default:
		return nil, domain.ErrUnsupportedFormat
	}
}
