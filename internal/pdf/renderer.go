package pdf

import (
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// ErrTemplateMissing reports that the rinde background template is not present
// on disk. This is a deployment problem, not a caller problem.
var ErrTemplateMissing = errors.New("rinde template not found")

// A4 page size in points.
const (
	pageWidth  = 595.28
	pageHeight = 841.89
)

const masterQuote = `"No falten y no lleguen tarde..." - Master VII DAN Fernando A. Monteros`

// Assets locates the binary files the renderers composite or embed.
type Assets struct {
	RindeTemplatePath string
	LogoPath          string
	SecondaryLogoPath string
}

// Renderer produces the school's printable exam forms. It holds no state
// between renders; the clock is injectable so age computations are testable.
type Renderer struct {
	assets Assets
	now    func() time.Time
}

// NewRenderer constructs a Renderer.
func NewRenderer(assets Assets, now func() time.Time) *Renderer {
	if now == nil {
		now = time.Now
	}
	return &Renderer{assets: assets, now: now}
}

func newA4() (*gofpdf.Fpdf, func(string) string) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	return pdf, tr
}

func centeredText(pdf *gofpdf.Fpdf, y float64, text string) {
	w := pdf.GetStringWidth(text)
	pdf.Text((pageWidth-w)/2, y, text)
}

func rightText(pdf *gofpdf.Fpdf, xRight, y float64, text string) {
	w := pdf.GetStringWidth(text)
	pdf.Text(xRight-w, y, text)
}

// embedImage places an optional image, best-effort: a missing or undecodable
// file is skipped and reported via the return value, which callers are free to
// ignore. The file is sniffed before it reaches gofpdf so a bad asset cannot
// poison the document's sticky error state.
func embedImage(pdf *gofpdf.Fpdf, path string, x, y, w, h float64) bool {
	if path == "" {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	_, format, err := image.DecodeConfig(f)
	_ = f.Close()
	if err != nil {
		return false
	}

	var imageType string
	switch format {
	case "jpeg":
		imageType = "JPEG"
	case "png":
		imageType = "PNG"
	default:
		return false
	}

	opts := gofpdf.ImageOptions{ImageType: imageType, ReadDpi: false}
	pdf.ImageOptions(path, x, y, w, h, false, opts, 0, "")
	return pdf.Ok()
}

// wrapLines splits text into lines no longer than width runes, preserving
// explicit newlines.
func wrapLines(text string, width int) []string {
	var out []string
	for _, raw := range splitNewlines(text) {
		runes := []rune(raw)
		if len(runes) == 0 {
			out = append(out, "")
			continue
		}
		for len(runes) > width {
			out = append(out, string(runes[:width]))
			runes = runes[width:]
		}
		out = append(out, string(runes))
	}
	return out
}

func splitNewlines(text string) []string {
	var lines []string
	start := 0
	for i, c := range text {
		if c == '\n' {
			lines = append(lines, text[start:i])
			start = i + 1
		}
	}
	lines = append(lines, text[start:])
	return lines
}
