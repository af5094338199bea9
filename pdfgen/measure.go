package pdfgen

import (
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// TextMeasurer reports the rendered width of a string in millimetres.
type TextMeasurer interface {
	StringWidth(s string, f Font) float64
}

// fpdfMeasurer uses the core font metrics shipped with gofpdf.
// It keeps the last font selected, so one instance must not be shared across goroutines.
type fpdfMeasurer struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
	cur Font
}

func NewMeasurer() TextMeasurer {
	pdf := gofpdf.New("P", "mm", "A4", "")
	return &fpdfMeasurer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (m *fpdfMeasurer) StringWidth(s string, f Font) float64 {
	if f != m.cur {
		m.pdf.SetFont(f.Family, string(f.Style), f.Size)
		m.cur = f
	}
	return m.pdf.GetStringWidth(m.tr(s))
}

// wrapText breaks text into lines no wider than width. Explicit newlines are kept
// and a paragraph that fits is returned untouched; otherwise runs of spaces
// collapse and a single word longer than width is split by rune.
// Empty input yields one empty line.
func wrapText(m TextMeasurer, text string, f Font, width float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		if strings.TrimSpace(para) != "" && m.StringWidth(para, f) <= width {
			lines = append(lines, strings.TrimRight(para, " "))
			continue
		}
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := ""
		for _, w := range words {
			candidate := w
			if line != "" {
				candidate = line + " " + w
			}
			if m.StringWidth(candidate, f) <= width {
				line = candidate
				continue
			}
			if line != "" {
				lines = append(lines, line)
			}
			line = w
			for m.StringWidth(line, f) > width {
				head, tail := splitRunes(m, line, f, width)
				lines = append(lines, head)
				line = tail
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// splitRunes cuts the longest prefix of s that fits in width, keeping at least one rune.
func splitRunes(m TextMeasurer, s string, f Font, width float64) (string, string) {
	runes := []rune(s)
	n := 1
	for n < len(runes) && m.StringWidth(string(runes[:n+1]), f) <= width {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}
