package pdfgen

import "math"

type valign int

const (
	valignTop valign = iota
	valignMiddle
)

// tableCell is one pre-wrapped grid cell.
type tableCell struct {
	lines   []string
	font    Font
	align   Align
	valign  valign
	padding float64
}

func (c *Composer) newCell(text string, font Font, width, padding float64, align Align, va valign) tableCell {
	return tableCell{
		lines:   wrapText(c.m, text, font, width-2*padding),
		font:    font,
		align:   align,
		valign:  va,
		padding: padding,
	}
}

func lineHeight(f Font) float64 {
	return f.Size * ptToMM * 1.15
}

func (t tableCell) contentHeight() float64 {
	return float64(len(t.lines)) * lineHeight(t.font)
}

// rowHeight is the tallest padded cell, never less than minHeight.
func rowHeight(cells []tableCell, minHeight float64) float64 {
	h := minHeight
	for _, cell := range cells {
		h = math.Max(h, cell.contentHeight()+2*cell.padding)
	}
	return h
}

// drawRow outlines each cell, optionally fills it, and places its lines.
func (c *Composer) drawRow(page *Page, x, y float64, widths []float64, cells []tableCell, h float64, fill *Color, text Color, lineWidth float64) {
	cx := x
	for i, cell := range cells {
		w := widths[i]
		if fill != nil {
			page.FillRect(cx, y, w, h, lineWidth, *fill, Black)
		} else {
			page.StrokeRect(cx, y, w, h, lineWidth, Black)
		}

		top := y + cell.padding
		if cell.valign == valignMiddle {
			top = y + (h-cell.contentHeight())/2
		}
		lh := lineHeight(cell.font)
		ax := cx + cell.padding
		switch cell.align {
		case AlignCenter:
			ax = cx + w/2
		case AlignRight:
			ax = cx + w - cell.padding
		}
		for j, line := range cell.lines {
			if line == "" {
				continue
			}
			// baseline sits roughly one font size below the line top
			page.Text(ax, top+float64(j)*lh+cell.font.Size*ptToMM, line, cell.font, text, cell.align)
		}
		cx += w
	}
}
