package pdfgen

import "strings"

// Page sizes in millimetres.
const (
	A4Width  = 210.0
	A4Height = 297.0
)

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

type FontStyle string

const (
	StyleNormal FontStyle = ""
	StyleBold   FontStyle = "B"
)

// Font is a core font selection. Size is in points.
type Font struct {
	Family string
	Style  FontStyle
	Size   float64
}

type Color struct {
	R, G, B int
}

var (
	Black  = Color{0, 0, 0}
	White  = Color{255, 255, 255}
	Grey   = Color{60, 60, 60}
	Blue   = Color{0, 82, 156}
	Orange = Color{255, 102, 0}
)

// Op is a single drawing instruction recorded on a page.
type Op interface {
	op()
}

// TextOp draws one line of text. Y is the baseline; X is the anchor for Align.
type TextOp struct {
	X, Y  float64
	Text  string
	Font  Font
	Color Color
	Align Align
}

// ImageOp places a registered image. Name refers to an entry of Assets.
type ImageOp struct {
	Name       string
	X, Y, W, H float64
}

// RectOp outlines and/or fills a rectangle.
type RectOp struct {
	X, Y, W, H float64
	LineWidth  float64
	Stroke     *Color
	Fill       *Color
}

type LineOp struct {
	X1, Y1, X2, Y2 float64
	LineWidth      float64
	Color          Color
}

func (TextOp) op()  {}
func (ImageOp) op() {}
func (RectOp) op()  {}
func (LineOp) op()  {}

// Page is an ordered list of drawing instructions.
type Page struct {
	Index int // zero-based position in the document
	Label int // printed page number, 0 when the page carries none
	Ops   []Op
}

func (p *Page) Text(x, y float64, text string, font Font, color Color, align Align) {
	p.Ops = append(p.Ops, TextOp{X: x, Y: y, Text: text, Font: font, Color: color, Align: align})
}

func (p *Page) Image(name string, x, y, w, h float64) {
	p.Ops = append(p.Ops, ImageOp{Name: name, X: x, Y: y, W: w, H: h})
}

func (p *Page) StrokeRect(x, y, w, h, lineWidth float64, c Color) {
	p.Ops = append(p.Ops, RectOp{X: x, Y: y, W: w, H: h, LineWidth: lineWidth, Stroke: &c})
}

func (p *Page) FillRect(x, y, w, h, lineWidth float64, fill, stroke Color) {
	p.Ops = append(p.Ops, RectOp{X: x, Y: y, W: w, H: h, LineWidth: lineWidth, Stroke: &stroke, Fill: &fill})
}

func (p *Page) Line(x1, y1, x2, y2, lineWidth float64, c Color) {
	p.Ops = append(p.Ops, LineOp{X1: x1, Y1: y1, X2: x2, Y2: y2, LineWidth: lineWidth, Color: c})
}

// Texts returns the text ops of the page in drawing order.
func (p *Page) Texts() []TextOp {
	var out []TextOp
	for _, o := range p.Ops {
		if t, ok := o.(TextOp); ok {
			out = append(out, t)
		}
	}
	return out
}

func (p *Page) Images() []ImageOp {
	var out []ImageOp
	for _, o := range p.Ops {
		if im, ok := o.(ImageOp); ok {
			out = append(out, im)
		}
	}
	return out
}

// FindText returns the first text op whose text equals s.
func (p *Page) FindText(s string) (TextOp, bool) {
	for _, t := range p.Texts() {
		if t.Text == s {
			return t, true
		}
	}
	return TextOp{}, false
}

// HasTextPrefix reports whether any line on the page starts with prefix.
func (p *Page) HasTextPrefix(prefix string) bool {
	for _, t := range p.Texts() {
		if strings.HasPrefix(t.Text, prefix) {
			return true
		}
	}
	return false
}

// Document is the paginated result of composing a quotation.
type Document struct {
	Width, Height float64
	Pages         []*Page
}

func NewDocument() *Document {
	return &Document{Width: A4Width, Height: A4Height}
}

// AddPage appends a blank page and returns it.
func (d *Document) AddPage() *Page {
	p := &Page{Index: len(d.Pages)}
	d.Pages = append(d.Pages, p)
	return p
}

func (d *Document) PageCount() int {
	return len(d.Pages)
}
