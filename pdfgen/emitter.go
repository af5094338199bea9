package pdfgen

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Emitter serialises a composed Document into PDF bytes.
type Emitter struct{}

func (Emitter) Render(doc *Document, assets *Assets) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	registered := map[string]gofpdf.ImageOptions{}
	image := func(o ImageOp) error {
		opts, ok := registered[o.Name]
		if !ok {
			asset, found := assets.Lookup(o.Name)
			if !found {
				return fmt.Errorf("image %q was placed but never loaded", o.Name)
			}
			opts = gofpdf.ImageOptions{ImageType: asset.imageType()}
			pdf.RegisterImageOptionsReader(o.Name, opts, bytes.NewReader(asset.Data))
			registered[o.Name] = opts
		}
		pdf.ImageOptions(o.Name, o.X, o.Y, o.W, o.H, false, opts, 0, "")
		return nil
	}

	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, op := range page.Ops {
			switch o := op.(type) {
			case TextOp:
				pdf.SetFont(o.Font.Family, string(o.Font.Style), o.Font.Size)
				pdf.SetTextColor(o.Color.R, o.Color.G, o.Color.B)
				s := tr(o.Text)
				x := o.X
				switch o.Align {
				case AlignCenter:
					x -= pdf.GetStringWidth(s) / 2
				case AlignRight:
					x -= pdf.GetStringWidth(s)
				}
				pdf.Text(x, o.Y, s)
			case ImageOp:
				if err := image(o); err != nil {
					return nil, fmt.Errorf("page %d: %w", page.Index+1, err)
				}
			case RectOp:
				style := ""
				if o.Stroke != nil {
					pdf.SetDrawColor(o.Stroke.R, o.Stroke.G, o.Stroke.B)
					style += "D"
				}
				if o.Fill != nil {
					pdf.SetFillColor(o.Fill.R, o.Fill.G, o.Fill.B)
					style = "F" + style
				}
				pdf.SetLineWidth(o.LineWidth)
				pdf.Rect(o.X, o.Y, o.W, o.H, style)
			case LineOp:
				pdf.SetDrawColor(o.Color.R, o.Color.G, o.Color.B)
				pdf.SetLineWidth(o.LineWidth)
				pdf.Line(o.X1, o.Y1, o.X2, o.Y2)
			}
			if pdf.Err() {
				return nil, fmt.Errorf("page %d: %w", page.Index+1, pdf.Error())
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
