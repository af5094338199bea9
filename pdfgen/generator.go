package pdfgen

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"quotations/models"
)

// Options are the deployment-level knobs of the generator.
type Options struct {
	LogoRef       string // fallback logo when the settings carry no company logo
	Pagination    Pagination
	QRStamp       bool
	PublicBaseURL string // encoded in the QR stamp
}

// Request is one quotation to render.
type Request struct {
	Quotation models.Quotation
	Items     []models.LineItem
	Settings  models.Settings
	Agent     models.Agent
	Terms     []models.Term
	Currency  string
}

// Artifact is the rendered PDF and what happened while producing it.
type Artifact struct {
	Bytes    []byte
	FileName string
	Path     string
	Pages    int
	// MissingImages lists item keys whose image could not be loaded.
	MissingImages []string
	// WideImages records the measured aspect of every loaded item image.
	WideImages map[string]bool
	Document   *Document
}

// FileName is the download name of a quotation PDF.
func FileName(quotationNumber string) string {
	return quotationNumber + "_Quotation.pdf"
}

// ArtifactPath is where a quotation PDF lives in object storage.
func ArtifactPath(quotationNumber string) string {
	return "quotations/" + FileName(quotationNumber)
}

// QuotationNumberFromPath reverses ArtifactPath.
func QuotationNumberFromPath(name string) (string, bool) {
	rest, ok := strings.CutPrefix(name, "quotations/")
	if !ok {
		return "", false
	}
	number, ok := strings.CutSuffix(rest, "_Quotation.pdf")
	if !ok || number == "" || strings.Contains(number, "/") {
		return "", false
	}
	return number, true
}

type Generator struct {
	loader  *AssetLoader
	emitter Emitter
	opts    Options
	log     *zap.Logger
}

func NewGenerator(loader *AssetLoader, opts Options, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{loader: loader, opts: opts, log: log}
}

// Generate loads assets, composes and emits the quotation. Missing images
// never fail generation; a cancelled ctx does.
func (g *Generator) Generate(ctx context.Context, req Request) (*Artifact, error) {
	number := req.Quotation.QuotationNumber

	logoRef := req.Settings.CompanyLogo
	if logoRef == "" {
		logoRef = g.opts.LogoRef
	}
	assets := g.loader.Load(ctx, logoRef, req.Items)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("generate quotation %s: %w", number, err)
	}

	if g.opts.QRStamp {
		stamp, err := QRStamp(g.stampContent(number))
		if err != nil {
			g.log.Warn("could not build qr stamp", zap.String("quotation_number", number), zap.Error(err))
		} else {
			assets.Extra[StampAssetName] = stamp
		}
	}

	composer := NewComposer(NewMeasurer(), assets, ComposeInput{
		Quotation: req.Quotation,
		Items:     req.Items,
		Settings:  req.Settings,
		Agent:     req.Agent,
		Terms:     req.Terms,
		Currency:  LookupCurrency(req.Currency),
	}, g.opts.Pagination)
	doc := composer.Compose()

	data, err := g.emitter.Render(doc, assets)
	if err != nil {
		return nil, fmt.Errorf("render quotation %s: %w", number, err)
	}

	art := &Artifact{
		Bytes:      data,
		FileName:   FileName(number),
		Path:       ArtifactPath(number),
		Pages:      doc.PageCount(),
		WideImages: map[string]bool{},
		Document:   doc,
	}
	for i, item := range req.Items {
		key := ItemKey(i, item)
		if asset, ok := assets.Items[key]; ok {
			art.WideImages[key] = asset.IsWide
		} else if item.ImageURL != "" {
			art.MissingImages = append(art.MissingImages, key)
		}
	}

	g.log.Info("quotation pdf generated",
		zap.String("quotation_number", number),
		zap.Int("pages", art.Pages),
		zap.Int("bytes", len(data)),
		zap.String("pagination", g.opts.Pagination.String()),
		zap.Strings("missing_images", art.MissingImages),
	)
	return art, nil
}

func (g *Generator) stampContent(number string) string {
	base := strings.TrimRight(g.opts.PublicBaseURL, "/")
	if base == "" {
		return number
	}
	return base + "/api/get-file?file=" + ArtifactPath(number)
}
