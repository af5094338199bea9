package pdfgen

import (
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"quotations/models"
)

// runeMeasurer gives every rune the same width so wrapping is predictable.
type runeMeasurer struct {
	perRune float64
}

func (m runeMeasurer) StringWidth(s string, f Font) float64 {
	return float64(len([]rune(s))) * m.perRune
}

const epsilon = 1e-9

func testQuotation() models.Quotation {
	return models.Quotation{
		QuotationNumber: "RLE-107",
		CustomerName:    "Acme Pharma Pvt Ltd",
		CustomerAddress: "Plot 4, Genome Valley\nHyderabad",
		ValidityDays:    30,
		CreatedAt:       time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
	}
}

func newTestComposer(items []models.LineItem, assets *Assets, p Pagination) *Composer {
	return NewComposer(runeMeasurer{perRune: 0.5}, assets, ComposeInput{
		Quotation: testQuotation(),
		Items:     items,
		Agent:     models.Agent{FullName: "Ravi Kumar", Phone: "+91 98480 00000"},
	}, p)
}

func fakeAsset(name string) *ImageAsset {
	return &ImageAsset{Name: name, Data: []byte{0xff}, Width: 800, Height: 400, IsWide: true}
}

func footer(p *Page) string {
	for _, t := range p.Texts() {
		if strings.HasPrefix(t.Text, "Page ") {
			return t.Text
		}
	}
	return ""
}

func TestTotalPages(t *testing.T) {
	for n := 0; n <= 12; n++ {
		if got := TotalPages(n); got != n+1 {
			t.Fatalf("TotalPages(%d) = %d, want %d", n, got, n+1)
		}
	}
}

func TestComposePageCountMatchesItems(t *testing.T) {
	for n := 0; n <= 5; n++ {
		items := make([]models.LineItem, n)
		for i := range items {
			items[i] = models.LineItem{Name: fmt.Sprintf("Unit %d", i), Price: 1000, Features: []string{"Compact"}}
		}
		doc := newTestComposer(items, nil, PaginationClassic).Compose()
		if doc.PageCount() != n+1 {
			t.Fatalf("items=%d: got %d pages, want %d", n, doc.PageCount(), n+1)
		}
		last := doc.Pages[doc.PageCount()-1]
		if got, want := footer(last), fmt.Sprintf("Page %d of %d", n+1, n+1); got != want {
			t.Errorf("items=%d: terms footer = %q, want %q", n, got, want)
		}
	}
}

func TestWideFeaturesStartBelowImage(t *testing.T) {
	for _, startY := range []float64{50, 92.5, 140} {
		c := newTestComposer(nil, nil, PaginationClassic)
		page := c.doc.AddPage()
		item := models.LineItem{Name: "Hood", Features: []string{"Quiet", "Bright"}}
		c.composeWideBlock(LayoutState{CurrentY: startY, Page: page}, item, fakeAsset("item:x"))

		images := page.Images()
		if len(images) != 1 {
			t.Fatalf("got %d images, want 1", len(images))
		}
		img := images[0]
		if img.H != wideImageHeight || img.Y != startY {
			t.Fatalf("image at y=%v h=%v, want y=%v h=%v", img.Y, img.H, startY, wideImageHeight)
		}
		heading, ok := page.FindText("FEATURES:")
		if !ok {
			t.Fatal("FEATURES heading missing")
		}
		if heading.Y < img.Y+img.H {
			t.Errorf("features start at %v, before image end %v", heading.Y, img.Y+img.H)
		}
	}
}

func TestWideWithoutImageSkipsImage(t *testing.T) {
	c := newTestComposer(nil, nil, PaginationClassic)
	page := c.doc.AddPage()
	st := c.composeWideBlock(LayoutState{CurrentY: 100, Page: page}, models.LineItem{Features: []string{"One"}}, nil)

	if len(page.Images()) != 0 {
		t.Fatal("expected no image op")
	}
	heading, _ := page.FindText("FEATURES:")
	if heading.Y != 100 {
		t.Errorf("FEATURES at %v, want 100", heading.Y)
	}
	if want := 100 + 6 + featureLineHeight + 5; math.Abs(st.CurrentY-want) > epsilon {
		t.Errorf("cursor = %v, want %v", st.CurrentY, want)
	}
}

func TestTallCursorIsLowerColumn(t *testing.T) {
	for k := 0; k <= 30; k++ {
		features := make([]string, k)
		for i := range features {
			features[i] = fmt.Sprintf("Feature %d", i)
		}
		item := models.LineItem{Name: "Incubator", Features: features, ImageFormat: models.ImageFormatTall}

		c := newTestComposer(nil, nil, PaginationClassic)
		page := c.doc.AddPage()
		st, imageEnd := c.composeTallBlock(LayoutState{CurrentY: 100, Page: page}, item, fakeAsset("item:x"))

		img := page.Images()[0]
		rendered := k
		if k == 0 {
			rendered = len(DefaultFeatures)
		}
		featuresEnd := img.Y + float64(rendered)*featureLineHeight
		want := math.Max(featuresEnd, img.Y+tallImageHeight)
		if math.Abs(st.CurrentY-want) > epsilon {
			t.Errorf("k=%d: cursor = %v, want %v", k, st.CurrentY, want)
		}
		if img.Y != 106 {
			t.Errorf("k=%d: image top = %v, want 106", k, img.Y)
		}
		if imageEnd != img.Y+tallImageHeight {
			t.Errorf("k=%d: image end = %v", k, imageEnd)
		}
		if wantX := pageMargin + c.contentWidth()*featureColumn + 5; img.X != wantX {
			t.Errorf("k=%d: image x = %v, want %v", k, img.X, wantX)
		}
	}
}

func TestTallGapPadsImageColumnOnly(t *testing.T) {
	for _, k := range []int{2, 25} {
		features := make([]string, k)
		for i := range features {
			features[i] = fmt.Sprintf("Feature %d", i)
		}
		item := models.LineItem{
			ID: "x", Name: "Incubator", Features: features, ImageFormat: models.ImageFormatTall,
			Specs: []models.SpecPair{{Key: "Power", Value: "230V"}},
		}
		assets := NewAssets()
		assets.Items["x"] = fakeAsset("item:x")
		doc := newTestComposer([]models.LineItem{item}, assets, PaginationClassic).Compose()

		page := doc.Pages[0]
		specs, ok := page.FindText("Specifications:")
		if !ok {
			t.Fatalf("k=%d: specifications heading missing", k)
		}
		img := page.Images()[len(page.Images())-1]
		featuresEnd := 0.0
		for _, line := range page.Texts() {
			if line.X == pageMargin+8 && line.Font.Style == StyleNormal && line.Y < specs.Y {
				featuresEnd = math.Max(featuresEnd, line.Y+featureLineHeight)
			}
		}
		want := math.Max(featuresEnd, img.Y+tallImageHeight+tallImageGap)
		if math.Abs(specs.Y-want) > epsilon {
			t.Errorf("k=%d: specifications at %v, want %v (features end %v)", k, specs.Y, want, featuresEnd)
		}
	}
}

func TestMergeColumns(t *testing.T) {
	cases := []struct {
		textEnd, imageTop, want float64
	}{
		{textEnd: 120, imageTop: 100, want: 175},
		{textEnd: 190, imageTop: 100, want: 190},
		{textEnd: 175, imageTop: 100, want: 175},
	}
	for _, tc := range cases {
		if got := mergeColumns(tc.textEnd, tc.imageTop, tallImageHeight); got != tc.want {
			t.Errorf("mergeColumns(%v, %v) = %v, want %v", tc.textEnd, tc.imageTop, got, tc.want)
		}
	}
}

// featureLines returns the text drawn in the bullet text column after the FEATURES heading.
func featureLines(p *Page) []string {
	var out []string
	started := false
	for _, t := range p.Texts() {
		if t.Text == "FEATURES:" {
			started = true
			continue
		}
		if !started || t.Text == "•" {
			continue
		}
		if t.X != pageMargin+8 || t.Font.Style != StyleNormal {
			break
		}
		out = append(out, t.Text)
	}
	return out
}

func TestDefaultFeaturesUsedWhenEmpty(t *testing.T) {
	wide := NewComposer(runeMeasurer{perRune: 0.1}, nil, ComposeInput{Quotation: testQuotation()}, PaginationClassic)
	page := wide.doc.AddPage()
	wide.composeWideBlock(LayoutState{CurrentY: 60, Page: page}, models.LineItem{Name: "Zone Reader"}, nil)

	got := featureLines(page)
	if len(got) != len(DefaultFeatures) {
		t.Fatalf("got %d features, want %d", len(got), len(DefaultFeatures))
	}
	for i := range DefaultFeatures {
		if got[i] != DefaultFeatures[i] {
			t.Errorf("feature %d = %q, want %q", i, got[i], DefaultFeatures[i])
		}
	}
}

func TestCommercialRowPrice(t *testing.T) {
	cases := []struct {
		name   string
		addons []models.AddOn
		want   string
	}{
		{name: "no add-ons", want: "Rs. 50,000.00/-"},
		{name: "one add-on", addons: []models.AddOn{{Name: "Lamp", Price: 2500}}, want: "Rs. 52,500.00/-"},
		{name: "several add-ons", addons: []models.AddOn{{Name: "Lamp", Price: 2500}, {Name: "Stand", Price: 1200.5}, {Name: "Filter", Price: 0}}, want: "Rs. 53,700.50/-"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := models.LineItem{Name: "Laminar Flow Unit", Price: 50000, SelectedAddons: tc.addons, Features: []string{"Quiet"}}
			doc := newTestComposer([]models.LineItem{item}, nil, PaginationClassic).Compose()
			page := doc.Pages[0]
			if _, ok := page.FindText(tc.want); !ok {
				t.Errorf("price %q not drawn", tc.want)
			}
			for _, a := range tc.addons {
				if _, ok := page.FindText("• " + a.Name); !ok {
					t.Errorf("add-on %q not listed", a.Name)
				}
			}
			if _, ok := page.FindText("Standard Accessories:"); ok != (len(tc.addons) > 0) {
				t.Errorf("accessories heading present = %v, want %v", ok, len(tc.addons) > 0)
			}
		})
	}
}

func TestCommercialHeaderUsesCurrency(t *testing.T) {
	in := ComposeInput{
		Quotation: testQuotation(),
		Items:     []models.LineItem{{Name: "Oven", Price: 1234.5, Features: []string{"Hot"}}},
		Currency:  LookupCurrency("USD"),
	}
	doc := NewComposer(runeMeasurer{perRune: 0.5}, nil, in, PaginationClassic).Compose()
	for _, want := range []string{"Price (USD)", "$ 1,234.50/-", "S.No", "Qty", "01", "1"} {
		if _, ok := doc.Pages[0].FindText(want); !ok {
			t.Errorf("%q not drawn", want)
		}
	}
}

func termLines(p *Page) []string {
	var out []string
	for _, t := range p.Texts() {
		if t.X == pageMargin+5 {
			out = append(out, t.Text)
		}
	}
	return out
}

func TestTermsDefaultsAndCustom(t *testing.T) {
	composeTerms := func(terms []models.Term) []string {
		c := NewComposer(runeMeasurer{perRune: 0.01}, nil, ComposeInput{Quotation: testQuotation(), Terms: terms}, PaginationClassic)
		doc := c.Compose()
		return termLines(doc.Pages[0])
	}

	got := composeTerms(nil)
	if len(got) != len(DefaultTerms) {
		t.Fatalf("got %d default terms, want %d", len(got), len(DefaultTerms))
	}
	for i, term := range DefaultTerms {
		if want := term.Title + ": " + term.Text; got[i] != want {
			t.Errorf("term %d = %q, want %q", i, got[i], want)
		}
	}

	custom := []models.Term{
		{Title: "1. PAYMENT", Text: "50% advance"},
		{Title: "12.WARRANTY", Text: "Two years"},
		{Title: "Delivery", Text: "Ex works"},
	}
	got = composeTerms(custom)
	want := []string{"PAYMENT: 50% advance", "WARRANTY: Two years", "Delivery: Ex works"}
	if len(got) != len(want) {
		t.Fatalf("got %d terms, want %d: %q", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("term %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSignatureBlock(t *testing.T) {
	cases := []struct {
		agent    models.Agent
		preparer string
		contact  string
	}{
		{agent: models.Agent{FullName: "Ravi Kumar", Phone: "+91 98480 00000"}, preparer: "RAVI KUMAR", contact: "Contact: +91 98480 00000"},
		{agent: models.Agent{}, preparer: DefaultPreparer, contact: "Contact: " + DefaultSupportPhone},
	}
	for _, tc := range cases {
		c := NewComposer(runeMeasurer{perRune: 0.5}, nil, ComposeInput{Quotation: testQuotation(), Agent: tc.agent}, PaginationClassic)
		page := c.Compose().Pages[0]
		for _, want := range []string{"From " + DefaultCompanyName, tc.preparer, tc.contact} {
			op, ok := page.FindText(want)
			if !ok {
				t.Errorf("%q missing from signature", want)
				continue
			}
			if op.Align != AlignRight {
				t.Errorf("%q is not right aligned", want)
			}
		}
	}
}

func TestToBlockOnlyOnFirstPage(t *testing.T) {
	items := []models.LineItem{
		{Name: "A", Price: 1, Features: []string{"x"}},
		{Name: "B", Price: 2, Features: []string{"y"}},
	}
	doc := newTestComposer(items, nil, PaginationClassic).Compose()
	if _, ok := doc.Pages[0].FindText("Quote No :  RLE-107"); !ok {
		t.Error("quote number missing from first page")
	}
	if _, ok := doc.Pages[0].FindText("Date         :  05-03-2024"); !ok {
		t.Error("issue date missing from first page")
	}
	if _, ok := doc.Pages[0].FindText("Validity    :  04-04-2024"); !ok {
		t.Error("validity date missing from first page")
	}
	if doc.Pages[1].HasTextPrefix("Quote No") {
		t.Error("second item page repeats the To block")
	}
	if _, ok := doc.Pages[1].FindText("For B"); !ok {
		t.Error("second item not on its own page")
	}
}

func specItem(n int) models.LineItem {
	specs := make([]models.SpecPair, n)
	for i := range specs {
		specs[i] = models.SpecPair{Key: fmt.Sprintf("Spec %d", i), Value: "value"}
	}
	return models.LineItem{Name: "Analyser", Price: 10, Features: []string{"Fast"}, Specs: specs}
}

func TestSpecValuePrefix(t *testing.T) {
	item := models.LineItem{Name: "Analyser", Features: []string{"Fast"}, Specs: []models.SpecPair{
		{Key: "Power", Value: "230V"},
		{Key: "Weight", Value: ": 12 kg"},
	}}
	page := newTestComposer([]models.LineItem{item}, nil, PaginationClassic).Compose().Pages[0]
	for _, want := range []string{": 230V", ": 12 kg"} {
		op, ok := page.FindText(want)
		if !ok {
			t.Errorf("%q missing", want)
			continue
		}
		if op.X != pageMargin+specValueOffset {
			t.Errorf("%q at x=%v, want %v", want, op.X, pageMargin+specValueOffset)
		}
	}
	if page.HasTextPrefix(": : ") {
		t.Error("value already starting with a colon was prefixed again")
	}
}

func TestClassicOverflowPageIsUnnumbered(t *testing.T) {
	doc := newTestComposer([]models.LineItem{specItem(30)}, nil, PaginationClassic).Compose()
	if doc.PageCount() != 3 {
		t.Fatalf("got %d pages, want item page, overflow page and terms page", doc.PageCount())
	}
	if got := footer(doc.Pages[0]); got != "Page 1 of 2" {
		t.Errorf("item footer = %q", got)
	}
	if doc.Pages[1].Label != 0 || footer(doc.Pages[1]) != "" {
		t.Errorf("overflow page should carry no number, got label %d footer %q", doc.Pages[1].Label, footer(doc.Pages[1]))
	}
	if _, ok := doc.Pages[1].FindText("Commercial Offer:"); !ok {
		t.Error("commercial table not moved to the overflow page")
	}
	if got := footer(doc.Pages[2]); got != "Page 2 of 2" {
		t.Errorf("terms footer = %q", got)
	}
}

func TestFlowPaginationNumbersEveryPage(t *testing.T) {
	doc := newTestComposer([]models.LineItem{specItem(60)}, nil, PaginationFlow).Compose()
	total := doc.PageCount()
	if total < 3 {
		t.Fatalf("expected the long item to spill, got %d pages", total)
	}
	for i, p := range doc.Pages {
		if want := fmt.Sprintf("Page %d of %d", i+1, total); footer(p) != want {
			t.Errorf("page %d footer = %q, want %q", i, footer(p), want)
		}
		for _, op := range p.Texts() {
			if strings.HasPrefix(op.Text, "Page ") {
				continue
			}
			if op.Y > A4Height-flowBottom && op.Y < A4Height-20 {
				t.Errorf("page %d: %q drawn into the footer band at y=%v", i, op.Text, op.Y)
			}
		}
	}
}

func TestChromeOnEveryPage(t *testing.T) {
	c := NewComposer(runeMeasurer{perRune: 0.5}, &Assets{Logo: fakeAsset(LogoAssetName)}, ComposeInput{
		Quotation: testQuotation(),
		Items:     []models.LineItem{{Name: "A", Features: []string{"x"}}},
		Settings:  models.Settings{CompanyName: "Acme Instruments", CompanyEmail: "hi@acme.example", CompanyPhone: "+91 1"},
	}, PaginationClassic)
	doc := c.Compose()
	for i, p := range doc.Pages {
		if _, ok := p.FindText("ACME INSTRUMENTS"); !ok {
			t.Errorf("page %d: company name missing", i)
		}
		if _, ok := p.FindText("Write us: hi@acme.example | Contact: +91 1"); !ok {
			t.Errorf("page %d: footer contact missing", i)
		}
		var logo bool
		for _, im := range p.Images() {
			logo = logo || im.Name == LogoAssetName
		}
		if !logo {
			t.Errorf("page %d: logo missing", i)
		}
		var borders int
		for _, op := range p.Ops {
			if r, ok := op.(RectOp); ok && r.Stroke != nil && (*r.Stroke == Blue || *r.Stroke == Orange) {
				borders++
			}
		}
		if borders != 2 {
			t.Errorf("page %d: got %d border rects, want 2", i, borders)
		}
	}
}
