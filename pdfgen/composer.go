package pdfgen

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"quotations/models"
)

// Pagination selects how content that does not fit on a page is handled.
type Pagination int

const (
	// PaginationClassic keeps one page per item plus the terms page. The page
	// total is fixed at len(items)+1 before layout; the only overflow break is
	// the one before the commercial table, and that extra page is not numbered.
	PaginationClassic Pagination = iota
	// PaginationFlow checks the remaining space before every block and numbers
	// every physical page against the real total.
	PaginationFlow
)

func ParsePagination(s string) Pagination {
	if strings.EqualFold(strings.TrimSpace(s), "flow") {
		return PaginationFlow
	}
	return PaginationClassic
}

func (p Pagination) String() string {
	if p == PaginationFlow {
		return "flow"
	}
	return "classic"
}

// Geometry in millimetres.
const (
	pageMargin     = 15.0
	bodyStartY     = 50.0
	termsStartY    = 55.0
	overflowMargin = 60.0
	flowBottom     = 25.0

	wideImageHeight = 65.0
	tallImageHeight = 75.0
	tallImageGap    = 10.0
	featureColumn   = 0.55
	imageColumn     = 0.40
	specValueOffset = 55.0

	descLineHeight    = 5.0
	featureLineHeight = 4.5
	specLineHeight    = 5.0
	termLineHeight    = 5.0

	ptToMM = 25.4 / 72
)

const fontFamily = "Helvetica"

func helvetica(style FontStyle, size float64) Font {
	return Font{Family: fontFamily, Style: style, Size: size}
}

// TotalPages is the page count announced in classic mode: one page per item and the terms page.
func TotalPages(itemCount int) int {
	return itemCount + 1
}

// LayoutState is the cursor threaded through every drawing step.
type LayoutState struct {
	CurrentY   float64
	PageNumber int
	Page       *Page
}

// ComposeInput is everything the composer draws from.
type ComposeInput struct {
	Quotation models.Quotation
	Items     []models.LineItem
	Settings  models.Settings
	Agent     models.Agent
	Terms     []models.Term
	Currency  Currency
}

// Composer lays out one quotation into a Document.
type Composer struct {
	doc        *Document
	m          TextMeasurer
	assets     *Assets
	in         ComposeInput
	pagination Pagination
	upper      cases.Caser
}

func NewComposer(m TextMeasurer, assets *Assets, in ComposeInput, pagination Pagination) *Composer {
	if assets == nil {
		assets = NewAssets()
	}
	if in.Currency.Code == "" {
		in.Currency = LookupCurrency(DefaultCurrencyCode)
	}
	return &Composer{
		doc:        NewDocument(),
		m:          m,
		assets:     assets,
		in:         in,
		pagination: pagination,
		upper:      cases.Upper(language.Und),
	}
}

// Compose draws the whole quotation and returns the finished document.
func (c *Composer) Compose() *Document {
	var st LayoutState
	for i, item := range c.in.Items {
		st = c.startPage(st, true)
		if i == 0 {
			st = c.composeToBlock(st)
		}
		st = c.composeItem(st, i, item)
	}
	c.composeTerms(st)
	c.stampPageNumbers()
	return c.doc
}

func (c *Composer) contentWidth() float64 {
	return c.doc.Width - 2*pageMargin
}

func (c *Composer) right() float64 {
	return c.doc.Width - pageMargin
}

// startPage opens a page with its chrome and resets the cursor.
func (c *Composer) startPage(st LayoutState, numbered bool) LayoutState {
	page := c.doc.AddPage()
	if numbered || c.pagination == PaginationFlow {
		st.PageNumber++
		page.Label = st.PageNumber
	}
	c.drawBorder(page)
	c.drawHeader(page)
	return LayoutState{CurrentY: bodyStartY, PageNumber: st.PageNumber, Page: page}
}

// ensureSpace breaks to a new page when h does not fit above the footer. Classic mode never breaks here.
func (c *Composer) ensureSpace(st LayoutState, h float64) LayoutState {
	if c.pagination != PaginationFlow {
		return st
	}
	if st.CurrentY+h > c.doc.Height-flowBottom {
		return c.startPage(st, true)
	}
	return st
}

func (c *Composer) usableHeight() float64 {
	return c.doc.Height - flowBottom - bodyStartY
}

func (c *Composer) stampPageNumbers() {
	total := TotalPages(len(c.in.Items))
	if c.pagination == PaginationFlow {
		total = c.doc.PageCount()
	}
	for _, p := range c.doc.Pages {
		if p.Label == 0 {
			continue
		}
		p.Text(c.right(), c.doc.Height-8, fmt.Sprintf("Page %d of %d", p.Label, total),
			helvetica(StyleNormal, 8), Black, AlignRight)
	}
}

func (c *Composer) companyName() string {
	if name := strings.TrimSpace(c.in.Settings.CompanyName); name != "" {
		return name
	}
	return DefaultCompanyName
}

func (c *Composer) contactLine() string {
	s := c.in.Settings
	if s.CompanyEmail != "" && s.CompanyPhone != "" {
		return fmt.Sprintf("Write us: %s | Contact: %s", s.CompanyEmail, s.CompanyPhone)
	}
	return DefaultContactLine
}

func (c *Composer) drawBorder(page *Page) {
	w, h := c.doc.Width, c.doc.Height
	page.StrokeRect(5, 5, w-10, h-10, 1.2, Blue)
	page.StrokeRect(7, 7, w-14, h-14, 0.8, Orange)

	page.StrokeRect(pageMargin+10, h-20, w-2*pageMargin-20, 8, 0.3, Black)
	page.Text(w/2, h-14.5, c.contactLine(), helvetica(StyleBold, 8), Black, AlignCenter)
}

func (c *Composer) drawHeader(page *Page) {
	if c.assets.Logo != nil {
		page.Image(c.assets.Logo.Name, pageMargin, 12, 70, 25)
	}

	page.Text(c.right(), 18, c.upper.String(c.companyName()), helvetica(StyleBold, 11), Blue, AlignRight)

	address := c.in.Settings.CompanyAddress
	if strings.TrimSpace(address) == "" {
		address = DefaultCompanyAddress
	}
	addrFont := helvetica(StyleNormal, 9)
	step := addrFont.Size * ptToMM * 1.4
	for i, line := range strings.Split(address, "\n") {
		page.Text(c.right(), 24+float64(i)*step, strings.TrimSpace(line), addrFont, Grey, AlignRight)
	}

	page.Line(pageMargin, 42, c.right(), 42, 0.5, Blue)
	page.Line(pageMargin, 43, c.right(), 43, 0.3, Orange)
}

// composeToBlock draws the customer and quotation identity grid on the first page.
func (c *Composer) composeToBlock(st LayoutState) LayoutState {
	q := c.in.Quotation
	font := helvetica(StyleBold, 10)
	rightW := 80.0
	leftW := c.contentWidth() - rightW

	left := "To\n\n" + q.CustomerName
	if q.CustomerAddress != "" {
		left += "\n" + q.CustomerAddress
	}
	right := fmt.Sprintf("Quote No :  %s\nDate         :  %s\nValidity    :  %s",
		q.QuotationNumber, formatDate(q.IssuedAt()), formatDate(q.ValidUntil()))

	cells := []tableCell{
		c.newCell(left, font, leftW, 5, AlignLeft, valignTop),
		c.newCell(right, font, rightW, 6, AlignLeft, valignMiddle),
	}
	h := rowHeight(cells, 30)
	st = c.ensureSpace(st, h)
	c.drawRow(st.Page, pageMargin, st.CurrentY, []float64{leftW, rightW}, cells, h, nil, Black, 0.3)
	st.CurrentY += h + 12
	return st
}

func (c *Composer) composeItem(st LayoutState, index int, item models.LineItem) LayoutState {
	mid := c.doc.Width / 2
	st = c.ensureSpace(st, 19)
	st.Page.Text(mid, st.CurrentY, "Technical & Commercial Offer", helvetica(StyleBold, 14), Blue, AlignCenter)
	st.CurrentY += 7
	st.Page.Text(mid, st.CurrentY, "For "+item.Name, helvetica(StyleBold, 12), Black, AlignCenter)
	st.CurrentY += 12

	st = c.composeDescription(st, item)

	asset := c.assets.Items[ItemKey(index, item)]
	if item.Layout() == models.ImageFormatTall {
		var imageEnd float64
		st, imageEnd = c.composeTallBlock(st, item, asset)
		if asset == nil {
			st.CurrentY += 5
		} else {
			// the gap pads the image column only
			st.CurrentY = math.Max(st.CurrentY, imageEnd+tallImageGap)
		}
	} else {
		st = c.composeWideBlock(st, item, asset)
	}

	st = c.composeSpecs(st, item)
	return c.composeCommercial(st, item)
}

func (c *Composer) composeDescription(st LayoutState, item models.LineItem) LayoutState {
	st = c.ensureSpace(st, 6+descLineHeight)
	st.Page.Text(pageMargin, st.CurrentY, "Description:", helvetica(StyleBold, 10), Black, AlignLeft)
	st.CurrentY += 6

	font := helvetica(StyleNormal, 9)
	lines := wrapText(c.m, item.Description, font, c.contentWidth())
	for _, line := range lines {
		st = c.ensureSpace(st, descLineHeight)
		if line != "" {
			st.Page.Text(pageMargin, st.CurrentY, line, font, Black, AlignLeft)
		}
		st.CurrentY += descLineHeight
	}
	st.CurrentY += 5
	return st
}

// composeWideBlock puts a full-width image under the description and the features below it.
func (c *Composer) composeWideBlock(st LayoutState, item models.LineItem, asset *ImageAsset) LayoutState {
	if asset != nil {
		st = c.ensureSpace(st, wideImageHeight+10)
		st.Page.Image(asset.Name, pageMargin+5, st.CurrentY, c.contentWidth()-10, wideImageHeight)
		st.CurrentY += wideImageHeight + 10
	}

	st = c.featuresHeading(st)
	st = c.drawFeatures(st, featuresOf(item), c.contentWidth()-10)
	st.CurrentY += 5
	return st
}

// composeTallBlock puts the features in a left column and the image beside them.
// The returned cursor is the lower of the two column ends.
func (c *Composer) composeTallBlock(st LayoutState, item models.LineItem, asset *ImageAsset) (LayoutState, float64) {
	featureW := c.contentWidth() * featureColumn
	imageW := c.contentWidth() * imageColumn
	features := featuresOf(item)
	textW := featureW - 8

	if c.pagination == PaginationFlow {
		h := c.featuresHeight(features, textW)
		if asset != nil {
			h = math.Max(h, tallImageHeight)
		}
		st = c.ensureSpace(st, math.Min(6+h, c.usableHeight()))
	}

	st = c.featuresHeading(st)
	imagePage, imageTop := st.Page, st.CurrentY
	st = c.drawFeatures(st, features, textW)

	var imageEnd float64
	if asset != nil {
		imagePage.Image(asset.Name, pageMargin+featureW+5, imageTop, imageW, tallImageHeight)
		if st.Page == imagePage {
			st.CurrentY = mergeColumns(st.CurrentY, imageTop, tallImageHeight)
			imageEnd = imageTop + tallImageHeight
		}
	}
	return st, imageEnd
}

// mergeColumns returns where content continues after two side-by-side columns.
func mergeColumns(textEnd, imageTop, imageHeight float64) float64 {
	return math.Max(textEnd, imageTop+imageHeight)
}

func (c *Composer) featuresHeading(st LayoutState) LayoutState {
	st = c.ensureSpace(st, 6+featureLineHeight)
	st.Page.Text(pageMargin, st.CurrentY, "FEATURES:", helvetica(StyleBold, 10), Black, AlignLeft)
	st.CurrentY += 6
	return st
}

func (c *Composer) drawFeatures(st LayoutState, features []string, width float64) LayoutState {
	font := helvetica(StyleNormal, 9)
	for _, f := range features {
		lines := wrapText(c.m, f, font, width)
		st = c.ensureSpace(st, float64(len(lines))*featureLineHeight)
		st.Page.Text(pageMargin+3, st.CurrentY, "•", font, Black, AlignLeft)
		for j, line := range lines {
			st.Page.Text(pageMargin+8, st.CurrentY+float64(j)*featureLineHeight, line, font, Black, AlignLeft)
		}
		st.CurrentY += float64(len(lines)) * featureLineHeight
	}
	return st
}

func (c *Composer) featuresHeight(features []string, width float64) float64 {
	font := helvetica(StyleNormal, 9)
	var h float64
	for _, f := range features {
		h += float64(len(wrapText(c.m, f, font, width))) * featureLineHeight
	}
	return h
}

func (c *Composer) composeSpecs(st LayoutState, item models.LineItem) LayoutState {
	if len(item.Specs) == 0 {
		return st
	}
	st = c.ensureSpace(st, 6+specLineHeight)
	st.Page.Text(pageMargin, st.CurrentY, "Specifications:", helvetica(StyleBold, 10), Black, AlignLeft)
	st.CurrentY += 6

	normal, bold := helvetica(StyleNormal, 9), helvetica(StyleBold, 9)
	for _, s := range item.Specs {
		st = c.ensureSpace(st, specLineHeight)
		value := s.Value
		if !strings.HasPrefix(value, ":") {
			value = ": " + value
		}
		st.Page.Text(pageMargin+3, st.CurrentY, "•", normal, Black, AlignLeft)
		st.Page.Text(pageMargin+8, st.CurrentY, s.Key, bold, Black, AlignLeft)
		st.Page.Text(pageMargin+specValueOffset, st.CurrentY, value, normal, Black, AlignLeft)
		st.CurrentY += specLineHeight
	}
	st.CurrentY += 5
	return st
}

// commercialRow builds the single pricing row of an item.
func (c *Composer) commercialRow(item models.LineItem, widths []float64) []tableCell {
	desc := item.Name
	if len(item.SelectedAddons) > 0 {
		desc += "\n\nStandard Accessories:"
		for _, a := range item.SelectedAddons {
			desc += "\n• " + a.Name
		}
	}
	body := helvetica(StyleNormal, 10)
	return []tableCell{
		c.newCell("01", body, widths[0], 4, AlignCenter, valignMiddle),
		c.newCell(desc, body, widths[1], 4, AlignLeft, valignMiddle),
		c.newCell("1", body, widths[2], 4, AlignCenter, valignMiddle),
		c.newCell(c.in.Currency.FormatAmount(item.UnitPrice()), helvetica(StyleBold, 11), widths[3], 4, AlignCenter, valignMiddle),
	}
}

func (c *Composer) composeCommercial(st LayoutState, item models.LineItem) LayoutState {
	widths := []float64{15, c.contentWidth() - 15 - 15 - 50, 15, 50}
	headFont := helvetica(StyleBold, 10)
	head := []tableCell{
		c.newCell("S.No", headFont, widths[0], 2, AlignCenter, valignMiddle),
		c.newCell("Description", headFont, widths[1], 2, AlignCenter, valignMiddle),
		c.newCell("Qty", headFont, widths[2], 2, AlignCenter, valignMiddle),
		c.newCell(c.in.Currency.PriceHeader(), headFont, widths[3], 2, AlignCenter, valignMiddle),
	}
	row := c.commercialRow(item, widths)
	headH, rowH := rowHeight(head, 0), rowHeight(row, 0)

	if c.pagination == PaginationFlow {
		st = c.ensureSpace(st, 6+headH+rowH)
	} else if st.CurrentY > c.doc.Height-overflowMargin {
		st = c.startPage(st, false)
	}

	st.Page.Text(pageMargin, st.CurrentY, "Commercial Offer:", helvetica(StyleBold, 11), Black, AlignLeft)
	st.CurrentY += 6

	fill := Blue
	c.drawRow(st.Page, pageMargin, st.CurrentY, widths, head, headH, &fill, White, 0.2)
	st.CurrentY += headH
	c.drawRow(st.Page, pageMargin, st.CurrentY, widths, row, rowH, nil, Black, 0.2)
	st.CurrentY += rowH + 10
	return st
}

// composeTerms draws the terms and conditions page and the signature block.
func (c *Composer) composeTerms(st LayoutState) LayoutState {
	st = c.startPage(st, true)
	st.CurrentY = termsStartY

	st.Page.Text(pageMargin, st.CurrentY, "Terms And Conditions:", helvetica(StyleBold, 12), Black, AlignLeft)
	st.CurrentY += 10

	font := helvetica(StyleNormal, 9)
	for _, t := range termsOrDefault(c.in.Terms) {
		full := fmt.Sprintf("%s: %s", CleanTermTitle(t.Title), t.Text)
		lines := wrapText(c.m, full, font, c.contentWidth()-5)
		st = c.ensureSpace(st, float64(len(lines))*termLineHeight)
		st.Page.Text(pageMargin, st.CurrentY, "•", font, Black, AlignLeft)
		for j, line := range lines {
			st.Page.Text(pageMargin+5, st.CurrentY+float64(j)*termLineHeight, line, font, Black, AlignLeft)
		}
		st.CurrentY += float64(len(lines))*termLineHeight + 3
	}

	st.CurrentY += 15
	stamp, hasStamp := c.assets.Extra[StampAssetName]
	blockH := 12.0 + 5
	if hasStamp {
		blockH = math.Max(blockH, stampSize+6)
	}
	st = c.ensureSpace(st, blockH)

	if hasStamp {
		st.Page.Image(stamp.Name, pageMargin, st.CurrentY-4, stampSize, stampSize)
		st.Page.Text(pageMargin+stampSize/2, st.CurrentY-4+stampSize+3, "Scan to verify", helvetica(StyleNormal, 7), Grey, AlignCenter)
	}

	bold := helvetica(StyleBold, 10)
	st.Page.Text(c.right(), st.CurrentY, "From "+c.companyName(), bold, Black, AlignRight)
	st.CurrentY += 6
	st.Page.Text(c.right(), st.CurrentY, c.preparerName(), bold, Black, AlignRight)
	st.CurrentY += 6
	phone := strings.TrimSpace(c.in.Agent.Phone)
	if phone == "" {
		phone = DefaultSupportPhone
	}
	st.Page.Text(c.right(), st.CurrentY, "Contact: "+phone, helvetica(StyleNormal, 9), Black, AlignRight)
	return st
}

func (c *Composer) preparerName() string {
	name := strings.TrimSpace(c.in.Agent.FullName)
	if name == "" {
		return DefaultPreparer
	}
	return c.upper.String(name)
}
