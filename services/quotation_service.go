package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"quotations/models"
	"quotations/pdfgen"
)

const previewNumber = "PREVIEW"

type QuotationStore interface {
	Create(ctx context.Context, q *models.Quotation) error
	Get(ctx context.Context, id uuid.UUID) (*models.Quotation, error)
	GetByNumber(ctx context.Context, number string) (*models.Quotation, error)
	UpdatePDFURL(ctx context.Context, id uuid.UUID, url string) error
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

type SettingsStore interface {
	Get(ctx context.Context) (models.Settings, error)
}

type ActivityRecorder interface {
	Save(ctx context.Context, log models.ActivityLog) error
}

// ObjectStore persists a generated artifact and returns its public URL.
type ObjectStore interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
}

type Mailer interface {
	Send(m Mail) error
}

type PDFGenerator interface {
	Generate(ctx context.Context, req pdfgen.Request) (*pdfgen.Artifact, error)
}

// Actor is the authenticated user behind a request.
type Actor struct {
	Profile models.Profile
	IP      string
}

func (a Actor) canAccess(q *models.Quotation) bool {
	return a.Profile.IsAdmin() || q.CreatedBy == a.Profile.ID
}

// QuotationDeps wires a QuotationService. Mailer and Metrics are optional.
type QuotationDeps struct {
	Quotations QuotationStore
	Settings   SettingsStore
	Activity   ActivityRecorder
	Store      ObjectStore
	Mailer     Mailer
	Generator  PDFGenerator
	Metrics    *PDFMetrics
	Log        *zap.Logger
}

// QuotationService runs the quotation workflow: save, render, upload, mail and expire.
type QuotationService struct {
	quotations QuotationStore
	settings   SettingsStore
	activity   ActivityRecorder
	store      ObjectStore
	mailer     Mailer
	generator  PDFGenerator
	metrics    *PDFMetrics
	log        *zap.Logger
	now        func() time.Time
}

func NewQuotationService(d QuotationDeps) *QuotationService {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &QuotationService{
		quotations: d.Quotations,
		settings:   d.Settings,
		activity:   d.Activity,
		store:      d.Store,
		mailer:     d.Mailer,
		generator:  d.Generator,
		metrics:    d.Metrics,
		log:        log.Named("quotations"),
		now:        time.Now,
	}
}

// GeneratedPDF is the outcome of GeneratePDF.
type GeneratedPDF struct {
	Quotation *models.Quotation
	Artifact  *pdfgen.Artifact
	URL       string
}

// Create prices the items against the current tax rate and stores a new quotation.
func (s *QuotationService) Create(ctx context.Context, actor Actor, req models.CreateQuotationRequest) (*models.Quotation, error) {
	if strings.TrimSpace(req.CustomerName) == "" || len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: customer name and at least one item are required", ErrInvalidInput)
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	totals, err := ComputeTotals(req.Items, settings.TaxRate, req.DiscountTotal)
	if err != nil {
		return nil, err
	}

	q := &models.Quotation{
		CreatedBy:       actor.Profile.ID,
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   strings.TrimSpace(req.CustomerEmail),
		CustomerAddress: req.CustomerAddress,
		ValidityDays:    req.ValidityDays,
		Items:           req.Items,
		Subtotal:        totals.Subtotal,
		TaxTotal:        totals.Tax,
		DiscountTotal:   totals.Discount,
		GrandTotal:      totals.Grand,
	}
	if err := s.quotations.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("save quotation: %w", err)
	}

	s.record(ctx, actor, "Quotation", "Quotation Created",
		fmt.Sprintf("Created %s for %s", q.QuotationNumber, q.CustomerName), q.QuotationNumber)
	s.log.Info("quotation created",
		zap.String("quotation_number", q.QuotationNumber),
		zap.String("created_by", actor.Profile.ID.String()),
		zap.Int("items", len(q.Items)),
		zap.Float64("grand_total", q.GrandTotal),
	)
	return q, nil
}

// Get returns a quotation the actor may see.
func (s *QuotationService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Quotation, error) {
	q, err := s.quotations.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.canAccess(q) {
		return nil, ErrForbidden
	}
	return q, nil
}

// AuthorizeFile applies the quotation access rules to stored quotation PDFs.
// Other stored files are open to every signed-in user.
func (s *QuotationService) AuthorizeFile(ctx context.Context, actor Actor, name string) error {
	if !strings.HasPrefix(name, "quotations/") || actor.Profile.IsAdmin() {
		return nil
	}
	number, ok := pdfgen.QuotationNumberFromPath(name)
	if !ok {
		return ErrForbidden
	}
	q, err := s.quotations.GetByNumber(ctx, number)
	if err != nil {
		return err
	}
	if !actor.canAccess(q) {
		return ErrForbidden
	}
	return nil
}

// GeneratePDF renders a stored quotation. With upload enabled the artifact is
// stored first and its URL recorded on the quotation; a failed upload fails
// the call and leaves the quotation untouched.
func (s *QuotationService) GeneratePDF(ctx context.Context, actor Actor, id uuid.UUID, req models.GeneratePDFRequest) (*GeneratedPDF, error) {
	q, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	art, err := s.render(ctx, "save", actor, q, req.Terms, req.Currency)
	if err != nil {
		return nil, err
	}

	out := &GeneratedPDF{Quotation: q, Artifact: art}
	if req.ShouldUpload() {
		url, err := s.store.Put(ctx, art.Path, art.Bytes)
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", art.FileName, err)
		}
		if err := s.quotations.UpdatePDFURL(ctx, q.ID, url); err != nil {
			return nil, fmt.Errorf("record pdf url for %s: %w", q.QuotationNumber, err)
		}
		q.PDFURL = url
		out.URL = url
	}

	s.record(ctx, actor, "PDF Generation", "Quotation PDF", "Generated "+art.FileName, q.QuotationNumber)
	return out, nil
}

// Preview renders unsaved data. Nothing is persisted.
func (s *QuotationService) Preview(ctx context.Context, actor Actor, req models.PreviewPDFRequest) (*pdfgen.Artifact, error) {
	settings := models.Settings{}
	if req.Settings != nil {
		settings = *req.Settings
	} else {
		stored, err := s.settings.Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}
		settings = stored
	}
	q := req.Quotation
	if strings.TrimSpace(q.QuotationNumber) == "" {
		q.QuotationNumber = previewNumber
	}

	started := time.Now()
	art, err := s.generator.Generate(ctx, pdfgen.Request{
		Quotation: q,
		Items:     req.Items,
		Settings:  settings,
		Agent:     actor.Profile.Agent(),
		Terms:     req.Terms,
		Currency:  req.Currency,
	})
	s.observe("preview", started, art, err)
	return art, err
}

// EmailQuotation renders the quotation and mails it to the customer.
func (s *QuotationService) EmailQuotation(ctx context.Context, actor Actor, id uuid.UUID, req models.GeneratePDFRequest) error {
	if s.mailer == nil {
		return ErrMailDisabled
	}
	q, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	if strings.TrimSpace(q.CustomerEmail) == "" {
		return ErrNoRecipient
	}
	art, err := s.render(ctx, "email", actor, q, req.Terms, req.Currency)
	if err != nil {
		return err
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	agent := actor.Profile.Agent()
	vars := map[string]string{
		"customer_name":    q.CustomerName,
		"quotation_number": q.QuotationNumber,
		"valid_until":      q.ValidUntil().Format("02-01-2006"),
		"item_count":       strconv.Itoa(len(q.Items)),
		"grand_total":      pdfgen.LookupCurrency(req.Currency).FormatAmount(q.GrandTotal),
		"agent_name":       agent.FullName,
		"agent_phone":      firstNonEmpty(agent.Phone, settings.CompanyPhone),
		"company_name":     firstNonEmpty(settings.CompanyName, pdfgen.DefaultCompanyName),
	}
	mail := Mail{
		To:      []string{q.CustomerEmail},
		Subject: processTemplate(quotationSubjectTemplate, vars, false),
		HTML:    processTemplate(quotationBodyTemplate, vars, true),
		Attachments: []Attachment{{
			FileName:    art.FileName,
			ContentType: "application/pdf",
			Data:        art.Bytes,
		}},
	}
	if settings.CompanyEmail != "" {
		mail.Cc = []string{settings.CompanyEmail}
	}
	if err := s.mailer.Send(mail); err != nil {
		s.log.Error("quotation mail failed", zap.String("quotation_number", q.QuotationNumber), zap.Error(err))
		return fmt.Errorf("mail %s: %w", q.QuotationNumber, err)
	}

	s.record(ctx, actor, "Email", "Quotation Email", "Sent "+art.FileName+" to "+q.CustomerEmail, q.QuotationNumber)
	return nil
}

// ExpireStale marks every quotation past its validity as expired.
func (s *QuotationService) ExpireStale(ctx context.Context) (int64, error) {
	n, err := s.quotations.ExpireStale(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("expire quotations: %w", err)
	}
	s.metrics.observeExpired(n)
	s.log.Info("stale quotations expired", zap.Int64("count", n))
	return n, nil
}

func (s *QuotationService) render(ctx context.Context, kind string, actor Actor, q *models.Quotation, terms []models.Term, currency string) (*pdfgen.Artifact, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	started := time.Now()
	art, err := s.generator.Generate(ctx, pdfgen.Request{
		Quotation: *q,
		Items:     q.Items,
		Settings:  settings,
		Agent:     actor.Profile.Agent(),
		Terms:     terms,
		Currency:  currency,
	})
	s.observe(kind, started, art, err)
	if err != nil {
		s.log.Error("quotation pdf failed", zap.String("quotation_number", q.QuotationNumber), zap.Error(err))
		return nil, err
	}
	if len(art.MissingImages) > 0 {
		s.log.Warn("quotation pdf generated without some images",
			zap.String("quotation_number", q.QuotationNumber),
			zap.Strings("missing_images", art.MissingImages),
		)
	}
	return art, nil
}

func (s *QuotationService) observe(kind string, started time.Time, art *pdfgen.Artifact, err error) {
	pages, missing := 0, 0
	if art != nil {
		pages, missing = art.Pages, len(art.MissingImages)
	}
	s.metrics.observeGeneration(kind, started, pages, missing, err)
}

// record writes an activity log entry. Failures are logged and never fail the caller.
func (s *QuotationService) record(ctx context.Context, actor Actor, eventContext, event, description, number string) {
	if s.activity == nil {
		return
	}
	entry := models.ActivityLog{
		UserName:        firstNonEmpty(actor.Profile.FullName, actor.Profile.Email),
		IPAddress:       actor.IP,
		EventContext:    eventContext,
		EventName:       event,
		Description:     description,
		QuotationNumber: number,
	}
	if err := s.activity.Save(ctx, entry); err != nil {
		s.log.Warn("activity log not saved", zap.String("event", event), zap.Error(err))
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
