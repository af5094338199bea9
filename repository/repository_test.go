package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"quotations/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Profile{}, &models.Settings{}, &models.Quotation{}, &models.ActivityLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// text[] is Postgres only
	if err := db.Exec(`CREATE TABLE products (
		id TEXT PRIMARY KEY, name TEXT NOT NULL, description TEXT, price REAL, image_url TEXT, sku TEXT,
		specs JSON, features TEXT, category TEXT, addons JSON, image_format TEXT DEFAULT 'wide',
		active NUMERIC, created_at DATETIME, updated_at DATETIME)`).Error; err != nil {
		t.Fatalf("create products: %v", err)
	}
	return db
}

func TestNextQuotationNumber(t *testing.T) {
	cases := []struct {
		prev, want string
	}{
		{prev: "", want: "RLE-101"},
		{prev: "RLE-101", want: "RLE-102"},
		{prev: "RLE-999", want: "RLE-1000"},
		{prev: "RLE-abc", want: "RLE-101"},
		{prev: "XYZ-500", want: "RLE-101"},
	}
	for _, tc := range cases {
		if got := NextQuotationNumber("RLE", tc.prev); got != tc.want {
			t.Errorf("NextQuotationNumber(%q) = %q, want %q", tc.prev, got, tc.want)
		}
	}
}

func TestQuotationCreateAllocatesSequentialNumbers(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuotationRepository(db, "RLE")
	ctx := context.Background()

	for i, want := range []string{"RLE-101", "RLE-102", "RLE-103"} {
		q := &models.Quotation{
			CustomerName: "Customer",
			Items:        []models.LineItem{{Name: "Unit", Price: float64(1000 * (i + 1))}},
		}
		if err := repo.Create(ctx, q); err != nil {
			t.Fatalf("create: %v", err)
		}
		if q.QuotationNumber != want {
			t.Errorf("quotation %d got number %q, want %q", i, q.QuotationNumber, want)
		}
		if q.Status != models.QuotationStatusActive || q.ID == uuid.Nil {
			t.Errorf("defaults not applied: %+v", q)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func TestQuotationGetRoundTripsItems(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuotationRepository(db, "RLE")
	ctx := context.Background()

	q := &models.Quotation{
		CustomerName: "Acme",
		Items: []models.LineItem{{
			ID:             "p1",
			Name:           "Laminar Flow Unit",
			Price:          50000,
			Features:       []string{"HEPA"},
			Specs:          []models.SpecPair{{Key: "Power", Value: "230V"}},
			SelectedAddons: []models.AddOn{{Name: "Lamp", Price: 2500}},
			ImageFormat:    models.ImageFormatTall,
		}},
	}
	if err := repo.Create(ctx, q); err != nil {
		t.Fatal(err)
	}

	got, err := repo.Get(ctx, q.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].UnitPrice() != 52500 || got.Items[0].Layout() != models.ImageFormatTall {
		t.Errorf("items did not round trip: %+v", got.Items)
	}

	if _, err := repo.Get(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing quotation: got %v, want ErrNotFound", err)
	}
}

func TestListRecentIncludesCreatorName(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	profiles := NewProfileRepository(db)
	repo := NewQuotationRepository(db, "RLE")

	ravi := &models.Profile{FullName: "Ravi Kumar", Email: "Ravi@Example.com"}
	if err := profiles.Create(ctx, ravi); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := repo.Create(ctx, &models.Quotation{CustomerName: "C", CreatedBy: ravi.ID}); err != nil {
			t.Fatal(err)
		}
		time.Sleep(2 * time.Millisecond)
	}
	if err := repo.Create(ctx, &models.Quotation{CustomerName: "Orphan", CreatedBy: uuid.New()}); err != nil {
		t.Fatal(err)
	}

	rows, err := repo.ListRecent(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	if rows[0].CustomerName != "Orphan" || rows[0].CreatedByName != "" {
		t.Errorf("newest row = %+v", rows[0])
	}
	if rows[1].CreatedByName != "Ravi Kumar" || rows[1].QuotationNumber != "RLE-103" {
		t.Errorf("second row = %+v", rows[1])
	}

	own, err := repo.ListByCreator(ctx, ravi.ID)
	if err != nil || len(own) != 3 {
		t.Fatalf("ListByCreator = %d rows, %v", len(own), err)
	}

	found, err := profiles.FindByEmail(ctx, " ravi@example.com ")
	if err != nil || found.ID != ravi.ID {
		t.Errorf("FindByEmail = %+v, %v", found, err)
	}
}

func TestUpdatePDFURL(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuotationRepository(db, "RLE")
	ctx := context.Background()

	q := &models.Quotation{CustomerName: "Acme"}
	if err := repo.Create(ctx, q); err != nil {
		t.Fatal(err)
	}
	if err := repo.UpdatePDFURL(ctx, q.ID, "https://x/api/get-file?file=a.pdf"); err != nil {
		t.Fatal(err)
	}
	got, _ := repo.Get(ctx, q.ID)
	if got.PDFURL != "https://x/api/get-file?file=a.pdf" {
		t.Errorf("pdf url = %q", got.PDFURL)
	}
	if err := repo.UpdatePDFURL(ctx, uuid.New(), "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestExpireStale(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuotationRepository(db, "RLE")
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	old := &models.Quotation{CustomerName: "Old", ValidityDays: 10, CreatedAt: now.AddDate(0, 0, -11)}
	fresh := &models.Quotation{CustomerName: "Fresh", ValidityDays: 30, CreatedAt: now.AddDate(0, 0, -11)}
	defaulted := &models.Quotation{CustomerName: "Default", CreatedAt: now.AddDate(0, 0, -31)}
	for _, q := range []*models.Quotation{old, fresh, defaulted} {
		if err := repo.Create(ctx, q); err != nil {
			t.Fatal(err)
		}
	}

	n, err := repo.ExpireStale(ctx, now)
	if err != nil {
		t.Fatalf("expire: %v", err)
	}
	if n != 2 {
		t.Errorf("expired %d, want 2", n)
	}
	for q, want := range map[*models.Quotation]string{old: models.QuotationStatusExpired, fresh: models.QuotationStatusActive, defaulted: models.QuotationStatusExpired} {
		got, _ := repo.Get(ctx, q.ID)
		if got.Status != want {
			t.Errorf("%s: status %q, want %q", q.CustomerName, got.Status, want)
		}
	}

	n, err = repo.ExpireStale(ctx, now)
	if err != nil || n != 0 {
		t.Errorf("second run expired %d, %v", n, err)
	}
}

func TestSettingsDefaultAndSave(t *testing.T) {
	db := newTestDB(t)
	repo := NewSettingsRepository(db)
	ctx := context.Background()

	s, err := repo.Get(ctx)
	if err != nil || s.CompanyName != "" {
		t.Fatalf("empty settings = %+v, %v", s, err)
	}
	s.CompanyName = "Raise Lab Equipment"
	s.TaxRate = 18
	if err := repo.Save(ctx, &s); err != nil {
		t.Fatal(err)
	}
	s.TaxRate = 12
	if err := repo.Save(ctx, &s); err != nil {
		t.Fatal(err)
	}
	got, _ := repo.Get(ctx)
	if got.CompanyName != "Raise Lab Equipment" || got.TaxRate != 12 {
		t.Errorf("settings = %+v", got)
	}
	var count int64
	db.Model(&models.Settings{}).Count(&count)
	if count != 1 {
		t.Errorf("got %d settings rows, want 1", count)
	}
}

func TestProductsActiveOnly(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	on := &models.Product{Name: "Hood", Price: 100, Active: true, Features: []string{"Quiet", "Bright, white"}}
	off := &models.Product{Name: "Legacy", Price: 50}
	for _, p := range []*models.Product{on, off} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	list, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Name != "Hood" {
		t.Fatalf("active list = %+v", list)
	}
	if len(list[0].Features) != 2 || list[0].Features[1] != "Bright, white" {
		t.Errorf("features = %q", list[0].Features)
	}
	if list[0].ImageFormat != models.ImageFormatWide {
		t.Errorf("image format default = %q", list[0].ImageFormat)
	}
}

func TestActivityLogPaging(t *testing.T) {
	db := newTestDB(t)
	repo := NewActivityLogRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := repo.Save(ctx, models.ActivityLog{EventName: "Quotation PDF", UserName: "ravi"}); err != nil {
			t.Fatal(err)
		}
	}
	page, total, err := repo.Page(ctx, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if total != 5 || len(page) != 2 {
		t.Errorf("total %d, page size %d", total, len(page))
	}
	if page[0].CreatedAt.IsZero() {
		t.Error("created_at not stamped")
	}
}

func TestProfileUpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	profiles := NewProfileRepository(db)

	p := &models.Profile{FullName: "Rep", Email: "rep@example.com", Active: true}
	if err := profiles.Create(ctx, p); err != nil {
		t.Fatal(err)
	}
	p.Active = false
	if err := profiles.Update(ctx, p); err != nil {
		t.Fatal(err)
	}
	got, err := profiles.Get(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Active {
		t.Error("active flag not persisted")
	}

	if err := profiles.Delete(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	if err := profiles.Delete(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}
