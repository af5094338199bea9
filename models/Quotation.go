package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ImageFormat selects how a line item's image is laid out next to its features.
type ImageFormat string

const (
	ImageFormatWide ImageFormat = "wide" // image below the description, full width
	ImageFormatTall ImageFormat = "tall" // image beside the features column
)

const (
	QuotationStatusActive  = "active"
	QuotationStatusExpired = "expired"

	DefaultValidityDays = 30
)

// AddOn is an optional priced accessory selected on a line item.
type AddOn struct {
	Name  string  `json:"name" example:"Spare lamp kit"`
	Price float64 `json:"price" example:"2500"`
}

// SpecPair is one row of the technical specification list.
type SpecPair struct {
	Key   string `json:"key" example:"Power"`
	Value string `json:"value" example:"230V AC"`
}

// Term is one clause of the terms and conditions page.
type Term struct {
	Title string `json:"title" example:"PAYMENT"`
	Text  string `json:"text" example:"100% advance"`
}

// LineItem is a product snapshot captured on a quotation.
type LineItem struct {
	ID             string      `json:"id" example:"6f1c2d1e-2b1a-4c55-8d6c-0e1f2a3b4c5d"`
	Name           string      `json:"name" example:"Laminar Flow Unit"`
	Description    string      `json:"description"`
	Features       []string    `json:"features"`
	Specs          []SpecPair  `json:"specs"`
	Price          float64     `json:"price" example:"50000"`
	SelectedAddons []AddOn     `json:"selectedAddons"`
	ImageFormat    ImageFormat `json:"image_format" example:"wide"`
	ImageURL       string      `json:"image_url,omitempty"`
}

// UnitPrice is the base price plus every selected add-on.
func (i LineItem) UnitPrice() float64 {
	total := i.Price
	for _, a := range i.SelectedAddons {
		total += a.Price
	}
	return total
}

// Layout returns the stored image format, treating anything but "tall" as wide.
func (i LineItem) Layout() ImageFormat {
	if i.ImageFormat == ImageFormatTall {
		return ImageFormatTall
	}
	return ImageFormatWide
}

// Quotation is a saved quotation record with its line items embedded as JSON.
type Quotation struct {
	ID              uuid.UUID                      `json:"id" gorm:"type:uuid;primaryKey"`
	QuotationNumber string                         `json:"quotation_number" gorm:"uniqueIndex;not null" example:"RLE-107"`
	CreatedBy       uuid.UUID                      `json:"created_by" gorm:"type:uuid;index"`
	CustomerName    string                         `json:"customer_name" example:"Acme Pharma Pvt Ltd"`
	CustomerPhone   string                         `json:"customer_phone" example:"+91 90000 00000"`
	CustomerEmail   string                         `json:"customer_email" example:"purchase@acme.example"`
	CustomerAddress string                         `json:"customer_address"`
	ValidityDays    int                            `json:"validity_days" example:"30"`
	Items           datatypes.JSONSlice[LineItem] `json:"items_json" gorm:"column:items_json"`
	Subtotal        float64                        `json:"subtotal"`
	TaxTotal        float64                        `json:"tax_total"`
	DiscountTotal   float64                        `json:"discount_total"`
	GrandTotal      float64                        `json:"grand_total"`
	PDFURL          string                         `json:"pdf_url" gorm:"column:pdf_url"`
	Status          string                         `json:"status" example:"active"`
	CreatedAt       time.Time                      `json:"created_at"`
	UpdatedAt       time.Time                      `json:"updated_at"`
}

func (Quotation) TableName() string {
	return "quotations"
}

func (q *Quotation) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if q.Status == "" {
		q.Status = QuotationStatusActive
	}
	return nil
}

// Validity returns the validity period in days, defaulting to 30.
func (q Quotation) Validity() int {
	if q.ValidityDays <= 0 {
		return DefaultValidityDays
	}
	return q.ValidityDays
}

// IssuedAt is the creation time, or now for a quotation not yet saved.
func (q Quotation) IssuedAt() time.Time {
	if q.CreatedAt.IsZero() {
		return time.Now()
	}
	return q.CreatedAt
}

func (q Quotation) ValidUntil() time.Time {
	return q.IssuedAt().AddDate(0, 0, q.Validity())
}

// QuotationSummary is the admin tracking list row.
type QuotationSummary struct {
	ID              uuid.UUID `json:"id"`
	QuotationNumber string    `json:"quotation_number" example:"RLE-107"`
	CustomerName    string    `json:"customer_name"`
	GrandTotal      float64   `json:"grand_total"`
	CreatedAt       time.Time `json:"created_at"`
	PDFURL          string    `json:"pdf_url"`
	Status          string    `json:"status"`
	CreatedBy       uuid.UUID `json:"created_by"`
	CreatedByName   string    `json:"created_by_name" example:"Ravi Kumar"`
}
