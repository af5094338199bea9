package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product is a catalogue entry that line items are copied from.
type Product struct {
	ID          uuid.UUID                      `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string                         `json:"name" gorm:"not null" example:"Laminar Flow Unit"`
	Description string                         `json:"description"`
	Price       float64                        `json:"price" example:"50000"`
	ImageURL    string                         `json:"image_url"`
	SKU         string                         `json:"sku" example:"RLE-LFU-01"`
	Specs       datatypes.JSONSlice[SpecPair] `json:"specs"`
	Features    pq.StringArray                 `json:"features" gorm:"type:text[]"`
	Category    string                         `json:"category" example:"Clean Air"`
	Addons      datatypes.JSONSlice[AddOn]    `json:"addons"`
	ImageFormat ImageFormat                    `json:"image_format" gorm:"default:wide" example:"wide"`
	Active      bool                           `json:"active"`
	CreatedAt   time.Time                      `json:"created_at"`
	UpdatedAt   time.Time                      `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.ImageFormat == "" {
		p.ImageFormat = ImageFormatWide
	}
	return nil
}

// LineItem snapshots the product with the chosen add-ons.
func (p Product) LineItem(selected []AddOn) LineItem {
	return LineItem{
		ID:             p.ID.String(),
		Name:           p.Name,
		Description:    p.Description,
		Features:       append([]string(nil), p.Features...),
		Specs:          append([]SpecPair(nil), p.Specs...),
		Price:          p.Price,
		SelectedAddons: selected,
		ImageFormat:    p.ImageFormat,
		ImageURL:       p.ImageURL,
	}
}

// ProductRequest is the admin create/update form.
type ProductRequest struct {
	Name        string      `json:"name" binding:"required"`
	Description string      `json:"description"`
	Price       float64     `json:"price" binding:"gte=0"`
	ImageURL    string      `json:"image_url"`
	SKU         string      `json:"sku"`
	Specs       []SpecPair  `json:"specs"`
	Features    []string    `json:"features"`
	Category    string      `json:"category"`
	Addons      []AddOn     `json:"addons"`
	ImageFormat ImageFormat `json:"image_format" binding:"omitempty,oneof=wide tall"`
	Active      *bool       `json:"active"`
}

// Apply copies the form onto p.
func (r ProductRequest) Apply(p *Product) {
	p.Name = r.Name
	p.Description = r.Description
	p.Price = r.Price
	p.ImageURL = r.ImageURL
	p.SKU = r.SKU
	p.Specs = r.Specs
	p.Features = r.Features
	p.Category = r.Category
	p.Addons = r.Addons
	if r.ImageFormat != "" {
		p.ImageFormat = r.ImageFormat
	}
	if r.Active != nil {
		p.Active = *r.Active
	} else if p.ID == uuid.Nil {
		p.Active = true
	}
}
