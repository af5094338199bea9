package models

// CreateQuotationRequest is the body the quotation builder submits.
type CreateQuotationRequest struct {
	CustomerName    string     `json:"customer_name" binding:"required" example:"Acme Pharma Pvt Ltd"`
	CustomerPhone   string     `json:"customer_phone"`
	CustomerEmail   string     `json:"customer_email" binding:"omitempty,email"`
	CustomerAddress string     `json:"customer_address"`
	ValidityDays    int        `json:"validity_days" binding:"gte=0" example:"30"`
	Items           []LineItem `json:"items" binding:"required,min=1,dive"`
	DiscountTotal   float64    `json:"discount_total" binding:"gte=0"`
}

// GeneratePDFRequest carries the per-generation options.
type GeneratePDFRequest struct {
	Terms    []Term `json:"selectedTerms"`
	Currency string `json:"currency" binding:"omitempty,oneof=INR USD" example:"INR"`
	Upload   *bool  `json:"upload"`
}

// ShouldUpload defaults to true when the caller does not say otherwise.
func (r GeneratePDFRequest) ShouldUpload() bool {
	return r.Upload == nil || *r.Upload
}

// PreviewPDFRequest renders a document from data that is not stored yet.
type PreviewPDFRequest struct {
	Quotation Quotation  `json:"quotation"`
	Items     []LineItem `json:"items" binding:"required"`
	Settings  *Settings  `json:"settings"`
	Terms     []Term     `json:"selectedTerms"`
	Currency  string     `json:"currency" binding:"omitempty,oneof=INR USD"`
}

type GeneratePDFResponse struct {
	QuotationNumber string   `json:"quotation_number"`
	PDFURL          string   `json:"pdf_url"`
	Pages           int      `json:"pages"`
	MissingImages   []string `json:"missing_images,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid input"`
	Details string `json:"details,omitempty" example:""`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}
