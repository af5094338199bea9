package models

import "time"

// SettingsSingletonID is the primary key of the only settings row.
const SettingsSingletonID = 1

// Settings holds company branding used on every generated document.
type Settings struct {
	ID             int       `json:"id" gorm:"primaryKey" example:"1"`
	CompanyName    string    `json:"company_name" example:"Raise Lab Equipment"`
	CompanyLogo    string    `json:"company_logo" example:"quotation-logo.jpg"`
	CompanyAddress string    `json:"company_address"`
	CompanyPhone   string    `json:"company_phone" example:"+91 91777 70365"`
	CompanyEmail   string    `json:"company_email" example:"sales@raiselabequip.com"`
	TaxRate        float64   `json:"tax_rate" example:"18"`
	CurrencySymbol string    `json:"currency_symbol" example:"Rs."`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Settings) TableName() string {
	return "settings"
}

// UpdateSettingsRequest is the admin settings form.
type UpdateSettingsRequest struct {
	CompanyName    *string  `json:"company_name"`
	CompanyLogo    *string  `json:"company_logo"`
	CompanyAddress *string  `json:"company_address"`
	CompanyPhone   *string  `json:"company_phone"`
	CompanyEmail   *string  `json:"company_email"`
	TaxRate        *float64 `json:"tax_rate"`
	CurrencySymbol *string  `json:"currency_symbol"`
}

// Apply copies every non-nil field onto s.
func (r UpdateSettingsRequest) Apply(s *Settings) {
	if r.CompanyName != nil {
		s.CompanyName = *r.CompanyName
	}
	if r.CompanyLogo != nil {
		s.CompanyLogo = *r.CompanyLogo
	}
	if r.CompanyAddress != nil {
		s.CompanyAddress = *r.CompanyAddress
	}
	if r.CompanyPhone != nil {
		s.CompanyPhone = *r.CompanyPhone
	}
	if r.CompanyEmail != nil {
		s.CompanyEmail = *r.CompanyEmail
	}
	if r.TaxRate != nil {
		s.TaxRate = *r.TaxRate
	}
	if r.CurrencySymbol != nil {
		s.CurrencySymbol = *r.CurrencySymbol
	}
}
