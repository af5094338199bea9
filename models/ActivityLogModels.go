package models

import "time"

type ActivityLog struct {
	ID              uint      `json:"id" gorm:"primaryKey" example:"1"`
	CreatedAt       time.Time `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UserName        string    `json:"user_name" example:"Ravi Kumar"`
	IPAddress       string    `json:"ip_address" example:"192.168.1.1"`
	EventContext    string    `json:"event_context" example:"PDF Generation"`
	EventName       string    `json:"event_name" example:"Quotation PDF"`
	Description     string    `json:"description" example:"Generated RLE-107_Quotation.pdf"`
	QuotationNumber string    `json:"quotation_number,omitempty" example:"RLE-107"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
