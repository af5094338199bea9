package pdfgen

import (
	"regexp"

	"quotations/models"
)

const (
	DefaultCompanyName    = "Raise Lab Equipment"
	DefaultCompanyAddress = "C-6, B1, Industrial Park, Moula Ali,\nHyderabad, Secunderabad,\nTelangana 500040"
	DefaultSupportPhone   = "+91 91777 70365"
	DefaultContactLine    = "Write us: info@raiselabequip.com / sales@raiselabequip.com | Contact: +91 91777 70365"
	DefaultPreparer       = "SALES TEAM"
)

// DefaultFeatures is printed for an item that has no features of its own.
var DefaultFeatures = []string{
	"Accurate method for determining the strength of antibiotic material",
	"Microprocessor based design",
	"Average of Vertical diameter & Horizontal diameter of inhibited zone",
	"Magnified image of inhibited zone is clearly visible on the prism Screen",
	"Calibration facility with certified coins",
	"Inbuilt thermal printer",
	"Parallel printer port & RS 232 port for taking Test Printer Report",
	"Password protection for Real Time Clock",
	"Membrane Keypad for easy operation",
	"Complies to cGMP (MOC-stainless steel -304 & Stainless Steel-316)",
	"IQ/OQ Documentation",
}

// DefaultTerms is used when the caller selects no terms.
var DefaultTerms = []models.Term{
	{Title: "Packaging & Forwarding", Text: "Extra As Applicable"},
	{Title: "Freight", Text: "To Pay / Extra as applicable"},
	{Title: "DELIVERY", Text: "We deliver the order in 3-4 Weeks from the date of receipt of purchase order"},
	{Title: "INSTALLATION", Text: "Fees extra as applicable"},
	{Title: "PAYMENT", Text: "100% payment at the time of proforma invoice prior to dispatch."},
	{Title: "WARRANTY", Text: "One year warranty from the date of dispatch"},
	{Title: "GOVERNING LAW", Text: "These Terms and Conditions and any action related hereto shall be governed, controlled, interpreted and defined by and under the laws of the State of Telangana"},
	{Title: "MODIFICATION", Text: "Any modification of these Terms and Conditions shall be valid only if it is in writing and signed by the authorized representatives of both Supplier and Customer."},
}

var termNumberPrefix = regexp.MustCompile(`^\d+\.\s*`)

// CleanTermTitle strips a legacy "3. " numbering prefix.
func CleanTermTitle(title string) string {
	return termNumberPrefix.ReplaceAllString(title, "")
}

func featuresOf(item models.LineItem) []string {
	if len(item.Features) > 0 {
		return item.Features
	}
	return DefaultFeatures
}

func termsOrDefault(terms []models.Term) []models.Term {
	if len(terms) > 0 {
		return terms
	}
	return DefaultTerms
}
