package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"quotations/models"
	"quotations/repository"
	"quotations/utils"
)

const exportSheet = "Quotations"

var exportColumns = []string{
	"Quotation No", "Date", "Customer", "Phone", "Email", "Items",
	"Subtotal", "Tax", "Discount", "Grand Total", "Status", "Valid Until", "PDF",
}

// ExportQuotationsHandler godoc
// @Summary      Export quotations
// @Description  Downloads every quotation as an Excel workbook
// @Tags         quotations
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200  {file}    file  "xlsx workbook"
// @Failure      403  {object}  models.ErrorResponse
// @Router       /api/quotations/export [get]
func ExportQuotationsHandler(repo *repository.QuotationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()

		rows, err := repo.ListAll(ctx)
		if err != nil {
			respondError(c, err, "Failed to load quotations")
			return
		}

		f, err := buildQuotationWorkbook(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating Excel file", "details": err.Error()})
			return
		}
		defer f.Close()

		filename := fmt.Sprintf("quotations_%s.xlsx", time.Now().Format("2006-01-02"))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s", filename, url.PathEscape(filename)))
		if err := f.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error writing Excel file"})
			return
		}
	}
}

func buildQuotationWorkbook(rows []models.Quotation) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(exportSheet)
	if err != nil {
		f.Close()
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Family: "Arial"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		f.Close()
		return nil, err
	}

	header := make([]interface{}, len(exportColumns))
	for i, col := range exportColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(exportColumns))
	if err := f.SetCellStyle(exportSheet, "A1", lastCol+"1", headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	for i, q := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			q.QuotationNumber,
			q.IssuedAt().Format("02-01-2006"),
			q.CustomerName,
			q.CustomerPhone,
			q.CustomerEmail,
			len(q.Items),
			q.Subtotal,
			q.TaxTotal,
			q.DiscountTotal,
			q.GrandTotal,
			q.Status,
			q.ValidUntil().Format("02-01-2006"),
			q.PDFURL,
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}
	if len(rows) > 0 {
		last := fmt.Sprintf("J%d", len(rows)+1)
		if err := f.SetCellStyle(exportSheet, "G2", last, amountStyle); err != nil {
			f.Close()
			return nil, err
		}
	}
	for col, width := range map[string]float64{"A": 14, "B": 12, "C": 30, "E": 28, "J": 16, "M": 50} {
		if err := f.SetColWidth(exportSheet, col, col, width); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}
