package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"quotations/services"
	"quotations/utils"
)

const qrPixels = 320

// QuotationQRCode godoc
// @Summary      Quotation QR code
// @Description  PNG QR code linking to the stored quotation PDF
// @Tags         quotations
// @Produce      image/png
// @Security     BearerAuth
// @Param        id   path  string  true  "Quotation ID"
// @Success      200  {file}    file  "PNG image"
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /api/quotations/{id}/qr [get]
func QuotationQRCode(svc *services.QuotationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := quotationID(c)
		if !ok {
			return
		}
		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()

		q, err := svc.Get(ctx, actorFrom(c), id)
		if err != nil {
			respondError(c, err, "Failed to load quotation")
			return
		}
		if q.PDFURL == "" {
			c.JSON(http.StatusConflict, gin.H{"error": "Quotation PDF has not been saved yet"})
			return
		}

		png, err := qrcode.Encode(q.PDFURL, qrcode.Medium, qrPixels)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
			return
		}
		c.Header("Content-Disposition", "inline; filename=\""+q.QuotationNumber+"_QR.png\"")
		c.Data(http.StatusOK, "image/png", png)
	}
}
