package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quotations/models"
	"quotations/pdfgen"
	"quotations/services"
	"quotations/utils"
)

// GenerateQuotationPDF godoc
// @Summary      Generate quotation PDF
// @Description  Renders the saved quotation, uploads it unless upload is false, and returns the PDF
// @Tags         quotations
// @Accept       json
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id       path  string                     true   "Quotation ID"
// @Param        request  body  models.GeneratePDFRequest  false  "Terms, currency and upload flag"
// @Success      200  {file}    file  "PDF file"
// @Header       200  {string}  X-Quotation-Number  "Quotation number"
// @Header       200  {string}  X-PDF-URL  "Public URL of the stored PDF"
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/quotations/{id}/pdf [post]
func GenerateQuotationPDF(svc *services.QuotationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := quotationID(c)
		if !ok {
			return
		}
		var req models.GeneratePDFRequest
		if !bindOptionalJSON(c, &req) {
			return
		}

		ctx, cancel := utils.GetRenderContext(c.Request.Context())
		defer cancel()
		out, err := svc.GeneratePDF(ctx, actorFrom(c), id, req)
		if err != nil {
			respondError(c, err, "Failed to generate PDF")
			return
		}

		c.Header("X-Quotation-Number", out.Quotation.QuotationNumber)
		if out.URL != "" {
			c.Header("X-PDF-URL", out.URL)
		}
		writePDF(c, out.Artifact)
	}
}

// PreviewQuotationPDF godoc
// @Summary      Preview quotation PDF
// @Description  Renders a quotation that is not saved yet. Nothing is stored.
// @Tags         quotations
// @Accept       json
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        request  body  models.PreviewPDFRequest  true  "Quotation, items, settings, terms"
// @Success      200  {file}  file  "PDF file"
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/quotation_pdf/preview [post]
func PreviewQuotationPDF(svc *services.QuotationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.PreviewPDFRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}

		ctx, cancel := utils.GetRenderContext(c.Request.Context())
		defer cancel()
		art, err := svc.Preview(ctx, actorFrom(c), req)
		if err != nil {
			respondError(c, err, "Failed to generate PDF")
			return
		}
		writePDF(c, art)
	}
}

func writePDF(c *gin.Context, art *pdfgen.Artifact) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s", art.FileName, url.PathEscape(art.FileName)))
	c.Header("X-PDF-Pages", strconv.Itoa(art.Pages))
	if len(art.MissingImages) > 0 {
		c.Header("X-Missing-Images", strings.Join(art.MissingImages, ","))
	}
	c.Data(http.StatusOK, "application/pdf", art.Bytes)
}

// bindOptionalJSON binds the body when there is one. It writes the 400 itself.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return false
	}
	return true
}

func quotationID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quotation id"})
		return uuid.Nil, false
	}
	return id, true
}
