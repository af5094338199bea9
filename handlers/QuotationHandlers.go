package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quotations/models"
	"quotations/repository"
	"quotations/services"
	"quotations/utils"
)

// ListQuotationsHandler godoc
// @Summary      List quotations
// @Description  Sales users see their own quotations. Admins see the newest 100 with the creator's name.
// @Tags         quotations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.QuotationSummary
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/quotations [get]
func ListQuotationsHandler(repo *repository.QuotationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()

		actor := actorFrom(c)
		if actor.Profile.IsAdmin() {
			rows, err := repo.ListRecent(ctx, repository.AdminListLimit)
			if err != nil {
				respondError(c, err, "Failed to list quotations")
				return
			}
			c.JSON(http.StatusOK, rows)
			return
		}

		own, err := repo.ListByCreator(ctx, actor.Profile.ID)
		if err != nil {
			respondError(c, err, "Failed to list quotations")
			return
		}
		rows := make([]models.QuotationSummary, 0, len(own))
		for _, q := range own {
			rows = append(rows, models.QuotationSummary{
				ID:              q.ID,
				QuotationNumber: q.QuotationNumber,
				CustomerName:    q.CustomerName,
				GrandTotal:      q.GrandTotal,
				CreatedAt:       q.CreatedAt,
				PDFURL:          q.PDFURL,
				Status:          q.Status,
				CreatedBy:       q.CreatedBy,
				CreatedByName:   actor.Profile.FullName,
			})
		}
		c.JSON(http.StatusOK, rows)
	}
}

// CreateQuotationHandler godoc
// @Summary      Create quotation
// @Description  Prices the items with the current tax rate and allocates the next quotation number
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      models.CreateQuotationRequest  true  "Customer and line items"
// @Success      201      {object}  models.Quotation
// @Failure      400      {object}  models.ErrorResponse
// @Router       /api/quotations [post]
func CreateQuotationHandler(svc *services.QuotationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateQuotationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()

		q, err := svc.Create(ctx, actorFrom(c), req)
		if err != nil {
			respondError(c, err, "Failed to save quotation")
			return
		}
		c.JSON(http.StatusCreated, q)
	}
}

// GetQuotationHandler godoc
// @Summary      Get quotation
// @Tags         quotations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Quotation ID"
// @Success      200  {object}  models.Quotation
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/quotations/{id} [get]
func GetQuotationHandler(svc *services.QuotationService) gin.HandlerFunc {
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
		c.JSON(http.StatusOK, q)
	}
}

// EmailQuotationHandler godoc
// @Summary      Email quotation
// @Description  Renders the quotation and mails it to the customer as a PDF attachment
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true   "Quotation ID"
// @Param        request  body      models.GeneratePDFRequest  false  "Terms and currency"
// @Success      200      {object}  models.MessageResponse
// @Failure      403      {object}  models.ErrorResponse
// @Failure      404      {object}  models.ErrorResponse
// @Failure      422      {object}  models.ErrorResponse
// @Failure      503      {object}  models.ErrorResponse
// @Router       /api/quotations/{id}/email [post]
func EmailQuotationHandler(svc *services.QuotationService) gin.HandlerFunc {
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

		if err := svc.EmailQuotation(ctx, actorFrom(c), id, req); err != nil {
			respondError(c, err, "Failed to email quotation")
			return
		}
		c.JSON(http.StatusOK, models.MessageResponse{Message: "Quotation emailed"})
	}
}
