package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quotations/models"
	"quotations/repository"
	"quotations/utils"
)

// GetSettingsHandler godoc
// @Summary      Get company settings
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.Settings
// @Router       /api/settings [get]
func GetSettingsHandler(repo *repository.SettingsRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()

		s, err := repo.Get(ctx)
		if err != nil {
			respondError(c, err, "Failed to load settings")
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

// UpdateSettingsHandler godoc
// @Summary      Update company settings
// @Description  Only the fields present in the body change
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      models.UpdateSettingsRequest  true  "Settings"
// @Success      200   {object}  models.Settings
// @Failure      400   {object}  models.ErrorResponse
// @Failure      403   {object}  models.ErrorResponse
// @Router       /api/settings [put]
func UpdateSettingsHandler(repo *repository.SettingsRepository, activity *repository.ActivityLogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.UpdateSettingsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		if req.TaxRate != nil && (*req.TaxRate < 0 || *req.TaxRate > 100) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "tax_rate must be between 0 and 100"})
			return
		}

		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()

		s, err := repo.Get(ctx)
		if err != nil {
			respondError(c, err, "Failed to load settings")
			return
		}
		req.Apply(&s)
		if err := repo.Save(ctx, &s); err != nil {
			respondError(c, err, "Failed to save settings")
			return
		}

		saveActivity(c, activity, "Settings", "Settings Updated", "Company settings updated")
		c.JSON(http.StatusOK, s)
	}
}
