package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quotations/models"
	"quotations/repository"
	"quotations/utils"
)

// ListProductsHandler godoc
// @Summary      List active products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.Product
// @Router       /api/products [get]
func ListProductsHandler(repo *repository.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()

		products, err := repo.ListActive(ctx)
		if err != nil {
			respondError(c, err, "Failed to list products")
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// CreateProductHandler godoc
// @Summary      Create product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      models.ProductRequest  true  "Product"
// @Success      201   {object}  models.Product
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/products [post]
func CreateProductHandler(repo *repository.ProductRepository, activity *repository.ActivityLogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()

		var p models.Product
		req.Apply(&p)
		if err := repo.Create(ctx, &p); err != nil {
			respondError(c, err, "Failed to create product")
			return
		}
		saveActivity(c, activity, "Products", "Product Created", "Created product "+p.Name)
		c.JSON(http.StatusCreated, p)
	}
}

// UpdateProductHandler godoc
// @Summary      Update product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Product ID"
// @Param        body  body      models.ProductRequest  true  "Product"
// @Success      200   {object}  models.Product
// @Failure      400   {object}  models.ErrorResponse
// @Failure      404   {object}  models.ErrorResponse
// @Router       /api/products/{id} [put]
func UpdateProductHandler(repo *repository.ProductRepository, activity *repository.ActivityLogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}
		var req models.ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()

		p, err := repo.Get(ctx, id)
		if err != nil {
			respondError(c, err, "Failed to load product")
			return
		}
		req.Apply(p)
		if err := repo.Update(ctx, p); err != nil {
			respondError(c, err, "Failed to update product")
			return
		}
		saveActivity(c, activity, "Products", "Product Updated", "Updated product "+p.Name)
		c.JSON(http.StatusOK, p)
	}
}
