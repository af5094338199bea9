package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quotations/repository"
	"quotations/services"
	"quotations/storage"
)

// Deps is everything the API handlers need.
type Deps struct {
	Profiles   *repository.ProfileRepository
	Quotations *repository.QuotationRepository
	Settings   *repository.SettingsRepository
	Products   *repository.ProductRepository
	Activity   *repository.ActivityLogRepository
	Service    *services.QuotationService
	Store      *storage.LocalStore
	JWTSecret  string
	Log        *zap.Logger
}

// RegisterRoutes mounts the /api surface on r.
func RegisterRoutes(r gin.IRouter, d Deps) {
	r.POST("/api/login", LoginHandler(d.Profiles, d.Activity, d.JWTSecret, d.Log))

	api := r.Group("/api", AuthMiddleware(d.Profiles, d.JWTSecret))
	admin := api.Group("", RequireAdmin())

	api.GET("/validate-session", ValidateSession())

	// export is registered before :id so the static segment wins
	admin.GET("/quotations/export", ExportQuotationsHandler(d.Quotations))
	api.GET("/quotations", ListQuotationsHandler(d.Quotations))
	api.POST("/quotations", CreateQuotationHandler(d.Service))
	api.GET("/quotations/:id", GetQuotationHandler(d.Service))
	api.POST("/quotations/:id/pdf", GenerateQuotationPDF(d.Service))
	api.POST("/quotations/:id/email", EmailQuotationHandler(d.Service))
	api.GET("/quotations/:id/qr", QuotationQRCode(d.Service))
	api.POST("/quotation_pdf/preview", PreviewQuotationPDF(d.Service))

	api.GET("/settings", GetSettingsHandler(d.Settings))
	admin.PUT("/settings", UpdateSettingsHandler(d.Settings, d.Activity))

	api.GET("/products", ListProductsHandler(d.Products))
	admin.POST("/products", CreateProductHandler(d.Products, d.Activity))
	admin.PUT("/products/:id", UpdateProductHandler(d.Products, d.Activity))

	admin.GET("/users", ListUsersHandler(d.Profiles))
	admin.POST("/users", CreateUserHandler(d.Profiles, d.Activity))
	admin.PUT("/users/:id", UpdateUserHandler(d.Profiles, d.Activity))
	admin.DELETE("/users/:id", DeleteUserHandler(d.Profiles, d.Activity))

	admin.GET("/logs", GetActivityLogsHandler(d.Activity))

	api.GET("/get-file", ServeFile(d.Store, d.Service))
}
