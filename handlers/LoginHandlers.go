package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quotations/models"
	"quotations/repository"
	"quotations/utils"
)

// LoginHandler handles user authentication
// @Summary Login user
// @Description Authenticate with email and password and return an access token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /api/login [post]
func LoginHandler(profiles *repository.ProfileRepository, activity *repository.ActivityLogRepository, secret string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}

		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()

		user, err := profiles.FindByEmail(ctx, req.Email)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
			return
		}
		if user == nil || !utils.ValidatePassword(user.PasswordHash, req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		if !user.Active {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is suspended"})
			return
		}

		token, exp, err := utils.GenerateJWT(secret, utils.TokenClaims{
			UserID: user.ID.String(),
			Email:  user.Email,
			Role:   string(user.Role),
		})
		if err != nil {
			log.Error("issue access token", zap.String("email", user.Email), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}

		if err := activity.Save(ctx, models.ActivityLog{
			UserName:     user.FullName,
			IPAddress:    c.ClientIP(),
			EventContext: "Authentication",
			EventName:    "Login",
			Description:  "User logged in",
		}); err != nil {
			log.Warn("activity log not saved", zap.String("event", "Login"), zap.Error(err))
		}

		c.JSON(http.StatusOK, models.LoginResponse{
			AccessToken: token,
			ExpiresAt:   exp.Unix(),
			Profile:     *user,
		})
	}
}
