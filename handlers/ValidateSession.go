package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quotations/models"
	"quotations/repository"
	"quotations/services"
	"quotations/utils"
)

const profileKey = "profile"

// AuthMiddleware validates the bearer token and loads the caller's profile.
func AuthMiddleware(profiles *repository.ProfileRepository, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing Authorization header"})
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing token"})
			return
		}

		claims, err := utils.ValidateJWT(secret, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		id, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()
		profile, err := profiles.Get(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
			return
		}
		if !profile.Active {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account is suspended"})
			return
		}

		c.Set(profileKey, *profile)
		c.Next()
	}
}

// RequireAdmin rejects callers that are not admins. It must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if p, ok := currentProfile(c); !ok || !p.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// ValidateSession godoc
// @Summary      Validate session
// @Description  Returns the profile behind the bearer token
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.Profile
// @Failure      401  {object}  models.ErrorResponse
// @Router       /api/validate-session [get]
func ValidateSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := currentProfile(c)
		c.JSON(http.StatusOK, p)
	}
}

func currentProfile(c *gin.Context) (models.Profile, bool) {
	v, ok := c.Get(profileKey)
	if !ok {
		return models.Profile{}, false
	}
	p, ok := v.(models.Profile)
	return p, ok
}

func actorFrom(c *gin.Context) services.Actor {
	p, _ := currentProfile(c)
	return services.Actor{Profile: p, IP: c.ClientIP()}
}
