package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quotations/models"
	"quotations/repository"
	"quotations/utils"
)

// ListUsersHandler godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.Profile
// @Failure      403  {object}  models.ErrorResponse
// @Router       /api/users [get]
func ListUsersHandler(profiles *repository.ProfileRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()

		users, err := profiles.List(ctx)
		if err != nil {
			respondError(c, err, "Failed to list users")
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// CreateUserHandler godoc
// @Summary      Create user
// @Description  Creates an active staff account. Role defaults to sales.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      models.CreateUserRequest  true  "User"
// @Success      201   {object}  models.Profile
// @Failure      400   {object}  models.ErrorResponse
// @Failure      409   {object}  models.ErrorResponse
// @Router       /api/users [post]
func CreateUserHandler(profiles *repository.ProfileRepository, activity *repository.ActivityLogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}

		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		p := models.Profile{
			FullName:     req.FullName,
			Email:        req.Email,
			PasswordHash: hash,
			Role:         req.Role,
			Active:       true,
			Phone:        req.Phone,
		}

		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()
		if err := profiles.Create(ctx, &p); err != nil {
			respondError(c, err, "Failed to create user")
			return
		}
		saveActivity(c, activity, "Users", "User Created", "Created user "+p.Email)
		c.JSON(http.StatusCreated, p)
	}
}

// userID parses the :id path parameter.
func userID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return uuid.Nil, false
	}
	return id, true
}

// UpdateUserHandler godoc
// @Summary      Update user
// @Description  Changes name, role, phone, active flag or password. Admins cannot suspend or demote themselves.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "User ID"
// @Param        body  body      models.UpdateUserRequest  true  "Changes"
// @Success      200   {object}  models.Profile
// @Failure      400   {object}  models.ErrorResponse
// @Failure      404   {object}  models.ErrorResponse
// @Router       /api/users/{id} [put]
func UpdateUserHandler(profiles *repository.ProfileRepository, activity *repository.ActivityLogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := userID(c)
		if !ok {
			return
		}
		var req models.UpdateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		self := actorFrom(c).Profile.ID == id
		if self && ((req.Active != nil && !*req.Active) || (req.Role != nil && *req.Role != models.RoleAdmin)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot suspend or demote your own account"})
			return
		}

		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()

		p, err := profiles.Get(ctx, id)
		if err != nil {
			respondError(c, err, "Failed to load user")
			return
		}
		req.Apply(p)
		if req.Password != nil {
			hash, err := utils.HashPassword(*req.Password)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
				return
			}
			p.PasswordHash = hash
		}
		if err := profiles.Update(ctx, p); err != nil {
			respondError(c, err, "Failed to update user")
			return
		}

		event := "User Updated"
		switch {
		case req.Password != nil:
			event = "Password Reset"
		case req.Active != nil && !*req.Active:
			event = "User Suspended"
		case req.Active != nil:
			event = "User Activated"
		}
		saveActivity(c, activity, "Users", event, event+" for "+p.Email)
		c.JSON(http.StatusOK, p)
	}
}

// DeleteUserHandler godoc
// @Summary      Delete user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  models.MessageResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/users/{id} [delete]
func DeleteUserHandler(profiles *repository.ProfileRepository, activity *repository.ActivityLogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := userID(c)
		if !ok {
			return
		}
		if actorFrom(c).Profile.ID == id {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot delete your own account"})
			return
		}

		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()

		p, err := profiles.Get(ctx, id)
		if err != nil {
			respondError(c, err, "Failed to load user")
			return
		}
		if err := profiles.Delete(ctx, id); err != nil {
			respondError(c, err, "Failed to delete user")
			return
		}
		saveActivity(c, activity, "Users", "User Deleted", "Deleted user "+p.Email)
		c.JSON(http.StatusOK, models.MessageResponse{Message: "User deleted"})
	}
}
