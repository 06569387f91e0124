package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cityhelp-be/middlewares"
	"cityhelp-be/services"
)

type UserController struct {
	auth *services.AuthService
}

func NewUserController(auth *services.AuthService) *UserController {
	return &UserController{auth: auth}
}

// GetUsers lists every account. Admin only.
func (uc *UserController) GetUsers(c *gin.Context) {
	users, err := uc.auth.ListUsers(c.Request.Context(), middlewares.CurrentUser(c))
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdateUserRole promotes or demotes a user. Admin only.
func (uc *UserController) UpdateUserRole(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "user")
	if !ok {
		return
	}
	var input struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := uc.auth.UpdateRole(c.Request.Context(), id, input.Role, middlewares.CurrentUser(c))
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User role updated successfully", "user": user})
}
