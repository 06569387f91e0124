package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cityhelp-be/middlewares"
	"cityhelp-be/services"
)

// CookieConfig controls the auth_token cookie set on login.
type CookieConfig struct {
	Domain     string
	Production bool
	MaxAge     time.Duration
}

type AuthController struct {
	auth   *services.AuthService
	cookie CookieConfig
}

func NewAuthController(auth *services.AuthService, cookie CookieConfig) *AuthController {
	return &AuthController{auth: auth, cookie: cookie}
}

// RegisterUser handles user registration
func (ac *AuthController) RegisterUser(c *gin.Context) {
	var input services.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := ac.auth.Register(c.Request.Context(), input)
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user,
	})
}

// LoginUser handles user login
func (ac *AuthController) LoginUser(c *gin.Context) {
	var input services.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	session, err := ac.auth.Login(c.Request.Context(), input)
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}

	ac.setCookie(c, session.Token, int(ac.cookie.MaxAge.Seconds()))
	c.JSON(http.StatusOK, session)
}

// GetMe retrieves the authenticated user's information
func (ac *AuthController) GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, middlewares.CurrentUser(c))
}

// LogoutUser handles user logout by clearing the auth_token cookie
func (ac *AuthController) LogoutUser(c *gin.Context) {
	ac.setCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (ac *AuthController) setCookie(c *gin.Context, value string, maxAge int) {
	// Cross-origin cookies in production need an empty domain and SameSite=None.
	domain := ac.cookie.Domain
	if ac.cookie.Production {
		domain = ""
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middlewares.AuthCookie,
		Value:    value,
		MaxAge:   maxAge,
		Path:     "/",
		Domain:   domain,
		Secure:   ac.cookie.Production,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}
