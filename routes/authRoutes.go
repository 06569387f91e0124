package routes

import (
	"github.com/gin-gonic/gin"

	"cityhelp-be/controllers"
)

// AuthRoutes sets up the authentication routes. The un-prefixed paths are
// kept for older clients.
func AuthRoutes(api *gin.RouterGroup, ac *controllers.AuthController, authGate gin.HandlerFunc) {
	auth := api.Group("/auth")
	{
		auth.POST("/signup", ac.RegisterUser)
		auth.POST("/login", ac.LoginUser)
		auth.POST("/logout", ac.LogoutUser)
		auth.GET("/profile", authGate, ac.GetMe)
	}

	api.POST("/signup", ac.RegisterUser)
	api.POST("/login", ac.LoginUser)
	api.GET("/profile", authGate, ac.GetMe)
}
