package routes

import (
	"github.com/gin-gonic/gin"

	"cityhelp-be/controllers"
)

// IssueRoutes sets up the issue routes
func IssueRoutes(api *gin.RouterGroup, ic *controllers.IssueController, authGate, optionalAuth, reportLimiter gin.HandlerFunc) {
	api.POST("/report", authGate, reportLimiter, ic.CreateIssue)

	issues := api.Group("/issues")
	{
		issues.GET("", optionalAuth, ic.GetAllIssues)
		issues.GET("/user", authGate, ic.GetIssuesByUser)
		issues.GET("/recent", ic.GetRecentIssues)
		issues.POST("/classify-image", authGate, ic.ClassifyImage)
		issues.GET("/:id", optionalAuth, ic.GetIssue)
		issues.GET("/:id/image", ic.GetIssueImage)
		issues.POST("/:id/vote", authGate, ic.VoteIssue)
		issues.PUT("/:id/status", authGate, ic.UpdateIssueStatus)
		issues.DELETE("/:id", authGate, ic.DeleteIssue)
	}
}
