package routes

import (
	"github.com/gin-gonic/gin"

	"cityhelp-be/authz"
	"cityhelp-be/controllers"
	"cityhelp-be/middlewares"
	"cityhelp-be/services"
)

// AdminRoutes sets up the admin console routes. Each route is gated on its
// capability; the services check again.
func AdminRoutes(api *gin.RouterGroup, ic *controllers.IssueController, uc *controllers.UserController, az services.Authorizer, authGate gin.HandlerFunc) {
	admin := api.Group("/admin", authGate)
	{
		admin.GET("/issues", middlewares.RequireAction(az, authz.ListAllIssues), ic.GetAllIssuesAdmin)
		admin.PUT("/issues/:id/status", middlewares.RequireAction(az, authz.UpdateStatus), ic.UpdateIssueStatus)
		admin.PUT("/issues/:id/notes", middlewares.RequireAction(az, authz.UpdateNotes), ic.UpdateIssueNotes)
		admin.PUT("/issues/:id/assign", middlewares.RequireAction(az, authz.AssignIssue), ic.AssignIssue)
		admin.GET("/users", middlewares.RequireAction(az, authz.ListUsers), uc.GetUsers)
		admin.PUT("/users/:id/role", middlewares.RequireAction(az, authz.UpdateRole), uc.UpdateUserRole)
	}
}

// StatsRoutes sets up the leaderboard and statistics routes.
func StatsRoutes(api *gin.RouterGroup, sc *controllers.StatsController, authGate gin.HandlerFunc) {
	api.GET("/leaderboard", sc.GetLeaderboard)
	api.GET("/stats", authGate, sc.GetUserStats)
	api.GET("/stats/global", sc.GetGlobalStats)
}
