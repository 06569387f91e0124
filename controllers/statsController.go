package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cityhelp-be/middlewares"
	"cityhelp-be/services"
)

type StatsController struct {
	stats *services.StatsService
}

func NewStatsController(stats *services.StatsService) *StatsController {
	return &StatsController{stats: stats}
}

// GetLeaderboard returns the top users by points.
func (sc *StatsController) GetLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	entries, err := sc.stats.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetUserStats returns the caller's rank and report outcomes.
func (sc *StatsController) GetUserStats(c *gin.Context) {
	stats, err := sc.stats.UserStats(c.Request.Context(), middlewares.CurrentUser(c).ID)
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetGlobalStats returns counts over every issue.
func (sc *StatsController) GetGlobalStats(c *gin.Context) {
	stats, err := sc.stats.GlobalStats(c.Request.Context())
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
