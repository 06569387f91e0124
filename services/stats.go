package services

import (
	"context"
	"math"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cityhelp-be/logger"
	"cityhelp-be/models"
)

const (
	defaultLeaderboardSize = 10
	maxLeaderboardSize     = 100
	histogramDays          = 7
)

type StatsService struct {
	issues IssueStore
	users  UserStore
	cache  StatsCache
	now    func() time.Time
}

func NewStatsService(issues IssueStore, users UserStore, cache StatsCache) *StatsService {
	if cache == nil {
		cache = nopStatsCache{}
	}
	return &StatsService{issues: issues, users: users, cache: cache, now: time.Now}
}

// Leaderboard returns the top active users by points, highest first.
func (s *StatsService) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit < 1 {
		limit = defaultLeaderboardSize
	}
	if limit > maxLeaderboardSize {
		limit = maxLeaderboardSize
	}

	users, err := s.users.TopByPoints(ctx, int64(limit))
	if err != nil {
		return nil, asPersistence("load leaderboard", err)
	}
	sort.SliceStable(users, func(i, j int) bool { return users[i].Points > users[j].Points })
	if len(users) > limit {
		users = users[:limit]
	}

	entries := make([]models.LeaderboardEntry, 0, len(users))
	for _, u := range users {
		reported, err := s.issues.CountByReporter(ctx, u.ID, "")
		if err != nil {
			return nil, asPersistence("count reported issues", err)
		}
		resolved, err := s.issues.CountByReporter(ctx, u.ID, models.Resolved)
		if err != nil {
			return nil, asPersistence("count resolved issues", err)
		}
		entries = append(entries, models.LeaderboardEntry{
			ID:             u.ID,
			Name:           u.Name,
			Email:          u.Email,
			Avatar:         u.Avatar,
			Points:         u.Points,
			IssuesReported: reported,
			IssuesResolved: resolved,
		})
	}
	return entries, nil
}

// UserStats returns the user's rank and the outcome of their reports.
// Rank is one more than the number of active users with strictly more points.
func (s *StatsService) UserStats(ctx context.Context, userID primitive.ObjectID) (*models.UserStats, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	above, err := s.users.CountActiveWithPointsAbove(ctx, user.Points)
	if err != nil {
		return nil, asPersistence("compute rank", err)
	}

	var counts models.IssueCounts
	if counts.TotalIssues, err = s.issues.CountByReporter(ctx, userID, ""); err != nil {
		return nil, asPersistence("count issues", err)
	}
	if counts.PendingIssues, err = s.issues.CountByReporter(ctx, userID, models.Pending); err != nil {
		return nil, asPersistence("count pending issues", err)
	}
	if counts.ResolvedIssues, err = s.issues.CountByReporter(ctx, userID, models.Resolved); err != nil {
		return nil, asPersistence("count resolved issues", err)
	}
	counts.ResolutionRate = ResolutionRate(counts.ResolvedIssues, counts.TotalIssues)

	return &models.UserStats{
		User: models.UserSummary{
			Name:   user.Name,
			Email:  user.Email,
			Avatar: user.Avatar,
			Points: user.Points,
			Rank:   above + 1,
		},
		Stats: counts,
	}, nil
}

// GlobalStats aggregates all issues. Results are served from the cache until
// the next issue mutation.
func (s *StatsService) GlobalStats(ctx context.Context) (*models.GlobalStats, error) {
	if cached, ok := s.cache.Get(ctx); ok {
		return cached, nil
	}

	byStatus, err := s.issues.CountByStatus(ctx)
	if err != nil {
		return nil, asPersistence("count issues by status", err)
	}
	categories, err := s.issues.CountByCategory(ctx)
	if err != nil {
		return nil, asPersistence("count issues by category", err)
	}

	stats := &models.GlobalStats{
		Pending:    byStatus[models.Pending],
		InProgress: byStatus[models.InProgress],
		Resolved:   byStatus[models.Resolved],
		Closed:     byStatus[models.Closed],
		Categories: categories,
	}
	for _, n := range byStatus {
		stats.Total += n
	}
	stats.OpenIssues = stats.Pending + stats.InProgress
	if stats.Categories == nil {
		stats.Categories = map[string]int64{}
	}

	if stats.Last7Days, err = s.dailyCounts(ctx); err != nil {
		return nil, err
	}

	s.cache.Set(ctx, stats)
	logger.FromContext(ctx).Debug().Int64("total", stats.Total).Msg("global stats computed")
	return stats, nil
}

// dailyCounts returns issue creations per UTC day, oldest first, ending today.
func (s *StatsService) dailyCounts(ctx context.Context) ([]models.DailyCount, error) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	out := make([]models.DailyCount, 0, histogramDays)
	for i := histogramDays - 1; i >= 0; i-- {
		from := today.AddDate(0, 0, -i)
		n, err := s.issues.CountCreatedBetween(ctx, from, from.AddDate(0, 0, 1))
		if err != nil {
			return nil, asPersistence("count daily issues", err)
		}
		out = append(out, models.DailyCount{Date: from.Format("2006-01-02"), Count: n})
	}
	return out, nil
}

// ResolutionRate is resolved/total as a percentage rounded to one decimal,
// or 0 when there are no issues.
func ResolutionRate(resolved, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(resolved)/float64(total)*1000) / 10
}
