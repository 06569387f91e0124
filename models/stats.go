package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeaderboardEntry is a ranked user with their reporting record.
type LeaderboardEntry struct {
	ID             primitive.ObjectID `json:"id"`
	Name           string             `json:"name"`
	Email          string             `json:"email"`
	Avatar         string             `json:"avatar,omitempty"`
	Points         int                `json:"points"`
	IssuesReported int64              `json:"issuesReported"`
	IssuesResolved int64              `json:"issuesResolved"`
}

type UserSummary struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
	Points int    `json:"points"`
	Rank   int64  `json:"rank"`
}

type IssueCounts struct {
	TotalIssues    int64   `json:"totalIssues"`
	PendingIssues  int64   `json:"pendingIssues"`
	ResolvedIssues int64   `json:"resolvedIssues"`
	ResolutionRate float64 `json:"resolutionRate"`
}

// UserStats is a user's standing and the outcome of their reports.
type UserStats struct {
	User  UserSummary `json:"user"`
	Stats IssueCounts `json:"stats"`
}

// DailyCount is the number of issues created on Date (YYYY-MM-DD).
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// GlobalStats aggregates every issue in the system.
type GlobalStats struct {
	Total      int64            `json:"total"`
	Pending    int64            `json:"pending"`
	InProgress int64            `json:"inProgress"`
	Resolved   int64            `json:"resolved"`
	Closed     int64            `json:"closed"`
	OpenIssues int64            `json:"openIssues"`
	Categories map[string]int64 `json:"categories"`
	Last7Days  []DailyCount     `json:"last7Days"`
}

// MapMarker is the projection of an issue used to plot it.
type MapMarker struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Location  string             `bson:"location" json:"location"`
	Category  string             `bson:"category" json:"category"`
	Status    IssueStatus        `bson:"status" json:"status"`
	Geo       *GeoPoint          `bson:"geo" json:"-"`
	Latitude  float64            `bson:"-" json:"latitude"`
	Longitude float64            `bson:"-" json:"longitude"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
