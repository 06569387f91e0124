// Package services holds the issue lifecycle, statistics and account
// operations. Persistence, classification and image storage are injected.
package services

import (
	"context"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cityhelp-be/authz"
	"cityhelp-be/models"
	"cityhelp-be/storage"
)

//go:generate mockgen -destination=../mocks/stores.go -package=mocks cityhelp-be/services IssueStore,UserStore,VoteStore

// IssueStore persists issues. Lookups of missing issues fail with errs.ErrNotFound.
type IssueStore interface {
	Insert(ctx context.Context, issue *models.Issue) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Issue, error)
	List(ctx context.Context, filter models.IssueFilter, skip, limit int64) ([]models.Issue, int64, error)
	ListByReporter(ctx context.Context, reporter primitive.ObjectID, filter models.IssueFilter) ([]models.Issue, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.IssueStatus) (*models.Issue, error)
	SetNotes(ctx context.Context, id primitive.ObjectID, notes string) (*models.Issue, error)
	SetAssignee(ctx context.Context, id, assignee primitive.ObjectID) (*models.Issue, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByReporter(ctx context.Context, reporter primitive.ObjectID, status models.IssueStatus) (int64, error)
	CountByStatus(ctx context.Context) (map[models.IssueStatus]int64, error)
	CountByCategory(ctx context.Context) (map[string]int64, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	RecentWithLocation(ctx context.Context, limit int64) ([]models.MapMarker, error)
}

// UserStore persists users. Lookups of missing users fail with errs.ErrNotFound.
type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	SetRole(ctx context.Context, id primitive.ObjectID, role models.Role) (*models.User, error)
	IncrementPoints(ctx context.Context, id primitive.ObjectID, delta int) error
	TopByPoints(ctx context.Context, limit int64) ([]models.User, error)
	CountActiveWithPointsAbove(ctx context.Context, points int) (int64, error)
}

// VoteStore persists upvotes, one per (issue, user).
type VoteStore interface {
	Insert(ctx context.Context, vote *models.Vote) error
	Delete(ctx context.Context, issue, user primitive.ObjectID) (bool, error)
	Exists(ctx context.Context, issue, user primitive.ObjectID) (bool, error)
	CountForIssue(ctx context.Context, issue primitive.ObjectID) (int64, error)
	CountForIssues(ctx context.Context, issues []primitive.ObjectID) (map[primitive.ObjectID]int64, error)
	VotedBy(ctx context.Context, user primitive.ObjectID, issues []primitive.ObjectID) (map[primitive.ObjectID]bool, error)
	DeleteForIssue(ctx context.Context, issue primitive.ObjectID) error
}

// Classifier assigns categories. See package classifier.
type Classifier interface {
	ClassifyText(ctx context.Context, text string) string
	ClassifyImage(ctx context.Context, image []byte, filename string) (string, error)
}

// ImageStore keeps uploaded images and hands back path references.
type ImageStore interface {
	Save(ctx context.Context, upload *storage.Upload) (string, error)
	Remove(path string) error
	Open(path string) (io.ReadCloser, error)
}

// Authorizer returns capability decisions. See package authz.
type Authorizer interface {
	Decide(user *models.User, act authz.Action, issue *models.Issue) authz.Decision
}

// StatsCache holds the latest global stats between issue mutations.
type StatsCache interface {
	Get(ctx context.Context) (*models.GlobalStats, bool)
	Set(ctx context.Context, stats *models.GlobalStats)
	Invalidate(ctx context.Context)
}

type nopStatsCache struct{}

func (nopStatsCache) Get(context.Context) (*models.GlobalStats, bool) { return nil, false }
func (nopStatsCache) Set(context.Context, *models.GlobalStats)        {}
func (nopStatsCache) Invalidate(context.Context)                      {}
