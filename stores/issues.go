package stores

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cityhelp-be/models"
)

const issueNotFound = "Issue not found"

type IssueStore struct {
	coll *mongo.Collection
}

func NewIssueStore(db *mongo.Database) *IssueStore {
	return &IssueStore{coll: db.Collection(IssuesCollection)}
}

func (s *IssueStore) Insert(ctx context.Context, issue *models.Issue) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := s.coll.InsertOne(ctx, issue)
	return translate(err, "create issue", issueNotFound)
}

func (s *IssueStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Issue, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var issue models.Issue
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&issue); err != nil {
		return nil, translate(err, "load issue", issueNotFound)
	}
	return &issue, nil
}

func filterDoc(f models.IssueFilter) bson.M {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Category != "" {
		filter["category"] = exactFold(f.Category)
	}
	if f.Search != "" {
		filter["$or"] = []bson.M{
			{"title": containsFold(f.Search)},
			{"description": containsFold(f.Search)},
		}
	}
	return filter
}

func sortDoc(f models.IssueFilter) bson.D {
	if f.Oldest {
		return bson.D{{Key: "createdAt", Value: 1}}
	}
	return bson.D{{Key: "createdAt", Value: -1}}
}

// List returns one page of matching issues and the total match count.
func (s *IssueStore) List(ctx context.Context, f models.IssueFilter, skip, limit int64) ([]models.Issue, int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := filterDoc(f)
	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, translate(err, "count issues", issueNotFound)
	}

	findOptions := options.Find().
		SetSort(sortDoc(f)).
		SetSkip(skip).
		SetLimit(limit).
		SetProjection(bson.M{"imageData": 0})

	issues, err := s.find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	return issues, total, nil
}

func (s *IssueStore) ListByReporter(ctx context.Context, reporter primitive.ObjectID, f models.IssueFilter) ([]models.Issue, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := filterDoc(f)
	filter["reportedBy"] = reporter
	return s.find(ctx, filter, options.Find().SetSort(sortDoc(f)).SetProjection(bson.M{"imageData": 0}))
}

func (s *IssueStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Issue, error) {
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, translate(err, "retrieve issues", issueNotFound)
	}
	defer cursor.Close(ctx)

	issues := []models.Issue{}
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, translate(err, "decode issues", issueNotFound)
	}
	return issues, nil
}

// update applies set to one issue and returns the updated document.
func (s *IssueStore) update(ctx context.Context, id primitive.ObjectID, set bson.M, op string) (*models.Issue, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	set["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"imageData": 0})

	var issue models.Issue
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&issue)
	if err != nil {
		return nil, translate(err, op, issueNotFound)
	}
	return &issue, nil
}

func (s *IssueStore) SetStatus(ctx context.Context, id primitive.ObjectID, status models.IssueStatus) (*models.Issue, error) {
	return s.update(ctx, id, bson.M{"status": status}, "update issue status")
}

func (s *IssueStore) SetNotes(ctx context.Context, id primitive.ObjectID, notes string) (*models.Issue, error) {
	return s.update(ctx, id, bson.M{"notes": notes}, "update issue notes")
}

func (s *IssueStore) SetAssignee(ctx context.Context, id, assignee primitive.ObjectID) (*models.Issue, error) {
	return s.update(ctx, id, bson.M{"assignedTo": assignee}, "assign issue")
}

func (s *IssueStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err, "delete issue", issueNotFound)
	}
	if res.DeletedCount == 0 {
		return translate(mongo.ErrNoDocuments, "delete issue", issueNotFound)
	}
	return nil
}

// CountByReporter counts a user's issues, optionally only those in status.
func (s *IssueStore) CountByReporter(ctx context.Context, reporter primitive.ObjectID, status models.IssueStatus) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{"reportedBy": reporter}
	if status != "" {
		filter["status"] = status
	}
	n, err := s.coll.CountDocuments(ctx, filter)
	return n, translate(err, "count issues", issueNotFound)
}

func (s *IssueStore) CountByStatus(ctx context.Context) (map[models.IssueStatus]int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	groups, err := groupBy(ctx, s.coll, nil, "status")
	if err != nil {
		return nil, translate(err, "count issues by status", issueNotFound)
	}
	out := make(map[models.IssueStatus]int64, len(groups))
	for _, g := range groups {
		if status, ok := g.ID.(string); ok {
			out[models.IssueStatus(status)] += g.Count
		}
	}
	return out, nil
}

func (s *IssueStore) CountByCategory(ctx context.Context) (map[string]int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	groups, err := groupBy(ctx, s.coll, nil, "category")
	if err != nil {
		return nil, translate(err, "count issues by category", issueNotFound)
	}
	out := make(map[string]int64, len(groups))
	for _, g := range groups {
		category, _ := g.ID.(string)
		if category == "" {
			category = "General"
		}
		out[category] += g.Count
	}
	return out, nil
}

// CountCreatedBetween counts issues created in [from, to).
func (s *IssueStore) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	n, err := s.coll.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": from, "$lt": to}})
	return n, translate(err, "count issues by date", issueNotFound)
}

// RecentWithLocation returns the newest issues that have coordinates.
func (s *IssueStore) RecentWithLocation(ctx context.Context, limit int64) ([]models.MapMarker, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit).
		SetProjection(bson.M{"title": 1, "location": 1, "category": 1, "status": 1, "geo": 1, "createdAt": 1})

	cursor, err := s.coll.Find(ctx, bson.M{"geo": bson.M{"$exists": true}}, opts)
	if err != nil {
		return nil, translate(err, "list recent issues", issueNotFound)
	}
	defer cursor.Close(ctx)

	markers := []models.MapMarker{}
	if err := cursor.All(ctx, &markers); err != nil {
		return nil, translate(err, "decode recent issues", issueNotFound)
	}
	return markers, nil
}
