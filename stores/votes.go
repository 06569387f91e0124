package stores

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cityhelp-be/models"
)

const voteNotFound = "Vote not found"

// VoteStore keeps one document per (issue, user); a unique index backs it.
type VoteStore struct {
	coll *mongo.Collection
}

func NewVoteStore(db *mongo.Database) *VoteStore {
	return &VoteStore{coll: db.Collection(VotesCollection)}
}

func (s *VoteStore) Insert(ctx context.Context, vote *models.Vote) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := s.coll.InsertOne(ctx, vote)
	return translate(err, "vote", voteNotFound)
}

// Delete removes the user's vote and reports whether one existed.
func (s *VoteStore) Delete(ctx context.Context, issue, user primitive.ObjectID) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.coll.DeleteOne(ctx, bson.M{"issue": issue, "user": user})
	if err != nil {
		return false, translate(err, "remove vote", voteNotFound)
	}
	return res.DeletedCount > 0, nil
}

func (s *VoteStore) Exists(ctx context.Context, issue, user primitive.ObjectID) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	n, err := s.coll.CountDocuments(ctx, bson.M{"issue": issue, "user": user}, options.Count().SetLimit(1))
	if err != nil {
		return false, translate(err, "check vote", voteNotFound)
	}
	return n > 0, nil
}

func (s *VoteStore) CountForIssue(ctx context.Context, issue primitive.ObjectID) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	n, err := s.coll.CountDocuments(ctx, bson.M{"issue": issue})
	return n, translate(err, "count votes", voteNotFound)
}

// CountForIssues counts votes for several issues in one aggregation. Issues
// without votes are absent from the result.
func (s *VoteStore) CountForIssues(ctx context.Context, issues []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	out := make(map[primitive.ObjectID]int64, len(issues))
	if len(issues) == 0 {
		return out, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	groups, err := groupBy(ctx, s.coll, bson.M{"issue": bson.M{"$in": issues}}, "issue")
	if err != nil {
		return nil, translate(err, "count votes", voteNotFound)
	}
	for _, g := range groups {
		if id, ok := g.ID.(primitive.ObjectID); ok {
			out[id] = g.Count
		}
	}
	return out, nil
}

// VotedBy reports which of issues the user has voted for.
func (s *VoteStore) VotedBy(ctx context.Context, user primitive.ObjectID, issues []primitive.ObjectID) (map[primitive.ObjectID]bool, error) {
	out := make(map[primitive.ObjectID]bool, len(issues))
	if len(issues) == 0 {
		return out, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := s.coll.Find(ctx,
		bson.M{"user": user, "issue": bson.M{"$in": issues}},
		options.Find().SetProjection(bson.M{"issue": 1}))
	if err != nil {
		return nil, translate(err, "load votes", voteNotFound)
	}
	defer cursor.Close(ctx)

	var votes []models.Vote
	if err := cursor.All(ctx, &votes); err != nil {
		return nil, translate(err, "decode votes", voteNotFound)
	}
	for _, v := range votes {
		out[v.Issue] = true
	}
	return out, nil
}

func (s *VoteStore) DeleteForIssue(ctx context.Context, issue primitive.ObjectID) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := s.coll.DeleteMany(ctx, bson.M{"issue": issue})
	return translate(err, "delete votes", voteNotFound)
}
