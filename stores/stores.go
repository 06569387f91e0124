// Package stores implements the service store interfaces on MongoDB.
package stores

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"cityhelp-be/errs"
)

// Collection names.
const (
	IssuesCollection = "issues"
	UsersCollection  = "users"
	VotesCollection  = "votes"
)

const opTimeout = 10 * time.Second

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, opTimeout)
}

// translate maps driver errors onto errs kinds.
func translate(err error, op, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return errs.NotFound(notFound)
	case mongo.IsDuplicateKeyError(err):
		return errs.Conflict("duplicate " + op)
	default:
		return errs.Persistence(op, err)
	}
}

// exactFold matches value exactly, ignoring case.
func exactFold(value string) bson.M {
	return bson.M{"$regex": "^" + regexp.QuoteMeta(value) + "$", "$options": "i"}
}

func containsFold(value string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(value), "$options": "i"}
}

type groupCount struct {
	ID    any   `bson:"_id"`
	Count int64 `bson:"count"`
}

// groupBy counts documents in coll grouped by field, after an optional match.
func groupBy(ctx context.Context, coll *mongo.Collection, match bson.M, field string) ([]groupCount, error) {
	pipeline := mongo.Pipeline{}
	if len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	pipeline = append(pipeline, bson.D{{Key: "$group", Value: bson.M{
		"_id":   "$" + field,
		"count": bson.M{"$sum": 1},
	}}})

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []groupCount
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
