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

const userNotFound = "User not found"

type UserStore struct {
	coll *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{coll: db.Collection(UsersCollection)}
}

// Insert fails with errs.ErrConflict when the email is taken.
func (s *UserStore) Insert(ctx context.Context, user *models.User) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := s.coll.InsertOne(ctx, user)
	return translate(err, "create user", userNotFound)
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var user models.User
	if err := s.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, translate(err, "load user", userNotFound)
	}
	return &user, nil
}

func (s *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

// FindByIDs returns the users that exist among ids, keyed by id.
func (s *UserStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	out := make(map[primitive.ObjectID]models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	users, err := s.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find().SetProjection(bson.M{"password": 0}))
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"password": 0})
	return s.find(ctx, bson.M{}, opts)
}

func (s *UserStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, translate(err, "retrieve users", userNotFound)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, translate(err, "decode users", userNotFound)
	}
	return users, nil
}

func (s *UserStore) SetRole(ctx context.Context, id primitive.ObjectID, role models.Role) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"password": 0})
	update := bson.M{"$set": bson.M{"role": role, "updatedAt": time.Now()}}

	var user models.User
	if err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user); err != nil {
		return nil, translate(err, "update role", userNotFound)
	}
	return &user, nil
}

// IncrementPoints adds delta to the user's points in a single atomic update.
func (s *UserStore) IncrementPoints(ctx context.Context, id primitive.ObjectID, delta int) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"points": delta},
		"$set": bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return translate(err, "award points", userNotFound)
	}
	if res.MatchedCount == 0 {
		return translate(mongo.ErrNoDocuments, "award points", userNotFound)
	}
	return nil
}

// TopByPoints returns active users by points descending. Ties go to the
// earlier account.
func (s *UserStore) TopByPoints(ctx context.Context, limit int64) ([]models.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "points", Value: -1}, {Key: "createdAt", Value: 1}}).
		SetLimit(limit).
		SetProjection(bson.M{"password": 0})
	return s.find(ctx, bson.M{"isActive": true}, opts)
}

func (s *UserStore) CountActiveWithPointsAbove(ctx context.Context, points int) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	n, err := s.coll.CountDocuments(ctx, bson.M{"isActive": true, "points": bson.M{"$gt": points}})
	return n, translate(err, "count users", userNotFound)
}
