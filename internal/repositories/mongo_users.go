package repositories

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"city-weather/internal/models"
	"city-weather/pkg/logger"
)

type MongoUserRepository struct {
	collection *mongo.Collection
	l          *logger.Logger
}

func NewMongoUserRepository(db *mongo.Database, collection string, l *logger.Logger) *MongoUserRepository {
	return &MongoUserRepository{
		collection: db.Collection(collection),
		l:          l,
	}
}

func (r *MongoUserRepository) FindByToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, models.ErrUserNotFound
	}

	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"token": token}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, &models.InternalError{Op: "find user", Err: errors.Wrap(err, "mongo find user by token")}
	}

	return &user, nil
}

// Save replaces the whole user document; the last writer wins.
func (r *MongoUserRepository) Save(ctx context.Context, user *models.User) error {
	if user.Cities == nil {
		user.Cities = []models.CityWeather{}
	}

	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return &models.InternalError{Op: "save user", Err: errors.Wrap(err, "mongo replace user")}
	}
	if res.MatchedCount == 0 {
		return models.ErrUserNotFound
	}

	r.l.Debug("user document saved", map[string]any{
		"user":   user.Username,
		"cities": len(user.Cities),
	})

	return nil
}

// Tokens lists the tokens of every user, for the background refresh job.
func (r *MongoUserRepository) Tokens(ctx context.Context) ([]string, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"token": bson.M{"$exists": true, "$ne": ""}},
		options.Find().SetProjection(bson.M{"token": 1}),
	)
	if err != nil {
		return nil, &models.InternalError{Op: "list users", Err: errors.Wrap(err, "mongo find users")}
	}

	var docs []struct {
		Token string `bson:"token"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, &models.InternalError{Op: "list users", Err: errors.Wrap(err, "mongo decode users")}
	}

	tokens := make([]string, 0, len(docs))
	for _, d := range docs {
		tokens = append(tokens, d.Token)
	}

	return tokens, nil
}
