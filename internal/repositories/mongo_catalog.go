package repositories

import (
	"context"
	"regexp"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"city-weather/internal/models"
	"city-weather/pkg/logger"
)

type MongoCatalogRepository struct {
	collection *mongo.Collection
	l          *logger.Logger
}

func NewMongoCatalogRepository(db *mongo.Database, collection string, l *logger.Logger) *MongoCatalogRepository {
	return &MongoCatalogRepository{
		collection: db.Collection(collection),
		l:          l,
	}
}

// cityNameFilter matches the whole name, ignoring case. The name is quoted so it is never
// interpreted as a pattern.
func cityNameFilter(cityName string) bson.M {
	return bson.M{"cityName": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(cityName) + "$",
		Options: "i",
	}}
}

func (r *MongoCatalogRepository) FindByName(ctx context.Context, cityName string) (models.CityWeather, error) {
	var city models.CityWeather
	err := r.collection.FindOne(ctx, cityNameFilter(cityName)).Decode(&city)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.CityWeather{}, models.ErrCityNotFound
	}
	if err != nil {
		return models.CityWeather{}, &models.InternalError{Op: "find city", Err: errors.Wrap(err, "mongo find city by name")}
	}

	return city, nil
}

func (r *MongoCatalogRepository) DeleteByName(ctx context.Context, cityName string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, cityNameFilter(cityName))
	if err != nil {
		return false, &models.InternalError{Op: "delete city", Err: errors.Wrap(err, "mongo delete city by name")}
	}

	r.l.Debug("catalog delete", map[string]any{
		"cityName": cityName,
		"deleted":  res.DeletedCount,
	})

	return res.DeletedCount > 0, nil
}

func (r *MongoCatalogRepository) All(ctx context.Context) ([]models.CityWeather, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, &models.InternalError{Op: "list cities", Err: errors.Wrap(err, "mongo find cities")}
	}

	cities := []models.CityWeather{}
	if err := cursor.All(ctx, &cities); err != nil {
		return nil, &models.InternalError{Op: "list cities", Err: errors.Wrap(err, "mongo decode cities")}
	}

	return cities, nil
}
