package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is the document owning a user's tracked cities. Token issuance belongs to the
// identity service; this service only looks users up by token.
type User struct {
	ID       primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	Username string             `json:"username" bson:"username"`
	Token    string             `json:"-" bson:"token"`
	Cities   []CityWeather      `json:"cities" bson:"cities"`
}
