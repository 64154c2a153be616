package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Jock 主持人
type Jock struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name         string              `bson:"name" json:"name"`
	Bio          string              `bson:"bio,omitempty" json:"bio,omitempty"`
	ImageMediaID *primitive.ObjectID `bson:"image_media_id,omitempty" json:"imageMediaId,omitempty"`
	CreatedAt    time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updated_at" json:"updatedAt"`
}
