package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Property is a listing document. The owner is fixed at creation; there is
// no transfer operation.
type Property struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Address     string             `bson:"address" json:"address"`
	City        string             `bson:"city" json:"city"`
	Country     string             `bson:"country" json:"country"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Facilities  Facilities         `bson:"facilities" json:"facilities"`
	OwnerID     string             `bson:"ownerId" json:"ownerId"`
	OwnerEmail  string             `bson:"ownerEmail" json:"ownerEmail"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
