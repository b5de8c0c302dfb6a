package database

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	_, err := db.Collection("users").Indexes().CreateOne(ctx, emailIndex)
	if err != nil {
		logrus.WithError(err).Warn("EnsureUserIndexes: email index")
		return err
	}
	logrus.Info("EnsureUserIndexes: email_unique index ready")
	return nil
}

func EnsurePropertyIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Serves listByOwner and the owner-bookings property fan-out.
	ownerIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "ownerId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("ownerId_createdAt"),
	}

	_, err := db.Collection("properties").Indexes().CreateOne(ctx, ownerIndex)
	if err != nil {
		logrus.WithError(err).Warn("EnsurePropertyIndexes: owner index")
		return err
	}
	logrus.Info("EnsurePropertyIndexes: ownerId_createdAt index ready")
	return nil
}
