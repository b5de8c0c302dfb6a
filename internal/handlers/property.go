package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"propertypro/internal/middleware"
	"propertypro/internal/models"
)

type createPropertyRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Price       float64           `json:"price"`
	Address     string            `json:"address"`
	City        string            `json:"city"`
	Country     string            `json:"country"`
	Image       string            `json:"image"`
	Facilities  models.Facilities `json:"facilities"`
}

type updatePropertyRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Price       *float64           `json:"price"`
	Address     *string            `json:"address"`
	City        *string            `json:"city"`
	Country     *string            `json:"country"`
	Image       *string            `json:"image"`
	Facilities  *models.Facilities `json:"facilities"`
}

// validateCreateProperty returns the name of the first missing required
// field, or an empty string when the payload is acceptable.
func validateCreateProperty(req createPropertyRequest) string {
	switch {
	case strings.TrimSpace(req.Title) == "":
		return "title"
	case strings.TrimSpace(req.Description) == "":
		return "description"
	case req.Price == 0:
		return "price"
	case strings.TrimSpace(req.Address) == "":
		return "address"
	case strings.TrimSpace(req.City) == "":
		return "city"
	case strings.TrimSpace(req.Country) == "":
		return "country"
	}
	return ""
}

// GetAllProperties lists every property, newest first. There is no
// pagination; acceptable at the current scale only.
func GetAllProperties(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("properties").Find(ctx, bson.M{}, findOptions)
		if err != nil {
			respondDBError(c, "list properties", err)
			return
		}
		defer cursor.Close(ctx)

		properties := make([]models.Property, 0)
		if err := cursor.All(ctx, &properties); err != nil {
			respondDBError(c, "decode properties", err)
			return
		}

		c.JSON(http.StatusOK, properties)
	}
}

func GetProperty(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		propertyID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("propertyId")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, "invalid property id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var property models.Property
		if err := db.Collection("properties").FindOne(ctx, bson.M{"_id": propertyID}).Decode(&property); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, "property not found")
				return
			}
			respondDBError(c, "get property", err)
			return
		}

		c.JSON(http.StatusOK, property)
	}
}

// CreateProperty stamps ownerId/ownerEmail from the owner document the
// middleware already loaded.
func CreateProperty(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := c.MustGet(middleware.CtxAuthUser).(models.User)

		var req createPropertyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, "invalid body")
			return
		}

		if field := validateCreateProperty(req); field != "" {
			respondWithError(c, http.StatusBadRequest, "missing required field: "+field)
			return
		}
		if req.Price < 0 {
			respondWithError(c, http.StatusBadRequest, "price must be greater than 0")
			return
		}

		now := time.Now()
		property := models.Property{
			Title:       strings.TrimSpace(req.Title),
			Description: strings.TrimSpace(req.Description),
			Price:       req.Price,
			Address:     strings.TrimSpace(req.Address),
			City:        strings.TrimSpace(req.City),
			Country:     strings.TrimSpace(req.Country),
			Image:       strings.TrimSpace(req.Image),
			Facilities:  req.Facilities,
			OwnerID:     owner.UID,
			OwnerEmail:  owner.Email,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("properties").InsertOne(ctx, property)
		if err != nil {
			respondDBError(c, "create property", err)
			return
		}
		property.ID = result.InsertedID.(primitive.ObjectID)

		logrus.WithFields(logrus.Fields{"propertyId": property.ID.Hex(), "ownerId": owner.UID}).Info("property created")
		c.JSON(http.StatusCreated, gin.H{"message": "property created", "property": property})
	}
}

// UpdateProperty merges the supplied fields into the document after the
// ownership check.
func UpdateProperty(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(middleware.CtxUID)

		propertyID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("propertyId")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, "invalid property id")
			return
		}

		var req updatePropertyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, "invalid body")
			return
		}
		if req.Price != nil && *req.Price <= 0 {
			respondWithError(c, http.StatusBadRequest, "price must be greater than 0")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var property models.Property
		if err := db.Collection("properties").FindOne(ctx, bson.M{"_id": propertyID}).Decode(&property); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, "property not found")
				return
			}
			respondDBError(c, "load property", err)
			return
		}

		if property.OwnerID != uid {
			respondWithError(c, http.StatusForbidden, "you don't own this property")
			return
		}

		updates := bson.M{"updatedAt": time.Now()}
		if req.Title != nil {
			updates["title"] = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			updates["description"] = strings.TrimSpace(*req.Description)
		}
		if req.Price != nil {
			updates["price"] = *req.Price
		}
		if req.Address != nil {
			updates["address"] = strings.TrimSpace(*req.Address)
		}
		if req.City != nil {
			updates["city"] = strings.TrimSpace(*req.City)
		}
		if req.Country != nil {
			updates["country"] = strings.TrimSpace(*req.Country)
		}
		if req.Image != nil {
			updates["image"] = strings.TrimSpace(*req.Image)
		}
		if req.Facilities != nil {
			updates["facilities"] = *req.Facilities
		}

		if _, err := db.Collection("properties").UpdateByID(ctx, propertyID, bson.M{"$set": updates}); err != nil {
			respondDBError(c, "update property", err)
			return
		}

		if err := db.Collection("properties").FindOne(ctx, bson.M{"_id": propertyID}).Decode(&property); err != nil {
			respondDBError(c, "reload property", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "property updated", "property": property})
	}
}

// DeleteProperty hard-deletes after the ownership check. Bookings and
// favorites referencing the property are left in place.
func DeleteProperty(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(middleware.CtxUID)

		propertyID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("propertyId")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, "invalid property id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var property models.Property
		if err := db.Collection("properties").FindOne(ctx, bson.M{"_id": propertyID}).Decode(&property); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, "property not found")
				return
			}
			respondDBError(c, "load property", err)
			return
		}

		if property.OwnerID != uid {
			respondWithError(c, http.StatusForbidden, "you don't own this property")
			return
		}

		if _, err := db.Collection("properties").DeleteOne(ctx, bson.M{"_id": propertyID}); err != nil {
			respondDBError(c, "delete property", err)
			return
		}

		logrus.WithField("propertyId", propertyID.Hex()).Info("property deleted")
		c.JSON(http.StatusOK, gin.H{"message": "property deleted"})
	}
}

func GetMyProperties(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(middleware.CtxUID)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("properties").Find(ctx, bson.M{"ownerId": uid}, findOptions)
		if err != nil {
			respondDBError(c, "list owner properties", err)
			return
		}
		defer cursor.Close(ctx)

		properties := make([]models.Property, 0)
		if err := cursor.All(ctx, &properties); err != nil {
			respondDBError(c, "decode owner properties", err)
			return
		}

		c.JSON(http.StatusOK, properties)
	}
}
