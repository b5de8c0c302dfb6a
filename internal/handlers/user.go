package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"propertypro/internal/middleware"
	"propertypro/internal/models"
	"propertypro/internal/notify"
)

type registerRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
	Role  string `json:"role" binding:"omitempty,oneof=user owner"`
}

type bookVisitRequest struct {
	Date string `json:"date" binding:"required"`
}

// RegisterUser ensures a profile document exists for the caller. Repeat
// calls return the existing document untouched.
func RegisterUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(middleware.CtxUID)

		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, bindingErrorMessage(err))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.User
		err := db.Collection("users").FindOne(ctx, bson.M{"_id": uid}).Decode(&existing)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"message": "user already exists", "user": existing})
			return
		}
		if err != mongo.ErrNoDocuments {
			respondDBError(c, "register lookup", err)
			return
		}

		role := req.Role
		if role == "" {
			role = models.RoleUser
		}

		now := time.Now()
		user := models.User{
			UID:       uid,
			Email:     strings.ToLower(strings.TrimSpace(req.Email)),
			Name:      strings.TrimSpace(req.Name),
			Role:      role,
			Bookings:  []models.Booking{},
			Favorites: []string{},
			CreatedAt: now,
			UpdatedAt: now,
		}

		if _, err := db.Collection("users").InsertOne(ctx, user); err != nil {
			respondDBError(c, "register insert", err)
			return
		}

		logrus.WithFields(logrus.Fields{"uid": uid, "role": role}).Info("user registered")
		c.JSON(http.StatusCreated, gin.H{"message": "user created", "user": user})
	}
}

func GetProfile(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(middleware.CtxUID)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": uid}).Decode(&user); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, "user not found")
				return
			}
			respondDBError(c, "get profile", err)
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// BookVisit appends a pending booking to the caller's document. At most one
// booking per property is allowed, and owners cannot book their own
// listings.
func BookVisit(db *mongo.Database, notifier *notify.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(middleware.CtxUID)

		var req bookVisitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, bindingErrorMessage(err))
			return
		}

		propertyID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("propertyId")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, "invalid property id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": uid}).Decode(&user); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, "user not found")
				return
			}
			respondDBError(c, "book visit load user", err)
			return
		}

		var property models.Property
		if err := db.Collection("properties").FindOne(ctx, bson.M{"_id": propertyID}).Decode(&property); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, "property not found")
				return
			}
			respondDBError(c, "book visit load property", err)
			return
		}

		if status, message := bookingDenial(user.Bookings, property, uid); status != 0 {
			respondWithError(c, status, message)
			return
		}

		booking := models.Booking{
			ID:              uuid.NewString(),
			PropertyID:      propertyID.Hex(),
			PropertyTitle:   property.Title,
			PropertyAddress: property.Address + ", " + property.City,
			Date:            strings.TrimSpace(req.Date),
			Status:          models.BookingPending,
			CreatedAt:       time.Now(),
		}

		user.Bookings = append(user.Bookings, booking)
		if _, err := db.Collection("users").UpdateByID(ctx, uid, bson.M{
			"$set": bson.M{
				"bookings":  user.Bookings,
				"updatedAt": time.Now(),
			},
		}); err != nil {
			respondDBError(c, "book visit save", err)
			return
		}

		// Best effort; a lost notification never fails the booking.
		if err := notifier.BookingCreated(ctx, notify.BookingEmail{
			UserEmail:       user.Email,
			UserName:        user.Name,
			PropertyTitle:   booking.PropertyTitle,
			PropertyAddress: booking.PropertyAddress,
			BookingDate:     booking.Date,
			OwnerEmail:      property.OwnerEmail,
		}); err != nil {
			logrus.WithError(err).Warn("booking notification not queued")
		}

		logrus.WithFields(logrus.Fields{"uid": uid, "propertyId": booking.PropertyID}).Info("visit booked")
		c.JSON(http.StatusOK, gin.H{"message": "visit booked", "booking": booking})
	}
}

func GetBookings(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(middleware.CtxUID)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": uid}).Decode(&user); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, "user not found")
				return
			}
			respondDBError(c, "get bookings", err)
			return
		}

		bookings := user.Bookings
		if bookings == nil {
			bookings = []models.Booking{}
		}
		c.JSON(http.StatusOK, gin.H{"bookings": bookings})
	}
}

// CancelBooking removes the booking for the property. Cancelling a booking
// that does not exist is not an error.
func CancelBooking(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(middleware.CtxUID)
		propertyID := strings.TrimSpace(c.Param("propertyId"))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": uid}).Decode(&user); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, "user not found")
				return
			}
			respondDBError(c, "cancel booking load user", err)
			return
		}

		updated, removed := removeBooking(user.Bookings, propertyID)
		if removed {
			if _, err := db.Collection("users").UpdateByID(ctx, uid, bson.M{
				"$set": bson.M{
					"bookings":  updated,
					"updatedAt": time.Now(),
				},
			}); err != nil {
				respondDBError(c, "cancel booking save", err)
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
	}
}

// ToggleFavorite adds or removes the property id and returns the updated
// sequence. The property is not checked for existence; favorites may dangle
// if the listing is deleted later.
func ToggleFavorite(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(middleware.CtxUID)
		propertyID := strings.TrimSpace(c.Param("propertyId"))
		if propertyID == "" {
			respondWithError(c, http.StatusBadRequest, "invalid property id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": uid}).Decode(&user); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, "user not found")
				return
			}
			respondDBError(c, "toggle favorite load user", err)
			return
		}

		updated, added := toggleFavorite(user.Favorites, propertyID)
		if _, err := db.Collection("users").UpdateByID(ctx, uid, bson.M{
			"$set": bson.M{
				"favorites": updated,
				"updatedAt": time.Now(),
			},
		}); err != nil {
			respondDBError(c, "toggle favorite save", err)
			return
		}

		message := "removed from favorites"
		if added {
			message = "added to favorites"
		}
		c.JSON(http.StatusOK, gin.H{"message": message, "favorites": updated})
	}
}

func GetFavorites(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(middleware.CtxUID)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": uid}).Decode(&user); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, "user not found")
				return
			}
			respondDBError(c, "get favorites", err)
			return
		}

		favorites := user.Favorites
		if favorites == nil {
			favorites = []string{}
		}
		c.JSON(http.StatusOK, gin.H{"favorites": favorites})
	}
}
