package handlers

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"propertypro/internal/middleware"
	"propertypro/internal/models"
	"propertypro/internal/notify"
)

type bookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OwnerBooking is a booking from some visitor's document enriched with that
// visitor's contact details.
type OwnerBooking struct {
	models.Booking
	UserID    string `json:"userId"`
	UserEmail string `json:"userEmail"`
	UserName  string `json:"userName"`
}

// collectOwnerBookings keeps the bookings whose property belongs to the
// owner and sorts them newest first.
func collectOwnerBookings(users []models.User, propertyIDs map[string]struct{}) []OwnerBooking {
	bookings := make([]OwnerBooking, 0)
	for _, user := range users {
		for _, b := range user.Bookings {
			if _, ok := propertyIDs[b.PropertyID]; ok {
				bookings = append(bookings, OwnerBooking{
					Booking:   b,
					UserID:    user.UID,
					UserEmail: user.Email,
					UserName:  user.Name,
				})
			}
		}
	}
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings
}

// GetOwnerBookings fans out over every user document because bookings are
// embedded per user. O(users x bookings) with no index; the known scaling
// bottleneck of this layout.
func GetOwnerBookings(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(middleware.CtxUID)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		cursor, err := db.Collection("properties").Find(ctx, bson.M{"ownerId": uid})
		if err != nil {
			respondDBError(c, "owner bookings list properties", err)
			return
		}

		propertyIDs := make(map[string]struct{})
		for cursor.Next(ctx) {
			var property models.Property
			if err := cursor.Decode(&property); err != nil {
				cursor.Close(ctx)
				respondDBError(c, "owner bookings decode property", err)
				return
			}
			propertyIDs[property.ID.Hex()] = struct{}{}
		}
		cursor.Close(ctx)

		if len(propertyIDs) == 0 {
			c.JSON(http.StatusOK, []OwnerBooking{})
			return
		}

		userCursor, err := db.Collection("users").Find(ctx, bson.M{})
		if err != nil {
			respondDBError(c, "owner bookings scan users", err)
			return
		}
		defer userCursor.Close(ctx)

		users := make([]models.User, 0)
		if err := userCursor.All(ctx, &users); err != nil {
			respondDBError(c, "owner bookings decode users", err)
			return
		}

		c.JSON(http.StatusOK, collectOwnerBookings(users, propertyIDs))
	}
}

// UpdateBookingStatus lets an owner confirm or cancel a visit inside the
// visitor's document. The caller must own the property the booking refers
// to.
func UpdateBookingStatus(db *mongo.Database, notifier *notify.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerUID := c.GetString(middleware.CtxUID)
		targetUID := strings.TrimSpace(c.Param("userId"))
		bookingID := strings.TrimSpace(c.Param("bookingId"))

		var req bookingStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, bindingErrorMessage(err))
			return
		}
		if !models.ValidBookingStatus(req.Status) {
			respondWithError(c, http.StatusBadRequest, "invalid status: "+req.Status)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": targetUID}).Decode(&user); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, "user not found")
				return
			}
			respondDBError(c, "status update load user", err)
			return
		}

		index := findBookingIndex(user.Bookings, bookingID)
		if index == -1 {
			respondWithError(c, http.StatusNotFound, "booking not found")
			return
		}

		propertyID, err := primitive.ObjectIDFromHex(user.Bookings[index].PropertyID)
		if err != nil {
			respondWithError(c, http.StatusNotFound, "property not found")
			return
		}

		var property models.Property
		if err := db.Collection("properties").FindOne(ctx, bson.M{"_id": propertyID}).Decode(&property); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, "property not found")
				return
			}
			respondDBError(c, "status update load property", err)
			return
		}

		if property.OwnerID != callerUID {
			respondWithError(c, http.StatusForbidden, "you don't own this property")
			return
		}

		now := time.Now()
		user.Bookings[index].Status = req.Status
		user.Bookings[index].UpdatedAt = &now

		if _, err := db.Collection("users").UpdateByID(ctx, targetUID, bson.M{
			"$set": bson.M{
				"bookings":  user.Bookings,
				"updatedAt": now,
			},
		}); err != nil {
			respondDBError(c, "status update save", err)
			return
		}

		booking := user.Bookings[index]
		if event, ok := statusEvent(req.Status); ok {
			if err := notifier.StatusChanged(ctx, event, notify.BookingEmail{
				UserEmail:       user.Email,
				UserName:        user.Name,
				PropertyTitle:   booking.PropertyTitle,
				PropertyAddress: booking.PropertyAddress,
				BookingDate:     booking.Date,
				OwnerEmail:      property.OwnerEmail,
			}); err != nil {
				logrus.WithError(err).Warn("status notification not queued")
			}
		}

		logrus.WithFields(logrus.Fields{
			"uid":       targetUID,
			"bookingId": bookingID,
			"status":    req.Status,
		}).Info("booking status updated")
		c.JSON(http.StatusOK, gin.H{"message": "booking updated", "booking": booking})
	}
}

func statusEvent(status string) (notify.Event, bool) {
	switch status {
	case models.BookingConfirmed:
		return notify.EventConfirmed, true
	case models.BookingCancelled:
		return notify.EventCancelled, true
	}
	return "", false
}
