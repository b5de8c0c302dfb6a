package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"propertypro/internal/models"
)

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
	Role     string `json:"role" binding:"omitempty,oneof=user owner"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup creates an account and its user document in one step and returns a
// bearer token. Role is fixed at signup; there is no promotion path.
func Signup(db *mongo.Database, jwtSecret string, accessTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, bindingErrorMessage(err))
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		role := req.Role
		if role == "" {
			role = models.RoleUser
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("users").CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			respondDBError(c, "signup count", err)
			return
		}
		if count > 0 {
			respondWithError(c, http.StatusConflict, "email already registered")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logrus.WithError(err).Error("signup: password hash failed")
			respondWithError(c, http.StatusInternalServerError, "password hash failed")
			return
		}

		now := time.Now()
		user := models.User{
			UID:          primitive.NewObjectID().Hex(),
			Email:        email,
			PasswordHash: string(hash),
			Name:         strings.TrimSpace(req.Name),
			Role:         role,
			Bookings:     []models.Booking{},
			Favorites:    []string{},
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if _, err := db.Collection("users").InsertOne(ctx, user); err != nil {
			// Two signups can race past the count; the unique email index
			// rejects the loser.
			if mongo.IsDuplicateKeyError(err) {
				respondWithError(c, http.StatusConflict, "email already registered")
				return
			}
			respondDBError(c, "signup insert", err)
			return
		}

		token, err := issueUserToken(user.UID, user.Email, jwtSecret, accessTTL)
		if err != nil {
			logrus.WithError(err).Error("signup: token generation failed")
			respondWithError(c, http.StatusInternalServerError, "token generation failed")
			return
		}

		logrus.WithField("uid", user.UID).Info("user signed up")
		c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
	}
}

// Login verifies credentials and returns a bearer token.
func Login(db *mongo.Database, jwtSecret string, accessTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, bindingErrorMessage(err))
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusUnauthorized, "invalid credentials")
				return
			}
			respondDBError(c, "login lookup", err)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			respondWithError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}

		token, err := issueUserToken(user.UID, user.Email, jwtSecret, accessTTL)
		if err != nil {
			logrus.WithError(err).Error("login: token generation failed")
			respondWithError(c, http.StatusInternalServerError, "token generation failed")
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
	}
}

func issueUserToken(uid, email, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"uid":   uid,
		"email": email,
		"exp":   time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
