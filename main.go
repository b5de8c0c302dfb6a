package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"propertypro/internal/config"
	"propertypro/internal/database"
	"propertypro/internal/handlers"
	"propertypro/internal/middleware"
	"propertypro/internal/notify"
)

func main() {
	config.Load()
	setupLogger(config.AppEnv.Env)

	if config.AppEnv.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET is required")
	}

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		logrus.WithError(err).Fatal("mongodb connect failed")
	}
	db := client.Database(config.AppEnv.DBName)
	logrus.WithField("db", db.Name()).Info("mongodb connected")

	if err := database.EnsureUserIndexes(db); err != nil {
		logrus.WithError(err).Warn("user index warning")
	}
	if err := database.EnsurePropertyIndexes(db); err != nil {
		logrus.WithError(err).Warn("property index warning")
	}

	// Notifications are queued and delivered by cmd/email_worker. Without a
	// broker the publisher stays nil and every notify call is a no-op.
	var notifier *notify.Publisher
	if config.AppEnv.RabbitMQURL != "" {
		notifier, err = notify.NewPublisher(config.AppEnv.RabbitMQURL, config.AppEnv.EmailQueue)
		if err != nil {
			logrus.WithError(err).Warn("rabbitmq unavailable, notifications disabled")
		} else {
			defer notifier.Close()
		}
	}

	if config.AppEnv.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "timestamp": time.Now().UTC().Format(time.RFC3339)})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/signup", handlers.Signup(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))
		auth.POST("/login", handlers.Login(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))
	}

	userAuth := middleware.UserAuth(config.AppEnv.JWTSecret)
	ownerOnly := middleware.OwnerOnly(db)

	property := r.Group("/property")
	{
		property.GET("/all", handlers.GetAllProperties(db))
		property.GET("/:propertyId", handlers.GetProperty(db))
		property.POST("/create", userAuth, ownerOnly, handlers.CreateProperty(db))
		property.PUT("/:propertyId", userAuth, ownerOnly, handlers.UpdateProperty(db))
		property.DELETE("/:propertyId", userAuth, ownerOnly, handlers.DeleteProperty(db))

		owner := property.Group("/owner", userAuth, ownerOnly)
		{
			owner.GET("/my-properties", handlers.GetMyProperties(db))
			owner.GET("/bookings", handlers.GetOwnerBookings(db))
			owner.PUT("/bookings/:userId/:bookingId", handlers.UpdateBookingStatus(db, notifier))
		}
	}

	user := r.Group("/user", userAuth)
	{
		user.POST("/register", handlers.RegisterUser(db))
		user.GET("/profile", handlers.GetProfile(db))
		user.POST("/bookVisit/:propertyId", handlers.BookVisit(db, notifier))
		user.GET("/bookings", handlers.GetBookings(db))
		user.DELETE("/booking/:propertyId", handlers.CancelBooking(db))
		user.POST("/favorite/:propertyId", handlers.ToggleFavorite(db))
		user.GET("/favorites", handlers.GetFavorites(db))
	}

	if err := r.Run(":" + config.AppEnv.Port); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}

func setupLogger(env string) {
	logrus.SetOutput(gin.DefaultWriter)
	if env == "development" {
		logrus.SetLevel(logrus.DebugLevel)
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		return
	}
	logrus.SetLevel(logrus.InfoLevel)
	logrus.SetFormatter(&logrus.JSONFormatter{})
}
