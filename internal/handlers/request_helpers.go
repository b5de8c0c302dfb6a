package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

func respondWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

func respondDBError(c *gin.Context, op string, err error) {
	logrus.WithError(err).WithField("op", op).Error("document store error")
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "db error"})
}

// bindingErrorMessage turns a gin binding failure into a short message that
// names the offending field.
func bindingErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			return "missing required field: " + field
		case "oneof":
			return field + " must be one of: " + fe.Param()
		case "min":
			return field + " must be at least " + fe.Param() + " characters"
		case "email":
			return field + " must be a valid email"
		case "gt":
			return field + " must be greater than " + fe.Param()
		default:
			return "invalid field: " + field
		}
	}
	return "invalid request body"
}
