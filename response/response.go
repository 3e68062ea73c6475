// Package response normalizes the API envelope: every payload carries a
// success flag, errors carry a message and optionally field-level details.
package response

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

func OK(c *gin.Context, payload gin.H) {
	JSON(c, http.StatusOK, payload)
}

func Created(c *gin.Context, payload gin.H) {
	JSON(c, http.StatusCreated, payload)
}

func JSON(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// ValidationError reports field-level failures as a 400 with an errors list.
func ValidationError(c *gin.Context, errs []string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Validation errors",
		"errors":  errs,
	})
}

// BindError reports a request-binding failure, expanding validator errors
// into field-level messages.
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed on the '%s' rule", fe.Field(), fe.Tag()))
		}
		ValidationError(c, msgs)
		return
	}
	Error(c, http.StatusBadRequest, "Invalid request body")
}

// FromError maps known failure shapes to the error taxonomy; anything
// unrecognized is logged and surfaced as a generic 500.
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		Error(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKey(err):
		Error(c, http.StatusBadRequest, "Duplicate value for a unique field")
	default:
		log.Printf("Unhandled error: %v", err)
		Error(c, http.StatusInternalServerError, "Server error")
	}
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
