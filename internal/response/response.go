// Package response holds the shared HTTP response helpers and the mapping
// from domain errors to client-visible statuses.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GuiAmaralD/pet-adoption-system/internal/domain"
	"github.com/GuiAmaralD/pet-adoption-system/internal/domain/media"
)

// Success writes a 200 with the standard envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// Created writes a 201 with the standard envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

// NoContent writes a 200 with no body.
func NoContent(c *gin.Context) {
	c.Status(http.StatusOK)
}

// BadRequest writes a 400 with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": message})
}

// Unauthorized writes a 401 with the given message.
func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": message})
}

// Error maps an error to its HTTP status: media validation failures are bad
// requests, domain errors carry their own status, anything else is a 500.
func Error(c *gin.Context, err error) {
	var mediaErr *media.ValidationError
	if errors.As(err, &mediaErr) {
		BadRequest(c, mediaErr.Error())
		return
	}

	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		c.JSON(domainErr.Status, gin.H{"success": false, "error": domainErr.Message})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
}
