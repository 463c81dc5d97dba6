package controllers

import (
	"errors"
	"log"
	"net/http"

	"study-abroad-api/services"
	"study-abroad-api/storage"

	"github.com/gin-gonic/gin"
)

// Package-level collaborators, wired once from main. Controllers stay
// thin: bind input, call the service, translate the error.
var (
	Store     storage.Provider
	Cache     *services.Cache
	Lifecycle *services.LifecycleService
	Documents *services.DocumentService
	Payments  *services.PaymentService
	Fees      *services.FeeService
)

// Setup injects the service graph used by every handler.
func Setup(store storage.Provider, cache *services.Cache, lifecycle *services.LifecycleService,
	documents *services.DocumentService, payments *services.PaymentService, fees *services.FeeService) {
	Store = store
	Cache = cache
	Lifecycle = lifecycle
	Documents = documents
	Payments = payments
	Fees = fees
}

// currentActor builds the acting identity from the auth middleware.
func currentActor(c *gin.Context) services.Actor {
	userID, _ := c.Get("userID")
	role, _ := c.Get("role")
	name, _ := c.Get("fullName")

	actor := services.Actor{}
	if id, ok := userID.(int); ok {
		actor.UserID = id
	}
	if r, ok := role.(string); ok {
		actor.IsAdmin = r == "ADMIN"
	}
	if n, ok := name.(string); ok {
		actor.Name = n
	}
	return actor
}

// respondError maps service errors to HTTP statuses. Internal causes are
// logged, never shown.
func respondError(c *gin.Context, err error) {
	var validation *services.ValidationError
	var authz *services.AuthorizationError
	var notFound *services.NotFoundError
	var conflict *services.ConflictError
	var storageErr *services.StorageError

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message, "field": validation.Field})
	case errors.As(err, &authz):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not permitted"})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Message})
	case errors.As(err, &storageErr):
		log.Printf("storage failure: %v", storageErr.Unwrap())
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Temporary failure, please try again"})
	default:
		log.Printf("unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
