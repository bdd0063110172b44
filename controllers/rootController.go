package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRootRoute registers the health root and the unmatched-route
// boundary.
func SetupRootRoute(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API is running"})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})
}
