package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handlers always respond with de-enveloped domain objects under a
// stable "data" key; stores never see transport envelopes.

func respondData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

func respondList(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}
