package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Controller handles general HTTP requests.
type Controller struct {
	startedAt time.Time
}

// New creates a new Controller.
func New() *Controller {
	return &Controller{
		startedAt: time.Now(),
	}
}

// Ping handles the HTTP GET request for health check endpoint.
func (con *Controller) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
		"uptime":  time.Since(con.startedAt).Round(time.Second).String(),
	})
}
