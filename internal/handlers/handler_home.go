package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetHome godoc
// @Summary Service banner
// @Description Returns the service name, useful as a liveness probe target.
// @Tags home
// @Produce json
// @Success 200 {object} map[string]string
// @Router /home [get]
func GetHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"service": "ledger-backend"})
}
