package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/tcasystem/internal/app/models/dto"
)

// IndexController serves the root and health endpoints
type IndexController struct {
	storage string
}

// NewIndexController creates a new IndexController
func NewIndexController(storage string) *IndexController {
	return &IndexController{storage: storage}
}

// Index greets API clients
// @Summary Service banner
// @Tags meta
// @Produce json
// @Success 200 {object} dto.IndexResponse
// @Router / [get]
func (c *IndexController) Index(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.IndexResponse{Message: "Teacher Course Allotment API"})
}

// Health reports liveness
// @Summary Health check
// @Tags meta
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (c *IndexController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Storage: c.storage})
}
