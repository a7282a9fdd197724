package controller

import (
	"net/http"

	"horizon_backend/internal/service"
	"horizon_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB     *gorm.DB
	Status *service.StatusService
}

func NewHealthController(db *gorm.DB, status *service.StatusService) *HealthController {
	return &HealthController{DB: db, Status: status}
}

// @Summary Health check
// @Description Service and database status
// @Tags system
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.InternalServerError(ctx)
		return
	}

	if err := sqlDB.Ping(); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"database": "up",
		},
	})
}

// @Summary Game server status
// @Description Last sampled reachability snapshot of the game server
// @Tags system
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/status [get]
func (c *HealthController) GameServerStatus(ctx *gin.Context) {
	// Offline still renders: the page shows the name and a red dot, so the
	// snapshot goes out either way.
	snapshot, _ := c.Status.Status()
	util.Success(ctx, snapshot)
}
