package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/middleware"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
)

// Pinger is satisfied by *pgxpool.Pool
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthStatus is the body of a successful health check
type HealthStatus struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"postgres"`
}

// HealthController reports whether the store is reachable
type HealthController struct {
	db     Pinger
	driver string
}

// NewHealthController creates a HealthController. A nil db means the
// in-process store is in use and is always reachable.
func NewHealthController(db Pinger, driver string) *HealthController {
	return &HealthController{db: db, driver: driver}
}

// Health pings the database
// @Summary Health check
// @Tags ops
// @Produce json
// @Success 200 {object} dto.APIResponse{data=controllers.HealthStatus} "Service healthy"
// @Failure 502 {object} dto.ErrorResponse "Database unreachable"
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	if c.db != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := c.db.Ping(pingCtx); err != nil {
			middleware.HandleAPIError(ctx, apperrors.NewExternalServiceError("Database unreachable", err))
			return
		}
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(HealthStatus{Status: "ok", Database: c.driver}))
}
