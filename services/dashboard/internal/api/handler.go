package api

import (
	"context"
	"net/http"

	"gigdash/services/dashboard/internal/dashboard"
	"gigdash/services/dashboard/internal/errors"
	"gigdash/services/dashboard/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dashboard is the part of dashboard.Service the HTTP surface uses.
type Dashboard interface {
	OnFilterChanged(ctx context.Context, selection models.FilterSelection) (*dashboard.View, error)
	Options(ctx context.Context) ([]string, error)
	Overview(ctx context.Context) ([]dashboard.Metric, error)
}

type DashboardHandler struct {
	svc    Dashboard
	logger *zap.Logger
}

func NewDashboardHandler(svc Dashboard, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, logger: logger}
}

// GetDashboard handles GET /api/dashboard?country=<value>.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	selection := models.NewFilterSelection(c.Query("country"))

	view, err := h.svc.OnFilterChanged(c.Request.Context(), selection)
	if err != nil {
		h.fail(c, "failed to build dashboard", err)
		return
	}
	RespondOK(c, view)
}

// GetCountries handles GET /api/countries.
func (h *DashboardHandler) GetCountries(c *gin.Context) {
	options, err := h.svc.Options(c.Request.Context())
	if err != nil {
		h.fail(c, "failed to list countries", err)
		return
	}
	RespondOK(c, gin.H{"options": options})
}

// GetOverview handles GET /api/overview.
func (h *DashboardHandler) GetOverview(c *gin.Context) {
	metrics, err := h.svc.Overview(c.Request.Context())
	if err != nil {
		h.fail(c, "failed to compute overview", err)
		return
	}
	RespondOK(c, gin.H{"metrics": metrics})
}

// HealthCheck reports unhealthy while the dataset cannot be loaded.
func (h *DashboardHandler) HealthCheck(c *gin.Context) {
	if _, err := h.svc.Options(c.Request.Context()); err != nil {
		RespondError(c, http.StatusServiceUnavailable, string(errors.TypeOf(err)), err)
		return
	}
	RespondOK(c, gin.H{"status": "ok"})
}

func (h *DashboardHandler) fail(c *gin.Context, msg string, err error) {
	h.logger.Error(msg,
		zap.String("path", c.Request.URL.Path),
		zap.String("query", c.Request.URL.RawQuery),
		zap.Error(err))
	RespondError(c, StatusFor(err), string(errors.TypeOf(err)), err)
}
