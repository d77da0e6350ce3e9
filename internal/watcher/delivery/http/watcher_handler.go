package http

import (
	"net/http"

	"stock-news-watcher/internal/watcher/service"
	"stock-news-watcher/pkg/logger"

	"github.com/labstack/echo/v4"
)

// WatcherHandler handles HTTP requests for watcher runs.
type WatcherHandler struct {
	coordinator *service.RunCoordinator
	logger      *logger.Logger
}

// NewWatcherHandler creates a new WatcherHandler.
func NewWatcherHandler(coordinator *service.RunCoordinator, logger *logger.Logger) *WatcherHandler {
	return &WatcherHandler{coordinator: coordinator, logger: logger}
}

// RegisterRoutes registers the watcher routes to the Echo group.
func (h *WatcherHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.TriggerRun)
	g.GET("/last", h.GetLastRun)
}

// TriggerRun godoc
// @Summary Trigger a watcher run
// @Description Run the full watch pipeline once, outside the schedule
// @Tags runs
// @Produce  json
// @Success 200 {object} dto.RunReport
// @Failure 409 {object} dto.ErrorResponse
// @Router /runs [post]
func (h *WatcherHandler) TriggerRun(c echo.Context) error {
	h.logger.Info("Manual run triggered over HTTP")

	report, ok := h.coordinator.TryRun(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusConflict, echo.Map{"error": "a run is already in progress"})
	}

	return c.JSON(http.StatusOK, report)
}

// GetLastRun godoc
// @Summary Get the last run report
// @Description Get the report of the most recently completed run
// @Tags runs
// @Produce  json
// @Success 200 {object} dto.RunReport
// @Failure 404 {object} dto.ErrorResponse
// @Router /runs/last [get]
func (h *WatcherHandler) GetLastRun(c echo.Context) error {
	report := h.coordinator.LastReport()
	if report == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no run has completed yet"})
	}

	return c.JSON(http.StatusOK, report)
}
