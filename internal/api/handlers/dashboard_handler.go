package handlers

import (
	"time"

	"fin-analyzer/internal/dto"
	"fin-analyzer/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboard *service.DashboardService
	now       func() time.Time
	logger    *zap.Logger
}

func NewDashboardHandler(dashboard *service.DashboardService, now func() time.Time, logger *zap.Logger) *DashboardHandler {
	if now == nil {
		now = time.Now
	}
	return &DashboardHandler{
		dashboard: dashboard,
		now:       now,
		logger:    logger,
	}
}

// MainPage godoc
// @Summary Main page
// @Description Greeting, card spend and cashback, top-5 operations, currency rates and stock prices from the start of the month up to date
// @Tags dashboard
// @Produce json
// @Param date query string false "YYYY-MM-DD HH:MM:SS, defaults to now"
// @Success 200 {object} models.Dashboard
// @Failure 400 {object} dto.ErrorResponse
// @Router /dashboard [get]
func (h *DashboardHandler) MainPage(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		date = h.now().Format("2006-01-02 15:04:05")
	}

	page, err := h.dashboard.GenerateMainPage(c.Context(), date)
	if err != nil {
		if isClientError(err) {
			return badRequest(c, err.Error())
		}
		h.logger.Error("Failed to generate main page", zap.String("date", date), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to generate main page",
		})
	}

	return c.JSON(page)
}
