package handlers

import (
	"context"
	"errors"

	"fin-analyzer/internal/dto"
	"fin-analyzer/internal/models"
	"fin-analyzer/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	source    service.TransactionSource
	logger    *zap.Logger
}

func NewAnalyticsHandler(analytics *service.AnalyticsService, source service.TransactionSource, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analytics: analytics,
		source:    source,
		logger:    logger,
	}
}

// InvestmentBank godoc
// @Summary Investment bank savings
// @Description Sum of rounding differences of all expenses in a month
// @Tags analytics
// @Accept json
// @Produce json
// @Param request body dto.InvestmentBankRequest true "Month, rounding limit and optional operations"
// @Success 200 {object} dto.InvestmentBankResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /analytics/investment-bank [post]
func (h *AnalyticsHandler) InvestmentBank(c *fiber.Ctx) error {
	var req dto.InvestmentBankRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	transactions, err := h.transactions(c.Context(), req.Transactions)
	if err != nil {
		return err
	}

	invested, err := h.analytics.InvestmentBank(req.Month, transactions, req.Limit)
	if err != nil {
		return h.fail(c, "Investment bank calculation failed", err)
	}

	return c.JSON(dto.InvestmentBankResponse{
		Month:    req.Month,
		Limit:    req.Limit,
		Invested: invested.InexactFloat64(),
	})
}

// PhoneTransactions godoc
// @Summary Operations with phone numbers
// @Description Operations whose description contains a +7 phone number
// @Tags analytics
// @Accept json
// @Produce json
// @Param request body dto.PhoneTransactionsRequest false "Optional operations"
// @Success 200 {array} models.Transaction
// @Router /analytics/phone-transactions [post]
func (h *AnalyticsHandler) PhoneTransactions(c *fiber.Ctx) error {
	var req dto.PhoneTransactionsRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
	}

	transactions, err := h.transactions(c.Context(), req.Transactions)
	if err != nil {
		return err
	}

	return c.JSON(h.analytics.FindPhoneTransactions(transactions))
}

// CashbackCategories godoc
// @Summary Spend by category
// @Description Total expenses per category for a calendar month
// @Tags analytics
// @Accept json
// @Produce json
// @Param request body dto.CashbackCategoriesRequest true "Year, month and optional operations"
// @Success 200 {object} map[string]number
// @Failure 400 {object} dto.ErrorResponse
// @Router /analytics/cashback-categories [post]
func (h *AnalyticsHandler) CashbackCategories(c *fiber.Ctx) error {
	var req dto.CashbackCategoriesRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	transactions, err := h.transactions(c.Context(), req.Transactions)
	if err != nil {
		return err
	}

	totals := h.analytics.CashbackByCategory(transactions, req.Year, req.Month)
	response := make(map[string]float64, len(totals))
	for category, total := range totals {
		response[category] = total.InexactFloat64()
	}
	return c.JSON(response)
}

// SpendingByWeekday godoc
// @Summary Average spend per weekday
// @Description Average expense per weekday over the 90 days ending at date (today by default)
// @Tags analytics
// @Accept json
// @Produce json
// @Param request body dto.SpendingByWeekdayRequest false "Optional date and operations"
// @Success 200 {object} map[string]number
// @Failure 400 {object} dto.ErrorResponse
// @Router /analytics/spending-by-weekday [post]
func (h *AnalyticsHandler) SpendingByWeekday(c *fiber.Ctx) error {
	var req dto.SpendingByWeekdayRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
	}

	transactions, err := h.transactions(c.Context(), req.Transactions)
	if err != nil {
		return err
	}

	result, err := h.analytics.SpendingByWeekday(transactions, req.Date)
	if err != nil {
		return h.fail(c, "Spending by weekday failed", err)
	}

	return c.JSON(result)
}

// transactions falls back to the configured source when the request carries none.
func (h *AnalyticsHandler) transactions(ctx context.Context, provided []models.Transaction) ([]models.Transaction, error) {
	if provided != nil {
		return provided, nil
	}
	transactions, err := h.source.ListAll(ctx)
	if err != nil {
		h.logger.Error("Failed to load operations", zap.Error(err))
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load operations")
	}
	return transactions, nil
}

func (h *AnalyticsHandler) fail(c *fiber.Ctx, msg string, err error) error {
	if isClientError(err) {
		return badRequest(c, err.Error())
	}
	h.logger.Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: msg})
}

func isClientError(err error) bool {
	return errors.Is(err, service.ErrInvalidArgument) || errors.Is(err, service.ErrInvalidFormat)
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg})
}
