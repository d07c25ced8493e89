package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/biz_finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/biz_finance_tracker/internal/dto"
	"github.com/SscSPs/biz_finance_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(exchangeRateService)

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.PUT("", h.upsertExchangeRate)
		exchangeRates.GET("", h.listExchangeRates)
		exchangeRates.GET("/:from/:to", h.getExchangeRate)
		exchangeRates.DELETE("/:id", h.deleteExchangeRate)
	}
}

// upsertExchangeRate godoc
// @Summary Set an exchange rate
// @Description Creates the rate for an ordered currency pair or replaces its value. 1 unit of "from" buys "rate" units of "to".
// @Tags exchange rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.UpsertExchangeRateRequest true "Exchange Rate details"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to save exchange rate"
// @Security BearerAuth
// @Router /exchange-rates [put]
func (h *exchangeRateHandler) upsertExchangeRate(c *gin.Context) {
	var req dto.UpsertExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "UpsertExchangeRate", err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	rate, err := h.exchangeRateService.UpsertExchangeRate(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "save exchange rate")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Exchange rate saved",
		slog.String("from", rate.FromCurrencyCode),
		slog.String("to", rate.ToCurrencyCode),
		slog.String("rate", rate.Rate.String()))
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// listExchangeRates godoc
// @Summary List exchange rates
// @Description Returns every stored directional rate
// @Tags exchange rates
// @Produce  json
// @Success 200 {array} dto.ExchangeRateResponse
// @Security BearerAuth
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	rates, err := h.exchangeRateService.ListExchangeRates(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "list exchange rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// getExchangeRate godoc
// @Summary Get an exchange rate
// @Description Retrieves the rate for a pair. When only the reverse pair is stored its reciprocal is returned with inverse=true.
// @Tags exchange rates
// @Produce  json
// @Param   from path string true "From Currency Code" MinLength(3) MaxLength(3)
// @Param   to path string true "To Currency Code" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid currency codes"
// @Failure 404 {object} map[string]string "Exchange rate not found"
// @Security BearerAuth
// @Router /exchange-rates/{from}/{to} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	rate, inverse, err := h.exchangeRateService.GetExchangeRate(c.Request.Context(), c.Param("from"), c.Param("to"))
	if err != nil {
		respondWithError(c, err, "retrieve exchange rate")
		return
	}
	res := dto.ToExchangeRateResponse(rate)
	res.Inverse = inverse
	c.JSON(http.StatusOK, res)
}

// deleteExchangeRate godoc
// @Summary Delete an exchange rate
// @Tags exchange rates
// @Param   id path string true "Exchange Rate ID"
// @Success 204
// @Failure 404 {object} map[string]string "Exchange rate not found"
// @Security BearerAuth
// @Router /exchange-rates/{id} [delete]
func (h *exchangeRateHandler) deleteExchangeRate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.exchangeRateService.DeleteExchangeRate(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondWithError(c, err, "delete exchange rate")
		return
	}
	c.Status(http.StatusNoContent)
}
