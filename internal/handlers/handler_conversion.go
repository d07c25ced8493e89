package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/biz_finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/biz_finance_tracker/internal/dto"
	"github.com/SscSPs/biz_finance_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// conversionHandler serves conversion previews and the conversion offer workflow.
type conversionHandler struct {
	conversionService portssvc.ConversionSvc
	offerService      portssvc.ConversionOfferSvc
}

// registerConversionRoutes registers routes for previews and conversion offers.
func registerConversionRoutes(rg *gin.RouterGroup, conversionService portssvc.ConversionSvc, offerService portssvc.ConversionOfferSvc) {
	h := &conversionHandler{conversionService: conversionService, offerService: offerService}

	conversions := rg.Group("/conversions")
	{
		conversions.GET("/convert", h.convert)
		conversions.POST("/preview", h.preview)
		conversions.POST("/offers", h.createOffer)
		conversions.POST("/offers/:id/accept", h.acceptOffer)
		conversions.POST("/offers/:id/decline", h.declineOffer)
	}
}

// convert godoc
// @Summary Convert an amount
// @Description Converts using a stored direct rate, the reciprocal of the reverse rate, or a relay through the hub currency. result is null and path is NONE when no path exists.
// @Tags conversions
// @Produce  json
// @Param   amount query string true "Amount"
// @Param   from query string true "From currency"
// @Param   to query string true "To currency"
// @Success 200 {object} fx.Conversion
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 503 {object} map[string]interface{} "Exchange rates unavailable, retry"
// @Security BearerAuth
// @Router /conversions/convert [get]
func (h *conversionHandler) convert(c *gin.Context) {
	var params dto.ConvertParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Convert query", err)
		return
	}

	conv, err := h.conversionService.Convert(c.Request.Context(), params.Amount, params.From, params.To)
	if err != nil {
		respondWithError(c, err, "convert amount")
		return
	}
	c.JSON(http.StatusOK, conv)
}

// preview godoc
// @Summary Preview normalized amounts
// @Description Returns the hub and reporting amounts a transaction with this amount and currency would store, and optionally a single conversion to targetCurrency with its resolution path.
// @Tags conversions
// @Accept  json
// @Produce  json
// @Param   request body dto.ConversionPreviewRequest true "Amount and currency"
// @Success 200 {object} dto.ConversionPreviewResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 503 {object} map[string]interface{} "Exchange rates unavailable, retry"
// @Security BearerAuth
// @Router /conversions/preview [post]
func (h *conversionHandler) preview(c *gin.Context) {
	var req dto.ConversionPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "ConversionPreview", err)
		return
	}

	p, err := h.conversionService.Preview(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "preview conversion")
		return
	}
	c.JSON(http.StatusOK, dto.ConversionPreviewResponse{
		HubCurrency:      p.Normalized.HubCurrency,
		HubAmount:        p.Normalized.HubAmount,
		ReportingAmounts: p.Normalized.ReportingAmounts,
		Conversion:       p.Conversion,
	})
}

// createOffer godoc
// @Summary Report a currency change on a transaction form
// @Description When the currency is switched to the hub currency, offers to rescale the amount into the default currency. The response says whether an offer was presented and what the form should show meanwhile.
// @Tags conversions
// @Accept  json
// @Produce  json
// @Param   request body dto.CreateConversionOfferRequest true "Amount and currency change"
// @Success 200 {object} dto.ConversionOfferResponse "No offer (IDLE or NO_RATE_AVAILABLE)"
// @Success 201 {object} dto.ConversionOfferResponse "Offer presented"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 503 {object} map[string]interface{} "Exchange rates unavailable, retry"
// @Security BearerAuth
// @Router /conversions/offers [post]
func (h *conversionHandler) createOffer(c *gin.Context) {
	var req dto.CreateConversionOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "CreateConversionOffer", err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	outcome, err := h.offerService.CreateOffer(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "evaluate currency change")
		return
	}

	middleware.SetAnalyticsProperty(c, "offer_state", string(outcome.State))
	status := http.StatusOK
	if outcome.Offer != nil {
		status = http.StatusCreated
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("Conversion offer presented",
			slog.String("offer_id", outcome.Offer.OfferID))
	}
	c.JSON(status, dto.ToConversionOfferResponse(outcome.State, outcome.Form, outcome.Offer))
}

// acceptOffer godoc
// @Summary Accept a conversion offer
// @Description Consumes the offer and returns the converted amount, rounded to 2 decimal places, in the default currency.
// @Tags conversions
// @Produce  json
// @Param   id path string true "Offer ID"
// @Success 200 {object} dto.ConversionOfferDecisionResponse
// @Failure 403 {object} map[string]string "Offer belongs to another user"
// @Failure 404 {object} map[string]string "Offer not found or expired"
// @Failure 409 {object} map[string]string "Offer already answered"
// @Security BearerAuth
// @Router /conversions/offers/{id}/accept [post]
func (h *conversionHandler) acceptOffer(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	decision, err := h.offerService.AcceptOffer(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondWithError(c, err, "accept conversion offer")
		return
	}
	middleware.SetAnalyticsProperty(c, "offer_state", string(decision.State))
	c.JSON(http.StatusOK, toDecisionResponse(decision))
}

// declineOffer godoc
// @Summary Decline a conversion offer
// @Description Consumes the offer and keeps the amount as entered in the hub currency.
// @Tags conversions
// @Produce  json
// @Param   id path string true "Offer ID"
// @Success 200 {object} dto.ConversionOfferDecisionResponse
// @Failure 403 {object} map[string]string "Offer belongs to another user"
// @Failure 404 {object} map[string]string "Offer not found or expired"
// @Failure 409 {object} map[string]string "Offer already answered"
// @Security BearerAuth
// @Router /conversions/offers/{id}/decline [post]
func (h *conversionHandler) declineOffer(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	decision, err := h.offerService.DeclineOffer(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondWithError(c, err, "decline conversion offer")
		return
	}
	middleware.SetAnalyticsProperty(c, "offer_state", string(decision.State))
	c.JSON(http.StatusOK, toDecisionResponse(decision))
}

func toDecisionResponse(d *portssvc.OfferDecision) dto.ConversionOfferDecisionResponse {
	return dto.ConversionOfferDecisionResponse{
		OfferID: d.OfferID,
		State:   string(d.State),
		Form:    dto.ToFormAmountDTO(d.Form),
	}
}
