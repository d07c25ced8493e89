package handlers

import (
	"net/http"
	"strconv"

	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/biz_finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/biz_finance_tracker/internal/dto"
	"github.com/gin-gonic/gin"
)

// lookupHandler serves one kind of master data (expense types or statuses).
type lookupHandler struct {
	lookupService portssvc.LookupSvcFacade
	kind          domain.LookupKind
}

// registerLookupRoutes registers /expense-types and /statuses.
func registerLookupRoutes(rg *gin.RouterGroup, lookupService portssvc.LookupSvcFacade) {
	for path, kind := range map[string]domain.LookupKind{
		"/expense-types": domain.LookupExpenseType,
		"/statuses":      domain.LookupStatus,
	} {
		h := &lookupHandler{lookupService: lookupService, kind: kind}
		g := rg.Group(path)
		g.GET("", h.listLookupValues)
		g.POST("", h.createLookupValue)
		g.PATCH("/:code", h.updateLookupValue)
	}
}

// listLookupValues godoc
// @Summary List expense types or statuses
// @Tags lookups
// @Produce  json
// @Param   activeOnly query bool false "Only active values"
// @Success 200 {array} dto.LookupValueResponse
// @Security BearerAuth
// @Router /expense-types [get]
// @Router /statuses [get]
func (h *lookupHandler) listLookupValues(c *gin.Context) {
	activeOnly, _ := strconv.ParseBool(c.DefaultQuery("activeOnly", "false"))
	values, err := h.lookupService.ListLookupValues(c.Request.Context(), h.kind, activeOnly)
	if err != nil {
		respondWithError(c, err, "list lookup values")
		return
	}
	c.JSON(http.StatusOK, dto.ToListLookupValueResponse(values))
}

// createLookupValue godoc
// @Summary Add an expense type or status
// @Tags lookups
// @Accept  json
// @Produce  json
// @Param   value body dto.CreateLookupValueRequest true "Lookup value"
// @Success 201 {object} dto.LookupValueResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Code already exists"
// @Security BearerAuth
// @Router /expense-types [post]
// @Router /statuses [post]
func (h *lookupHandler) createLookupValue(c *gin.Context) {
	var req dto.CreateLookupValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "CreateLookupValue", err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	value, err := h.lookupService.CreateLookupValue(c.Request.Context(), h.kind, req, userID)
	if err != nil {
		respondWithError(c, err, "create lookup value")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLookupValueResponse(value))
}

// updateLookupValue godoc
// @Summary Rename or (de)activate an expense type or status
// @Tags lookups
// @Accept  json
// @Produce  json
// @Param   code path string true "Lookup code"
// @Param   value body dto.UpdateLookupValueRequest true "Fields to change"
// @Success 200 {object} dto.LookupValueResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /expense-types/{code} [patch]
// @Router /statuses/{code} [patch]
func (h *lookupHandler) updateLookupValue(c *gin.Context) {
	var req dto.UpdateLookupValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "UpdateLookupValue", err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	value, err := h.lookupService.UpdateLookupValue(c.Request.Context(), h.kind, c.Param("code"), req, userID)
	if err != nil {
		respondWithError(c, err, "update lookup value")
		return
	}
	c.JSON(http.StatusOK, dto.ToLookupValueResponse(value))
}
