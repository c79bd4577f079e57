package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jeffersontgc/credistore-be/internal/apierror"
	"github.com/jeffersontgc/credistore-be/internal/dto"
	"github.com/jeffersontgc/credistore-be/internal/middleware"
	"github.com/jeffersontgc/credistore-be/internal/model"
	"github.com/jeffersontgc/credistore-be/internal/service"
)

type DebtsHandler struct{ svc service.DebtService }

func NewDebtsHandler(svc service.DebtService) *DebtsHandler { return &DebtsHandler{svc: svc} }

// Create godoc
// @Summary      Register a new debt
// @Description  Creates a credit sale atomically: validates the due date, reserves stock per line item with a row lock, snapshots prices, and emits the debt-created event.
// @Tags         debts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateDebtRequest true "Debt detail"
// @Success      201  {object} dto.DebtResponse
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/debts [post]
func (h *DebtsHandler) Create(c *gin.Context) {
	var req dto.CreateDebtRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	callerUUID, _ := uuid.Parse(claims.UserUUID)

	resp, err := h.svc.Create(c.Request.Context(), callerUUID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get godoc
// @Summary      Get debt by UUID
// @Tags         debts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Debt UUID"
// @Success      200 {object} dto.DebtResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/debts/{id} [get]
func (h *DebtsHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.FindByUUID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List debts
// @Description  Paginated list filtered by user, status, and due date range. Includes the grand total across all matches.
// @Tags         debts
// @Produce      json
// @Security     BearerAuth
// @Param        user_uuid  query string false "Filter by debtor UUID"
// @Param        status     query string false "active | pending | paid | settled"
// @Param        start_date query string false "Due date from (YYYY-MM-DD)"
// @Param        end_date   query string false "Due date to (YYYY-MM-DD)"
// @Param        page       query int    false "Page (default 1)"
// @Param        limit      query int    false "Per page (default 10)"
// @Success      200 {object} dto.DebtListResponse
// @Router       /v1/debts [get]
func (h *DebtsHandler) List(c *gin.Context) {
	var filter dto.DebtFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateStatus godoc
// @Summary      Advance debt status
// @Description  Moves the debt forward through active → pending → paid → settled. Backward and self transitions are rejected.
// @Tags         debts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                      true "Debt UUID"
// @Param        body body dto.UpdateDebtStatusRequest true "Target status"
// @Success      200  {object} dto.DebtResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/debts/{id}/status [patch]
func (h *DebtsHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	var req dto.UpdateDebtStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateStatus(c.Request.Context(), id, model.DebtStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancel godoc
// @Summary      Cancel debt
// @Description  Cancels an active or pending debt: restores stock for every line item and deletes the debt.
// @Tags         debts
// @Security     BearerAuth
// @Param        id path string true "Debt UUID"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/debts/{id} [delete]
func (h *DebtsHandler) Cancel(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Cancel(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Overdue godoc
// @Summary      List overdue debts
// @Description  Open debts (active or pending) past their due date, oldest first.
// @Tags         debts
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.DebtResponse
// @Router       /v1/debts/overdue [get]
func (h *DebtsHandler) Overdue(c *gin.Context) {
	resp, err := h.svc.Overdue(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
