package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jeffersontgc/credistore-be/internal/apierror"
	"github.com/jeffersontgc/credistore-be/internal/dto"
	"github.com/jeffersontgc/credistore-be/internal/service"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// ListDaily godoc
// @Summary      List daily sales reports
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        start_date query string false "From (YYYY-MM-DD)"
// @Param        end_date   query string false "To (YYYY-MM-DD)"
// @Param        page       query int    false "Page (default 1)"
// @Param        limit      query int    false "Per page (default 10)"
// @Success      200 {object} dto.DailySalesListResponse
// @Router       /v1/reports/daily [get]
func (h *ReportsHandler) ListDaily(c *gin.Context) {
	var filter dto.DailySalesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.FindDailySales(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetDaily godoc
// @Summary      Get the sales report for one day
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        date path string true "Day (YYYY-MM-DD)"
// @Success      200 {object} dto.DailySalesResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/reports/daily/{date} [get]
func (h *ReportsHandler) GetDaily(c *gin.Context) {
	day, err := time.ParseInLocation("2006-01-02", c.Param("date"), time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid date, expected YYYY-MM-DD"))
		return
	}
	resp, err := h.svc.DailyByDate(c.Request.Context(), day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListMonthly godoc
// @Summary      List monthly sales reports
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        year  query int false "Filter by year"
// @Param        month query int false "Filter by month (1-12)"
// @Param        page  query int false "Page (default 1)"
// @Param        limit query int false "Per page (default 10)"
// @Success      200 {object} dto.MonthlySalesListResponse
// @Router       /v1/reports/monthly [get]
func (h *ReportsHandler) ListMonthly(c *gin.Context) {
	var filter dto.MonthlySalesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.FindMonthlySales(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetMonthly godoc
// @Summary      Get the sales report for one month
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        year  path int true "Year"
// @Param        month path int true "Month (1-12)"
// @Success      200 {object} dto.MonthlySalesResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/reports/monthly/{year}/{month} [get]
func (h *ReportsHandler) GetMonthly(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid year"))
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, apierror.New("invalid month"))
		return
	}
	resp, err := h.svc.Monthly(c.Request.Context(), year, month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
