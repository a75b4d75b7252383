package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zisan5910/zisan-trader-pro/internal/application/service"
	"github.com/zisan5910/zisan-trader-pro/internal/presentation/http/dto/response"
)

// ReportHandler handles reporting and dashboard HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dashboard handles the landing dashboard view
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.reportService.GetDashboard(c.Request.Context(), time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard retrieved successfully", dashboard)
}

// Daily handles the daily report. Defaults to today when no date is given.
func (h *ReportHandler) Daily(c *gin.Context) {
	day := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := parseDate(dateStr, time.Local)
		if err != nil {
			response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		day = parsed
	}

	report, err := h.reportService.DailyReport(c.Request.Context(), day)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily report retrieved successfully", report)
}

// Monthly handles the monthly report. Defaults to the current month.
func (h *ReportHandler) Monthly(c *gin.Context) {
	now := time.Now()
	year := now.Year()
	month := int(now.Month())

	if yearStr := c.Query("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			response.BadRequest(c, "Invalid year")
			return
		}
		year = parsed
	}
	if monthStr := c.Query("month"); monthStr != "" {
		parsed, err := strconv.Atoi(monthStr)
		if err != nil || parsed < 1 || parsed > 12 {
			response.BadRequest(c, "Invalid month, expected 1-12")
			return
		}
		month = parsed
	}

	report, err := h.reportService.MonthlyReport(c.Request.Context(), year, time.Month(month), time.Local)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Monthly report retrieved successfully", report)
}

// Export handles downloading the period report as an xlsx workbook
func (h *ReportHandler) Export(c *gin.Context) {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		response.BadRequest(c, "Both from and to dates are required")
		return
	}

	from, err := parseDate(fromStr, time.Local)
	if err != nil {
		response.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
		return
	}
	to, err := parseDate(toStr, time.Local)
	if err != nil {
		response.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
		return
	}
	if to.Before(from) {
		response.BadRequest(c, "The to date must not be before the from date")
		return
	}

	// inclusive end date
	data, err := h.reportService.ExportExcel(c.Request.Context(), from, to.AddDate(0, 0, 1))
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("report_%s_%s.xlsx", from.Format("20060102"), to.Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// Cleanup handles triggering the sales retention purge
func (h *ReportHandler) Cleanup(c *gin.Context) {
	purged, err := h.reportService.CleanupExpiredSales(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Retention cleanup completed", gin.H{"purged": purged})
}
