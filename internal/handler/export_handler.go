package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/adistaps/simola-backend/internal/dto"
	"github.com/adistaps/simola-backend/internal/service"
	"github.com/adistaps/simola-backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	service service.ExportService
}

func NewExportHandler(service service.ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

func (h *ExportHandler) ExportReports(c *gin.Context) {
	var filter dto.ExportReportsFilter

	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "parameter from tidak valid, format: YYYY-MM-DD"})
			return
		}
		filter.From = &from
	}
	if toStr := c.Query("to"); toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "parameter to tidak valid, format: YYYY-MM-DD"})
			return
		}
		filter.To = &to
	}
	filter.Status = c.Query("status")

	data, fileName, err := h.service.ExportReports(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func (h *ExportHandler) ExportUsers(c *gin.Context) {
	data, fileName, err := h.service.ExportUsers(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
