package handler

import (
	"net/http"

	"github.com/adistaps/simola-backend/internal/service"
	"github.com/gin-gonic/gin"
)

type ImportHandler struct {
	service service.ImportService
}

func NewImportHandler(service service.ImportService) *ImportHandler {
	return &ImportHandler{service: service}
}

func (h *ImportHandler) ImportReports(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file wajib diunggah"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file tidak dapat dibaca"})
		return
	}
	defer file.Close()

	result, err := h.service.ImportReports(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (h *ImportHandler) DownloadTemplate(c *gin.Context) {
	data, err := h.service.Template()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="template_import_laporan.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
