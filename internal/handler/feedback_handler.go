package handler

import (
	"net/http"

	"github.com/adistaps/simola-backend/internal/dto"
	"github.com/adistaps/simola-backend/internal/service"
	"github.com/adistaps/simola-backend/pkg/response"
	"github.com/adistaps/simola-backend/pkg/validator"
	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	service service.FeedbackService
}

func NewFeedbackHandler(service service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	var input dto.CreateFeedbackInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if userID, err := response.GetUserID(c); err == nil {
		input.UserID = &userID
	}

	var photo *dto.PhotoFile
	if fileHeader, err := c.FormFile("photo"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "foto tidak dapat dibaca"})
			return
		}
		defer file.Close()
		photo = &dto.PhotoFile{Reader: file, FileName: fileHeader.Filename}
	}

	feedback, err := h.service.Create(c.Request.Context(), input, photo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": feedback})
}

func (h *FeedbackHandler) GetAllFeedback(c *gin.Context) {
	feedback, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": feedback})
}

func (h *FeedbackHandler) GetFeedbackStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}
