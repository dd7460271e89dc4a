package handler

import (
	"net/http"

	"github.com/adistaps/simola-backend/internal/dto"
	"github.com/adistaps/simola-backend/internal/service"
	"github.com/adistaps/simola-backend/pkg/response"
	"github.com/adistaps/simola-backend/pkg/validator"
	"github.com/gin-gonic/gin"
)

// AdminHandler melayani manajemen pengguna oleh admin.
type AdminHandler struct {
	users service.UserService
}

func NewAdminHandler(users service.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var input dto.CreateUserInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.users.CreateUser(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (h *AdminHandler) GetAllUsers(c *gin.Context) {
	users, err := h.users.GetAllUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": users})
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	resp, err := h.users.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var input dto.UpdateUserInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.users.UpdateUser(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
