package handler

import (
	"fmt"
	"log"
	"net/http"

	"github.com/adistaps/simola-backend/internal/dto"
	"github.com/adistaps/simola-backend/internal/service"
	"github.com/adistaps/simola-backend/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type AuthHandler struct {
	auth        service.AuthService
	users       service.UserService
	redisClient *redis.Client
}

func NewAuthHandler(auth service.AuthService, users service.UserService, redisClient *redis.Client) *AuthHandler {
	return &AuthHandler{auth: auth, users: users, redisClient: redisClient}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	identity := fmt.Sprintf("%s:%s", input.Email, c.ClientIP())
	allowed, err := service.CheckAndCountLoginAttempt(c.Request.Context(), h.redisClient, identity)
	if err == nil && !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "terlalu banyak percobaan login, coba lagi nanti"})
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	if err := service.ClearLoginAttempts(c.Request.Context(), h.redisClient, identity); err != nil {
		log.Printf("failed to clear login attempts: %v", err)
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	resp, err := h.users.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
