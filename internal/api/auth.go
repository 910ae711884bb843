package api

import (
	"errors"
	"net/http"

	"hallway-backend/internal/service"
	"hallway-backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type authRoutes struct {
	as service.AuthServiceI
}

func NewAuthRoutes(handler *gin.RouterGroup, as service.AuthServiceI) {
	r := &authRoutes{as: as}
	handler.POST("/auth/login", r.Login)
	handler.POST("/admin/login", r.AdminLogin)
}

type LoginRequest struct {
	ReferenceCode string `json:"referenceCode"`
	Password      string `json:"password"`
}

func (r *authRoutes) Login(c *gin.Context) {
	log := logger.Logger()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, token, err := r.as.Login(c.Request.Context(), req.ReferenceCode, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Info("failed login attempt", zap.String("reference_code", req.ReferenceCode))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		log.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user.Public(),
	})
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *authRoutes) AdminLogin(c *gin.Context) {
	log := logger.Logger()

	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	token, err := r.as.AdminLogin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Info("failed admin login attempt", zap.String("username", req.Username))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		log.Error("admin login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
