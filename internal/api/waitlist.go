package api

import (
	"errors"
	"net/http"
	"time"

	"hallway-backend/internal/middleware"
	"hallway-backend/internal/model"
	"hallway-backend/internal/service"
	"hallway-backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type waitlistRoutes struct {
	ws service.WaitlistServiceI
}

func NewWaitlistRoutes(handler *gin.RouterGroup, ws service.WaitlistServiceI, apiKey string) {
	r := &waitlistRoutes{ws: ws}
	h := handler.Group("/waitlist")
	h.Use(middleware.APIKeyRequired(apiKey))
	{
		h.POST("", r.Signup)
	}
}

type SignupRequest struct {
	Email        string `json:"email"`
	ReferralCode string `json:"referral_code"`
}

type WaitlistEntryResponse struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	ReferralCode *string   `json:"referral_code,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func toWaitlistEntryResponse(entry *model.WaitlistEntry) WaitlistEntryResponse {
	return WaitlistEntryResponse{
		ID:           entry.ID,
		Email:        entry.Email,
		ReferralCode: entry.ReferralCode,
		Status:       entry.Status,
		CreatedAt:    entry.CreatedAt,
	}
}

func (r *waitlistRoutes) Signup(c *gin.Context) {
	log := logger.Logger()

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	entry, err := r.ws.Signup(c.Request.Context(), req.Email, req.ReferralCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailRequired):
			log.Info("missing email in signup request")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		case errors.Is(err, service.ErrInvalidEmail):
			log.Info("invalid email format", zap.String("email", req.Email))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		case errors.Is(err, service.ErrAlreadyRegistered):
			log.Info("duplicate waitlist email", zap.String("email", req.Email))
			c.JSON(http.StatusConflict, gin.H{"error": "Email already exists in waitlist"})
		default:
			log.Error("failed to add to waitlist", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to waitlist"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    toWaitlistEntryResponse(entry),
	})
}
