package api

import (
	"errors"
	"net/http"

	"hallway-backend/internal/model"
	"hallway-backend/internal/service"
	"hallway-backend/pkg/auth"
	"hallway-backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type userRoutes struct {
	us service.UserServiceI
}

func NewUserRoutes(handler *gin.RouterGroup, us service.UserServiceI, a *auth.SessionAuth) {
	r := &userRoutes{us: us}
	h := handler.Group("")
	h.Use(a.SessionMiddleware())
	{
		h.GET("/me", r.GetProfile)
		h.PATCH("/me", r.UpdateProfile)
		h.GET("/me/referrals", r.GetReferrals)
		h.GET("/leaderboard", r.GetLeaderboard)
	}
}

func profileResponse(user *model.User) gin.H {
	return gin.H{
		"id":                 user.ID,
		"reference_code":     user.ReferenceCode,
		"email":              user.Email,
		"full_name":          user.FullName,
		"username":           user.Username,
		"date_of_birth":      user.DateOfBirth,
		"present_address":    user.PresentAddress,
		"permanent_address":  user.PermanentAddress,
		"city":               user.City,
		"postal_code":        user.PostalCode,
		"country":            user.Country,
		"level":              user.Level,
		"verified":           user.Verified,
		"accumulated_points": user.AccumulatedPoints,
		"deducted_points":    user.DeductedPoints,
		"total_points":       user.TotalPoints,
		"pending_points":     user.PendingPoints,
		"created_at":         user.CreatedAt,
	}
}

func (r *userRoutes) GetProfile(c *gin.Context) {
	log := logger.Logger()

	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		log.Error("session claims not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	user, err := r.us.GetProfile(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		log.Error("failed to get profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, profileResponse(user))
}

type UpdateProfileRequest struct {
	FullName         *string `json:"full_name"`
	Username         *string `json:"username"`
	DateOfBirth      *string `json:"date_of_birth"`
	PresentAddress   *string `json:"present_address"`
	PermanentAddress *string `json:"permanent_address"`
	City             *string `json:"city"`
	PostalCode       *string `json:"postal_code"`
	Country          *string `json:"country"`
	Password         *string `json:"password"`
}

func (r *userRoutes) UpdateProfile(c *gin.Context) {
	log := logger.Logger()

	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		log.Error("session claims not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := r.us.UpdateProfile(c.Request.Context(), claims.UserID, service.ProfileUpdate{
		FullName:         req.FullName,
		Username:         req.Username,
		DateOfBirth:      req.DateOfBirth,
		PresentAddress:   req.PresentAddress,
		PermanentAddress: req.PermanentAddress,
		City:             req.City,
		PostalCode:       req.PostalCode,
		Country:          req.Country,
		Password:         req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Error("failed to update profile", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		}
		return
	}

	c.JSON(http.StatusOK, profileResponse(user))
}

func (r *userRoutes) GetReferrals(c *gin.Context) {
	log := logger.Logger()

	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		log.Error("session claims not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	entries, err := r.us.GetReferrals(c.Request.Context(), claims.ReferenceCode)
	if err != nil {
		log.Error("failed to get referrals", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get referrals"})
		return
	}

	out := make([]WaitlistEntryResponse, len(entries))
	for i, entry := range entries {
		out[i] = toWaitlistEntryResponse(entry)
	}

	c.JSON(http.StatusOK, out)
}

func (r *userRoutes) GetLeaderboard(c *gin.Context) {
	log := logger.Logger()

	entries, err := r.us.GetLeaderboard(c.Request.Context())
	if err != nil {
		log.Error("failed to get leaderboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get leaderboard"})
		return
	}

	var response []gin.H
	for _, entry := range entries {
		response = append(response, gin.H{
			"full_name":    entry.FullName,
			"total_points": entry.TotalPoints,
			"verified":     entry.Verified,
			"level":        entry.Level,
		})
	}

	c.JSON(http.StatusOK, response)
}
