package api

import (
	"errors"
	"net/http"

	"hallway-backend/internal/middleware"
	"hallway-backend/internal/service"
	"hallway-backend/pkg/auth"
	"hallway-backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type adminRoutes struct {
	as service.AdminServiceI
}

func NewAdminRoutes(handler *gin.RouterGroup, as service.AdminServiceI, a *auth.SessionAuth) {
	r := &adminRoutes{as: as}
	h := handler.Group("/admin")
	h.Use(a.SessionMiddleware(), middleware.AdminOnly())
	{
		h.GET("/users", r.ListUsers)
		h.POST("/users", r.CreateUser)
		h.PUT("/users/:id", r.UpdateUser)
		h.DELETE("/users/:id", r.DeleteUser)
		h.GET("/waitlist", r.ListWaitlist)
		h.PATCH("/waitlist/:id/status", r.UpdateWaitlistStatus)
		h.DELETE("/waitlist/:id", r.DeleteWaitlistEntry)
	}
}

func (r *adminRoutes) ListUsers(c *gin.Context) {
	log := logger.Logger()

	users, err := r.as.ListUsers(c.Request.Context(), c.Query("search"))
	if err != nil {
		log.Error("failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}

	out := make([]gin.H, len(users))
	for i, user := range users {
		out[i] = profileResponse(user)
	}

	c.JSON(http.StatusOK, out)
}

type AdminUserRequest struct {
	FullName         string  `json:"full_name"`
	Email            string  `json:"email"`
	Password         string  `json:"password"`
	ReferenceCode    string  `json:"reference_code"`
	Username         *string `json:"username"`
	DateOfBirth      *string `json:"date_of_birth"`
	PresentAddress   *string `json:"present_address"`
	PermanentAddress *string `json:"permanent_address"`
	City             *string `json:"city"`
	PostalCode       *string `json:"postal_code"`
	Country          *string `json:"country"`
	Level            string  `json:"level"`
	Verified         bool    `json:"verified"`
}

func (r *adminRoutes) CreateUser(c *gin.Context) {
	log := logger.Logger()

	var req AdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := r.as.CreateUser(c.Request.Context(), service.NewUserInput{
		FullName:         req.FullName,
		Email:            req.Email,
		Password:         req.Password,
		ReferenceCode:    req.ReferenceCode,
		Username:         req.Username,
		DateOfBirth:      req.DateOfBirth,
		PresentAddress:   req.PresentAddress,
		PermanentAddress: req.PermanentAddress,
		City:             req.City,
		PostalCode:       req.PostalCode,
		Country:          req.Country,
		Level:            req.Level,
		Verified:         req.Verified,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "user with this email or reference code already exists"})
		default:
			log.Error("failed to create user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		}
		return
	}

	c.JSON(http.StatusCreated, profileResponse(user))
}

func (r *adminRoutes) UpdateUser(c *gin.Context) {
	log := logger.Logger()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Error("failed to parse user id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req AdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := r.as.UpdateUser(c.Request.Context(), id, service.UserUpdateInput{
		FullName:         req.FullName,
		Email:            req.Email,
		ReferenceCode:    req.ReferenceCode,
		Password:         req.Password,
		Username:         req.Username,
		DateOfBirth:      req.DateOfBirth,
		PresentAddress:   req.PresentAddress,
		PermanentAddress: req.PermanentAddress,
		City:             req.City,
		PostalCode:       req.PostalCode,
		Country:          req.Country,
		Level:            req.Level,
		Verified:         req.Verified,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "user with this email or reference code already exists"})
		default:
			log.Error("failed to update user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		}
		return
	}

	c.JSON(http.StatusOK, profileResponse(user))
}

func (r *adminRoutes) DeleteUser(c *gin.Context) {
	log := logger.Logger()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Error("failed to parse user id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := r.as.DeleteUser(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		log.Error("failed to delete user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (r *adminRoutes) ListWaitlist(c *gin.Context) {
	log := logger.Logger()

	entries, err := r.as.ListWaitlist(c.Request.Context())
	if err != nil {
		log.Error("failed to list waitlist", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list waitlist"})
		return
	}

	out := make([]WaitlistEntryResponse, len(entries))
	for i, entry := range entries {
		out[i] = toWaitlistEntryResponse(entry)
	}

	c.JSON(http.StatusOK, out)
}

type UpdateWaitlistStatusRequest struct {
	Status string `json:"status"`
}

func (r *adminRoutes) UpdateWaitlistStatus(c *gin.Context) {
	log := logger.Logger()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Error("failed to parse waitlist entry id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid waitlist entry id"})
		return
	}

	var req UpdateWaitlistStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := r.as.UpdateWaitlistStatus(c.Request.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be pending or verified"})
		case errors.Is(err, service.ErrEntryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "waitlist entry not found"})
		default:
			log.Error("failed to update waitlist status", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update waitlist status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

func (r *adminRoutes) DeleteWaitlistEntry(c *gin.Context) {
	log := logger.Logger()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Error("failed to parse waitlist entry id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid waitlist entry id"})
		return
	}

	if err := r.as.DeleteWaitlistEntry(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "waitlist entry not found"})
			return
		}
		log.Error("failed to delete waitlist entry", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete waitlist entry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
