package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tharoon321/event-attendance/models"
	"github.com/Tharoon321/event-attendance/repositories"
)

// AddUserInput is the body of POST /add-user
type AddUserInput struct {
	Email string `json:"email" binding:"required"`
	Name  string `json:"name"`
}

// AttendInput is the body of POST /api/attend. UserID is matched against the
// user's email.
type AttendInput struct {
	UserID  string `json:"userId" binding:"required"`
	EventID string `json:"eventId" binding:"required"`
}

// AddUser registers an email once; repeat calls report the existing user.
func (h *Handler) AddUser(c *gin.Context) {
	var input AddUserInput
	if !bindJSON(c, &input, "message", "Missing fields") {
		return
	}

	ctx, cancel := h.dbContext(c)
	defer cancel()

	_, err := h.users.FindByEmail(ctx, input.Email)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"message": "User already exists"})
		return
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		h.logger.Error().Err(err).Msg("user lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	user := models.User{Email: input.Email, UserName: input.Name, Events: []string{}}
	if err := h.users.Create(ctx, &user); err != nil {
		// lost a race with a concurrent registration of the same email
		if errors.Is(err, repositories.ErrDuplicate) {
			c.JSON(http.StatusOK, gin.H{"message": "User already exists"})
			return
		}
		h.logger.Error().Err(err).Msg("creating user failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User added successfully"})
}

// MarkAttendance adds eventId to the user's attendance list once.
func (h *Handler) MarkAttendance(c *gin.Context) {
	var input AttendInput
	if !bindJSON(c, &input, "message", "Missing userId or eventId") {
		return
	}

	ctx, cancel := h.dbContext(c)
	defer cancel()

	user, err := h.users.AddEvent(ctx, input.UserID, input.EventID)
	if errors.Is(err, repositories.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("marking attendance failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Attendance marked successfully", "events": user.Events})
}

// GetUser fetches one user by the email query parameter.
func (h *Handler) GetUser(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing email"})
		return
	}

	ctx, cancel := h.dbContext(c)
	defer cancel()

	user, err := h.users.FindByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("user lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListUsers returns every user, unfiltered.
func (h *Handler) ListUsers(c *gin.Context) {
	ctx, cancel := h.dbContext(c)
	defer cancel()

	users, err := h.users.List(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("listing users failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, users)
}
