package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// LoginInput request body for admin login
type LoginInput struct {
	Passcode string `json:"passcode"`
}

// AdminLogin compares the passcode with the configured secret and returns a
// signed admin token on match.
func (h *Handler) AdminLogin(c *gin.Context) {
	var input LoginInput
	if !bindJSON(c, &input, "message", "Invalid request body") {
		return
	}

	if !h.passcode.Check(input.Passcode) {
		h.logger.Warn().Str("client_ip", c.ClientIP()).Msg("admin login rejected")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access Denied"})
		return
	}

	token, err := h.tokens.IssueAdmin()
	if err != nil {
		h.logger.Error().Err(err).Msg("admin token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Access Granted", "token": token})
}
