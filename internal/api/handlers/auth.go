package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/team33/casino-gateway/internal/auth"
)

// Login proxies credentials to the backend, falling back to demo accounts
// when it is unreachable
func Login(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "username and password required"})
			return
		}

		session, err := svc.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			status := http.StatusUnauthorized
			if !errors.Is(err, auth.ErrInvalidCredential) {
				status = http.StatusBadGateway
			}
			c.JSON(status, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": session})
	}
}

func Signup(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Username        string `json:"username"`
			Email           string `json:"email"`
			Phone           string `json:"phone"`
			Password        string `json:"password"`
			ConfirmPassword string `json:"confirmPassword"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid signup payload"})
			return
		}

		session, err := svc.Signup(c.Request.Context(), req.Username, req.Email, req.Phone, req.Password, req.ConfirmPassword)
		if err != nil {
			status := http.StatusBadRequest
			if !errors.Is(err, auth.ErrPasswordMismatch) && !errors.Is(err, auth.ErrInvalidCredential) {
				status = http.StatusBadGateway
			}
			c.JSON(status, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": session})
	}
}

func Logout(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc.Logout(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// Me resolves the current session; an invalid token reads as anonymous
func Me(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := svc.CurrentUser(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not authenticated"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
	}
}

// RegisterDemo creates a gateway-local demo account
func RegisterDemo(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "username and password required"})
			return
		}
		account, err := svc.RegisterDemoAccount(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{
			"accountId": account.AccountID,
			"username":  account.Username,
		}})
	}
}
