package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/team33/casino-gateway/internal/middleware"
	"github.com/team33/casino-gateway/internal/models"
	"github.com/team33/casino-gateway/internal/wallet"
)

// accountParam resolves the target account: explicit query or body value
// first, then the session-bound account from a gateway-minted token.
func accountParam(c *gin.Context, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return middleware.AccountID(c)
}

// GetBalance returns the current balance with its source tag
func GetBalance(svc *wallet.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := svc.GetBalance(c.Request.Context(), accountParam(c, c.Query("accountId")))
		if err != nil {
			walletError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
	}
}

type fundsRequest struct {
	AccountID   string  `json:"accountId"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	BankAccount string  `json:"bankAccount"`
	BankName    string  `json:"bankName"`
}

func Deposit(svc *wallet.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req fundsRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}
		result, err := svc.Deposit(c.Request.Context(), accountParam(c, req.AccountID), req.Amount, req.Description)
		if err != nil {
			walletError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
	}
}

func Withdraw(svc *wallet.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req fundsRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}
		result, err := svc.Withdraw(c.Request.Context(), accountParam(c, req.AccountID), wallet.WithdrawRequest{
			Amount:      req.Amount,
			Description: req.Description,
			BankAccount: req.BankAccount,
			BankName:    req.BankName,
		})
		if err != nil {
			walletError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
	}
}

// ListTransactions merges remote and local history
func ListTransactions(svc *wallet.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := wallet.HistoryFilter{
			Type:     models.TransactionType(c.Query("type")),
			Status:   c.Query("status"),
			Page:     intQuery(c, "page", 0),
			PageSize: intQuery(c, "pageSize", 10),
		}
		page, err := svc.Transactions(c.Request.Context(), accountParam(c, c.Query("accountId")), filter)
		if err != nil {
			walletError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": page})
	}
}

func ListPendingTransactions(svc *wallet.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		pending, err := svc.PendingTransactions(c.Request.Context(), accountParam(c, c.Query("accountId")))
		if err != nil {
			walletError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": pending})
	}
}

func CheckInStatus(svc *wallet.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, err := svc.GetCheckInStatus(c.Request.Context(), accountParam(c, c.Query("accountId")))
		if err != nil {
			walletError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": status})
	}
}

func CheckIn(svc *wallet.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			AccountID string `json:"accountId"`
		}
		_ = c.BindJSON(&req)
		result, err := svc.CheckIn(c.Request.Context(), accountParam(c, req.AccountID))
		if err != nil {
			walletError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
	}
}

func SpinStatus(svc *wallet.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		canSpin, err := svc.CanSpinToday(c.Request.Context(), accountParam(c, c.Query("accountId")))
		if err != nil {
			walletError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"canSpin": canSpin}})
	}
}

func SpinWheel(svc *wallet.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			AccountID string  `json:"accountId"`
			Prize     float64 `json:"prize"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}
		result, err := svc.SpinWheel(c.Request.Context(), accountParam(c, req.AccountID), req.Prize)
		if err != nil {
			walletError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
	}
}

// walletError maps service errors to HTTP statuses. Insufficient funds
// carries the current balance back to the caller.
func walletError(c *gin.Context, err error) {
	var insufficient *wallet.InsufficientFundsError
	switch {
	case errors.As(err, &insufficient):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
			"data":    gin.H{"balance": insufficient.Balance},
		})
	case errors.Is(err, wallet.ErrNoAccount):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, wallet.ErrAlreadyCheckedIn), errors.Is(err, wallet.ErrAlreadySpun):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	}
}
