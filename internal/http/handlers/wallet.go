package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"matwana/internal/http/middleware"
	"matwana/internal/services"
	"matwana/internal/utils"

	"github.com/gin-gonic/gin"
)

type topUpRequest struct {
	Amount        json.Number `json:"amount"`
	PaymentMethod string      `json:"payment_method"`
}

// POST /api/wallet/topup
func TopUpWallet(c *gin.Context) {
	var req topUpRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	cents, err := utils.ParseAmount(req.Amount.String())
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	svc := newWalletService(c)
	newBalance, txnID, err := svc.TopUp(middleware.CurrentUserID(c), cents, req.PaymentMethod)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"new_balance":    newBalance,
		"transaction_id": txnID,
		"message":        "top-up successful",
	})
}

// GET /api/wallet
func WalletBalance(c *gin.Context) {
	svc := newWalletService(c)
	balance, err := svc.Balance(middleware.CurrentUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"balance":         balance,
		"balance_display": utils.FormatKES(balance),
	})
}

// GET /api/wallet/statement?limit=50
func WalletStatement(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	svc := newWalletService(c)
	payments, err := svc.Statement(middleware.CurrentUserID(c), limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// GET /api/wallet/receipt/:txn
func WalletReceiptPDF(c *gin.Context) {
	txnID := c.Param("txn")
	if txnID == "" {
		RespondError(c, http.StatusBadRequest, "invalid transaction id", nil)
		return
	}

	docs := services.DocsService{
		Booking: newBookingService(c),
		Wallet:  newWalletService(c),
	}
	data, filename, err := docs.GenerateReceipt(txnID, middleware.CurrentUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
