package main

import (
	"net/http"

	"github.com/avanibrahim/dashnusa/models"
	"github.com/avanibrahim/dashnusa/pkg/aggregate"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type loanRequest struct {
	Kind   string          `json:"kind" binding:"required"`
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note"`
	Date   string          `json:"date" binding:"required"` // YYYY-MM-DD
}

func validateLoanRequest(c *gin.Context, userID uint, req *loanRequest) (models.Loan, bool) {
	if !models.ValidLoanKind(req.Kind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be hutang or piutang"})
		return models.Loan{}, false
	}
	if !req.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return models.Loan{}, false
	}
	date, ok := parseDate(req.Date)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return models.Loan{}, false
	}
	return models.Loan{
		UserID: userID,
		Kind:   req.Kind,
		Amount: req.Amount,
		Note:   req.Note,
		Date:   date,
	}, true
}

func createLoanHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req loanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	loan, ok := validateLoanRequest(c, user.ID, &req)
	if !ok {
		return
	}
	if err := db.Create(&loan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": loan.ID})
}

func listLoansHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	q := db.Model(&models.Loan{})
	if !isAdmin(c) {
		q = q.Where("user_id = ?", user.ID)
	}
	if v := c.Query("kind"); v != "" {
		if !models.ValidLoanKind(v) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be hutang or piutang"})
			return
		}
		q = q.Where("kind = ?", v)
	}
	var loans []models.Loan
	if err := q.Order("date desc, id desc").Find(&loans).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, loans)
}

func findOwnedLoan(c *gin.Context, userID uint) (*models.Loan, bool) {
	var loan models.Loan
	if err := db.First(&loan, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return nil, false
	}
	if !isAdmin(c) && loan.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return nil, false
	}
	return &loan, true
}

func updateLoanHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	loan, ok := findOwnedLoan(c, user.ID)
	if !ok {
		return
	}
	var req loanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, ok := validateLoanRequest(c, loan.UserID, &req)
	if !ok {
		return
	}
	loan.Kind = updated.Kind
	loan.Amount = updated.Amount
	loan.Note = updated.Note
	loan.Date = updated.Date
	if err := db.Save(loan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": loan.ID})
}

func deleteLoanHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	loan, ok := findOwnedLoan(c, user.ID)
	if !ok {
		return
	}
	if err := db.Delete(loan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "loan deleted"})
}

// loanSummaryHandler returns total hutang, total piutang and the net
// position for the loans card.
func loanSummaryHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	q := db.Model(&models.Loan{})
	if !isAdmin(c) {
		q = q.Where("user_id = ?", user.ID)
	}
	var loans []models.Loan
	if err := q.Find(&loans).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	rows := make([]aggregate.Loan, 0, len(loans))
	for _, l := range loans {
		rows = append(rows, aggregate.Loan{Kind: aggregate.LoanKind(l.Kind), Amount: l.Amount, Date: l.Date})
	}
	c.JSON(http.StatusOK, aggregate.ComputeLoanTotals(rows))
}
