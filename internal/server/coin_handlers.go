package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meddesk-dev/meddesk/internal/models"
)

// GrantCoinsRequest represents a coin grant or revocation.
// Amount is signed: positive grants, negative revokes.
type GrantCoinsRequest struct {
	Amount int64  `json:"amount" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

// CoinLedgerResponse bundles a user's ledger with its computed balance
type CoinLedgerResponse struct {
	Balance      int64                    `json:"balance"`
	Transactions []models.CoinTransaction `json:"transactions"`
}

// @Summary List a user's coin ledger
// @Tags coins
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} CoinLedgerResponse
// @Router /api/users/{id}/coins [get]
func (s *Server) listCoinTransactions(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := models.FindByID(s.db, userID, &user); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var transactions []models.CoinTransaction
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&transactions).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list coin transactions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	balance, err := models.CoinBalance(s.db, userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to compute coin balance")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, CoinLedgerResponse{
		Balance:      balance,
		Transactions: transactions,
	})
}

// @Summary Grant or revoke coins
// @Description Appends a signed entry to the user's coin ledger. A revocation
// may not push the balance below zero.
// @Tags coins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body GrantCoinsRequest true "Grant"
// @Success 201 {object} models.CoinTransaction
// @Router /api/users/{id}/coins [post]
func (s *Server) grantCoins(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := models.FindByID(s.db, userID, &user); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req GrantCoinsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Amount < 0 {
		balance, err := models.CoinBalance(s.db, userID)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to compute coin balance")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if balance+req.Amount < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Revocation exceeds balance"})
			return
		}
	}

	sessionData, _ := GetSessionData(c)

	transaction := &models.CoinTransaction{
		UserID:    userID,
		Amount:    req.Amount,
		Reason:    req.Reason,
		GrantedBy: sessionData.UserID,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create coin transaction")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record transaction"})
		return
	}

	s.logger.Info().
		Str("user_id", userID).
		Int64("amount", req.Amount).
		Str("granted_by", sessionData.UserID).
		Msg("Coin transaction recorded")

	c.JSON(http.StatusCreated, transaction)
}
