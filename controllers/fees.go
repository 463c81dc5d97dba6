package controllers

import (
	"net/http"
	"strconv"

	"study-abroad-api/config"

	"github.com/gin-gonic/gin"
)

// GetFees returns the fee schedule. Readable by any authenticated user so
// students can see the tariffs.
func GetFees(c *gin.Context) {
	fees, err := Fees.List(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fees"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"fees": fees})
}

// UpsertFee creates or updates the fee for a country (admin)
func UpsertFee(c *gin.Context) {
	type FeeRequest struct {
		Country string `json:"country" binding:"required"`
		Amount  int64  `json:"amount" binding:"required"`
	}

	var req FeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fee, err := Fees.Upsert(config.DB, req.Country, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Fee saved",
		"fee":     fee,
	})
}

// DeleteFee removes a fee row (admin)
func DeleteFee(c *gin.Context) {
	feeID, err := strconv.Atoi(c.Param("fee_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fee id"})
		return
	}

	if err := Fees.Delete(config.DB, feeID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fee deleted"})
}
