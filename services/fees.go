package services

import (
	"errors"
	"strings"
	"time"

	"study-abroad-api/models"

	"gorm.io/gorm"
)

// NormalizeCountry produces the lookup key for fee rows. Matching stays
// case-insensitive without depending on database collation.
func NormalizeCountry(country string) string {
	return strings.ToLower(strings.TrimSpace(country))
}

// FeeService owns the per-country fee schedule. Reading never fails: a
// missing country falls back to the configured default fee.
type FeeService struct {
	defaultFee int64
}

func NewFeeService(defaultFee int64) *FeeService {
	return &FeeService{defaultFee: defaultFee}
}

// FeeFor returns the base application fee for a destination country.
func (s *FeeService) FeeFor(db *gorm.DB, country string) int64 {
	var fee models.FeeByCountry
	err := db.Where("country_key = ?", NormalizeCountry(country)).First(&fee).Error
	if err != nil {
		return s.defaultFee
	}
	return fee.Amount
}

// List returns the full fee schedule ordered by country.
func (s *FeeService) List(db *gorm.DB) ([]models.FeeByCountry, error) {
	var fees []models.FeeByCountry
	err := db.Order("country ASC").Find(&fees).Error
	return fees, err
}

// Upsert creates or updates the fee for a country and retroactively
// re-prices applications still in SUBMITTED state for that destination.
func (s *FeeService) Upsert(db *gorm.DB, country string, amount int64) (*models.FeeByCountry, error) {
	country = strings.TrimSpace(country)
	if country == "" {
		return nil, NewValidationError("country", "country is required")
	}
	if amount <= 0 {
		return nil, NewValidationError("amount", "amount must be positive")
	}

	key := NormalizeCountry(country)
	now := time.Now()
	var fee models.FeeByCountry

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("country_key = ?", key).First(&fee).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			fee = models.FeeByCountry{
				CountryKey: key,
				Country:    country,
				Amount:     amount,
				CreateAt:   &now,
				UpdateAt:   &now,
			}
			if err := tx.Create(&fee).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			fee.Country = country
			fee.Amount = amount
			fee.UpdateAt = &now
			if err := tx.Save(&fee).Error; err != nil {
				return err
			}
		}

		// Repair applications created under the old schedule that have
		// not progressed past submission.
		return tx.Model(&models.Application{}).
			Where("LOWER(TRIM(country)) = ? AND status = ?", key, models.StatusSubmitted).
			Update("application_fee", amount).Error
	})
	if err != nil {
		if IsValidation(err) {
			return nil, err
		}
		return nil, NewStorageError(err)
	}
	return &fee, nil
}

// Delete removes a fee row. Applications keep the fee they were priced at.
func (s *FeeService) Delete(db *gorm.DB, feeID int) error {
	result := db.Delete(&models.FeeByCountry{}, feeID)
	if result.Error != nil {
		return NewStorageError(result.Error)
	}
	if result.RowsAffected == 0 {
		return NewNotFoundError("fee")
	}
	return nil
}
