package models

import (
	"time"
)

// FeeByCountry maps a destination country to its base application fee in
// the accounting currency (XOF). CountryKey holds the lowercased, trimmed
// form so lookups stay case-insensitive without relying on collation.
type FeeByCountry struct {
	FeeID      int        `gorm:"primaryKey;column:fee_id" json:"fee_id"`
	CountryKey string     `gorm:"column:country_key;unique" json:"-"`
	Country    string     `gorm:"column:country" json:"country"`
	Amount     int64      `gorm:"column:amount" json:"amount"`
	CreateAt   *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt   *time.Time `gorm:"column:update_at" json:"update_at"`
}

// TableName overrides
func (FeeByCountry) TableName() string {
	return "fees_by_country"
}
