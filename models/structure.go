package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Structure is a pooled investment vehicle that capital calls are issued
// against. GpPercentage is the General Partner's ownership share, used to
// compute the management-fee offset in dual-rate calls.
type Structure struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"size:100;not null" json:"name"`
	Currency     string          `gorm:"size:8;not null;default:'USD'" json:"currency"`
	GpPercentage decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0" json:"gp_percentage"`
	Status       string          `gorm:"type:varchar(20);not null;default:'Active'" json:"status"`
	CreatedAt    time.Time       `json:"-"`
	UpdatedAt    time.Time       `json:"-"`
}

func (Structure) TableName() string {
	return "structures"
}
