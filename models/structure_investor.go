package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StructureInvestor is one raw commitment record of an investor in a
// structure. An investor may hold several records in the same structure
// (follow-on commitments, transfers); the allocation engine aggregates
// them before computing anything.
type StructureInvestor struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	StructureID uint `gorm:"not null;index" json:"structure_id"`
	InvestorID  uint `gorm:"not null;index" json:"investor_id"`

	OwnershipPercent decimal.Decimal `gorm:"type:decimal(8,4);not null" json:"ownership_percent"`
	CommitmentAmount decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"commitment_amount"`
	// FeeDiscount is in percentage points, subtracted from the nominal
	// fee rate (dual-rate) or applied to the gross fee (legacy).
	FeeDiscount decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0" json:"fee_discount"`
	VatExempt   bool            `gorm:"not null;default:false" json:"vat_exempt"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (StructureInvestor) TableName() string {
	return "structure_investors"
}
