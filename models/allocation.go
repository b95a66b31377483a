package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	AllocationStatusPending       = "Pending"
	AllocationStatusPartiallyPaid = "Partially Paid"
	AllocationStatusPaid          = "Paid"
)

// Allocation is the computed obligation of one investor for one capital
// call. The (call_id, investor_id) pair is unique: building allocations
// twice for the same call must fail on the index, never double-bill.
type Allocation struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CallID     uint `gorm:"not null;uniqueIndex:idx_call_investor" json:"call_id"`
	InvestorID uint `gorm:"not null;uniqueIndex:idx_call_investor;index" json:"investor_id"`

	PrincipalAmount    decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"principal_amount"`
	ManagementFeeGross decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"management_fee_gross"`

	// Dual-rate components. Zero in legacy single-rate mode.
	NicFeeAmount         decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"nic_fee_amount"`
	UnfundedFeeAmount    decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"unfunded_fee_amount"`
	FeeOffsetAmount      decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"fee_offset_amount"`
	DeemedGpContribution decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"deemed_gp_contribution"`

	ManagementFeeDiscount decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"management_fee_discount"`
	ManagementFeeNet      decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"management_fee_net"`
	VatAmount             decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"vat_amount"`
	TotalDue              decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"total_due"`

	PaidAmount      decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"paid_amount"`
	CapitalPaid     decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"capital_paid"`
	FeesPaid        decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"fees_paid"`
	VatPaid         decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"vat_paid"`
	RemainingAmount decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"remaining_amount"`

	Status  string    `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	DueDate time.Time `json:"due_date"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Allocation) TableName() string {
	return "allocations"
}
