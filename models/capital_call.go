package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CallStatusDraft         = "Draft"
	CallStatusSent          = "Sent"
	CallStatusPartiallyPaid = "Partially Paid"
	CallStatusPaid          = "Paid"
)

const (
	// FeeBaseNicPlusUnfunded selects the dual-rate fee mode: the management
	// fee is charged partly on net invested capital and partly on the
	// unfunded commitment, each at its own rate.
	FeeBaseNicPlusUnfunded = "nic_plus_unfunded"

	FeePeriodAnnual     = "annual"
	FeePeriodQuarterly  = "quarterly"
	FeePeriodSemiAnnual = "semi-annual"
)

type CapitalCall struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	StructureID uint   `gorm:"not null;index" json:"structure_id"`
	CallNumber  int    `gorm:"not null" json:"call_number"`
	Reference   string `gorm:"type:varchar(64);not null;uniqueIndex" json:"reference"`

	CallDate     time.Time  `json:"call_date"`
	DueDate      time.Time  `json:"due_date"`
	NoticeDate   *time.Time `json:"notice_date,omitempty"`
	DeadlineDate *time.Time `json:"deadline_date,omitempty"`

	TotalCallAmount decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"total_call_amount"`
	TotalPaid       decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"total_paid"`
	TotalUnpaid     decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"total_unpaid"`

	Status         string  `gorm:"type:varchar(20);not null;default:'Draft';index" json:"status"`
	ApprovalStatus string  `gorm:"type:varchar(20);not null;default:'Pending'" json:"approval_status"`
	Purpose        *string `gorm:"type:varchar(255)" json:"purpose,omitempty"`

	// Fee configuration. ManagementFeeRate drives the legacy single-rate
	// mode; the NIC/unfunded pair drives the dual-rate mode and only
	// applies when ManagementFeeBase is "nic_plus_unfunded".
	ManagementFeeBase *string          `gorm:"type:varchar(32)" json:"management_fee_base,omitempty"`
	ManagementFeeRate *decimal.Decimal `gorm:"type:decimal(8,4)" json:"management_fee_rate,omitempty"`
	FeeRateOnNic      *decimal.Decimal `gorm:"type:decimal(8,4)" json:"fee_rate_on_nic,omitempty"`
	FeeRateOnUnfunded *decimal.Decimal `gorm:"type:decimal(8,4)" json:"fee_rate_on_unfunded,omitempty"`
	FeePeriod         *string          `gorm:"type:varchar(16)" json:"fee_period,omitempty"`
	VatApplicable     bool             `gorm:"not null;default:false" json:"vat_applicable"`
	VatRate           *decimal.Decimal `gorm:"type:decimal(8,4)" json:"vat_rate,omitempty"`

	NoticeDocumentKey *string `gorm:"type:varchar(255)" json:"notice_document_key,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (CapitalCall) TableName() string {
	return "capital_calls"
}
