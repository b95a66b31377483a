package allocation

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fundadmin/models"
)

// activeCallStatuses are the call states that count toward called capital.
// Draft calls have not been issued and are excluded everywhere.
var activeCallStatuses = []string{
	models.CallStatusSent,
	models.CallStatusPartiallyPaid,
	models.CallStatusPaid,
}

func (r *Repository) cumulativeQuery(structureID uint, excludeCallID *uint) *gorm.DB {
	query := r.db.Model(&models.Allocation{}).
		Joins("JOIN capital_calls ON capital_calls.id = allocations.call_id").
		Where("capital_calls.structure_id = ?", structureID).
		Where("capital_calls.status IN ?", activeCallStatuses)
	if excludeCallID != nil {
		query = query.Where("allocations.call_id <> ?", *excludeCallID)
	}
	return query
}

// CumulativeCalledByInvestor sums the principal called from one investor
// across all non-draft calls of a structure, optionally excluding one call
// (the call currently being rebuilt or edited).
func (r *Repository) CumulativeCalledByInvestor(structureID, investorID uint, excludeCallID *uint) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.cumulativeQuery(structureID, excludeCallID).
		Where("allocations.investor_id = ?", investorID).
		Select("COALESCE(SUM(allocations.principal_amount), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// CumulativeCalledByStructure returns called principal per investor for a
// whole structure in one query. Investors with no qualifying allocations
// are absent from the map.
func (r *Repository) CumulativeCalledByStructure(structureID uint, excludeCallID *uint) (map[uint]decimal.Decimal, error) {
	var rows []struct {
		InvestorID uint
		Total      decimal.Decimal
	}
	err := r.cumulativeQuery(structureID, excludeCallID).
		Select("allocations.investor_id AS investor_id, COALESCE(SUM(allocations.principal_amount), 0) AS total").
		Group("allocations.investor_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uint]decimal.Decimal, len(rows))
	for _, row := range rows {
		out[row.InvestorID] = row.Total
	}
	return out, nil
}
