package allocation

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fundadmin/models"
)

// Builder assembles and persists the full allocation set for a capital
// call: one Allocation per investor, computed under the call's fee mode.
type Builder struct {
	db   *gorm.DB
	repo *Repository
}

func NewBuilder(db *gorm.DB) *Builder {
	return &Builder{db: db, repo: NewRepository(db)}
}

// Build loads the call, aggregates the roster, runs the fee calculator and
// inserts the batch in one transaction. It refuses to run for a call that
// already has allocations and for a structure with no investor records.
//
// For dual-rate calls the fee bases come from the cumulative tracker:
// prior called capital as the NIC base, commitment minus prior called as
// the unfunded base. The call being built is excluded from the sums.
func (b *Builder) Build(callID uint) ([]models.Allocation, error) {
	call, err := b.repo.GetCall(callID)
	if err != nil {
		return nil, err
	}
	structure, err := b.repo.GetStructure(call.StructureID)
	if err != nil {
		return nil, err
	}

	existing, err := b.repo.CountAllocations(call.ID)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrDuplicateAllocation
	}

	rows, err := b.repo.ListInvestorRecords(call.StructureID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyRoster
	}

	roster := AggregateRoster(rows)
	if err := ValidateFeeConfig(call, roster); err != nil {
		return nil, err
	}

	results, err := b.calculate(call, structure, roster)
	if err != nil {
		return nil, err
	}

	allocations := make([]models.Allocation, 0, len(results))
	for _, res := range results {
		allocations = append(allocations, models.Allocation{
			CallID:                call.ID,
			InvestorID:            res.InvestorID,
			PrincipalAmount:       res.Principal,
			ManagementFeeGross:    res.FeeGross,
			NicFeeAmount:          res.NicFee,
			UnfundedFeeAmount:     res.UnfundedFee,
			FeeOffsetAmount:       res.FeeOffset,
			DeemedGpContribution:  res.DeemedGpContribution,
			ManagementFeeDiscount: res.FeeDiscountAmount,
			ManagementFeeNet:      res.FeeNet,
			VatAmount:             res.Vat,
			TotalDue:              res.TotalDue,
			RemainingAmount:       res.TotalDue,
			Status:                models.AllocationStatusPending,
			DueDate:               call.DueDate,
		})
	}

	err = b.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&allocations).Error; err != nil {
			return err
		}
		return tx.Model(&models.CapitalCall{}).
			Where("id = ?", call.ID).
			Update("total_unpaid", call.TotalCallAmount).Error
	})
	if err != nil {
		// a concurrent build loses the race on the (call_id, investor_id) index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateAllocation
		}
		return nil, err
	}

	return allocations, nil
}

func (b *Builder) calculate(call *models.CapitalCall, structure *models.Structure, roster []InvestorProfile) ([]FeeResult, error) {
	if SelectFeeMode(call) == ModeLegacySingleRate {
		results := make([]FeeResult, 0, len(roster))
		for _, p := range roster {
			results = append(results, CalculateLegacy(p, call))
		}
		return results, nil
	}

	called, err := b.repo.CumulativeCalledByStructure(call.StructureID, &call.ID)
	if err != nil {
		return nil, err
	}

	// pass one: gross fees per investor
	results := make([]FeeResult, 0, len(roster))
	for _, p := range roster {
		nicBase := called[p.InvestorID]
		unfundedBase := p.Commitment.Sub(nicBase)
		if unfundedBase.IsNegative() {
			unfundedBase = decimal.Zero
		}
		results = append(results, CalculateDualGross(p, call, nicBase, unfundedBase))
	}

	// pass two: the GP offset needs the fund-wide gross total
	totalGross := decimal.Zero
	for _, res := range results {
		totalGross = totalGross.Add(res.FeeGross)
	}
	for i, p := range roster {
		results[i] = ApplyFeeOffset(results[i], p, call, structure.GpPercentage, totalGross)
	}

	return results, nil
}
