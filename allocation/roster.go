package allocation

import (
	"github.com/shopspring/decimal"

	"fundadmin/models"
)

// InvestorProfile is one investor's aggregated standing in a structure:
// the sum of all their commitment records plus their fee terms.
type InvestorProfile struct {
	InvestorID       uint
	OwnershipPercent decimal.Decimal
	Commitment       decimal.Decimal
	FeeDiscount      decimal.Decimal // percentage points
	VatExempt        bool
}

// AggregateRoster collapses raw structure-investor records into one profile
// per investor. Ownership and commitment are additive; fee discount and
// VAT exemption are taken from the last record, so callers must pass rows
// in ascending id order to keep the result stable.
func AggregateRoster(rows []models.StructureInvestor) []InvestorProfile {
	index := make(map[uint]int, len(rows))
	profiles := make([]InvestorProfile, 0, len(rows))

	for _, row := range rows {
		i, seen := index[row.InvestorID]
		if !seen {
			index[row.InvestorID] = len(profiles)
			profiles = append(profiles, InvestorProfile{
				InvestorID:       row.InvestorID,
				OwnershipPercent: row.OwnershipPercent,
				Commitment:       row.CommitmentAmount,
				FeeDiscount:      row.FeeDiscount,
				VatExempt:        row.VatExempt,
			})
			continue
		}
		p := &profiles[i]
		p.OwnershipPercent = p.OwnershipPercent.Add(row.OwnershipPercent)
		p.Commitment = p.Commitment.Add(row.CommitmentAmount)
		p.FeeDiscount = row.FeeDiscount
		p.VatExempt = row.VatExempt
	}

	return profiles
}
