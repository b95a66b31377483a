package allocation

import (
	"github.com/shopspring/decimal"

	"fundadmin/models"
)

var hundred = decimal.NewFromInt(100)

// FeeResult is the computed obligation of one investor for one call.
// Dual-rate fields stay zero in legacy mode and vice versa.
type FeeResult struct {
	InvestorID           uint
	Principal            decimal.Decimal
	NicFee               decimal.Decimal
	UnfundedFee          decimal.Decimal
	FeeGross             decimal.Decimal
	FeeDiscountAmount    decimal.Decimal
	FeeOffset            decimal.Decimal
	DeemedGpContribution decimal.Decimal
	FeeNet               decimal.Decimal
	Vat                  decimal.Decimal
	TotalDue             decimal.Decimal
}

// PeriodFraction maps the call's fee period onto the fraction of the
// annual rate billed per call: 0.25 for quarterly, 0.5 for semi-annual,
// 1 for annual or unset.
func PeriodFraction(feePeriod *string) decimal.Decimal {
	if feePeriod == nil {
		return decimal.NewFromInt(1)
	}
	switch *feePeriod {
	case models.FeePeriodQuarterly:
		return decimal.NewFromFloat(0.25)
	case models.FeePeriodSemiAnnual:
		return decimal.NewFromFloat(0.5)
	default:
		return decimal.NewFromInt(1)
	}
}

func principalShare(call *models.CapitalCall, p InvestorProfile) decimal.Decimal {
	return call.TotalCallAmount.Mul(p.OwnershipPercent).Div(hundred)
}

func vatOn(feeNet decimal.Decimal, call *models.CapitalCall, p InvestorProfile) decimal.Decimal {
	if !call.VatApplicable || p.VatExempt || call.VatRate == nil || !call.VatRate.IsPositive() {
		return decimal.Zero
	}
	return feeNet.Mul(*call.VatRate).Div(hundred)
}

// CalculateLegacy computes one investor's allocation under the legacy
// single-rate mode. With no management fee rate on the call, only the
// principal is billed.
func CalculateLegacy(p InvestorProfile, call *models.CapitalCall) FeeResult {
	res := FeeResult{
		InvestorID: p.InvestorID,
		Principal:  principalShare(call, p),
	}

	if call.ManagementFeeRate == nil || call.ManagementFeeRate.IsZero() {
		res.TotalDue = res.Principal
		return res
	}

	effectiveRate := call.ManagementFeeRate.Mul(PeriodFraction(call.FeePeriod))
	res.FeeGross = res.Principal.Mul(effectiveRate).Div(hundred)
	res.FeeDiscountAmount = res.FeeGross.Mul(p.FeeDiscount).Div(hundred)
	res.FeeNet = res.FeeGross.Sub(res.FeeDiscountAmount)
	res.Vat = vatOn(res.FeeNet, call, p)
	res.TotalDue = res.Principal.Add(res.FeeNet).Add(res.Vat)
	return res
}

// CalculateDualGross is pass one of the dual-rate mode: principal plus the
// gross NIC and unfunded fee components for one investor. The fee offset,
// net fee and VAT are left for ApplyFeeOffset, which needs the fund-wide
// gross total first.
//
// nicBase is the investor's capital called in prior non-draft calls;
// unfundedBase is their commitment minus that amount. The investor's fee
// discount is subtracted from each rate in percentage points and clamped
// at zero.
func CalculateDualGross(p InvestorProfile, call *models.CapitalCall, nicBase, unfundedBase decimal.Decimal) FeeResult {
	res := FeeResult{
		InvestorID: p.InvestorID,
		Principal:  principalShare(call, p),
	}

	fraction := PeriodFraction(call.FeePeriod)

	nicRate := rateOrZero(call.FeeRateOnNic).Sub(p.FeeDiscount)
	if nicRate.IsNegative() {
		nicRate = decimal.Zero
	}
	unfundedRate := rateOrZero(call.FeeRateOnUnfunded).Sub(p.FeeDiscount)
	if unfundedRate.IsNegative() {
		unfundedRate = decimal.Zero
	}

	res.NicFee = nicBase.Mul(fraction).Mul(nicRate).Div(hundred)
	res.UnfundedFee = unfundedBase.Mul(fraction).Mul(unfundedRate).Div(hundred)
	res.FeeGross = res.NicFee.Add(res.UnfundedFee)
	return res
}

// ApplyFeeOffset is pass two of the dual-rate mode: the GP absorbs its
// pro-rata share of each investor's gross fee, recorded as a negative
// deemed contribution rather than billed.
func ApplyFeeOffset(res FeeResult, p InvestorProfile, call *models.CapitalCall, gpPercentage, totalFeeGross decimal.Decimal) FeeResult {
	if gpPercentage.IsPositive() && totalFeeGross.IsPositive() {
		res.FeeOffset = res.FeeGross.Mul(gpPercentage).Div(hundred)
		res.DeemedGpContribution = res.FeeOffset.Neg()
	}
	res.FeeNet = res.FeeGross.Sub(res.FeeOffset)
	res.Vat = vatOn(res.FeeNet, call, p)
	res.TotalDue = res.Principal.Add(res.FeeNet).Add(res.Vat)
	return res
}

func rateOrZero(rate *decimal.Decimal) decimal.Decimal {
	if rate == nil {
		return decimal.Zero
	}
	return *rate
}
