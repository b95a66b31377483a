package allocation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"fundadmin/models"
)

type FeeMode int

const (
	// ModeLegacySingleRate charges the management fee as a single
	// period-adjusted rate on the called principal. A nil or zero rate
	// means no fee at all.
	ModeLegacySingleRate FeeMode = iota
	// ModeDualRate charges separate rates on net invested capital and on
	// the unfunded commitment, with a GP offset applied fund-wide.
	ModeDualRate
)

// SelectFeeMode decides the fee-computation mode from the call's fee
// configuration alone. Dual-rate requires the nic_plus_unfunded base plus
// at least one of the two rates; anything else is legacy.
func SelectFeeMode(call *models.CapitalCall) FeeMode {
	if call.ManagementFeeBase != nil && *call.ManagementFeeBase == models.FeeBaseNicPlusUnfunded &&
		(call.FeeRateOnNic != nil || call.FeeRateOnUnfunded != nil) {
		return ModeDualRate
	}
	return ModeLegacySingleRate
}

// ValidateFeeConfig rejects fee configurations that would produce
// meaningless allocations, before any calculation runs.
func ValidateFeeConfig(call *models.CapitalCall, roster []InvestorProfile) error {
	if call.ManagementFeeBase != nil && *call.ManagementFeeBase == models.FeeBaseNicPlusUnfunded &&
		call.FeeRateOnNic == nil && call.FeeRateOnUnfunded == nil {
		return fmt.Errorf("%w: fee base is %s but neither rate is set", ErrInvalidFeeConfig, models.FeeBaseNicPlusUnfunded)
	}

	for name, rate := range map[string]*decimal.Decimal{
		"management_fee_rate":  call.ManagementFeeRate,
		"fee_rate_on_nic":      call.FeeRateOnNic,
		"fee_rate_on_unfunded": call.FeeRateOnUnfunded,
		"vat_rate":             call.VatRate,
	} {
		if rate != nil && rate.IsNegative() {
			return fmt.Errorf("%w: %s is negative", ErrInvalidFeeConfig, name)
		}
	}

	for _, p := range roster {
		if p.FeeDiscount.IsNegative() {
			return fmt.Errorf("%w: investor %d has a negative fee discount", ErrInvalidFeeConfig, p.InvestorID)
		}
	}

	return nil
}
