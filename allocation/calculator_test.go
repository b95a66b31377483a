package allocation

import (
	"testing"

	"github.com/shopspring/decimal"

	"fundadmin/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func strPtr(s string) *string {
	return &s
}

func TestPeriodFraction(t *testing.T) {
	cases := []struct {
		period *string
		want   string
	}{
		{nil, "1"},
		{strPtr(models.FeePeriodAnnual), "1"},
		{strPtr(models.FeePeriodQuarterly), "0.25"},
		{strPtr(models.FeePeriodSemiAnnual), "0.5"},
		{strPtr("monthly"), "1"}, // unknown values fall back to annual
	}
	for _, c := range cases {
		got := PeriodFraction(c.period)
		if !got.Equal(dec(c.want)) {
			t.Errorf("PeriodFraction(%v) = %s, want %s", c.period, got, c.want)
		}
	}
}

// Scenario: legacy mode with no management fee rate bills principal only.
func TestCalculateLegacy_NoFee(t *testing.T) {
	call := &models.CapitalCall{TotalCallAmount: dec("1000000")}
	investors := []struct {
		ownership string
		principal string
	}{
		{"40", "400000"},
		{"60", "600000"},
	}

	for _, inv := range investors {
		res := CalculateLegacy(InvestorProfile{InvestorID: 1, OwnershipPercent: dec(inv.ownership)}, call)
		if !res.Principal.Equal(dec(inv.principal)) {
			t.Errorf("principal = %s, want %s", res.Principal, inv.principal)
		}
		if !res.FeeNet.IsZero() || !res.Vat.IsZero() {
			t.Errorf("expected zero fee and VAT, got feeNet=%s vat=%s", res.FeeNet, res.Vat)
		}
		if !res.TotalDue.Equal(res.Principal) {
			t.Errorf("totalDue = %s, want %s", res.TotalDue, res.Principal)
		}
	}
}

// Scenario: legacy mode, 2% annual rate billed quarterly, 10% VAT,
// investor A with a 50% fee discount, investor B with none.
func TestCalculateLegacy_FeeAndVat(t *testing.T) {
	call := &models.CapitalCall{
		TotalCallAmount:   dec("1000000"),
		ManagementFeeRate: decPtr("2"),
		FeePeriod:         strPtr(models.FeePeriodQuarterly),
		VatApplicable:     true,
		VatRate:           decPtr("10"),
	}

	a := CalculateLegacy(InvestorProfile{InvestorID: 1, OwnershipPercent: dec("40"), FeeDiscount: dec("50")}, call)
	if !a.FeeGross.Equal(dec("2000")) {
		t.Errorf("investor A feeGross = %s, want 2000", a.FeeGross)
	}
	if !a.FeeDiscountAmount.Equal(dec("1000")) {
		t.Errorf("investor A feeDiscountAmount = %s, want 1000", a.FeeDiscountAmount)
	}
	if !a.FeeNet.Equal(dec("1000")) {
		t.Errorf("investor A feeNet = %s, want 1000", a.FeeNet)
	}
	if !a.Vat.Equal(dec("100")) {
		t.Errorf("investor A vat = %s, want 100", a.Vat)
	}
	if !a.TotalDue.Equal(dec("401100")) {
		t.Errorf("investor A totalDue = %s, want 401100", a.TotalDue)
	}

	b := CalculateLegacy(InvestorProfile{InvestorID: 2, OwnershipPercent: dec("60")}, call)
	if !b.FeeGross.Equal(dec("3000")) || !b.FeeNet.Equal(dec("3000")) {
		t.Errorf("investor B fee = %s/%s, want 3000/3000", b.FeeGross, b.FeeNet)
	}
	if !b.Vat.Equal(dec("300")) {
		t.Errorf("investor B vat = %s, want 300", b.Vat)
	}
	if !b.TotalDue.Equal(dec("603300")) {
		t.Errorf("investor B totalDue = %s, want 603300", b.TotalDue)
	}
}

func TestCalculateLegacy_VatExemptInvestor(t *testing.T) {
	call := &models.CapitalCall{
		TotalCallAmount:   dec("500000"),
		ManagementFeeRate: decPtr("2"),
		VatApplicable:     true,
		VatRate:           decPtr("20"),
	}
	res := CalculateLegacy(InvestorProfile{InvestorID: 1, OwnershipPercent: dec("100"), VatExempt: true}, call)
	if !res.Vat.IsZero() {
		t.Errorf("vat = %s, want 0 for a VAT-exempt investor", res.Vat)
	}
	if !res.TotalDue.Equal(res.Principal.Add(res.FeeNet)) {
		t.Errorf("totalDue = %s, want principal+feeNet", res.TotalDue)
	}
}

// Scenario: dual-rate first call. No prior called capital, so the NIC fee
// is zero and the whole commitment is the unfunded base.
func TestDualRate_FirstCall(t *testing.T) {
	call := &models.CapitalCall{
		TotalCallAmount:   dec("200000"),
		ManagementFeeBase: strPtr(models.FeeBaseNicPlusUnfunded),
		FeeRateOnNic:      decPtr("2"),
		FeeRateOnUnfunded: decPtr("1"),
	}
	p := InvestorProfile{InvestorID: 1, OwnershipPercent: dec("100"), Commitment: dec("1000000")}

	gross := CalculateDualGross(p, call, decimal.Zero, p.Commitment)
	if !gross.NicFee.IsZero() {
		t.Errorf("nicFee = %s, want 0", gross.NicFee)
	}
	if !gross.UnfundedFee.Equal(dec("10000")) {
		t.Errorf("unfundedFee = %s, want 10000", gross.UnfundedFee)
	}
	if !gross.FeeGross.Equal(dec("10000")) {
		t.Errorf("feeGross = %s, want 10000", gross.FeeGross)
	}

	res := ApplyFeeOffset(gross, p, call, dec("10"), gross.FeeGross)
	if !res.FeeOffset.Equal(dec("1000")) {
		t.Errorf("feeOffset = %s, want 1000", res.FeeOffset)
	}
	if !res.DeemedGpContribution.Equal(dec("-1000")) {
		t.Errorf("deemedGpContribution = %s, want -1000", res.DeemedGpContribution)
	}
	if !res.FeeNet.Equal(dec("9000")) {
		t.Errorf("feeNet = %s, want 9000", res.FeeNet)
	}
	if !res.TotalDue.Equal(dec("209000")) {
		t.Errorf("totalDue = %s, want 209000", res.TotalDue)
	}
}

// The discount is subtracted from the rate in percentage points and both
// effective rates clamp at zero.
func TestDualRate_DiscountClampsRates(t *testing.T) {
	call := &models.CapitalCall{
		TotalCallAmount:   dec("100000"),
		ManagementFeeBase: strPtr(models.FeeBaseNicPlusUnfunded),
		FeeRateOnNic:      decPtr("2"),
		FeeRateOnUnfunded: decPtr("1"),
	}
	p := InvestorProfile{
		InvestorID:       1,
		OwnershipPercent: dec("100"),
		Commitment:       dec("1000000"),
		FeeDiscount:      dec("1.5"),
	}

	gross := CalculateDualGross(p, call, dec("500000"), dec("500000"))
	// nic: (2 - 1.5)% of 500000 = 2500; unfunded: clamped to 0%
	if !gross.NicFee.Equal(dec("2500")) {
		t.Errorf("nicFee = %s, want 2500", gross.NicFee)
	}
	if !gross.UnfundedFee.IsZero() {
		t.Errorf("unfundedFee = %s, want 0 after clamping", gross.UnfundedFee)
	}
}

func TestDualRate_NoOffsetWithoutGp(t *testing.T) {
	call := &models.CapitalCall{
		TotalCallAmount:   dec("100000"),
		ManagementFeeBase: strPtr(models.FeeBaseNicPlusUnfunded),
		FeeRateOnUnfunded: decPtr("1"),
	}
	p := InvestorProfile{InvestorID: 1, OwnershipPercent: dec("100"), Commitment: dec("400000")}

	gross := CalculateDualGross(p, call, decimal.Zero, p.Commitment)
	res := ApplyFeeOffset(gross, p, call, decimal.Zero, gross.FeeGross)
	if !res.FeeOffset.IsZero() || !res.DeemedGpContribution.IsZero() {
		t.Errorf("offset = %s/%s, want 0/0 with no GP percentage", res.FeeOffset, res.DeemedGpContribution)
	}
	if !res.FeeNet.Equal(gross.FeeGross) {
		t.Errorf("feeNet = %s, want %s", res.FeeNet, gross.FeeGross)
	}
}

// Offset never exceeds the gross fee while the GP owns at most 100%.
func TestDualRate_OffsetBound(t *testing.T) {
	call := &models.CapitalCall{
		TotalCallAmount:   dec("100000"),
		ManagementFeeBase: strPtr(models.FeeBaseNicPlusUnfunded),
		FeeRateOnNic:      decPtr("2"),
		FeeRateOnUnfunded: decPtr("1"),
	}
	p := InvestorProfile{InvestorID: 1, OwnershipPercent: dec("100"), Commitment: dec("1000000")}
	gross := CalculateDualGross(p, call, dec("250000"), dec("750000"))

	for _, gp := range []string{"0", "0.5", "10", "50", "100"} {
		res := ApplyFeeOffset(gross, p, call, dec(gp), gross.FeeGross)
		if res.FeeOffset.GreaterThan(res.FeeGross) {
			t.Errorf("gp=%s: feeOffset %s exceeds feeGross %s", gp, res.FeeOffset, res.FeeGross)
		}
		if res.FeeNet.IsNegative() || res.TotalDue.IsNegative() {
			t.Errorf("gp=%s: negative feeNet %s or totalDue %s", gp, res.FeeNet, res.TotalDue)
		}
	}
}

// For any roster summing to 100% ownership the principals reassemble the
// call amount exactly.
func TestPrincipalConservation(t *testing.T) {
	call := &models.CapitalCall{TotalCallAmount: dec("1000000")}
	ownerships := []string{"33.33", "33.33", "33.34"}

	sum := decimal.Zero
	for i, pct := range ownerships {
		res := CalculateLegacy(InvestorProfile{InvestorID: uint(i + 1), OwnershipPercent: dec(pct)}, call)
		sum = sum.Add(res.Principal)
	}

	tolerance := dec("0.01").Mul(decimal.NewFromInt(int64(len(ownerships))))
	if sum.Sub(call.TotalCallAmount).Abs().GreaterThan(tolerance) {
		t.Errorf("principal sum = %s, want %s", sum, call.TotalCallAmount)
	}
}

func TestFeeNonNegativity(t *testing.T) {
	call := &models.CapitalCall{
		TotalCallAmount:   dec("1000000"),
		ManagementFeeRate: decPtr("2"),
		VatApplicable:     true,
		VatRate:           decPtr("10"),
	}
	// a 100% discount wipes the fee but never drives it negative
	res := CalculateLegacy(InvestorProfile{InvestorID: 1, OwnershipPercent: dec("50"), FeeDiscount: dec("100")}, call)
	for name, v := range map[string]decimal.Decimal{
		"feeGross": res.FeeGross,
		"feeNet":   res.FeeNet,
		"vat":      res.Vat,
		"totalDue": res.TotalDue,
	} {
		if v.IsNegative() {
			t.Errorf("%s = %s, want >= 0", name, v)
		}
	}
}
