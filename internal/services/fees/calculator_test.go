package fees

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	s, err := DefaultSchedule()
	require.NoError(t, err)
	return NewCalculator(s)
}

func TestEstimate_NonPositivePrice(t *testing.T) {
	calc := newTestCalculator(t)

	for _, price := range []float64{0, -1, -250000, math.NaN(), math.Inf(1)} {
		b, ok := calc.Estimate(EstimateInput{Price: price, JurisdictionCode: "69"})
		assert.False(t, ok, "price %v", price)
		assert.Nil(t, b)
	}
}

func TestEstimate_ExtremePrices(t *testing.T) {
	calc := newTestCalculator(t)

	tests := []struct {
		name string
		raw  string
	}{
		{"subnormal", "0," + strings.Repeat("0", 310) + "1"},
		{"near max float", "17" + strings.Repeat("0", 307)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, ok := ParsePrice(tt.raw)
			require.True(t, ok)

			b, ok := calc.Estimate(EstimateInput{Price: price, JurisdictionCode: "75"})
			assert.False(t, ok)
			assert.Nil(t, b)
		})
	}

	for _, price := range []float64{0.01, 1e-300, 1e300} {
		b, ok := calc.Estimate(EstimateInput{Price: price, JurisdictionCode: "75"})
		require.True(t, ok, "price %v", price)
		_, err := json.Marshal(b)
		assert.NoError(t, err, "price %v", price)
		assert.NotPanics(t, func() { Present(b) }, "price %v", price)
	}
}

func TestEstimate_ZeroRateBracketOmitted(t *testing.T) {
	s, err := DefaultSchedule()
	require.NoError(t, err)
	edition := *s
	edition.Brackets = append([]BracketRow(nil), s.Brackets...)
	edition.Brackets[1].Rate = 0
	require.NoError(t, edition.Validate())

	b, ok := NewCalculator(&edition).Estimate(EstimateInput{Price: 100000, JurisdictionCode: "75"})
	require.True(t, ok)

	require.Len(t, b.NotaryEmoluments.BracketDetail, 3)
	for _, d := range b.NotaryEmoluments.BracketDetail {
		assert.NotZero(t, d.Amount, d.BracketLabel)
	}
}

func TestEstimate_OldBuildIneligibleJurisdiction(t *testing.T) {
	calc := newTestCalculator(t)

	// Isère did not vote the 2025 increase.
	b, ok := calc.Estimate(EstimateInput{Price: 250000, JurisdictionCode: "38", ApplyIncrease: true})
	require.True(t, ok)

	assert.False(t, b.IncreaseApplied)
	assert.InDelta(t, 11250, b.TransferTax.JurisdictionPortion, 1e-6)
	assert.InDelta(t, 3000, b.TransferTax.CommunePortion, 1e-6)
	assert.InDelta(t, 250, b.TransferTax.AssessmentFeePortion, 1e-6)
	assert.InDelta(t, 14500, b.TransferTax.Total, 1e-6)
	assert.InDelta(t, 5.8, b.TransferTax.EffectiveRatePercent, 1e-9)
	assert.InDelta(t, 250, b.LandRegistryContribution, 1e-9)
	assert.Equal(t, 1200.0, b.DisbursementsEstimate)
}

func TestEstimate_IncreaseApplied(t *testing.T) {
	calc := newTestCalculator(t)

	b, ok := calc.Estimate(EstimateInput{Price: 200000, JurisdictionCode: "69", ApplyIncrease: true})
	require.True(t, ok)

	assert.True(t, b.IncreaseApplied)
	assert.InDelta(t, 10000, b.TransferTax.JurisdictionPortion, 1e-6)
	assert.InDelta(t, 6.3, b.TransferTax.EffectiveRatePercent, 1e-9)

	without, ok := calc.Estimate(EstimateInput{Price: 200000, JurisdictionCode: "69"})
	require.True(t, ok)
	assert.False(t, without.IncreaseApplied)
	assert.InDelta(t, 9000, without.TransferTax.JurisdictionPortion, 1e-6)
}

func TestEstimate_IncreaseToggleIgnored(t *testing.T) {
	calc := newTestCalculator(t)

	tests := []struct {
		name  string
		input EstimateInput
	}{
		{"new build in eligible jurisdiction", EstimateInput{Price: 320000, JurisdictionCode: "75", IsNewBuild: true}},
		{"old build in ineligible jurisdiction", EstimateInput{Price: 320000, JurisdictionCode: "56"}},
		{"new build in ineligible jurisdiction", EstimateInput{Price: 320000, JurisdictionCode: "36", IsNewBuild: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			off := tt.input
			on := tt.input
			on.ApplyIncrease = true

			a, ok := calc.Estimate(off)
			require.True(t, ok)
			b, ok := calc.Estimate(on)
			require.True(t, ok)

			assert.Equal(t, a, b)
		})
	}
}

func TestEstimate_NewBuild(t *testing.T) {
	calc := newTestCalculator(t)

	b, ok := calc.Estimate(EstimateInput{Price: 300000, JurisdictionCode: "33", IsNewBuild: true, ApplyIncrease: true})
	require.True(t, ok)

	assert.Zero(t, b.TransferTax.JurisdictionPortion)
	assert.Zero(t, b.TransferTax.CommunePortion)
	assert.Zero(t, b.TransferTax.AssessmentFeePortion)
	assert.InDelta(t, 2100, b.TransferTax.Total, 1e-9)
	assert.InDelta(t, 0.7, b.TransferTax.EffectiveRatePercent, 1e-12)
	assert.False(t, b.IncreaseApplied)
}

func TestEstimate_BracketBoundaries(t *testing.T) {
	calc := newTestCalculator(t)

	t.Run("price at first edge stays in first bracket", func(t *testing.T) {
		b, ok := calc.Estimate(EstimateInput{Price: 6500})
		require.True(t, ok)
		require.Len(t, b.NotaryEmoluments.BracketDetail, 1)
		assert.InDelta(t, 251.55, b.NotaryEmoluments.PreTax, 1e-9)
	})

	t.Run("price at second edge spans two brackets", func(t *testing.T) {
		b, ok := calc.Estimate(EstimateInput{Price: 17000})
		require.True(t, ok)

		details := b.NotaryEmoluments.BracketDetail
		require.Len(t, details, 2)
		assert.InDelta(t, 251.55, details[0].Amount, 1e-9)
		assert.InDelta(t, 167.58, details[1].Amount, 1e-9)
		assert.InDelta(t, 419.13, b.NotaryEmoluments.PreTax, 1e-9)
	})

	t.Run("price above last edge uses every bracket", func(t *testing.T) {
		b, ok := calc.Estimate(EstimateInput{Price: 100000})
		require.True(t, ok)

		want := []BracketDetail{
			{Amount: 6500 * 0.0387, RatePercent: 3.87},
			{Amount: 10500 * 0.01596, RatePercent: 1.596},
			{Amount: 43000 * 0.01064, RatePercent: 1.064},
			{Amount: 40000 * 0.00799, RatePercent: 0.799},
		}
		opts := cmp.Options{
			cmpopts.IgnoreFields(BracketDetail{}, "BracketLabel"),
			cmpopts.EquateApprox(0, 1e-9),
		}
		if diff := cmp.Diff(want, b.NotaryEmoluments.BracketDetail, opts); diff != "" {
			t.Errorf("bracket detail mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestEstimate_TotalsAddUp(t *testing.T) {
	calc := newTestCalculator(t)

	prices := []float64{1, 99.99, 6499.99, 6500, 6500.01, 17000, 59999, 60000, 125000, 250000, 1e6, 7.5e6}
	for _, price := range prices {
		for _, newBuild := range []bool{false, true} {
			b, ok := calc.Estimate(EstimateInput{Price: price, JurisdictionCode: "13", IsNewBuild: newBuild, ApplyIncrease: true})
			require.True(t, ok)

			sum := b.TransferTax.Total + b.NotaryEmoluments.Total + b.LandRegistryContribution + b.DisbursementsEstimate
			assert.Equal(t, sum, b.TotalFees, "total fees at %v", price)

			var details float64
			for _, d := range b.NotaryEmoluments.BracketDetail {
				details += d.Amount
			}
			assert.InDelta(t, b.NotaryEmoluments.PreTax, details, 1e-9)
			assert.Equal(t, b.NotaryEmoluments.PreTax*1.20, b.NotaryEmoluments.Total)
			assert.InDelta(t, b.TotalFees/price*100, b.FeesAsPercentOfPrice, 1e-12)
		}
	}
}

func TestEstimate_Monotonic(t *testing.T) {
	calc := newTestCalculator(t)

	for _, in := range []EstimateInput{
		{JurisdictionCode: "75", ApplyIncrease: true},
		{JurisdictionCode: "38"},
		{JurisdictionCode: "971", IsNewBuild: true},
	} {
		prev := 0.0
		for price := 100.0; price <= 2e6; price += 1337 {
			in.Price = price
			b, ok := calc.Estimate(in)
			require.True(t, ok)
			assert.GreaterOrEqual(t, b.TotalFees, prev, "price %v", price)
			prev = b.TotalFees
		}
	}
}

func TestEstimate_LandRegistryMinimum(t *testing.T) {
	calc := newTestCalculator(t)

	b, ok := calc.Estimate(EstimateInput{Price: 5000})
	require.True(t, ok)
	assert.Equal(t, 15.0, b.LandRegistryContribution)
}

func TestEstimate_UnknownJurisdictionFallsBack(t *testing.T) {
	calc := newTestCalculator(t)

	b, ok := calc.Estimate(EstimateInput{Price: 150000, JurisdictionCode: "XX", ApplyIncrease: true})
	require.True(t, ok)
	assert.Equal(t, calc.Schedule().DefaultJurisdiction, b.Jurisdiction.Code)

	def, ok := calc.Estimate(EstimateInput{Price: 150000, JurisdictionCode: calc.Schedule().DefaultJurisdiction, ApplyIncrease: true})
	require.True(t, ok)
	assert.Equal(t, def, b)
}

func TestEstimate_Deterministic(t *testing.T) {
	calc := newTestCalculator(t)
	in := EstimateInput{Price: 487250.75, JurisdictionCode: "2A", ApplyIncrease: true}

	first, ok := calc.Estimate(in)
	require.True(t, ok)
	for i := 0; i < 10; i++ {
		again, _ := calc.Estimate(in)
		assert.Equal(t, first, again)
	}
}
