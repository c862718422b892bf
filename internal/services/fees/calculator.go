package fees

import "math"

// Calculator turns an EstimateInput into a FeeBreakdown. It holds no
// mutable state and is safe for concurrent use.
type Calculator struct {
	schedule *Schedule
}

func NewCalculator(schedule *Schedule) *Calculator {
	if schedule == nil {
		panic("schedule is required")
	}
	return &Calculator{schedule: schedule}
}

func (c *Calculator) Schedule() *Schedule {
	return c.schedule
}

// Estimate computes the full breakdown. ok is false when the price is not
// a positive finite amount, or when it is so small or so large that a
// derived figure overflows; the caller should withhold the result.
func (c *Calculator) Estimate(in EstimateInput) (*FeeBreakdown, bool) {
	price := in.Price
	if !(price > 0) || math.IsInf(price, 1) {
		return nil, false
	}

	s := c.schedule
	jurisdiction := s.Resolve(in.JurisdictionCode)

	b := &FeeBreakdown{
		Price:        price,
		Jurisdiction: jurisdiction,
		IsNewBuild:   in.IsNewBuild,
	}

	b.TransferTax, b.IncreaseApplied = c.transferTax(price, jurisdiction, in)
	b.NotaryEmoluments = c.emoluments(price)
	b.LandRegistryContribution = math.Max(price*s.ContributionRate, s.ContributionMinimum)
	b.DisbursementsEstimate = s.Disbursements

	b.TotalFees = b.TransferTax.Total +
		b.NotaryEmoluments.Total +
		b.LandRegistryContribution +
		b.DisbursementsEstimate
	b.FeesAsPercentOfPrice = b.TotalFees / price * 100

	if !finite(b.TotalFees, b.FeesAsPercentOfPrice, price+b.TotalFees) {
		return nil, false
	}
	return b, true
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (c *Calculator) transferTax(price float64, j JurisdictionRate, in EstimateInput) (TransferTax, bool) {
	s := c.schedule
	if in.IsNewBuild {
		return TransferTax{
			Total:                price * s.NewBuildRate,
			EffectiveRatePercent: s.NewBuildRate * 100,
		}, false
	}

	baseRate := j.BaseRatePercent / 100
	increased := in.ApplyIncrease && j.IncreaseEligible2025
	if increased {
		baseRate = s.IncreasedBaseRate
	}

	tt := TransferTax{
		JurisdictionPortion:  price * baseRate,
		CommunePortion:       price * s.CommuneRate,
		AssessmentFeePortion: price * s.AssessmentRate,
		EffectiveRatePercent: (baseRate + s.CommuneRate + s.AssessmentRate) * 100,
	}
	tt.Total = tt.JurisdictionPortion + tt.CommunePortion + tt.AssessmentFeePortion
	return tt, increased
}

func (c *Calculator) emoluments(price float64) NotaryEmoluments {
	var e NotaryEmoluments
	e.BracketDetail = make([]BracketDetail, 0, len(c.schedule.Brackets))

	for _, row := range c.schedule.Brackets {
		amount := row.slice(price) * row.Rate
		if amount <= 0 {
			continue
		}
		e.PreTax += amount
		e.BracketDetail = append(e.BracketDetail, BracketDetail{
			BracketLabel: BracketLabel(row),
			Amount:       amount,
			RatePercent:  row.Rate * 100,
		})
	}

	e.VAT = e.PreTax * c.schedule.VATRate
	e.Total = e.PreTax * (1 + c.schedule.VATRate)
	return e
}
