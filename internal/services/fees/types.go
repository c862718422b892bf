package fees

import (
	"encoding/json"
	"math"
)

// BracketRow is one slice of the marginal emolument schedule. The rate
// applies to the part of the price within [Lower, Upper).
type BracketRow struct {
	Lower float64
	Upper float64 // math.Inf(1) for the last row
	Rate  float64
}

// Unbounded reports whether the row has no upper bound.
func (b BracketRow) Unbounded() bool {
	return math.IsInf(b.Upper, 1)
}

// slice returns the part of price taxed by this row, never negative.
func (b BracketRow) slice(price float64) float64 {
	if price <= b.Lower {
		return 0
	}
	return math.Min(price, b.Upper) - b.Lower
}

func (b BracketRow) MarshalJSON() ([]byte, error) {
	var upper *float64
	if !b.Unbounded() {
		upper = &b.Upper
	}
	return json.Marshal(struct {
		Lower float64  `json:"lower"`
		Upper *float64 `json:"upper"`
		Rate  float64  `json:"rate"`
	}{b.Lower, upper, b.Rate})
}

// JurisdictionRate is the transfer-tax reference data for one département.
type JurisdictionRate struct {
	Code                 string  `json:"code" yaml:"code"`
	Name                 string  `json:"name" yaml:"name"`
	BaseRatePercent      float64 `json:"base_rate_percent" yaml:"base_rate_percent"`
	IncreaseEligible2025 bool    `json:"increase_eligible_2025" yaml:"increase_eligible_2025"`
}

// EstimateInput is everything the calculator needs. The UI layer owns the
// mutable state and builds a fresh input on every change.
type EstimateInput struct {
	Price            float64 `json:"price" query:"price"`
	JurisdictionCode string  `json:"jurisdiction_code" query:"jurisdiction_code"`
	IsNewBuild       bool    `json:"is_new_build" query:"is_new_build"`
	ApplyIncrease    bool    `json:"apply_increase" query:"apply_increase"`
}

type TransferTax struct {
	JurisdictionPortion  float64 `json:"jurisdiction_portion"`
	CommunePortion       float64 `json:"commune_portion"`
	AssessmentFeePortion float64 `json:"assessment_fee_portion"`
	Total                float64 `json:"total"`
	EffectiveRatePercent float64 `json:"effective_rate_percent"`
}

type BracketDetail struct {
	BracketLabel string  `json:"bracket_label"`
	Amount       float64 `json:"amount"`
	RatePercent  float64 `json:"rate_percent"`
}

type NotaryEmoluments struct {
	PreTax        float64         `json:"pre_tax"`
	VAT           float64         `json:"vat"`
	Total         float64         `json:"total"`
	BracketDetail []BracketDetail `json:"bracket_detail"`
}

// FeeBreakdown is built fresh for every estimate and never mutated.
// TotalFees is the exact sum of the four component totals.
type FeeBreakdown struct {
	Price                    float64          `json:"price"`
	Jurisdiction             JurisdictionRate `json:"jurisdiction"`
	IsNewBuild               bool             `json:"is_new_build"`
	IncreaseApplied          bool             `json:"increase_applied"`
	TransferTax              TransferTax      `json:"transfer_tax"`
	NotaryEmoluments         NotaryEmoluments `json:"notary_emoluments"`
	LandRegistryContribution float64          `json:"land_registry_contribution"`
	DisbursementsEstimate    float64          `json:"disbursements_estimate"`
	TotalFees                float64          `json:"total_fees"`
	FeesAsPercentOfPrice     float64          `json:"fees_as_percent_of_price"`
}
