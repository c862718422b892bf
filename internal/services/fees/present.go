package fees

import "github.com/shopspring/decimal"

// FeeView is the display form of a FeeBreakdown. Headline figures are
// whole euros, itemized figures are cents. Rounding happens only here.
type FeeView struct {
	Price                    decimal.Decimal   `json:"price"`
	JurisdictionCode         string            `json:"jurisdiction_code"`
	JurisdictionName         string            `json:"jurisdiction_name"`
	IsNewBuild               bool              `json:"is_new_build"`
	IncreaseApplied          bool              `json:"increase_applied"`
	TransferTax              TransferTaxView   `json:"transfer_tax"`
	NotaryEmoluments         EmolumentsView    `json:"notary_emoluments"`
	LandRegistryContribution decimal.Decimal   `json:"land_registry_contribution"`
	DisbursementsEstimate    decimal.Decimal   `json:"disbursements_estimate"`
	TotalFees                decimal.Decimal   `json:"total_fees"`
	FeesAsPercentOfPrice     decimal.Decimal   `json:"fees_as_percent_of_price"`
	TotalCost                decimal.Decimal   `json:"total_cost"`
	Summary                  map[string]string `json:"summary"`
}

type TransferTaxView struct {
	JurisdictionPortion  decimal.Decimal `json:"jurisdiction_portion"`
	CommunePortion       decimal.Decimal `json:"commune_portion"`
	AssessmentFeePortion decimal.Decimal `json:"assessment_fee_portion"`
	Total                decimal.Decimal `json:"total"`
	EffectiveRatePercent decimal.Decimal `json:"effective_rate_percent"`
}

type BracketDetailView struct {
	BracketLabel string          `json:"bracket_label"`
	Amount       decimal.Decimal `json:"amount"`
	RatePercent  decimal.Decimal `json:"rate_percent"`
}

type EmolumentsView struct {
	PreTax        decimal.Decimal     `json:"pre_tax"`
	VAT           decimal.Decimal     `json:"vat"`
	Total         decimal.Decimal     `json:"total"`
	BracketDetail []BracketDetailView `json:"bracket_detail"`
}

func whole(v float64) decimal.Decimal { return decimal.NewFromFloat(v).Round(0) }
func cents(v float64) decimal.Decimal { return decimal.NewFromFloat(v).Round(2) }

// Present rounds a breakdown for display.
func Present(b *FeeBreakdown) FeeView {
	v := FeeView{
		Price:            whole(b.Price),
		JurisdictionCode: b.Jurisdiction.Code,
		JurisdictionName: b.Jurisdiction.Name,
		IsNewBuild:       b.IsNewBuild,
		IncreaseApplied:  b.IncreaseApplied,
		TransferTax: TransferTaxView{
			JurisdictionPortion:  cents(b.TransferTax.JurisdictionPortion),
			CommunePortion:       cents(b.TransferTax.CommunePortion),
			AssessmentFeePortion: cents(b.TransferTax.AssessmentFeePortion),
			Total:                whole(b.TransferTax.Total),
			EffectiveRatePercent: cents(b.TransferTax.EffectiveRatePercent),
		},
		NotaryEmoluments: EmolumentsView{
			PreTax:        cents(b.NotaryEmoluments.PreTax),
			VAT:           cents(b.NotaryEmoluments.VAT),
			Total:         whole(b.NotaryEmoluments.Total),
			BracketDetail: make([]BracketDetailView, 0, len(b.NotaryEmoluments.BracketDetail)),
		},
		LandRegistryContribution: cents(b.LandRegistryContribution),
		DisbursementsEstimate:    whole(b.DisbursementsEstimate),
		TotalFees:                whole(b.TotalFees),
		FeesAsPercentOfPrice:     cents(b.FeesAsPercentOfPrice),
		TotalCost:                whole(b.Price + b.TotalFees),
	}
	for _, d := range b.NotaryEmoluments.BracketDetail {
		v.NotaryEmoluments.BracketDetail = append(v.NotaryEmoluments.BracketDetail, BracketDetailView{
			BracketLabel: d.BracketLabel,
			Amount:       cents(d.Amount),
			RatePercent:  decimal.NewFromFloat(d.RatePercent).Round(3),
		})
	}
	v.Summary = map[string]string{
		"total_fees":       FormatAmount(b.TotalFees),
		"total_cost":       FormatAmount(b.Price + b.TotalFees),
		"fees_rate":        FormatPercent(b.FeesAsPercentOfPrice, 2),
		"transfer_tax":     FormatAmount(b.TransferTax.Total),
		"notary_emolument": FormatAmount(b.NotaryEmoluments.Total),
	}
	return v
}
