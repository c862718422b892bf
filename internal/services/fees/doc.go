/*
Package fees estimates the costs a buyer pays on top of the purchase price
of a property ("frais de notaire").

The estimate is a pure function of the price, the département of the
property, whether it is a new build and whether the 2025 transfer-tax
increase applies. It combines:

  - the regulated notary emoluments, computed on a marginal bracket schedule,
    plus VAT;
  - the transfer tax (droits de mutation): département, commune and
    assessment-fee portions, or the reduced rate for new builds;
  - the land-registry security contribution, with its fixed minimum;
  - a flat disbursement estimate.

Usage:

	schedule, err := fees.DefaultSchedule()
	calc := fees.NewCalculator(schedule)

	breakdown, ok := calc.Estimate(fees.EstimateInput{
	    Price:            250000,
	    JurisdictionCode: "69",
	    ApplyIncrease:    true,
	})
	if !ok {
	    // price not computable yet, withhold the result
	}

Schedule:

The bracket schedule and the jurisdiction table are data, not code. The
default schedule is embedded from schedule.yaml; LoadScheduleFile reads an
updated edition from disk. Every schedule is validated once when loaded.

Rounding:

All sums are computed on unrounded float64 values. Present converts a
breakdown into display figures: headline amounts to whole euros, itemized
amounts to cents.
*/
package fees
