package main

import (
	"errors"
	"fmt"
	"io"

	"etude/internal/services/fees"

	"github.com/spf13/cobra"
)

func estimateCmd() *cobra.Command {
	var (
		price      string
		dept       string
		postalCode string
		newBuild   bool
		increase   bool
		file       string
	)
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Print an acquisition fee estimate",
		Example: `  etudectl estimate --price "250 000" --dept 75
  etudectl estimate --price 180000 --postal-code 69003 --increase`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSchedule(file)
			if err != nil {
				return err
			}
			amount, ok := fees.ParsePrice(price)
			if !ok {
				return fmt.Errorf("invalid price %q", price)
			}
			if dept == "" && postalCode != "" {
				dept = fees.JurisdictionForPostalCode(postalCode)
			}
			b, ok := fees.NewCalculator(s).Estimate(fees.EstimateInput{
				Price:            amount,
				JurisdictionCode: dept,
				IsNewBuild:       newBuild,
				ApplyIncrease:    increase,
			})
			if !ok {
				return errors.New("price must be positive")
			}
			printBreakdown(cmd.OutOrStdout(), b)
			return nil
		},
	}
	cmd.Flags().StringVar(&price, "price", "", "purchase price, French formatting accepted")
	cmd.Flags().StringVar(&dept, "dept", "", "département code (default: schedule default)")
	cmd.Flags().StringVar(&postalCode, "postal-code", "", "postal code used when --dept is empty")
	cmd.Flags().BoolVar(&newBuild, "new-build", false, "new-build property (reduced transfer tax)")
	cmd.Flags().BoolVar(&increase, "increase", false, "apply the 2025 transfer tax increase where voted")
	cmd.Flags().StringVar(&file, "file", "", "schedule file (default: FEE_SCHEDULE_PATH or built-in)")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func printBreakdown(w io.Writer, b *fees.FeeBreakdown) {
	fmt.Fprintf(w, "Prix: %s (%s - %s)\n", fees.FormatAmount(b.Price), b.Jurisdiction.Code, b.Jurisdiction.Name)
	fmt.Fprintf(w, "Droits de mutation: %s (%s)\n",
		fees.FormatAmount(b.TransferTax.Total), fees.FormatPercent(b.TransferTax.EffectiveRatePercent, 2))
	fmt.Fprintf(w, "Émoluments TTC: %s\n", fees.FormatAmount(b.NotaryEmoluments.Total))
	for _, d := range b.NotaryEmoluments.BracketDetail {
		fmt.Fprintf(w, "  %s à %s: %s\n", d.BracketLabel, fees.FormatPercent(d.RatePercent, 3), fees.FormatAmount(d.Amount))
	}
	fmt.Fprintf(w, "Contribution de sécurité immobilière: %s\n", fees.FormatAmount(b.LandRegistryContribution))
	fmt.Fprintf(w, "Débours: %s\n", fees.FormatAmount(b.DisbursementsEstimate))
	fmt.Fprintf(w, "Total: %s (%s du prix)\n", fees.FormatAmount(b.TotalFees), fees.FormatPercent(b.FeesAsPercentOfPrice, 2))
}
