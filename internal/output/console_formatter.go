package output

import (
	"bytes"
	"fmt"
	"strings"
)

// ConsoleFormatter renders the report as a plain text summary.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(rep *Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "FINANCIAL SELF-ASSESSMENT REPORT")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Session: %s\n", rep.SessionID)
	fmt.Fprintf(&buf, "Generated: %s\n", rep.GeneratedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "SCORES")
	fmt.Fprintln(&buf, strings.Repeat("=", 50))
	fmt.Fprintf(&buf, "%-18s %5d   %s\n", rep.Overall.Label, rep.Overall.Score, statusBadge(rep.Overall))
	fmt.Fprintln(&buf, strings.Repeat("-", 50))
	for _, d := range rep.Domains {
		fmt.Fprintf(&buf, "%-18s %5d   %s\n", d.Label, d.Score, statusBadge(d))
	}
	fmt.Fprintln(&buf)

	if len(rep.RecommendedModules) > 0 {
		fmt.Fprintln(&buf, "RECOMMENDED DEEP DIVES")
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		for i, m := range rep.RecommendedModules {
			fmt.Fprintf(&buf, "%d. %s\n", i+1, moduleTitle(string(m)))
		}
		fmt.Fprintln(&buf)
	}

	if p := rep.ModuleResults.Pension; p != nil {
		fmt.Fprintln(&buf, "PENSION GAP")
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		fmt.Fprintf(&buf, "Desired pension:      %s/month\n", FormatCurrency(p.DesiredPensionMonthly))
		fmt.Fprintf(&buf, "Estimated statutory:  %s/month\n", FormatCurrency(p.EstimatedStatutoryMonthly))
		fmt.Fprintf(&buf, "Gap:                  %s/month\n", FormatCurrency(p.GapMonthly))
		fmt.Fprintf(&buf, "Capital needed:       %s over %d payout years\n", FormatCurrency(p.CapitalNeeded), p.PayoutYears)
		fmt.Fprintf(&buf, "Savings required:     %s (at %s) to %s (at %s)\n",
			FormatCurrency(p.Optimistic.RequiredMonthly), FormatPercentage(p.Optimistic.ReturnPA),
			FormatCurrency(p.Conservative.RequiredMonthly), FormatPercentage(p.Conservative.ReturnPA))
		fmt.Fprintf(&buf, "Assessment:           %s\n", strings.ToUpper(string(p.Assessment)))
		fmt.Fprintf(&buf, "%s\n\n", p.Summary)
	}

	if f := rep.ModuleResults.Financing; f != nil {
		fmt.Fprintln(&buf, "FINANCING CHECK")
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		fmt.Fprintf(&buf, "Purchase price:       %s\n", FormatCurrency(f.PurchasePrice))
		fmt.Fprintf(&buf, "Ancillary costs:      %s\n", FormatCurrency(f.AncillaryCosts.Total))
		fmt.Fprintf(&buf, "Loan amount:          %s over %d years\n", FormatCurrency(f.LoanAmount), f.TermYears)
		fmt.Fprintf(&buf, "Payment (%s):         %s/month, DSTI %s\n",
			FormatPercentage(f.Primary.InterestPA), FormatCurrency(f.Primary.PaymentMonthly), FormatPercentage(f.Primary.DSTI))
		fmt.Fprintf(&buf, "Payment (%s):         %s/month, DSTI %s\n",
			FormatPercentage(f.Stress.InterestPA), FormatCurrency(f.Stress.PaymentMonthly), FormatPercentage(f.Stress.DSTI))
		fmt.Fprintf(&buf, "Loan-to-value:        %s [%s]\n", FormatPercentage(f.LTV), f.KIMCheck.LTVStatus)
		fmt.Fprintf(&buf, "Assessment:           %s\n", strings.ToUpper(string(f.Assessment)))
		fmt.Fprintf(&buf, "%s\n\n", f.Summary)
	}

	if r := rep.ModuleResults.Risk; r != nil {
		fmt.Fprintln(&buf, "RISK RUNWAY")
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		fmt.Fprintf(&buf, "Monthly burn:         %s\n", FormatCurrency(r.MonthlyBurn))
		fmt.Fprintf(&buf, "Liquid reserves:      %s\n", FormatCurrency(r.LiquidReserves))
		fmt.Fprintf(&buf, "Runway:               %s months\n", r.RunwayMonths.StringFixed(1))
		fmt.Fprintf(&buf, "Shock need (%d mo):    %s, gap %s\n", r.ShockMonths, FormatCurrency(r.TotalShockNeed), FormatCurrency(r.GapToSafety))
		fmt.Fprintf(&buf, "Assessment:           %s\n", strings.ToUpper(string(r.Assessment)))
		fmt.Fprintf(&buf, "%s\n\n", r.Summary)
	}

	return buf.Bytes(), nil
}

func statusBadge(s ScoreLine) string {
	return fmt.Sprintf("[%s]", strings.ToUpper(string(s.Status)))
}

func moduleTitle(id string) string {
	switch id {
	case "pension":
		return "Pension gap analysis"
	case "financing":
		return "Mortgage affordability check"
	case "risk":
		return "Income-shock runway"
	default:
		return id
	}
}
