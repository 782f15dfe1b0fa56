package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/samuelfneumann/mmlearn/experiment/trackers"
	"github.com/samuelfneumann/mmlearn/store"
)

// places is the number of decimal places amounts are reported with
const places = 2

// formatAmount rounds x to two decimal places
func formatAmount(x float64) string {
	return decimal.NewFromFloat(x).StringFixed(places)
}

// formatStat formats a mean and standard deviation as "mean ± std"
func formatStat(s trackers.Stat) string {
	return fmt.Sprintf("%s ± %s", formatAmount(s.Mean), formatAmount(s.Std))
}

// writeSummaries writes a table of summaries to w
func writeSummaries(w io.Writer, summaries []trackers.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "AGENT\tEPISODES\tRETURN\tWEALTH\tPROFIT\tINVENTORY\t"+
		"|INVENTORY|\tFILLS")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n", s.Label,
			s.Episodes, formatStat(s.Return), formatStat(s.Wealth),
			formatStat(s.Profit), formatStat(s.Inventory),
			formatStat(s.MeanAbsInventory), formatStat(s.Fills))
	}
	return tw.Flush()
}

// writeRuns writes a table of stored runs to w
func writeRuns(w io.Writer, runs []store.Run) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLABEL\tAGENT\tENV\tSEED\tCREATED")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n", r.ID, r.Label,
			r.AgentType, r.Env, r.Seed, r.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return tw.Flush()
}
