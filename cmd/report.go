package cmd

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/Yannngn/theboys/sim"
	"github.com/Yannngn/theboys/sim/store"
	"github.com/Yannngn/theboys/sim/trace"
)

// printReport writes the end-of-run summary: one line per hero, then the
// mission headline and event statistics.
func printReport(w io.Writer, rep sim.Report, summary *trace.TraceSummary, elapsed time.Duration) {
	titleColor := color.New(color.FgCyan, color.Bold)
	successColor := color.New(color.FgGreen, color.Bold)

	titleColor.Fprintf(w, "\n%d: END (simulated in %s)\n\n", rep.Horizon, elapsed.Round(time.Millisecond))

	heroes := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Hero", "Experience", "Patience", "Speed", "Skills"}),
	)
	for _, h := range rep.Heroes {
		heroes.Append([]string{
			strconv.Itoa(int(h.ID)),
			strconv.Itoa(h.Experience),
			strconv.Itoa(h.Patience),
			strconv.Itoa(h.Speed),
			fmt.Sprint(h.Skills),
		})
	}
	heroes.Render()
	fmt.Fprintln(w)

	successColor.Fprintf(w, "%d/%d DONE (%.2f%%) MEAN OF %.2f ATTEMPTS/MISSION\n\n",
		rep.CompletedMissions, rep.TotalMissions, 100*rep.CompletionRate(), rep.MeanAttempts)

	if summary == nil {
		return
	}
	stats := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Metric", "Value"}),
	)
	rows := [][]string{
		{"Events executed", strconv.Itoa(summary.TotalEvents)},
		{"Arrivals", strconv.Itoa(summary.Arrivals)},
		{"Gave up", fmt.Sprintf("%d (%.2f%%)", summary.GiveUps, 100*summary.GiveUpRate)},
		{"Admissions", strconv.Itoa(summary.Admissions)},
		{"Mean travel distance", fmt.Sprintf("%.1f", summary.MeanTravelDistance)},
		{"Max travel distance", strconv.Itoa(summary.MaxTravelDistance)},
		{"Mission attempts failed", strconv.Itoa(summary.MissionFailures)},
		{"Last event tick", strconv.FormatInt(summary.LastTick, 10)},
	}
	for _, row := range rows {
		stats.Append(row)
	}
	stats.Render()
}

// printRuns lists exported runs, newest first.
func printRuns(w io.Writer, runs []store.RunSummary) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "no runs stored")
		return
	}
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Run", "Seed", "Horizon", "Done", "Mean Attempts", "Events", "Created"}),
	)
	for _, r := range runs {
		table.Append([]string{
			r.ID,
			strconv.FormatInt(r.Seed, 10),
			strconv.FormatInt(r.Horizon, 10),
			fmt.Sprintf("%d/%d", r.CompletedMissions, r.TotalMissions),
			fmt.Sprintf("%.2f", r.MeanAttempts),
			strconv.Itoa(r.Events),
			r.CreatedAt,
		})
	}
	table.Render()
}
