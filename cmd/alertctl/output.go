package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/alfredjeanlab/alerts/internal/model"
	"github.com/alfredjeanlab/alerts/internal/scenario"
	"github.com/alfredjeanlab/alerts/internal/ui"
)

func printResultsJSON(results []scenario.Result) {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printResultsTable(name string, results []scenario.Result) {
	if name != "" {
		fmt.Println(ui.RenderAccent(name))
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tOP\tTARGET\tOK\tALERT")
	for _, r := range results {
		alert := ""
		if r.AlertID != 0 {
			alert = fmt.Sprintf("%d", r.AlertID)
		}
		ok := fmt.Sprintf("%v", r.OK)
		if r.Mismatch != "" {
			ok = ui.RenderUrgent(ok + " (" + r.Mismatch + ")")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", r.Index, r.Op, r.Target, ok, alert)
		if r.IsQuery() {
			for _, a := range r.Alerts {
				fmt.Fprintf(w, "\t\t%s\n", formatAlert(a))
			}
			if r.OK && len(r.Alerts) == 0 {
				fmt.Fprintf(w, "\t\t%s\n", ui.RenderMuted("(no alerts)"))
			}
		}
	}
	w.Flush()
	fmt.Printf("\n%d steps, %d mismatched\n", len(results), scenario.Mismatches(results))
}

func formatAlert(a model.Alert) string {
	label := fmt.Sprintf("#%d %s %s", a.ID, a.Type, a.Destination)
	if a.IsUrgent() {
		label = ui.RenderUrgent(label)
	}
	s := label + "  " + a.Message
	if a.ExpiresAt != nil {
		s += ui.RenderMuted("  (expires " + a.ExpiresAt.Format(time.RFC3339) + ")")
	}
	return s
}
