package main

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/aluiziolira/titlecheck/models"
	"github.com/jedib0t/go-pretty/v6/table"
)

func printSummary(w io.Writer, result models.RunResult, rows int, outputFile string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Check complete")
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Records", result.TotalRecords},
		{"Fetched", result.Fetched},
		{"Skipped (grouped)", result.Skipped},
		{"Matched", result.Matched},
		{"Mismatched", result.Mismatched},
		{"Fetch errors", result.Failed},
		{"Cache hits", result.CacheHits},
	})

	if len(result.ErrorsByType) > 0 {
		kinds := make([]string, 0, len(result.ErrorsByType))
		for kind := range result.ErrorsByType {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)
		for _, kind := range kinds {
			t.AppendRow(table.Row{"  " + kind, result.ErrorsByType[kind]})
		}
	}

	t.AppendSeparator()
	t.AppendRow(table.Row{"Report rows", rows})
	t.AppendRow(table.Row{"Duration", result.EndTime.Sub(result.StartTime).Round(time.Millisecond)})
	t.AppendRow(table.Row{"Output file", outputFile})
	t.SetStyle(table.StyleRounded)
	t.Render()
	fmt.Fprintln(w)
}
