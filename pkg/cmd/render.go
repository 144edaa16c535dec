package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"github.com/c9s/cyclekit/pkg/fixedpoint"
	"github.com/c9s/cyclekit/pkg/indicator"
	"github.com/c9s/cyclekit/pkg/replay"
	"github.com/c9s/cyclekit/pkg/style"
)

var signedKeys = []string{
	indicator.KeyTrend,
	indicator.KeyCross,
	indicator.KeyUpperCross,
	indicator.KeyLowerCross,
}

func formatValue(key string, v fixedpoint.Value) string {
	if !lo.Contains(signedKeys, key) {
		return v.String()
	}

	return style.SignColorString(v)
}

func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}

// renderReport prints the trailing result sets of one indicator, one row per
// candle.
func renderReport(w io.Writer, report replay.Report, tableStyle table.Style) {
	color.New(color.FgHiCyan).Fprintf(w, "%s (%s): %d klines, %d crosses, %s\n",
		report.Label, report.Name, report.Emitted, report.Crosses, report.Elapsed)

	last := report.Last()
	if last == nil {
		return
	}

	keys := last.Keys()

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(tableStyle)

	header := table.Row{"time"}
	for _, key := range keys {
		header = append(header, key)
	}
	t.AppendHeader(header)

	for _, row := range report.History {
		r := table.Row{formatTime(row.Time.Time())}
		for _, key := range keys {
			r = append(r, formatValue(key, row.Result.Get(key)))
		}
		t.AppendRow(r)
	}

	t.Render()
}

// renderResultSet prints a single result set as key/value rows.
func renderResultSet(w io.Writer, title string, r indicator.ResultSet, tableStyle table.Style) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(tableStyle)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"key", "value"})
	for _, key := range r.Keys() {
		t.AppendRow(table.Row{key, formatValue(key, r[key])})
	}
	t.Render()
}

func renderSummary(w io.Writer, reports []replay.Report, tableStyle table.Style) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(tableStyle)
	t.AppendHeader(table.Row{"indicator", "klines", "crosses", "trend", "since", "elapsed"})
	for _, report := range reports {
		last := report.Last()
		trend, since := "-", "-"
		if v, ok := last[indicator.KeyTrend]; ok {
			trend = formatValue(indicator.KeyTrend, v)
			since = last.Get(indicator.KeyTrendSince).String()
		}
		t.AppendRow(table.Row{report.Label, report.Emitted, report.Crosses, trend, since, fmt.Sprint(report.Elapsed)})
	}
	t.Render()
}
