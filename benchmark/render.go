// Copyright 2026 The wktbench Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package benchmark

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/wktbench/wktbench/metrics"
)

// Result formats.
const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
	FormatTable  = "table"
)

// Formats lists the accepted result formats, default first.
func Formats() []string {
	return []string{FormatPretty, FormatJSON, FormatTable}
}

const threadedMarker = "threaded -> "

type jsonResult struct {
	RunID    string         `json:"run_id"`
	Index    int            `json:"index"`
	Name     string         `json:"name"`
	Threads  int            `json:"threads"`
	Status   Status         `json:"status"`
	CPUMs    *int64         `json:"cpu_ms,omitempty"`
	UserMs   *int64         `json:"user_ms,omitempty"`
	SystemMs *int64         `json:"system_ms,omitempty"`
	RealMs   *int64         `json:"real_ms,omitempty"`
	Metrics  map[string]any `json:"metrics,omitempty"`
}

func (r *Runner) report(res Result) {
	switch r.format {
	case FormatJSON:
		r.reportJSON(res)
	default:
		r.reportPretty(res)
	}
}

func (r *Runner) reportPretty(res Result) {
	marker := ""
	if res.Threads > 0 {
		marker = threadedMarker
	}
	if res.Status == StatusListed {
		fmt.Fprintf(r.out, "%d) %s%s\n", res.Index, marker, res.Name)
		return
	}
	fmt.Fprintf(r.out, "%d) %s%s: %d ms\n", res.Index, marker, res.Name, millis(res.Times.CPU()))
}

func (r *Runner) reportJSON(res Result) {
	jr := jsonResult{
		RunID:   r.runID,
		Index:   res.Index,
		Name:    res.Name,
		Threads: res.Threads,
		Status:  res.Status,
		Metrics: res.Metrics,
	}
	if res.Status == StatusCompleted {
		cpu, user, system, wall := millis(res.Times.CPU()), millis(res.Times.User), millis(res.Times.System), millis(res.Times.Real)
		jr.CPUMs, jr.UserMs, jr.SystemMs, jr.RealMs = &cpu, &user, &system, &wall
	}
	bs, err := json.Marshal(jr)
	if err != nil {
		r.logger.Error("failed to encode result: %v", err)
		return
	}
	fmt.Fprintln(r.out, string(bs))
}

// Summarize renders a table of every benchmark that was listed, completed or
// failed. It only produces output in the table format.
func (r *Runner) Summarize() {
	if r.format != FormatTable {
		return
	}

	table := tablewriter.NewWriter(r.out)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"#", "Name", "Threads", "Status", "CPU ms", "User ms", "System ms", "Real ms", "Geometries"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetAutoWrapText(false)

	for _, res := range r.results {
		if res.Status == StatusSkipped {
			continue
		}
		row := []string{
			strconv.Itoa(res.Index),
			res.Name,
			strconv.Itoa(res.Threads),
			string(res.Status),
			"", "", "", "", "",
		}
		if res.Status == StatusCompleted {
			row[4] = strconv.FormatInt(millis(res.Times.CPU()), 10)
			row[5] = strconv.FormatInt(millis(res.Times.User), 10)
			row[6] = strconv.FormatInt(millis(res.Times.System), 10)
			row[7] = strconv.FormatInt(millis(res.Times.Real), 10)
		}
		if n, ok := res.Metrics["counter_"+metrics.GeometriesParsed]; ok {
			row[8] = fmt.Sprint(n)
		}
		table.Append(row)
	}

	if table.NumLines() > 0 {
		table.Render()
	}
}
