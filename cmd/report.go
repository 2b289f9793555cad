package cmd

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/batch"
	"github.com/schedsim/schedsim/sim/trace"
)

var (
	heading   = color.New(color.Bold, color.FgCyan).SprintFunc()
	highlight = color.New(color.Bold, color.FgGreen).SprintFunc()
)

// outputIntervals prints the raw interval list.
func outputIntervals(w io.Writer, schedule sim.Schedule) {
	_, _ = fmt.Fprintln(w, heading("Intervals"))
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Process", "Start", "End", "Duration"})
	for i, iv := range schedule {
		table.Append([]string{
			strconv.Itoa(i + 1),
			strconv.Itoa(iv.ProcessID),
			strconv.FormatInt(iv.Start, 10),
			strconv.FormatInt(iv.End, 10),
			strconv.FormatInt(iv.Duration(), 10),
		})
	}
	table.Render()
	_, _ = fmt.Fprintln(w)
}

// outputSchedule prints the per-process table with averages in the footer.
func outputSchedule(w io.Writer, processes []sim.Process, m *sim.Metrics) {
	_, _ = fmt.Fprintln(w, heading("Schedule table"))
	byID := make(map[int]sim.Process, len(processes))
	for _, p := range processes {
		byID[p.ID] = p
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Priority", "Burst", "Arrival", "Wait", "Turnaround", "Response", "Exit"})
	for _, pid := range m.ProcessIDs() {
		p := byID[pid]
		priority := "-"
		if p.Priority != nil {
			priority = strconv.Itoa(*p.Priority)
		}
		table.Append([]string{
			strconv.Itoa(pid),
			priority,
			strconv.FormatInt(p.BurstTime, 10),
			strconv.FormatInt(p.ArrivalTime, 10),
			strconv.FormatInt(m.Waiting[pid], 10),
			strconv.FormatInt(m.Turnaround[pid], 10),
			strconv.FormatInt(m.Response[pid], 10),
			strconv.FormatInt(p.ArrivalTime+m.Turnaround[pid], 10),
		})
	}
	table.SetFooter([]string{"", "", "", "",
		fmt.Sprintf("Average\n%.2f", m.AverageWaiting),
		fmt.Sprintf("Average\n%.2f", m.AverageTurnaround),
		fmt.Sprintf("Average\n%.2f", m.AverageResponse),
		fmt.Sprintf("Throughput\n%s/t", formatRate(m.Throughput))})
	table.Render()
	_, _ = fmt.Fprintln(w)
}

// outputMetrics prints the schedule-wide scalars.
func outputMetrics(w io.Writer, m *sim.Metrics) {
	_, _ = fmt.Fprintln(w, heading("Metrics"))
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk([][]string{
		{"Completed processes", strconv.Itoa(m.CompletedProcesses)},
		{"Average waiting time", fmt.Sprintf("%.2f", m.AverageWaiting)},
		{"Average turnaround time", fmt.Sprintf("%.2f", m.AverageTurnaround)},
		{"Average response time", fmt.Sprintf("%.2f", m.AverageResponse)},
		{"CPU utilization", fmt.Sprintf("%.2f%%", m.CPUUtilization)},
		{"Throughput", formatRate(m.Throughput) + " /t"},
		{"Makespan", strconv.FormatInt(m.Makespan, 10)},
		{"Busy / idle time", fmt.Sprintf("%d / %d", m.BusyTime, m.IdleTime)},
		{"Context switches", strconv.Itoa(m.ContextSwitches)},
	})
	table.Render()
	_, _ = fmt.Fprintln(w)
}

// outputTraceSummary prints the decision-trace aggregates.
func outputTraceSummary(w io.Writer, s *trace.TraceSummary) {
	_, _ = fmt.Fprintln(w, heading("Trace summary"))
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Statistic", "Value"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk([][]string{
		{"Dispatches", strconv.Itoa(s.TotalDispatches)},
		{"Context switches", strconv.Itoa(s.ContextSwitches)},
		{"Preemptions", strconv.Itoa(s.Preemptions)},
		{"Idle gaps", strconv.Itoa(s.IdleGaps)},
		{"Idle time", strconv.FormatInt(s.IdleTime, 10)},
		{"Max ready count", strconv.Itoa(s.MaxReadyCount)},
		{"Unique processes", strconv.Itoa(s.UniqueProcesses)},
	})
	table.Render()
	_, _ = fmt.Fprintln(w)
}

// outputComparison prints one row per result, highlighting the lowest
// average waiting time.
func outputComparison(w io.Writer, results []batch.Result) {
	_, _ = fmt.Fprintln(w, heading("Policy comparison"))
	best := batch.BestByAverageWaiting(results)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Policy", "Avg wait", "Avg turnaround", "Avg response", "CPU util", "Throughput", "Switches", "Intervals"})
	for i, r := range results {
		name := r.Job.Policy.String()
		if !r.OK() {
			table.Append([]string{name, "error: " + r.Err.Error(), "", "", "", "", "", ""})
			continue
		}
		m := r.Metrics
		wait := fmt.Sprintf("%.2f", m.AverageWaiting)
		if i == best {
			name = highlight(name + " *")
			wait = highlight(wait)
		}
		table.Append([]string{
			name,
			wait,
			fmt.Sprintf("%.2f", m.AverageTurnaround),
			fmt.Sprintf("%.2f", m.AverageResponse),
			fmt.Sprintf("%.2f%%", m.CPUUtilization),
			formatRate(m.Throughput),
			strconv.Itoa(m.ContextSwitches),
			strconv.Itoa(len(r.Schedule)),
		})
	}
	table.Render()
	_, _ = fmt.Fprintln(w)
}

// outputDistributions prints per-policy summaries over repeated runs.
func outputDistributions(w io.Writer, byPolicy map[sim.Policy]*batch.Summary) {
	_, _ = fmt.Fprintln(w, heading("Average waiting time across runs"))
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Policy", "Runs", "Failed", "Mean", "StdDev", "P50", "P95", "Min", "Max"})
	for _, policy := range sim.AllPolicies {
		s, ok := byPolicy[policy]
		if !ok {
			continue
		}
		d := s.AverageWaiting
		table.Append([]string{
			policy.String(),
			strconv.Itoa(s.Jobs),
			strconv.Itoa(s.Failed),
			fmt.Sprintf("%.2f", d.Mean),
			fmt.Sprintf("%.2f", d.StdDev),
			fmt.Sprintf("%.2f", d.P50),
			fmt.Sprintf("%.2f", d.P95),
			fmt.Sprintf("%.2f", d.Min),
			fmt.Sprintf("%.2f", d.Max),
		})
	}
	table.Render()
	_, _ = fmt.Fprintln(w)
}

func formatRate(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.3f", v)
}
