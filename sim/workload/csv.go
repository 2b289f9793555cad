package workload

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/schedsim/schedsim/sim"
)

// csvColumns is the expected header. The priority column is optional.
var csvColumns = []string{"id", "arrival_time", "burst_time", "priority"}

// LoadCSVProcesses reads processes from a CSV file with a header row
// followed by id,arrival_time,burst_time[,priority] records.
// An empty priority cell leaves Priority nil.
func LoadCSVProcesses(path string) ([]sim.Process, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening process csv: %w", err)
	}
	defer f.Close()
	return ReadCSVProcesses(f)
}

// ReadCSVProcesses parses the LoadCSVProcesses format from r.
func ReadCSVProcesses(r io.Reader) ([]sim.Process, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	if len(header) < 3 || len(header) > len(csvColumns) {
		return nil, fmt.Errorf("csv header must have 3 or 4 columns (%s), got %d", strings.Join(csvColumns, ","), len(header))
	}
	for i, col := range header {
		if strings.ToLower(strings.TrimSpace(col)) != csvColumns[i] {
			return nil, fmt.Errorf("csv header column %d: expected %q, got %q", i+1, csvColumns[i], col)
		}
	}

	var processes []sim.Process
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv line %d: %w", line, err)
		}
		if len(record) != len(header) {
			return nil, fmt.Errorf("csv line %d: expected %d fields, got %d", line, len(header), len(record))
		}
		p, err := parseCSVRecord(record)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		processes = append(processes, p)
	}
	if len(processes) == 0 {
		return nil, fmt.Errorf("csv contains no processes")
	}
	return processes, nil
}

func parseCSVRecord(record []string) (sim.Process, error) {
	var p sim.Process
	id, err := strconv.Atoi(strings.TrimSpace(record[0]))
	if err != nil {
		return p, fmt.Errorf("invalid id %q: %w", record[0], err)
	}
	p.ID = id
	if p.ArrivalTime, err = strconv.ParseInt(strings.TrimSpace(record[1]), 10, 64); err != nil {
		return p, fmt.Errorf("invalid arrival_time %q: %w", record[1], err)
	}
	if p.BurstTime, err = strconv.ParseInt(strings.TrimSpace(record[2]), 10, 64); err != nil {
		return p, fmt.Errorf("invalid burst_time %q: %w", record[2], err)
	}
	if len(record) > 3 {
		if cell := strings.TrimSpace(record[3]); cell != "" {
			pr, err := strconv.Atoi(cell)
			if err != nil {
				return p, fmt.Errorf("invalid priority %q: %w", record[3], err)
			}
			p.Priority = &pr
		}
	}
	return p, nil
}
