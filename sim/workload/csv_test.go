package workload

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSVProcesses_WithPriority(t *testing.T) {
	path := writeTempFile(t, "p.csv", "id,arrival_time,burst_time,priority\n1,0,4,2\n2, 1, 3, 1\n3,2,2,\n")

	processes, err := LoadCSVProcesses(path)
	require.NoError(t, err)
	require.Len(t, processes, 3)

	assert.Equal(t, 2, processes[1].ID)
	assert.Equal(t, int64(1), processes[1].ArrivalTime)
	assert.Equal(t, int64(3), processes[1].BurstTime)
	require.NotNil(t, processes[1].Priority)
	assert.Equal(t, 1, *processes[1].Priority)
	assert.Nil(t, processes[2].Priority, "empty priority cell stays unset")
}

func TestReadCSVProcesses_ThreeColumns(t *testing.T) {
	processes, err := ReadCSVProcesses(strings.NewReader("ID,Arrival_Time,Burst_Time\n7,5,1\n"))
	require.NoError(t, err)
	require.Len(t, processes, 1)
	assert.Equal(t, 7, processes[0].ID)
	assert.Nil(t, processes[0].Priority)
}

func TestReadCSVProcesses_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"header only", "id,arrival_time,burst_time\n"},
		{"wrong header", "pid,arrival,burst\n1,0,1\n"},
		{"too few columns", "id,arrival_time\n1,0\n"},
		{"ragged record", "id,arrival_time,burst_time\n1,0\n"},
		{"non-numeric burst", "id,arrival_time,burst_time\n1,0,x\n"},
		{"non-numeric priority", "id,arrival_time,burst_time,priority\n1,0,1,high\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSVProcesses(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestLoadCSVProcesses_MissingFile(t *testing.T) {
	_, err := LoadCSVProcesses(filepath.Join(t.TempDir(), "none.csv"))
	assert.Error(t, err)
}
