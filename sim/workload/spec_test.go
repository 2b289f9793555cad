package workload

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedsim/schedsim/sim"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadWorkloadSpec_ExplicitProcesses(t *testing.T) {
	path := writeTempFile(t, "w.yaml", `
version: "1"
processes:
  - {id: 1, arrival_time: 0, burst_time: 4, priority: 2}
  - {id: 2, arrival_time: 1, burst_time: 3}
`)
	spec, err := LoadWorkloadSpec(path)
	require.NoError(t, err)

	processes, err := spec.Build()
	require.NoError(t, err)
	require.Len(t, processes, 2)
	assert.Equal(t, 1, processes[0].ID)
	require.NotNil(t, processes[0].Priority)
	assert.Equal(t, 2, *processes[0].Priority)
	assert.Nil(t, processes[1].Priority, "omitted priority stays unset")
}

func TestLoadWorkloadSpec_MissingVersion_DefaultsToCurrent(t *testing.T) {
	path := writeTempFile(t, "w.yaml", "processes:\n  - {id: 1, arrival_time: 0, burst_time: 1}\n")
	spec, err := LoadWorkloadSpec(path)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, spec.Version)
}

func TestLoadWorkloadSpec_UnknownField_ReturnsError(t *testing.T) {
	path := writeTempFile(t, "w.yaml", "version: \"1\"\nprocesess: []\n")
	_, err := LoadWorkloadSpec(path)
	assert.Error(t, err)
}

func TestWorkloadSpec_Validate_Rejects(t *testing.T) {
	tests := []struct {
		name string
		spec WorkloadSpec
	}{
		{"no processes or generator", WorkloadSpec{Version: "1"}},
		{"bad version", WorkloadSpec{Version: "9", Processes: []sim.Process{{ID: 1, BurstTime: 1}}}},
		{"duplicate id", WorkloadSpec{Version: "1", Processes: []sim.Process{{ID: 1, BurstTime: 1}, {ID: 1, BurstTime: 2}}}},
		{"zero burst", WorkloadSpec{Version: "1", Processes: []sim.Process{{ID: 1}}}},
		{"negative arrival", WorkloadSpec{Version: "1", Processes: []sim.Process{{ID: 1, ArrivalTime: -1, BurstTime: 1}}}},
		{"generator burst min zero", WorkloadSpec{Version: "1", Generator: &GeneratorSpec{Count: 3, Burst: IntRange{0, 4}}}},
		{"generator inverted burst", WorkloadSpec{Version: "1", Generator: &GeneratorSpec{Count: 3, Burst: IntRange{5, 4}}}},
		{"generator unknown arrival", WorkloadSpec{Version: "1", Generator: &GeneratorSpec{Count: 3, ArrivalProcess: "bursty", Burst: IntRange{1, 4}}}},
		{"generator inverted priority", WorkloadSpec{Version: "1", Generator: &GeneratorSpec{Count: 3, Burst: IntRange{1, 4}, Priority: &IntRange{3, 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.spec.Validate())
		})
	}
}

func TestGeneratorSpec_Validate_RejectsOverflowingRanges(t *testing.T) {
	tests := []struct {
		name string
		spec GeneratorSpec
	}{
		{"arrival span at max int64", GeneratorSpec{Count: 3, ArrivalSpan: math.MaxInt64, Burst: IntRange{1, 5}}},
		{"priority wider than max int64", GeneratorSpec{Count: 3, Burst: IntRange{1, 5}, Priority: &IntRange{math.MinInt64 / 2, math.MaxInt64/2 + 10}}},
		{"priority spanning all of int64", GeneratorSpec{Count: 3, Burst: IntRange{1, 5}, Priority: &IntRange{math.MinInt64, math.MaxInt64}}},
		{"priority width exactly max int64", GeneratorSpec{Count: 3, Burst: IntRange{1, 5}, Priority: &IntRange{0, math.MaxInt64}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.spec.Validate())

			// Generate must report the same problem instead of panicking
			assert.NotPanics(t, func() {
				_, err := Generate(tt.spec, NewPartitionedRNG(NewSimulationKey(1)), 1)
				assert.Error(t, err)
			})
		})
	}
}

func TestGenerate_WidestAcceptedRanges_DoNotPanic(t *testing.T) {
	// GIVEN the widest ranges Validate still accepts
	for _, arrival := range []string{ArrivalUniform, ArrivalPoisson} {
		g := GeneratorSpec{
			Count:          20,
			ArrivalSpan:    math.MaxInt64 - 1,
			ArrivalProcess: arrival,
			Burst:          IntRange{1, math.MaxInt64},
			Priority:       &IntRange{-(math.MaxInt64 / 2), math.MaxInt64 / 2},
		}
		require.NoError(t, g.Validate(), arrival)

		// WHEN generated
		var processes []sim.Process
		var err error
		require.NotPanics(t, func() {
			processes, err = Generate(g, NewPartitionedRNG(NewSimulationKey(3)), 1)
		}, arrival)

		// THEN every draw stays inside its range
		require.NoError(t, err)
		for _, p := range processes {
			assert.GreaterOrEqual(t, p.ArrivalTime, int64(0))
			assert.GreaterOrEqual(t, p.BurstTime, int64(1))
			require.NotNil(t, p.Priority)
			assert.GreaterOrEqual(t, int64(*p.Priority), g.Priority.Min)
			assert.LessOrEqual(t, int64(*p.Priority), g.Priority.Max)
		}
	}
}

func TestPoissonSampler_SaturatesInsteadOfWrapping(t *testing.T) {
	s := &PoissonSampler{meanGap: float64(math.MaxInt64)}
	rng := rand.New(rand.NewSource(9))
	prev := int64(math.MaxInt64 - 10)
	for i := 0; i < 100; i++ {
		got := s.SampleArrival(rng, prev)
		if got < prev {
			t.Fatalf("arrival %d went below previous %d", got, prev)
		}
		prev = got
	}
}

func TestWorkloadSpec_Build_GeneratedIDsFollowExplicit(t *testing.T) {
	// GIVEN explicit ids up to 10 and a generator for 5 more
	spec := WorkloadSpec{
		Version:   "1",
		Seed:      42,
		Processes: []sim.Process{{ID: 10, BurstTime: 2}, {ID: 3, ArrivalTime: 1, BurstTime: 1}},
		Generator: &GeneratorSpec{Count: 5, ArrivalSpan: 20, Burst: IntRange{1, 6}},
	}

	// WHEN built
	processes, err := spec.Build()
	require.NoError(t, err)

	// THEN explicit processes come first and generated ids start at 11
	require.Len(t, processes, 7)
	assert.Equal(t, 10, processes[0].ID)
	assert.Equal(t, 3, processes[1].ID)
	for i, p := range processes[2:] {
		assert.Equal(t, 11+i, p.ID)
	}

	// THEN the result is accepted by every policy that ignores priority
	_, err = sim.Simulate(processes, sim.PolicySJF, sim.Params{})
	assert.NoError(t, err)
}

func TestWriteWorkloadSpec_RoundTripsThroughLoader(t *testing.T) {
	// GIVEN a generated workload materialized as explicit processes
	rng := NewPartitionedRNG(NewSimulationKey(7))
	processes, err := Generate(GeneratorSpec{Count: 4, ArrivalSpan: 10, Burst: IntRange{1, 5}, Priority: &IntRange{0, 3}}, rng, 1)
	require.NoError(t, err)
	data, err := WriteWorkloadSpec(&WorkloadSpec{Version: CurrentVersion, Seed: 7, Processes: processes})
	require.NoError(t, err)

	// WHEN the YAML is loaded back
	spec, err := LoadWorkloadSpec(writeTempFile(t, "gen.yaml", string(data)))
	require.NoError(t, err)
	got, err := spec.Build()
	require.NoError(t, err)

	// THEN the processes are identical
	assert.Equal(t, processes, got)
}

func TestExampleWorkloads_Load(t *testing.T) {
	for _, name := range []string{"sample-workload.yaml", "generated-workload.yaml"} {
		t.Run(name, func(t *testing.T) {
			spec, err := LoadWorkloadSpec(filepath.Join("..", "..", "examples", name))
			require.NoError(t, err)
			processes, err := spec.Build()
			require.NoError(t, err)
			for _, policy := range sim.AllPolicies {
				_, err := sim.Simulate(processes, policy, sim.Params{TimeQuantum: sim.DefaultTimeQuantum})
				assert.NoErrorf(t, err, "policy %s", policy)
			}
		})
	}

	processes, err := LoadCSVProcesses(filepath.Join("..", "..", "examples", "sample.csv"))
	require.NoError(t, err)
	assert.Len(t, processes, 4)
}
