package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func boolPtr(v bool) *bool { return &v }

func TestLoadPolicyBundle_ValidYAML(t *testing.T) {
	yaml := `
policy: round-robin
time_quantum: 4
coalesce: true
trace_level: decisions
`
	path := writeTempYAML(t, yaml)
	bundle, err := LoadPolicyBundle(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bundle.Policy != "round-robin" {
		t.Errorf("expected policy 'round-robin', got %q", bundle.Policy)
	}
	if bundle.TimeQuantum == nil || *bundle.TimeQuantum != 4 {
		t.Errorf("expected time_quantum 4, got %v", bundle.TimeQuantum)
	}
	if bundle.Coalesce == nil || !*bundle.Coalesce {
		t.Errorf("expected coalesce true, got %v", bundle.Coalesce)
	}
	if bundle.TraceLevel != "decisions" {
		t.Errorf("expected trace_level 'decisions', got %q", bundle.TraceLevel)
	}
	if err := bundle.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestLoadPolicyBundle_ZeroValueIsDistinctFromUnset(t *testing.T) {
	yaml := `
policy: sjf
coalesce: false
`
	path := writeTempYAML(t, yaml)
	bundle, err := LoadPolicyBundle(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// coalesce: false is explicitly set, not "unset"
	if bundle.Coalesce == nil {
		t.Fatal("expected Coalesce to be non-nil (explicitly set to false)")
	}
	if bundle.TimeQuantum != nil {
		t.Errorf("expected TimeQuantum nil when omitted, got %d", *bundle.TimeQuantum)
	}
}

func TestLoadPolicyBundle_UnknownKey_ReturnsError(t *testing.T) {
	path := writeTempYAML(t, "policy: fcfs\nquantum: 3\n")
	_, err := LoadPolicyBundle(path)
	assert.Error(t, err, "misspelled key must be rejected")
}

func TestLoadPolicyBundle_MissingFile_ReturnsError(t *testing.T) {
	_, err := LoadPolicyBundle(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestPolicyBundle_Validate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		bundle PolicyBundle
	}{
		{"unknown policy", PolicyBundle{Policy: "lottery"}},
		{"zero quantum", PolicyBundle{Policy: "rr", TimeQuantum: int64Ptr(0)}},
		{"negative quantum", PolicyBundle{Policy: "rr", TimeQuantum: int64Ptr(-1)}},
		{"unknown trace level", PolicyBundle{Policy: "fcfs", TraceLevel: "verbose"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.bundle.Validate())
		})
	}
}

func TestPolicyBundle_EmptyBundle_IsValidFCFS(t *testing.T) {
	var b PolicyBundle
	require.NoError(t, b.Validate())
	p, err := b.PolicyValue()
	require.NoError(t, err)
	assert.Equal(t, PolicyFCFS, p)

	params := b.Params()
	assert.Equal(t, DefaultTimeQuantum, params.TimeQuantum)
	assert.False(t, params.Coalesce)
	assert.Nil(t, params.Trace)
}

func TestPolicyBundle_Params_AppliesFields(t *testing.T) {
	b := PolicyBundle{
		Policy:      "round-robin",
		TimeQuantum: int64Ptr(5),
		Coalesce:    boolPtr(true),
		TraceLevel:  "decisions",
	}
	params := b.Params()
	assert.Equal(t, int64(5), params.TimeQuantum)
	assert.True(t, params.Coalesce)
	require.NotNil(t, params.Trace)
	assert.True(t, params.Trace.Enabled())
}

func TestPolicyBundle_Params_RoundRobinWithoutQuantum_Warns(t *testing.T) {
	// GIVEN a round robin bundle with no time_quantum
	hook := test.NewGlobal()
	defer hook.Reset()
	b := PolicyBundle{Policy: "rr"}

	// WHEN params are derived
	params := b.Params()

	// THEN the default quantum is used and a warning is logged
	assert.Equal(t, DefaultTimeQuantum, params.TimeQuantum)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestPolicyBundle_DrivesSimulate(t *testing.T) {
	path := writeTempYAML(t, "policy: preemptive-priority\ncoalesce: true\n")
	bundle, err := LoadPolicyBundle(path)
	require.NoError(t, err)
	require.NoError(t, bundle.Validate())

	policy, err := bundle.PolicyValue()
	require.NoError(t, err)
	schedule, err := Simulate(sampleProcesses(), policy, bundle.Params())
	require.NoError(t, err)

	want := Schedule{{1, 0, 1}, {2, 1, 4}, {1, 4, 7}, {4, 7, 12}, {3, 12, 14}}
	assert.Equal(t, want, schedule)
}

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
