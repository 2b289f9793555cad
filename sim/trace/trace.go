package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every dispatch and idle decision.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects decision records during one simulate call.
// It is owned by the caller; the engine only appends to it.
type SimulationTrace struct {
	Config     TraceConfig
	Dispatches []DispatchRecord
	Idles      []IdleRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:     config,
		Dispatches: make([]DispatchRecord, 0),
		Idles:      make([]IdleRecord, 0),
	}
}

// Enabled reports whether records should be collected.
// A nil trace is never enabled.
func (st *SimulationTrace) Enabled() bool {
	return st != nil && st.Config.Level == TraceLevelDecisions
}

// RecordDispatch appends a dispatch decision record.
func (st *SimulationTrace) RecordDispatch(record DispatchRecord) {
	if !st.Enabled() {
		return
	}
	st.Dispatches = append(st.Dispatches, record)
}

// RecordIdle appends an idle gap record.
func (st *SimulationTrace) RecordIdle(record IdleRecord) {
	if !st.Enabled() {
		return
	}
	st.Idles = append(st.Idles, record)
}

// Reset drops all collected records, keeping the config.
func (st *SimulationTrace) Reset() {
	if st == nil {
		return
	}
	st.Dispatches = st.Dispatches[:0]
	st.Idles = st.Idles[:0]
}
