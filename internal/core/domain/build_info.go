package domain

import "time"

// BuildInfo is the record kept for a task after its last successful run.
// The task is skipped on a later run while both hashes still match.
type BuildInfo struct {
	TaskName   string    `json:"task_name,omitzero"`
	Kind       TaskKind  `json:"kind,omitzero"`
	InputHash  string    `json:"input_hash,omitzero"`
	OutputHash string    `json:"output_hash,omitzero"`
	Timestamp  time.Time `json:"timestamp,omitzero"`
}

// NewBuildInfo records a run of task that finished at the given time.
func NewBuildInfo(task *Task, inputHash, outputHash string, at time.Time) BuildInfo {
	return BuildInfo{
		TaskName:   task.Name.String(),
		Kind:       task.Kind,
		InputHash:  inputHash,
		OutputHash: outputHash,
		Timestamp:  at,
	}
}

// MatchesInputs reports whether the record was written for the same inputs.
// A nil record matches nothing.
func (b *BuildInfo) MatchesInputs(inputHash string) bool {
	return b != nil && inputHash != "" && b.InputHash == inputHash
}

// MatchesOutputs reports whether the outputs are unchanged since the record was written.
func (b *BuildInfo) MatchesOutputs(outputHash string) bool {
	return b != nil && b.OutputHash == outputHash
}
