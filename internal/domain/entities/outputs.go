package entities

// OutputsResult is what one orchestrator run produced. Errors collects every
// recorded stage failure; a non-empty QuickSummary means Stage 1 succeeded.
type OutputsResult struct {
	QuickSummary         string   `json:"quick_summary"`
	ActionItems          []string `json:"action_items"`
	DetailedSummary      string   `json:"detailed_summary"`
	ClientSummaryUpdated bool     `json:"client_summary_updated"`
	PipelineUpdated      bool     `json:"pipeline_updated"`
	PipelineSkipped      bool     `json:"pipeline_skipped"`
	Errors               []string `json:"errors"`
}

// AddError records a stage failure
func (r *OutputsResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// HasErrors reports whether any stage failed
func (r *OutputsResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Failed reports a run that produced no quick summary because of an error
func (r *OutputsResult) Failed() bool {
	return r.QuickSummary == "" && r.HasErrors()
}
