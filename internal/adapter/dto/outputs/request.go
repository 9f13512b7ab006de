package outputs

// RegenerateRequest optionally replaces the stored transcript before the
// pipeline reruns. An empty Transcript reuses the stored one.
type RegenerateRequest struct {
	Transcript string `json:"transcript" validate:"max=1000000"`
}
