package entities

import "strings"

// MeetingStatus is an open enum: the recording provider may report statuses
// this service does not know, and those are stored verbatim.
type MeetingStatus string

const (
	MeetingStatusScheduled  MeetingStatus = "scheduled"
	MeetingStatusRecording  MeetingStatus = "recording"
	MeetingStatusProcessing MeetingStatus = "processing"
	MeetingStatusCompleted  MeetingStatus = "completed"
	MeetingStatusFailed     MeetingStatus = "failed"
	MeetingStatusUnknown    MeetingStatus = "unknown"
)

var statusRank = map[MeetingStatus]int{
	MeetingStatusScheduled:  1,
	MeetingStatusRecording:  2,
	MeetingStatusProcessing: 3,
	MeetingStatusCompleted:  4,
}

// ParseMeetingStatus trims the provider value. The result is returned as-is
// even when it is not a known status.
func ParseMeetingStatus(s string) MeetingStatus {
	s = strings.TrimSpace(s)
	if s == "" {
		return MeetingStatusUnknown
	}
	return MeetingStatus(s)
}

func (s MeetingStatus) String() string {
	return string(s)
}

// IsKnown reports whether s is one of the canonical lifecycle statuses
func (s MeetingStatus) IsKnown() bool {
	if s == MeetingStatusFailed {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

// IsTerminal reports whether s is completed or failed
func (s MeetingStatus) IsTerminal() bool {
	return s == MeetingStatusCompleted || s == MeetingStatusFailed
}

// CanTransitionTo applies the forward-only lifecycle
// scheduled → recording → processing → completed, with failed reachable from
// any non-terminal state. Unknown statuses on either side always pass.
func (s MeetingStatus) CanTransitionTo(next MeetingStatus) bool {
	if !next.IsKnown() || !s.IsKnown() {
		return true
	}
	if s == next {
		return true
	}
	if s.IsTerminal() {
		return false
	}
	if next == MeetingStatusFailed {
		return true
	}
	return statusRank[next] > statusRank[s]
}
