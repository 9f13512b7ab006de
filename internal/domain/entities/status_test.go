package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMeetingStatus(t *testing.T) {
	assert.Equal(t, MeetingStatusRecording, ParseMeetingStatus(" recording "))
	assert.Equal(t, MeetingStatus("in_waiting_room"), ParseMeetingStatus("in_waiting_room"))
	assert.Equal(t, MeetingStatusUnknown, ParseMeetingStatus("  "))
}

func TestMeetingStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to MeetingStatus
		want     bool
	}{
		{MeetingStatusScheduled, MeetingStatusRecording, true},
		{MeetingStatusRecording, MeetingStatusProcessing, true},
		{MeetingStatusProcessing, MeetingStatusCompleted, true},
		{MeetingStatusScheduled, MeetingStatusCompleted, true},
		{MeetingStatusRecording, MeetingStatusScheduled, false},
		{MeetingStatusCompleted, MeetingStatusRecording, false},
		{MeetingStatusRecording, MeetingStatusFailed, true},
		{MeetingStatusCompleted, MeetingStatusFailed, false},
		{MeetingStatusFailed, MeetingStatusRecording, false},
		{MeetingStatusCompleted, "call_ended", true},
		{"in_call_recording", MeetingStatusScheduled, true},
		{"", MeetingStatusRecording, true},
		{MeetingStatusProcessing, MeetingStatusProcessing, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}
