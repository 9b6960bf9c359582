package model

import "testing"

func TestSessionState_IsBusy(t *testing.T) {
	tests := []struct {
		state    SessionState
		expected bool
	}{
		{SessionIdle, false},
		{SessionRunning, true},
		{SessionStopping, true},
	}

	for _, test := range tests {
		result := test.state.IsBusy()
		if result != test.expected {
			t.Errorf("SessionState(%s).IsBusy() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestSessionState_IsIdle(t *testing.T) {
	tests := []struct {
		state    SessionState
		expected bool
	}{
		{SessionIdle, true},
		{SessionRunning, false},
		{SessionStopping, false},
	}

	for _, test := range tests {
		result := test.state.IsIdle()
		if result != test.expected {
			t.Errorf("SessionState(%s).IsIdle() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestSessionState_String(t *testing.T) {
	status := SessionRunning
	expected := "Running"
	result := status.String()

	if result != expected {
		t.Errorf("SessionState.String() = %s, expected %s", result, expected)
	}
}
