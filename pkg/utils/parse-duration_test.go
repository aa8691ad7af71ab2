package utils

import (
	"testing"
	"time"
)

func TestParseDurationString(t *testing.T) {
	tests := []struct {
		input      string
		expected   time.Duration
		shouldFail bool
	}{
		{"", 0, true},
		{"60", 0, true},
		{"60s", time.Minute, false},
		{"1m", time.Minute, false},
		{"720h", 720 * time.Hour, false},
		{"30d", 0, true}, // days are not supported
		{"250ms", 250 * time.Millisecond, false},
	}

	for _, test := range tests {
		result, err := ParseDurationString(test.input)
		if test.shouldFail {
			if err == nil {
				t.Errorf("expected error for input %s, but got nil", test.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("expected no error for input %s, but got %s", test.input, err)
		}
		if result != test.expected {
			t.Errorf("expected %s for input %s, but got %s", test.expected, test.input, result)
		}
	}
}
