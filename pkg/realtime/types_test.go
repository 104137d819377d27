package realtime

import (
	"testing"
	"time"
)

func TestRecord_AiringAt(t *testing.T) {
	record := &Record{Artist: "A", Title: "T", Start: 1000, End: 2000}

	tests := []struct {
		name     string
		now      time.Time
		expected bool
	}{
		{name: "One second before start", now: time.Unix(999, 0), expected: false},
		{name: "Just before start", now: time.Unix(999, int64(999*time.Millisecond)), expected: false},
		{name: "Exactly at start", now: time.Unix(1000, 0), expected: true},
		{name: "Inside window", now: time.Unix(1500, 0), expected: true},
		{name: "Exactly at end", now: time.Unix(2000, 0), expected: true},
		{name: "Just after end", now: time.Unix(2000, 1), expected: false},
		{name: "After end", now: time.Unix(2500, 0), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := record.AiringAt(tt.now); got != tt.expected {
				t.Errorf("AiringAt(%v) = %v, want %v", tt.now, got, tt.expected)
			}
		})
	}

	var missing *Record
	if missing.AiringAt(time.Unix(1500, 0)) {
		t.Error("nil record should never be airing")
	}
}

func TestRecord_Equal(t *testing.T) {
	base := &Record{Artist: "A", Title: "T", Start: 1, End: 2, Raw: []byte(`{"a":1}`)}

	tests := []struct {
		name     string
		a, b     *Record
		expected bool
	}{
		{name: "Both nil", a: nil, b: nil, expected: true},
		{name: "Nil and record", a: nil, b: base, expected: false},
		{name: "Record and nil", a: base, b: nil, expected: false},
		{name: "Same pointer", a: base, b: base, expected: true},
		{
			name:     "Same fields, different raw",
			a:        base,
			b:        &Record{Artist: "A", Title: "T", Start: 1, End: 2},
			expected: true,
		},
		{
			name:     "Different title",
			a:        base,
			b:        &Record{Artist: "A", Title: "U", Start: 1, End: 2},
			expected: false,
		},
		{
			name:     "Different window",
			a:        base,
			b:        &Record{Artist: "A", Title: "T", Start: 1, End: 3},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.expected {
				t.Errorf("Equal() = %v, want %v", got, tt.expected)
			}
		})
	}
}
