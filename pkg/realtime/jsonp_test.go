package realtime

import (
	"testing"
)

func TestUnwrapJSONP(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "Wrapped object",
			body:     `realtimeCallback({"realtime":{"artist":"A"}})`,
			expected: `{"realtime":{"artist":"A"}}`,
		},
		{
			name:     "Wrapped arbitrary text",
			body:     `realtimeCallback(not json at all)`,
			expected: `not json at all`,
		},
		{
			name:     "Wrapped empty payload",
			body:     `realtimeCallback()`,
			expected: ``,
		},
		{
			name:     "Prefix only",
			body:     `realtimeCallback(`,
			expected: ``,
		},
		{
			name:     "Plain JSON passes through",
			body:     `{"realtime":{"artist":"A"}}`,
			expected: `{"realtime":{"artist":"A"}}`,
		},
		{
			name:     "Other callback passes through",
			body:     `otherCallback({"a":1})`,
			expected: `otherCallback({"a":1})`,
		},
		{
			name:     "Leading whitespace is not stripped",
			body:     ` realtimeCallback({})`,
			expected: ` realtimeCallback({})`,
		},
		{
			name:     "Empty body",
			body:     ``,
			expected: ``,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UnwrapJSONP(tt.body); got != tt.expected {
				t.Errorf("UnwrapJSONP(%q) = %q, want %q", tt.body, got, tt.expected)
			}
		})
	}
}

func TestUnwrapJSONP_RoundTrip(t *testing.T) {
	payloads := []string{
		`{}`,
		`{"realtime":{"artist":"Sigur Rós","title":"Hoppípolla","start":1,"end":2}}`,
		`[1,2,3]`,
		`"realtimeCallback(nested)"`,
	}
	for _, x := range payloads {
		if got := UnwrapJSONP(jsonpPrefix + x + ")"); got != x {
			t.Errorf("UnwrapJSONP(wrap(%q)) = %q", x, got)
		}
		if got := UnwrapJSONP(x); got != x {
			t.Errorf("UnwrapJSONP(%q) = %q, want passthrough", x, got)
		}
	}
}
