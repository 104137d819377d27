// Package realtime queries the BBC radio "realtime" polling endpoint and reports what is on air.
package realtime

import (
	"encoding/json"
	"time"
)

// Record is the provider's description of the track on air for a station.
type Record struct {
	Artist string `json:"artist"`
	Title  string `json:"title"`
	Start  int64  `json:"start"` // Unix seconds.
	End    int64  `json:"end"`   // Unix seconds.

	// Raw holds the complete realtime object as received, including fields this package ignores.
	Raw json.RawMessage `json:"-"`
}

// Observer receives the outcome of every fetch.
type Observer interface {
	ObserveFetch(station, outcome string, elapsed time.Duration)
}

// Fetch outcomes reported to an Observer.
const (
	OutcomeOK             = "ok"
	OutcomeUnknownStation = "unknown_station"
	OutcomeNetworkError   = "network_error"
	OutcomeMalformed      = "malformed"
)

// StartTime returns the broadcast start of the record.
func (r *Record) StartTime() time.Time {
	return time.Unix(r.Start, 0)
}

// EndTime returns the broadcast end of the record.
func (r *Record) EndTime() time.Time {
	return time.Unix(r.End, 0)
}

// AiringAt reports whether now falls within the closed window [start, end].
func (r *Record) AiringAt(now time.Time) bool {
	if r == nil {
		return false
	}
	return !now.Before(r.StartTime()) && !now.After(r.EndTime())
}

// Equal compares the typed fields of two records. Two nil records are equal.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == nil && other == nil
	}
	return r.Artist == other.Artist &&
		r.Title == other.Title &&
		r.Start == other.Start &&
		r.End == other.End
}
