package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"bbcrealtime/pkg/realtime"
)

var _ realtime.Observer = (*Metrics)(nil)

func TestMetrics_ObserveFetch(t *testing.T) {
	m := New()

	m.ObserveFetch("bbc6music", realtime.OutcomeOK, 120*time.Millisecond)
	m.ObserveFetch("bbc6music", realtime.OutcomeOK, 80*time.Millisecond)
	m.ObserveFetch("bbcradio1", realtime.OutcomeNetworkError, time.Second)

	if got := testutil.ToFloat64(m.FetchesTotal.WithLabelValues("bbc6music", realtime.OutcomeOK)); got != 2 {
		t.Errorf("fetches_total{bbc6music,ok} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.FetchesTotal.WithLabelValues("bbcradio1", realtime.OutcomeNetworkError)); got != 1 {
		t.Errorf("fetches_total{bbcradio1,network_error} = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.FetchDuration); got != 2 {
		t.Errorf("fetch_duration_seconds series = %d, want 2", got)
	}
}

func TestMetrics_SetNowPlaying(t *testing.T) {
	m := New()

	m.SetNowPlaying("bbc6music", true)
	if got := testutil.ToFloat64(m.NowPlaying.WithLabelValues("bbc6music")); got != 1 {
		t.Errorf("now_playing = %v, want 1", got)
	}

	m.SetNowPlaying("bbc6music", false)
	if got := testutil.ToFloat64(m.NowPlaying.WithLabelValues("bbc6music")); got != 0 {
		t.Errorf("now_playing = %v, want 0", got)
	}
}

func TestMetrics_PrivateRegistries(t *testing.T) {
	// Two instances must not collide the way a global registry would.
	first := New()
	second := New()

	first.RecordSpotifyLookup("found")
	if got := testutil.ToFloat64(second.SpotifyLookups.WithLabelValues("found")); got != 0 {
		t.Errorf("second registry saw %v lookups, want 0", got)
	}
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := New()
	m.ObserveFetch("bbc6music", realtime.OutcomeOK, 50*time.Millisecond)
	m.SetNowPlaying("bbc6music", true)
	m.RecordSpotifyLookup("not_found")

	path := filepath.Join(t.TempDir(), "bbcrealtime.prom")
	if err := m.WriteTextfile(path, time.Unix(1700000000, 0)); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read textfile: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		`bbcrealtime_fetches_total{outcome="ok",station="bbc6music"} 1`,
		`bbcrealtime_now_playing{station="bbc6music"} 1`,
		`bbcrealtime_spotify_lookups_total{status="not_found"} 1`,
		`bbcrealtime_last_run_timestamp_seconds 1.7e+09`,
		`bbcrealtime_fetch_duration_seconds_count{station="bbc6music"} 1`,
	} {
		if !strings.Contains(content, want) {
			t.Errorf("textfile missing %q:\n%s", want, content)
		}
	}
}

func TestMetrics_WriteTextfile_BadPath(t *testing.T) {
	m := New()

	path := filepath.Join(t.TempDir(), "missing-dir", "metrics.prom")
	if err := m.WriteTextfile(path, time.Now()); err == nil {
		t.Error("WriteTextfile into a missing directory should fail")
	}
}
