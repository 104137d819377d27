package core

import (
	"testing"
	"time"

	"bbcrealtime/internal/i18n"
	"bbcrealtime/pkg/realtime"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.App.Language != i18n.DefaultLanguage {
		t.Errorf("Expected default language to be %s, got %s", i18n.DefaultLanguage, config.App.Language)
	}

	if config.App.Station != realtime.DefaultStation {
		t.Errorf("Expected default station %s, got %s", realtime.DefaultStation, config.App.Station)
	}

	if config.Realtime.URLTemplate != realtime.DefaultURLTemplate {
		t.Errorf("Expected default URL template %s, got %s", realtime.DefaultURLTemplate, config.Realtime.URLTemplate)
	}

	if config.Realtime.Timeout != 0 {
		t.Errorf("Expected no default timeout, got %v", config.Realtime.Timeout)
	}

	if config.App.FailOnEmpty {
		t.Error("Expected fail-on-empty to be disabled by default")
	}

	if config.Spotify.Enabled() {
		t.Error("Expected Spotify lookups to be disabled without credentials")
	}
}

func TestSpotifyConfig_Enabled(t *testing.T) {
	tests := []struct {
		name     string
		config   SpotifyConfig
		expected bool
	}{
		{name: "No credentials", config: SpotifyConfig{}, expected: false},
		{name: "Only client ID", config: SpotifyConfig{ClientID: "id"}, expected: false},
		{name: "Only secret", config: SpotifyConfig{ClientSecret: "secret"}, expected: false},
		{name: "Both", config: SpotifyConfig{ClientID: "id", ClientSecret: "secret"}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.Enabled(); got != tt.expected {
				t.Errorf("Enabled() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRealtimeClientConfig(t *testing.T) {
	config := DefaultConfig()
	config.Realtime.URLTemplate = "http://localhost/{slug}.jsonp"
	config.Realtime.Timeout = 5 * time.Second

	rc := config.RealtimeClientConfig()
	if rc.URLTemplate != config.Realtime.URLTemplate || rc.Timeout != config.Realtime.Timeout {
		t.Errorf("RealtimeClientConfig() = %+v, want template and timeout copied", rc)
	}
}

func TestConfigConstants(t *testing.T) {
	if DefaultLogFileMaxSizeMB <= 0 {
		t.Error("DefaultLogFileMaxSizeMB should be positive")
	}

	if DefaultLogFileMaxBackups < 0 {
		t.Error("DefaultLogFileMaxBackups should not be negative")
	}
}
