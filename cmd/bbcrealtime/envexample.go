package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var envExamplePath string

type envSetting struct {
	flag    string
	example string
	comment string
}

type envSection struct {
	title    string
	notes    []string
	settings []envSetting
}

var envSections = []envSection{
	{
		title: "REALTIME ENDPOINT",
		settings: []envSetting{
			{flag: "url-template", comment: "Endpoint URL, {slug} is replaced with the station slug"},
			{flag: "timeout", comment: "HTTP timeout, 0 keeps the Go client default"},
		},
	},
	{
		title: "OUTPUT",
		settings: []envSetting{
			{flag: "language", comment: "Report language: en, ch_be"},
			{flag: "raw", comment: "Print the raw realtime JSON above each record"},
			{flag: "fail-on-empty", comment: "Exit 1 when the station announces nothing"},
			{flag: "metrics-textfile", example: "/var/lib/node_exporter/bbcrealtime.prom",
				comment: "Prometheus textfile written after each run"},
		},
	},
	{
		title: "SPOTIFY - Optional",
		notes: []string{
			"Get these from https://developer.spotify.com/dashboard",
			"When both are set, a Spotify link is added to the report",
		},
		settings: []envSetting{
			{flag: "spotify-client-id", example: "your_spotify_client_id_here", comment: "Spotify app client ID"},
			{flag: "spotify-client-secret", example: "your_spotify_client_secret_here", comment: "Spotify app client secret"},
			{flag: "spotify-market", comment: "Market used for track search"},
		},
	},
	{
		title: "LOGGING",
		settings: []envSetting{
			{flag: "log-level", comment: "debug, info, warn, error"},
			{flag: "log-format", comment: "console or json"},
			{flag: "log-file", example: "./bbcrealtime.log", comment: "Rotating JSON log file"},
		},
	},
}

func generateEnvExample(cmd *cobra.Command, _ []string) error {
	content := generateEnvExampleContent(cmd.Root())

	if err := os.WriteFile(envExamplePath, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", envExamplePath, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", envExamplePath)
	return nil
}

func generateEnvExampleContent(root *cobra.Command) string {
	var content strings.Builder

	rule := strings.Repeat("=", 77)
	fmt.Fprintf(&content, "# %s\n", rule)
	content.WriteString("# bbcrealtime Configuration\n")
	fmt.Fprintf(&content, "# %s\n", rule)
	content.WriteString("#\n")
	content.WriteString("# Copy this file to .env and update with your values\n")
	content.WriteString("# Every variable has a CLI flag equivalent (see --help)\n")
	content.WriteString("#\n")
	fmt.Fprintf(&content, "# Format: %s_<SETTING>=value\n", envPrefix)
	content.WriteString("# CLI equivalent: --<setting>\n")
	content.WriteString("\n")

	for _, section := range envSections {
		fmt.Fprintf(&content, "# %s\n", rule)
		fmt.Fprintf(&content, "# %s\n", section.title)
		fmt.Fprintf(&content, "# %s\n", rule)
		for _, note := range section.notes {
			fmt.Fprintf(&content, "# %s\n", note)
		}

		for _, setting := range section.settings {
			def := getDefaultValueString(root, setting.flag)
			value := def
			if setting.example != "" {
				value = setting.example
			}
			fmt.Fprintf(&content, "%s=%s  # %s (default: %q)\n",
				flagToEnvVar(setting.flag), value, setting.comment, def)
		}
		content.WriteString("\n")
	}

	return content.String()
}

func flagToEnvVar(flagName string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

func getDefaultValueString(cmd *cobra.Command, flagName string) string {
	if f := cmd.PersistentFlags().Lookup(flagName); f != nil {
		return f.DefValue
	}
	return ""
}
