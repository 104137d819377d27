// Package main provides the bbcrealtime CLI application entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"bbcrealtime/internal/core"
	"bbcrealtime/internal/i18n"
	"bbcrealtime/internal/logging"
	"bbcrealtime/internal/metrics"
	"bbcrealtime/internal/spotify"
	"bbcrealtime/pkg/realtime"
)

const envPrefix = "BBCREALTIME"

var (
	cfgFile string
	config  *core.Config
	logger  *zap.Logger
)

var headingStyle = lipgloss.NewStyle().Bold(true)

func heading(s string) string {
	return headingStyle.Render(s)
}

var rootCmd = &cobra.Command{
	Use:   "bbcrealtime [station]",
	Short: "What's playing on BBC music radio?",
	Long: `bbcrealtime polls the BBC realtime endpoint for a radio station and reports the
track it announces, and whether that track is airing right now.`,
	Args:          validateStationArgs,
	ValidArgs:     realtime.SupportedIDs(),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBBCRealtime,
}

var stationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "List supported stations",
	Args:  cobra.NoArgs,
	RunE:  runStations,
}

var envExampleCmd = &cobra.Command{
	Use:   "env-example",
	Short: "Write a .env.example file describing every setting",
	Args:  cobra.NoArgs,
	RunE:  generateEnvExample,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if logger != nil {
		_ = logger.Sync()
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := core.DefaultConfig()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().String("log-level", defaults.Log.Level, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", defaults.Log.Format, "log format (console, json)")
	rootCmd.PersistentFlags().String("log-file", "", "also write JSON logs to this rotating file")
	rootCmd.PersistentFlags().String("url-template", defaults.Realtime.URLTemplate,
		"realtime endpoint URL, {slug} is replaced with the station slug")
	rootCmd.PersistentFlags().Duration("timeout", defaults.Realtime.Timeout, "HTTP timeout (0 uses the client default)")
	supportedLangs := strings.Join(i18n.GetSupportedLanguages(), ", ")
	rootCmd.PersistentFlags().String("language", defaults.App.Language, fmt.Sprintf("report language (%s)", supportedLangs))
	rootCmd.PersistentFlags().Bool("raw", false, "also print the raw realtime JSON")
	rootCmd.PersistentFlags().Bool("fail-on-empty", false, "exit non-zero when neither snapshot has data")
	rootCmd.PersistentFlags().String("metrics-textfile", "", "write Prometheus metrics to this file after the run")
	rootCmd.PersistentFlags().String("spotify-client-id", "", "Spotify client ID (enables Spotify links)")
	rootCmd.PersistentFlags().String("spotify-client-secret", "", "Spotify client secret")
	rootCmd.PersistentFlags().String("spotify-market", defaults.Spotify.Market, "Spotify market for track search")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bind flags: %v\n", err)
		os.Exit(1)
	}

	envExampleCmd.Flags().StringVar(&envExamplePath, "output", ".env.example", "file to write")

	rootCmd.AddCommand(stationsCmd, envExampleCmd)
}

func initConfig() {
	envFile := ".env"
	if cfgFile != "" {
		envFile = cfgFile
	}

	if err := gotenv.Load(envFile); err != nil {
		// A missing .env is normal; anything else is worth mentioning.
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		}
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	config = buildConfig()

	built, err := logging.New(config.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	logger = built
}

func buildConfig() *core.Config {
	cfg := core.DefaultConfig()

	configureRealtime(cfg)
	configureSpotify(cfg)
	configureLogging(cfg)
	configureApp(cfg)

	return cfg
}

func configureRealtime(cfg *core.Config) {
	if template := viper.GetString("url-template"); template != "" {
		cfg.Realtime.URLTemplate = template
	}
	cfg.Realtime.Timeout = viper.GetDuration("timeout")
	if cfg.Realtime.Timeout < 0 {
		fmt.Fprintf(os.Stderr, "Warning: Negative timeout (%s), using the client default\n", cfg.Realtime.Timeout)
		cfg.Realtime.Timeout = 0
	}
}

func configureSpotify(cfg *core.Config) {
	cfg.Spotify.ClientID = viper.GetString("spotify-client-id")
	cfg.Spotify.ClientSecret = viper.GetString("spotify-client-secret")
	cfg.Spotify.Market = viper.GetString("spotify-market")
}

func configureLogging(cfg *core.Config) {
	cfg.Log.Level = viper.GetString("log-level")
	cfg.Log.Format = viper.GetString("log-format")
	cfg.Log.File = viper.GetString("log-file")
}

func configureApp(cfg *core.Config) {
	cfg.App.Raw = viper.GetBool("raw")
	cfg.App.FailOnEmpty = viper.GetBool("fail-on-empty")
	cfg.Metrics.TextfilePath = viper.GetString("metrics-textfile")

	cfg.App.Language = viper.GetString("language")
	if cfg.App.Language == "" {
		cfg.App.Language = i18n.DefaultLanguage
	}
	if !i18n.IsSupported(cfg.App.Language) {
		fmt.Fprintf(os.Stderr, "Warning: Unsupported language '%s', falling back to '%s'. Supported languages: %s\n",
			cfg.App.Language, i18n.DefaultLanguage, strings.Join(i18n.GetSupportedLanguages(), ", "))
		cfg.App.Language = i18n.DefaultLanguage
	}
}

func validateStationArgs(_ *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("accepts at most 1 station, received %d", len(args))
	}
	if len(args) == 1 {
		if _, ok := realtime.Resolve(args[0]); !ok {
			return fmt.Errorf("invalid station %q (choose from %s)", args[0],
				strings.Join(realtime.SupportedIDs(), ", "))
		}
	}
	return nil
}

func runBBCRealtime(cmd *cobra.Command, args []string) error {
	station := config.App.Station
	if len(args) > 0 {
		station = realtime.NormalizeStationID(args[0])
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger.Debug("Checking station",
		zap.String("station", station),
		zap.String("url_template", config.Realtime.URLTemplate),
		zap.Bool("spotify_enabled", config.Spotify.Enabled()))

	fetchMetrics := metrics.New()
	client := realtime.NewClient(config.RealtimeClientConfig(), logger.Named("realtime"),
		realtime.WithObserver(fetchMetrics))

	report, err := core.BuildReport(ctx, client, station, time.Now)
	if err != nil {
		return fmt.Errorf("failed to read realtime data: %w", err)
	}
	fetchMetrics.SetNowPlaying(station, report.NowPlaying != nil)

	report.SpotifyURL = lookupSpotify(ctx, report, fetchMetrics)

	localizer := i18n.NewLocalizer(config.App.Language)
	fmt.Fprint(cmd.OutOrStdout(), report.Format(localizer, core.FormatOptions{
		Raw:     config.App.Raw,
		Heading: heading,
	}))

	if config.Metrics.TextfilePath != "" {
		if err := fetchMetrics.WriteTextfile(config.Metrics.TextfilePath, time.Now()); err != nil {
			logger.Error("Failed to write metrics", zap.Error(err))
		}
	}

	if config.App.FailOnEmpty && report.Empty() {
		return errors.New(localizer.T("error.no_data", station))
	}
	return nil
}

func lookupSpotify(ctx context.Context, report *core.Report, fetchMetrics *metrics.Metrics) string {
	track := report.Track()
	if !config.Spotify.Enabled() || track == nil {
		return ""
	}

	spotifyLogger := logger.Named("spotify")
	client := spotify.NewClient(&config.Spotify, spotifyLogger)
	if err := client.Authenticate(ctx); err != nil {
		spotifyLogger.Warn("Spotify authentication failed", zap.Error(err))
		fetchMetrics.RecordSpotifyLookup("error")
		return ""
	}

	match, err := client.FindTrack(ctx, track.Artist, track.Title, track.EndTime().Sub(track.StartTime()))
	switch {
	case errors.Is(err, spotify.ErrNoMatch):
		spotifyLogger.Info("No Spotify match",
			zap.String("artist", track.Artist),
			zap.String("title", track.Title))
		fetchMetrics.RecordSpotifyLookup("not_found")
		return ""
	case err != nil:
		spotifyLogger.Warn("Spotify lookup failed", zap.Error(err))
		fetchMetrics.RecordSpotifyLookup("error")
		return ""
	}

	fetchMetrics.RecordSpotifyLookup("found")
	return match.URL
}

func runStations(cmd *cobra.Command, _ []string) error {
	localizer := i18n.NewLocalizer(config.App.Language)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, heading(localizer.T("stations.header")))
	for _, s := range realtime.Stations() {
		fmt.Fprintln(out, localizer.T("format.station", s.ID, s.Slug))
	}
	return nil
}
