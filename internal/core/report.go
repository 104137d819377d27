package core

import (
	"context"
	"strings"
	"time"

	"bbcrealtime/internal/i18n"
	"bbcrealtime/pkg/realtime"
)

// Report holds the two snapshots taken for one station.
type Report struct {
	Station    string
	Realtime   *realtime.Record
	NowPlaying *realtime.Record
	Now        time.Time
	// SpotifyURL links the reported track on Spotify, if a lookup found one.
	SpotifyURL string
}

// RealtimeFetcher is the part of realtime.Client a report needs.
type RealtimeFetcher interface {
	Fetch(ctx context.Context, station string) (*realtime.Record, error)
	NowPlaying(ctx context.Context, station string, now time.Time) (*realtime.Record, error)
}

// BuildReport takes the realtime snapshot and then, independently, the now-playing snapshot.
// clock is read once, between the two fetches; the same instant is used for rendering.
func BuildReport(ctx context.Context, fetcher RealtimeFetcher, station string, clock func() time.Time) (*Report, error) {
	rt, err := fetcher.Fetch(ctx, station)
	if err != nil {
		return nil, err
	}

	now := clock()
	np, err := fetcher.NowPlaying(ctx, station, now)
	if err != nil {
		return nil, err
	}

	return &Report{
		Station:    station,
		Realtime:   rt,
		NowPlaying: np,
		Now:        now,
	}, nil
}

// FormatOptions controls how a Report is printed.
type FormatOptions struct {
	Raw     bool
	Heading func(string) string
}

// Empty reports whether neither snapshot carried data.
func (r *Report) Empty() bool {
	return r.Realtime == nil && r.NowPlaying == nil
}

// Same reports whether both snapshots describe the same track (or both are absent).
func (r *Report) Same() bool {
	return r.Realtime.Equal(r.NowPlaying)
}

// Track returns the record a Spotify lookup should use: now playing first, else realtime.
func (r *Report) Track() *realtime.Record {
	if r.NowPlaying != nil {
		return r.NowPlaying
	}
	return r.Realtime
}

// Format renders the report with localized headings.
func (r *Report) Format(localizer *i18n.Localizer, opts FormatOptions) string {
	heading := opts.Heading
	if heading == nil {
		heading = func(s string) string { return s }
	}

	var b strings.Builder
	if r.Same() {
		b.WriteString("\n" + heading(localizer.T("report.same")) + "\n\n")
		r.writeRecord(&b, r.Realtime, localizer, opts.Raw)
	} else {
		b.WriteString("\n" + heading(localizer.T("report.different")) + "\n")

		b.WriteString("\n" + heading(localizer.T("report.realtime")) + "\n")
		r.writeRecord(&b, r.Realtime, localizer, opts.Raw)

		b.WriteString("\n" + heading(localizer.T("report.now_playing")) + "\n")
		r.writeRecord(&b, r.NowPlaying, localizer, opts.Raw)
	}

	if r.SpotifyURL != "" {
		b.WriteString(localizer.T("format.spotify", r.SpotifyURL) + "\n")
	}
	return b.String()
}

func (r *Report) writeRecord(b *strings.Builder, rec *realtime.Record, localizer *i18n.Localizer, raw bool) {
	if rec == nil {
		b.WriteString(localizer.T("report.no_data") + "\n")
		return
	}
	if raw {
		b.WriteString(realtime.RenderRaw(rec))
	}
	b.WriteString(realtime.Render(rec, r.Now))
}
