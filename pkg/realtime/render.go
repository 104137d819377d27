package realtime

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// TimestampLayout is the UTC format used for broadcast times.
const TimestampLayout = "2006-01-02 15:04:05"

// FormatTimestamp renders unix seconds as a UTC timestamp.
func FormatTimestamp(unix int64) string {
	return time.Unix(unix, 0).UTC().Format(TimestampLayout)
}

// Render formats a record for humans. A nil record renders as an empty string.
// The Now and End lines are ordered chronologically.
func Render(rec *Record, now time.Time) string {
	if rec == nil {
		return ""
	}

	nowLine := fmt.Sprintf("Now:\t%s\n", now.UTC().Format(TimestampLayout))
	endLine := fmt.Sprintf("End:\t%s\n", FormatTimestamp(rec.End))

	var b strings.Builder
	fmt.Fprintf(&b, "Artist:\t%s\n", norm.NFC.String(rec.Artist))
	fmt.Fprintf(&b, "Title:\t%s\n", norm.NFC.String(rec.Title))
	fmt.Fprintf(&b, "Start:\t%s\n", FormatTimestamp(rec.Start))
	if !now.After(rec.EndTime()) {
		b.WriteString(nowLine)
		b.WriteString(endLine)
	} else {
		b.WriteString(endLine)
		b.WriteString(nowLine)
	}
	return b.String()
}

// RenderRaw pretty-prints the realtime object exactly as the provider sent it.
func RenderRaw(rec *Record) string {
	if rec == nil || len(rec.Raw) == 0 {
		return ""
	}
	var out bytes.Buffer
	if err := json.Indent(&out, rec.Raw, "", "  "); err != nil {
		return string(rec.Raw) + "\n"
	}
	out.WriteByte('\n')
	return out.String()
}
