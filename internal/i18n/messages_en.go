package i18n

// englishMessages contains all English translations.
var englishMessages = map[string]string{
	// Report headings
	"report.same":        "Realtime == Now playing",
	"report.different":   "Realtime != Now playing",
	"report.realtime":    "Realtime:",
	"report.now_playing": "Now playing:",
	"report.no_data":     "No data",

	// Format helpers
	"format.spotify": "Spotify:\t%s",
	"format.station": "%-12s %s",

	// Station listing
	"stations.header": "Station      Slug",

	// Errors
	"error.no_data": "no data for station %s",
}
