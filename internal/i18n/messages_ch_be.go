package i18n

// berneseGermanMessages contains all Bernese Swiss German (Bärndütsch) translations
var berneseGermanMessages = map[string]string{
	// Report headings
	"report.same":        "Live == Lauft grad",
	"report.different":   "Live != Lauft grad",
	"report.realtime":    "Live:",
	"report.now_playing": "Lauft grad:",
	"report.no_data":     "Kei Date",

	// Format helpers
	"format.spotify": "Spotify:\t%s",
	"format.station": "%-12s %s",

	// Station listing
	"stations.header": "Sänder       Slug",

	// Errors
	"error.no_data": "kei Date für e Sänder %s",
}
