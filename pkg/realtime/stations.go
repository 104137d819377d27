package realtime

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultStation is queried when no station is given.
const DefaultStation = "bbc6music"

// aliasSuffix marks the provider's stream identifiers, accepted as aliases of the short ids.
const aliasSuffix = "_mf_p"

// Station pairs a public station id with the provider's slug.
type Station struct {
	ID   string
	Slug string
}

var stations = []Station{
	{ID: "bbcradio1", Slug: "bbc_radio_one"},
	{ID: "bbc1xtra", Slug: "bbc_1xtra"},
	{ID: "bbcradio2", Slug: "bbc_radio_two"},
	{ID: "bbcradio3", Slug: "bbc_radio_three"},
	{ID: "bbc6music", Slug: "bbc_6music"},
}

var stationSlugs = buildSlugTable(stations)

func buildSlugTable(list []Station) map[string]string {
	table := make(map[string]string, len(list)*2)
	for _, s := range list {
		table[s.ID] = s.Slug
		table[s.Slug+aliasSuffix] = s.Slug
	}
	return table
}

// NormalizeStationID folds user input into the form used by the station table.
func NormalizeStationID(id string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(id)))
}

// Resolve maps a public station id to the provider's slug.
// Unknown ids report false rather than an error.
func Resolve(id string) (string, bool) {
	slug, ok := stationSlugs[NormalizeStationID(id)]
	return slug, ok
}

// Stations returns the canonical stations in display order.
func Stations() []Station {
	out := make([]Station, len(stations))
	copy(out, stations)
	return out
}

// SupportedIDs returns every accepted station id, aliases included, sorted.
func SupportedIDs() []string {
	ids := make([]string, 0, len(stationSlugs))
	for id := range stationSlugs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
