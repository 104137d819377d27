// Package fuzzy normalizes artist and title strings so that the same track
// described by different providers compares equal.
package fuzzy

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	// durationTolerance is the difference treated as a perfect duration match.
	durationTolerance = 30 * time.Second
	// maxDurationDiff is the difference at which durations stop matching at all.
	maxDurationDiff = 2 * time.Minute
)

var (
	featRegex       = regexp.MustCompile(`\s*[\(\[]?\s*\b(?:feat\.?|ft\.?|featuring)\s+[^\)\]]*[\)\]]?`)
	versionWords    = `(?:remix|remaster(?:ed)?|deluxe|extended|radio edit|edit|clean|explicit|live|mono|stereo)`
	bracketedRegex  = regexp.MustCompile(`\s*[\(\[][^\)\]]*\b` + versionWords + `\b[^\)\]]*[\)\]]`)
	dashSuffixRegex = regexp.MustCompile(`\s+-\s+.*\b` + versionWords + `\b.*$`)
	leadingTheRegex = regexp.MustCompile(`^the\s+`)
	joinerRegex     = regexp.MustCompile(`\s*(?:&|\+)\s*|\s+(?:x|vs\.?)\s+`)
	punctRegex      = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// NormalizeArtist lower-cases, strips accents, featured artists and a leading "the",
// and spells every artist joiner as "and".
func (n *Normalizer) NormalizeArtist(artist string) string {
	artist = n.fold(artist)
	artist = featRegex.ReplaceAllString(artist, "")
	artist = strings.TrimSpace(artist)
	artist = leadingTheRegex.ReplaceAllString(artist, "")
	artist = joinerRegex.ReplaceAllString(artist, " and ")
	return n.clean(artist)
}

// NormalizeTitle lower-cases, strips accents, featured artists and version markers
// such as "(Remix)" or "- Radio Edit".
func (n *Normalizer) NormalizeTitle(title string) string {
	title = n.fold(title)
	title = featRegex.ReplaceAllString(title, "")
	title = bracketedRegex.ReplaceAllString(title, "")
	title = dashSuffixRegex.ReplaceAllString(title, "")
	return n.clean(title)
}

func (n *Normalizer) fold(text string) string {
	text = norm.NFKD.String(text)

	var result strings.Builder
	for _, r := range text {
		if !unicode.Is(unicode.Mn, r) {
			result.WriteRune(r)
		}
	}
	return strings.ToLower(result.String())
}

func (n *Normalizer) clean(text string) string {
	text = punctRegex.ReplaceAllString(text, " ")
	text = whitespaceRegex.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// CalculateSimilarity returns the longest common subsequence of s1 and s2
// relative to the longer string, in [0, 1].
func (n *Normalizer) CalculateSimilarity(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}

	r1, r2 := []rune(s1), []rune(s2)
	if len(r1) == 0 || len(r2) == 0 {
		return 0.0
	}

	return float64(longestCommonSubsequence(r1, r2)) / float64(max(len(r1), len(r2)))
}

func longestCommonSubsequence(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else {
				curr[j] = max(prev[j], curr[j-1])
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

// DurationTolerance scores how closely two durations agree: 1 within 30s,
// falling linearly to 0 at two minutes apart.
func (n *Normalizer) DurationTolerance(d1, d2 time.Duration) float64 {
	diff := d1 - d2
	if diff < 0 {
		diff = -diff
	}

	if diff <= durationTolerance {
		return 1.0
	}
	if diff >= maxDurationDiff {
		return 0.0
	}

	return 1.0 - float64(diff-durationTolerance)/float64(maxDurationDiff-durationTolerance)
}
