// Package spotify looks up the airing track on Spotify so the report can link to it.
package spotify

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"go.uber.org/zap"
	"golang.org/x/oauth2/clientcredentials"

	"bbcrealtime/internal/core"
	"bbcrealtime/pkg/fuzzy"
)

const (
	// MaxTrackSearchResults limits how many search results are ranked.
	MaxTrackSearchResults = 5
	// MinMatchScore is the lowest relevance score accepted as the same track.
	MinMatchScore = 0.6

	titleWeight    = 0.6
	artistWeight   = 0.3
	durationWeight = 0.1
	// neutralDurationScore is used when either side has no usable duration.
	neutralDurationScore = 0.5
)

var (
	// ErrNotAuthenticated is returned when FindTrack is called before Authenticate.
	ErrNotAuthenticated = errors.New("spotify client not authenticated")
	// ErrNoMatch is returned when no search result is close enough to the requested track.
	ErrNoMatch = errors.New("no matching spotify track")
)

// Searcher is the subset of the Spotify Web API used for lookups.
type Searcher interface {
	Search(ctx context.Context, query string, t spotify.SearchType, opts ...spotify.RequestOption) (*spotify.SearchResult, error)
}

// Match is a Spotify track judged to be the requested one.
type Match struct {
	ID       string
	Title    string
	Artist   string
	URL      string
	Duration time.Duration
	Score    float64
}

// Client finds tracks on Spotify using the client-credentials flow.
type Client struct {
	config     *core.SpotifyConfig
	logger     *zap.Logger
	searcher   Searcher
	normalizer *fuzzy.Normalizer
}

func NewClient(config *core.SpotifyConfig, logger *zap.Logger) *Client {
	return &Client{
		config:     config,
		logger:     logger,
		normalizer: fuzzy.NewNormalizer(),
	}
}

// NewClientWithSearcher creates a client that uses searcher instead of authenticating.
func NewClientWithSearcher(config *core.SpotifyConfig, logger *zap.Logger, searcher Searcher) *Client {
	c := NewClient(config, logger)
	c.searcher = searcher
	return c
}

// Authenticate obtains an app token; no user authorization is involved.
func (c *Client) Authenticate(ctx context.Context) error {
	cc := &clientcredentials.Config{
		ClientID:     c.config.ClientID,
		ClientSecret: c.config.ClientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}

	token, err := cc.Token(ctx)
	if err != nil {
		return fmt.Errorf("failed to get spotify token: %w", err)
	}

	c.searcher = spotify.New(spotifyauth.New().Client(ctx, token))
	c.logger.Debug("Authenticated with Spotify", zap.Time("token_expiry", token.Expiry))
	return nil
}

// FindTrack searches Spotify for artist/title and returns the best match.
// duration is the broadcast window length and may be zero.
func (c *Client) FindTrack(ctx context.Context, artist, title string, duration time.Duration) (*Match, error) {
	if c.searcher == nil {
		return nil, ErrNotAuthenticated
	}

	query := c.buildQuery(artist, title)
	opts := []spotify.RequestOption{spotify.Limit(MaxTrackSearchResults)}
	if c.config.Market != "" {
		opts = append(opts, spotify.Market(c.config.Market))
	}

	results, err := c.searcher.Search(ctx, query, spotify.SearchTypeTrack, opts...)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	if results == nil || results.Tracks == nil || len(results.Tracks.Tracks) == 0 {
		return nil, ErrNoMatch
	}

	matches := c.rankTracks(results.Tracks.Tracks, artist, title, duration)
	best := matches[0]
	c.logger.Debug("Ranked spotify results",
		zap.String("query", query),
		zap.Int("results", len(matches)),
		zap.String("best", best.Artist+" - "+best.Title),
		zap.Float64("score", best.Score))

	if best.Score < MinMatchScore {
		return nil, ErrNoMatch
	}
	return &best, nil
}

func (c *Client) buildQuery(artist, title string) string {
	return strings.TrimSpace(c.normalizer.NormalizeArtist(artist) + " " + c.normalizer.NormalizeTitle(title))
}

func (c *Client) rankTracks(tracks []spotify.FullTrack, artist, title string, duration time.Duration) []Match {
	limit := min(len(tracks), MaxTrackSearchResults)
	matches := make([]Match, 0, limit)
	for i := range tracks[:limit] {
		match := convertSpotifyTrack(&tracks[i])
		match.Score = c.calculateRelevanceScore(&match, artist, title, duration)
		matches = append(matches, match)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

func (c *Client) calculateRelevanceScore(match *Match, artist, title string, duration time.Duration) float64 {
	titleSimilarity := c.normalizer.CalculateSimilarity(
		c.normalizer.NormalizeTitle(match.Title), c.normalizer.NormalizeTitle(title))
	artistSimilarity := c.normalizer.CalculateSimilarity(
		c.normalizer.NormalizeArtist(match.Artist), c.normalizer.NormalizeArtist(artist))

	durationScore := neutralDurationScore
	if duration > 0 && match.Duration > 0 {
		durationScore = c.normalizer.DurationTolerance(match.Duration, duration)
	}

	return titleWeight*titleSimilarity + artistWeight*artistSimilarity + durationWeight*durationScore
}

func convertSpotifyTrack(track *spotify.FullTrack) Match {
	artists := make([]string, 0, len(track.Artists))
	for _, artist := range track.Artists {
		artists = append(artists, artist.Name)
	}

	return Match{
		ID:       string(track.ID),
		Title:    track.Name,
		Artist:   strings.Join(artists, " & "),
		URL:      track.ExternalURLs["spotify"],
		Duration: time.Duration(track.Duration) * time.Millisecond,
	}
}
