// Package geocoding provides ranked address search against Nominatim.
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/croplens/crop-terminal/internal/models"
)

const (
	// DefaultBaseURL is the public Nominatim search endpoint.
	DefaultBaseURL = "https://nominatim.openstreetmap.org/search"

	userAgent = "CropTerminal/1.0 (github.com/croplens/crop-terminal)" // Required by Nominatim ToS

	// maxSuggestions caps how many ranked results the UI shows.
	maxSuggestions = 5

	// providerLimit is how many candidates we request before ranking.
	providerLimit = 8
)

// Searcher converts free-text address queries into ranked suggestions.
type Searcher struct {
	baseURL    string
	httpClient *http.Client
	lastCall   time.Time
	mu         sync.Mutex
}

// NewSearcher creates a searcher against the given Nominatim base URL.
func NewSearcher(baseURL string) *Searcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Searcher{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// nominatimPlace represents one entry of the Nominatim response.
type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Search looks up a query and returns ranked suggestions, best first.
// Candidates whose display name starts with the query (case-insensitive)
// get a +100 bonus; ties keep provider order; at most five are returned.
func (s *Searcher) Search(ctx context.Context, query string) ([]models.AddressSuggestion, error) {
	places, err := s.fetch(ctx, query, providerLimit)
	if err != nil {
		return nil, err
	}
	return rankSuggestions(query, places), nil
}

// Locate resolves a query to its single best location, used for the
// startup --address auto-navigate. Returns nil when nothing matches.
func (s *Searcher) Locate(ctx context.Context, query string) (*models.AddressSuggestion, error) {
	places, err := s.fetch(ctx, query, 1)
	if err != nil {
		return nil, err
	}
	suggestions := rankSuggestions(query, places)
	if len(suggestions) == 0 {
		return nil, nil
	}
	return &suggestions[0], nil
}

func (s *Searcher) fetch(ctx context.Context, query string, limit int) ([]nominatimPlace, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)
	params.Set("countrycodes", "us")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("addressdetails", "1")

	reqURL := fmt.Sprintf("%s?%s", s.baseURL, params.Encode())

	// Rate limiting: Nominatim requires 1 req/sec max
	s.mu.Lock()
	if !s.lastCall.IsZero() {
		elapsed := time.Since(s.lastCall)
		if elapsed < time.Second {
			time.Sleep(time.Second - elapsed)
		}
	}
	s.lastCall = time.Now()
	s.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim API returned status %d", resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	zap.L().Debug("geocode search", zap.String("query", query), zap.Int("results", len(places)))
	return places, nil
}

// rankSuggestions scores, sorts and truncates provider results. The
// sort is stable so tied candidates keep provider order.
func rankSuggestions(query string, places []nominatimPlace) []models.AddressSuggestion {
	lowerQuery := strings.ToLower(strings.TrimSpace(query))

	suggestions := make([]models.AddressSuggestion, 0, len(places))
	for _, place := range places {
		lat, err := strconv.ParseFloat(place.Lat, 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(place.Lon, 64)
		if err != nil {
			continue
		}

		score := 0
		if strings.HasPrefix(strings.ToLower(place.DisplayName), lowerQuery) {
			score += 100
		}

		suggestions = append(suggestions, models.AddressSuggestion{
			DisplayName: place.DisplayName,
			Latitude:    lat,
			Longitude:   lon,
			RankScore:   score,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].RankScore > suggestions[j].RankScore
	})

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// PrimaryLabel extracts the short display label from a full Nominatim
// display name: the text before the first comma.
func PrimaryLabel(displayName string) string {
	if idx := strings.Index(displayName, ","); idx >= 0 {
		return strings.TrimSpace(displayName[:idx])
	}
	return strings.TrimSpace(displayName)
}
